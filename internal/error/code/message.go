package code

// Default messages per error code.
var codeMessageMap = map[int]string{
	ErrSuccess:          "Thành công",
	ErrUnknown:          "Lỗi không xác định",
	ErrBind:             "Dữ liệu yêu cầu không hợp lệ",
	ErrValidation:       "Dữ liệu không hợp lệ",
	ErrTokenInvalid:     "Token không hợp lệ",
	ErrTooManyRequests:  "Quá nhiều yêu cầu",
	ErrNotFound:         "Không tìm thấy dữ liệu",
	ErrConflict:         "Dữ liệu bị trùng lặp",
	ErrPermissionDenied: "Không có quyền truy cập",

	ErrUserNotFound:          "Không tìm thấy tài khoản",
	ErrUserAlreadyExist:      "Tên đăng nhập đã tồn tại",
	ErrUserPasswordIncorrect: "Sai tên đăng nhập hoặc mật khẩu",

	ErrHouseholdNotFound:     "Không tìm thấy hộ khẩu",
	ErrHouseholdNumberTaken:  "Số hộ khẩu đã tồn tại",
	ErrHouseholdHasResidents: "Hộ khẩu vẫn còn nhân khẩu",

	ErrResidentNotFound:         "Không tìm thấy nhân khẩu",
	ErrResidentInOtherHousehold: "Nhân khẩu đã thuộc hộ khẩu khác",
	ErrResidentNotMember:        "Nhân khẩu không thuộc hộ khẩu này",

	ErrFeeNotFound:     "Không tìm thấy khoản thu",
	ErrPaymentNotFound: "Không tìm thấy khoản nộp phí",

	ErrUtilityServiceNotFound:  "Không tìm thấy dịch vụ",
	ErrUtilityServiceDuplicate: "Dịch vụ cho kỳ này đã tồn tại",
	ErrUtilityPaymentNotFound:  "Không tìm thấy thanh toán",
	ErrUtilityPaymentDuplicate: "Kỳ này đã được thanh toán",
	ErrMeterReadingInvalid:     "Chỉ số mới phải lớn hơn chỉ số cũ",

	ErrVehicleNotFound:   "Không tìm thấy xe",
	ErrLicensePlateTaken: "Biển số xe đã tồn tại trong hệ thống",

	ErrDatabase:       "Lỗi cơ sở dữ liệu",
	ErrRecordNotFound: "Không tìm thấy bản ghi",
}

// HTTP status per error code.
var codeStatusMap = map[int]int{
	ErrSuccess:          StatusOK,
	ErrUnknown:          StatusInternalServerError,
	ErrBind:             StatusBadRequest,
	ErrValidation:       StatusBadRequest,
	ErrTokenInvalid:     StatusUnauthorized,
	ErrTooManyRequests:  StatusTooManyRequests,
	ErrNotFound:         StatusNotFound,
	ErrConflict:         StatusConflict,
	ErrPermissionDenied: StatusForbidden,

	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusConflict,
	ErrUserPasswordIncorrect: StatusUnauthorized,

	ErrHouseholdNotFound:     StatusNotFound,
	ErrHouseholdNumberTaken:  StatusConflict,
	ErrHouseholdHasResidents: StatusConflict,

	ErrResidentNotFound:         StatusNotFound,
	ErrResidentInOtherHousehold: StatusConflict,
	ErrResidentNotMember:        StatusConflict,

	ErrFeeNotFound:     StatusNotFound,
	ErrPaymentNotFound: StatusNotFound,

	ErrUtilityServiceNotFound:  StatusNotFound,
	ErrUtilityServiceDuplicate: StatusConflict,
	ErrUtilityPaymentNotFound:  StatusNotFound,
	ErrUtilityPaymentDuplicate: StatusConflict,
	ErrMeterReadingInvalid:     StatusBadRequest,

	ErrVehicleNotFound:   StatusNotFound,
	ErrLicensePlateTaken: StatusConflict,

	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage returns the default message for a code.
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "Lỗi không xác định"
}

// GetStatus returns the HTTP status for a code.
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
