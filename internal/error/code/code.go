package code

// HTTP statuses used by the status map.
const (
	StatusOK                  = 200
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusConflict            = 409
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
)

// Common codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown internal error.
	ErrUnknown
	// ErrBind - 400: malformed request body or parameters.
	ErrBind
	// ErrValidation - 400: field combination failed validation.
	ErrValidation
	// ErrTokenInvalid - 401: missing or invalid token.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: rate limit exceeded.
	ErrTooManyRequests
	// ErrNotFound - 404: referenced entity absent.
	ErrNotFound
	// ErrConflict - 409: uniqueness or cross-owner violation.
	ErrConflict
	// ErrPermissionDenied - 403: role not allowed here.
	ErrPermissionDenied
)

// Account codes (101xxx).
const (
	// ErrUserNotFound - 404: account does not exist.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 409: username taken.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: bad credentials.
	ErrUserPasswordIncorrect
)

// Household codes (102xxx).
const (
	// ErrHouseholdNotFound - 404: household does not exist.
	ErrHouseholdNotFound int = iota + 102000
	// ErrHouseholdNumberTaken - 409: household number already used.
	ErrHouseholdNumberTaken
	// ErrHouseholdHasResidents - 409: delete blocked by members.
	ErrHouseholdHasResidents
)

// Resident codes (103xxx).
const (
	// ErrResidentNotFound - 404: resident does not exist.
	ErrResidentNotFound int = iota + 103000
	// ErrResidentInOtherHousehold - 409: already assigned elsewhere.
	ErrResidentInOtherHousehold
	// ErrResidentNotMember - 409: not a member of this household.
	ErrResidentNotMember
)

// Fee and payment codes (104xxx).
const (
	// ErrFeeNotFound - 404: fee type does not exist.
	ErrFeeNotFound int = iota + 104000
	// ErrPaymentNotFound - 404: payment does not exist.
	ErrPaymentNotFound
)

// Utility codes (105xxx).
const (
	// ErrUtilityServiceNotFound - 404: utility record does not exist.
	ErrUtilityServiceNotFound int = iota + 105000
	// ErrUtilityServiceDuplicate - 409: same household/type/period.
	ErrUtilityServiceDuplicate
	// ErrUtilityPaymentNotFound - 404: utility payment does not exist.
	ErrUtilityPaymentNotFound
	// ErrUtilityPaymentDuplicate - 409: period already paid.
	ErrUtilityPaymentDuplicate
	// ErrMeterReadingInvalid - 400: new reading not above old.
	ErrMeterReadingInvalid
)

// Vehicle codes (106xxx).
const (
	// ErrVehicleNotFound - 404: vehicle does not exist.
	ErrVehicleNotFound int = iota + 106000
	// ErrLicensePlateTaken - 409: plate used by another vehicle.
	ErrLicensePlateTaken
)

// Database codes (107xxx).
const (
	// ErrDatabase - 500: database error.
	ErrDatabase int = iota + 107000
	// ErrRecordNotFound - 404: record does not exist.
	ErrRecordNotFound
)
