package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/config"
	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/apperr"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
	"github.com/lyng148/thien-nguyet-dong-phu/utils"
)

// InterfaceUtilityPaymentService settles utility bills.
type InterfaceUtilityPaymentService interface {
	GetAllPayments() ([]models.UtilityPayment, error)
	GetPaymentByID(id uint) (*models.UtilityPayment, error)
	GetByTransactionCode(code string) (*models.UtilityPayment, error)
	GetByHousehold(householdID uint) ([]models.UtilityPayment, error)
	GetByPeriod(month, year int) ([]models.UtilityPayment, error)
	GetByDateRange(from, to models.Date) ([]models.UtilityPayment, error)
	Search(householdID *uint, month, year int, status string) ([]models.UtilityPayment, error)
	CreatePayment(payment *models.UtilityPayment) (*models.UtilityPayment, error)
	UpdatePayment(id uint, updates *models.UtilityPayment) (*models.UtilityPayment, error)
	CancelPayment(id uint, reason string) (*models.UtilityPayment, error)
	DeletePayment(id uint) error
	TotalPaid() (float64, error)
	TotalPaidByPeriod(month, year int) (float64, error)
	TotalPaidByHouseholdAndPeriod(householdID uint, month, year int) (float64, error)
}

// UtilityPaymentService implements utility settlements over gorm.
type UtilityPaymentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUtilityPaymentService creates a utility payment service.
func NewUtilityPaymentService(db *gorm.DB, cfg *config.Config) InterfaceUtilityPaymentService {
	return &UtilityPaymentService{DB: db, Config: cfg}
}

// fillDenormalized resolves the household and service display columns.
func (s *UtilityPaymentService) fillDenormalized(payments []models.UtilityPayment) error {
	for i := range payments {
		var household models.Household
		if err := s.DB.Select("so_ho_khau", "chu_ho").
			First(&household, payments[i].HouseholdID).Error; err == nil {
			payments[i].HouseholdNumber = household.HouseholdNumber
			payments[i].HeadName = household.HeadName
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if payments[i].UtilityServiceID != nil {
			var service models.UtilityService
			if err := s.DB.Select("loai_dich_vu").
				First(&service, *payments[i].UtilityServiceID).Error; err == nil {
				payments[i].ServiceType = service.ServiceType
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
	}
	return nil
}

func (s *UtilityPaymentService) GetAllPayments() ([]models.UtilityPayment, error) {
	var payments []models.UtilityPayment
	if err := s.DB.Order("nam DESC, thang DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	if err := s.fillDenormalized(payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *UtilityPaymentService) GetPaymentByID(id uint) (*models.UtilityPayment, error) {
	var payment models.UtilityPayment
	if err := s.DB.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Không tìm thấy thanh toán tiện ích với ID: %d", id)
		}
		return nil, err
	}
	payments := []models.UtilityPayment{payment}
	if err := s.fillDenormalized(payments); err != nil {
		return nil, err
	}
	return &payments[0], nil
}

func (s *UtilityPaymentService) GetByTransactionCode(code string) (*models.UtilityPayment, error) {
	var payment models.UtilityPayment
	if err := s.DB.Where("ma_giao_dich = ?", code).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Không tìm thấy thanh toán với mã giao dịch: %s", code)
		}
		return nil, err
	}
	payments := []models.UtilityPayment{payment}
	if err := s.fillDenormalized(payments); err != nil {
		return nil, err
	}
	return &payments[0], nil
}

func (s *UtilityPaymentService) GetByHousehold(householdID uint) ([]models.UtilityPayment, error) {
	var payments []models.UtilityPayment
	if err := s.DB.Where("ho_khau_id = ?", householdID).
		Order("nam DESC, thang DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	if err := s.fillDenormalized(payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *UtilityPaymentService) GetByPeriod(month, year int) ([]models.UtilityPayment, error) {
	if err := validPeriod(month, year); err != nil {
		return nil, err
	}
	var payments []models.UtilityPayment
	if err := s.DB.Where("thang = ? AND nam = ?", month, year).Find(&payments).Error; err != nil {
		return nil, err
	}
	if err := s.fillDenormalized(payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *UtilityPaymentService) GetByDateRange(from, to models.Date) ([]models.UtilityPayment, error) {
	var payments []models.UtilityPayment
	if err := s.DB.Where("ngay_thanh_toan BETWEEN ? AND ?", from, to).
		Order("ngay_thanh_toan DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	if err := s.fillDenormalized(payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// Search combines the optional filters. Zero values mean "any".
func (s *UtilityPaymentService) Search(householdID *uint, month, year int, status string) ([]models.UtilityPayment, error) {
	q := s.DB.Model(&models.UtilityPayment{})
	if householdID != nil {
		q = q.Where("ho_khau_id = ?", *householdID)
	}
	if month != 0 {
		q = q.Where("thang = ?", month)
	}
	if year != 0 {
		q = q.Where("nam = ?", year)
	}
	if status != "" {
		q = q.Where("trang_thai = ?", status)
	}

	var payments []models.UtilityPayment
	if err := q.Order("nam DESC, thang DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	if err := s.fillDenormalized(payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// CreatePayment settles a household's period. One successful payment
// per household per period; a duplicate is rejected. The transaction
// code is generated server side and never accepted from the caller.
func (s *UtilityPaymentService) CreatePayment(payment *models.UtilityPayment) (*models.UtilityPayment, error) {
	if err := validPeriod(payment.Month, payment.Year); err != nil {
		return nil, err
	}
	if payment.Amount < 0 {
		return nil, apperr.Validation("Số tiền thanh toán không được âm")
	}

	var household models.Household
	if err := s.DB.First(&household, payment.HouseholdID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Không tìm thấy hộ khẩu với ID: %d", payment.HouseholdID)
		}
		return nil, err
	}

	if payment.UtilityServiceID != nil {
		var service models.UtilityService
		if err := s.DB.First(&service, *payment.UtilityServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("Không tìm thấy dịch vụ tiện ích với ID: %d", *payment.UtilityServiceID)
			}
			return nil, err
		}
	}

	var count int64
	if err := s.DB.Model(&models.UtilityPayment{}).
		Where("ho_khau_id = ? AND thang = ? AND nam = ? AND trang_thai = ?",
			payment.HouseholdID, payment.Month, payment.Year, models.UtilityPaymentStatusSuccess).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("Hộ khẩu đã thanh toán kỳ %d/%d", payment.Month, payment.Year)
	}

	if payment.PaymentMethod == "" {
		payment.PaymentMethod = models.PaymentMethodCash
	}
	payment.TransactionCode = utils.GenerateTransactionCode()
	payment.Status = models.UtilityPaymentStatusSuccess

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		if payment.UtilityServiceID != nil {
			return tx.Model(&models.UtilityService{}).
				Where("id = ?", *payment.UtilityServiceID).
				Update("trang_thai", models.UtilityStatusPaid).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetPaymentByID(payment.ID)
}

// UpdatePayment rewrites the editable fields. Period, household and
// transaction code are fixed after creation.
func (s *UtilityPaymentService) UpdatePayment(id uint, updates *models.UtilityPayment) (*models.UtilityPayment, error) {
	payment, err := s.GetPaymentByID(id)
	if err != nil {
		return nil, err
	}
	if payment.Status == models.UtilityPaymentStatusCanceled {
		return nil, apperr.Conflict("Không thể sửa thanh toán đã hủy")
	}

	if updates.Amount > 0 {
		payment.Amount = updates.Amount
	}
	if updates.ParkingFee != nil {
		payment.ParkingFee = updates.ParkingFee
	}
	if updates.ServiceFee != nil {
		payment.ServiceFee = updates.ServiceFee
	}
	if !updates.PaymentDate.IsZero() {
		payment.PaymentDate = updates.PaymentDate
	}
	if updates.PaymentMethod != "" {
		payment.PaymentMethod = updates.PaymentMethod
	}
	if updates.Collector != "" {
		payment.Collector = updates.Collector
	}
	payment.Note = updates.Note

	if err := s.DB.Save(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// CancelPayment voids a successful payment, appends the reason to the
// note, and reopens the linked consumption record. Canceling an
// already canceled payment is rejected.
func (s *UtilityPaymentService) CancelPayment(id uint, reason string) (*models.UtilityPayment, error) {
	payment, err := s.GetPaymentByID(id)
	if err != nil {
		return nil, err
	}
	if payment.Status == models.UtilityPaymentStatusCanceled {
		return nil, apperr.Conflict("Thanh toán đã bị hủy trước đó")
	}

	payment.Status = models.UtilityPaymentStatusCanceled
	if reason != "" {
		if payment.Note != "" {
			payment.Note += " | "
		}
		payment.Note += "Lý do hủy: " + reason
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		if payment.UtilityServiceID != nil {
			return tx.Model(&models.UtilityService{}).
				Where("id = ?", *payment.UtilityServiceID).
				Update("trang_thai", models.UtilityStatusUnpaid).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *UtilityPaymentService) DeletePayment(id uint) error {
	payment, err := s.GetPaymentByID(id)
	if err != nil {
		return err
	}
	if payment.Status == models.UtilityPaymentStatusSuccess {
		return apperr.Conflict("Không thể xóa thanh toán thành công, hãy hủy trước")
	}
	return s.DB.Delete(payment).Error
}

// TotalPaid sums every successful payment.
func (s *UtilityPaymentService) TotalPaid() (float64, error) {
	var total float64
	err := s.DB.Model(&models.UtilityPayment{}).
		Where("trang_thai = ?", models.UtilityPaymentStatusSuccess).
		Select("COALESCE(SUM(so_tien_thanh_toan), 0)").
		Scan(&total).Error
	return total, err
}

// TotalPaidByPeriod sums the successful payments of one period.
func (s *UtilityPaymentService) TotalPaidByPeriod(month, year int) (float64, error) {
	if err := validPeriod(month, year); err != nil {
		return 0, err
	}
	var total float64
	err := s.DB.Model(&models.UtilityPayment{}).
		Where("thang = ? AND nam = ? AND trang_thai = ?", month, year, models.UtilityPaymentStatusSuccess).
		Select("COALESCE(SUM(so_tien_thanh_toan), 0)").
		Scan(&total).Error
	return total, err
}

func (s *UtilityPaymentService) TotalPaidByHouseholdAndPeriod(householdID uint, month, year int) (float64, error) {
	if err := validPeriod(month, year); err != nil {
		return 0, err
	}
	var total float64
	err := s.DB.Model(&models.UtilityPayment{}).
		Where("ho_khau_id = ? AND thang = ? AND nam = ? AND trang_thai = ?",
			householdID, month, year, models.UtilityPaymentStatusSuccess).
		Select("COALESCE(SUM(so_tien_thanh_toan), 0)").
		Scan(&total).Error
	return total, err
}
