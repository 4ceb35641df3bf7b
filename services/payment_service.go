package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/config"
	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/apperr"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
)

// PaymentStatistics summarizes payments under an optional filter.
type PaymentStatistics struct {
	TotalPayments      int64   `json:"totalPayments"`
	TotalAmount        float64 `json:"totalAmount"`
	VerifiedCount      int64   `json:"verifiedCount"`
	UnverifiedCount    int64   `json:"unverifiedCount"`
	VerifiedPercentage float64 `json:"verifiedPercentage"`
}

// PaymentFilter narrows statistics queries. Household takes precedence
// over the fee type filter when both are set; the date range applies
// only when neither is set.
type PaymentFilter struct {
	HouseholdID *uint
	FeeTypeID   *uint
	From        *models.Date
	To          *models.Date
}

// InterfacePaymentService manages fee payments.
type InterfacePaymentService interface {
	GetAllPayments() ([]models.Payment, error)
	GetPaymentByID(id uint) (*models.Payment, error)
	GetPaymentsByHousehold(householdID uint) ([]models.Payment, error)
	GetPaymentsByFeeType(feeTypeID uint) ([]models.Payment, error)
	GetPaymentsByHouseholdAndFeeType(householdID, feeTypeID uint) ([]models.Payment, error)
	GetPaymentsByDateRange(from, to models.Date) ([]models.Payment, error)
	FindUnverified() ([]models.Payment, error)
	CreatePayment(payment *models.Payment) error
	UpdatePayment(id uint, updates *models.Payment) (*models.Payment, error)
	DeletePayment(id uint) error
	VerifyPayment(id uint) (*models.Payment, error)
	UnverifyPayment(id uint) (*models.Payment, error)
	TotalByHousehold(householdID uint) (float64, error)
	TotalByFeeType(feeTypeID uint) (float64, error)
	TotalByDateRange(from, to models.Date) (float64, error)
	PercentVerified() (float64, error)
	GetStatistics(filter PaymentFilter) (*PaymentStatistics, error)
}

// PaymentService implements payment operations over gorm.
type PaymentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPaymentService creates a payment service.
func NewPaymentService(db *gorm.DB, cfg *config.Config) InterfacePaymentService {
	return &PaymentService{DB: db, Config: cfg}
}

func (s *PaymentService) GetAllPayments() ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.DB.Preload("Household").Preload("FeeType").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *PaymentService) GetPaymentByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.DB.Preload("Household").Preload("FeeType").First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Không tìm thấy khoản nộp phí với ID: %d", id)
		}
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentService) GetPaymentsByHousehold(householdID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.DB.Preload("FeeType").
		Where("ho_khau_id = ?", householdID).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *PaymentService) GetPaymentsByFeeType(feeTypeID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.DB.Preload("Household").
		Where("khoan_thu_id = ?", feeTypeID).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *PaymentService) GetPaymentsByHouseholdAndFeeType(householdID, feeTypeID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.DB.Where("ho_khau_id = ? AND khoan_thu_id = ?", householdID, feeTypeID).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *PaymentService) GetPaymentsByDateRange(from, to models.Date) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.DB.Where("ngay_nop BETWEEN ? AND ?", from, to).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *PaymentService) FindUnverified() ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.DB.Preload("Household").Preload("FeeType").
		Where("da_xac_nhan = ?", false).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// CreatePayment records a payment against a household and fee type.
// A missing or non-positive due amount defaults to the fee type's
// amount, the paid amount defaults to the due amount, and the payment
// date defaults to today. New payments start unverified.
func (s *PaymentService) CreatePayment(payment *models.Payment) error {
	var household models.Household
	if err := s.DB.First(&household, payment.HouseholdID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Không tìm thấy hộ khẩu với ID: %d", payment.HouseholdID)
		}
		return err
	}
	var fee models.FeeType
	if err := s.DB.First(&fee, payment.FeeTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Không tìm thấy khoản thu với ID: %d", payment.FeeTypeID)
		}
		return err
	}

	if payment.AmountDue <= 0 {
		payment.AmountDue = fee.Amount
	}
	if payment.AmountPaid <= 0 {
		payment.AmountPaid = payment.AmountDue
	}
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = models.Today()
	}
	payment.Verified = false

	return s.DB.Create(payment).Error
}

// UpdatePayment rewrites the editable fields of an existing payment.
// The verified flag is managed through Verify/Unverify only.
func (s *PaymentService) UpdatePayment(id uint, updates *models.Payment) (*models.Payment, error) {
	payment, err := s.GetPaymentByID(id)
	if err != nil {
		return nil, err
	}

	if updates.PayerName != "" {
		payment.PayerName = updates.PayerName
	}
	if updates.AmountDue > 0 {
		payment.AmountDue = updates.AmountDue
	}
	if updates.AmountPaid > 0 {
		payment.AmountPaid = updates.AmountPaid
	}
	if !updates.PaymentDate.IsZero() {
		payment.PaymentDate = updates.PaymentDate
	}
	payment.Note = updates.Note

	if err := s.DB.Save(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) DeletePayment(id uint) error {
	payment, err := s.GetPaymentByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(payment).Error
}

// VerifyPayment marks a payment verified. Verifying an already
// verified payment is a no-op.
func (s *PaymentService) VerifyPayment(id uint) (*models.Payment, error) {
	payment, err := s.GetPaymentByID(id)
	if err != nil {
		return nil, err
	}
	if !payment.Verified {
		payment.Verified = true
		if err := s.DB.Save(payment).Error; err != nil {
			return nil, err
		}
	}
	return payment, nil
}

// UnverifyPayment clears the verified flag. Idempotent like Verify.
func (s *PaymentService) UnverifyPayment(id uint) (*models.Payment, error) {
	payment, err := s.GetPaymentByID(id)
	if err != nil {
		return nil, err
	}
	if payment.Verified {
		payment.Verified = false
		if err := s.DB.Save(payment).Error; err != nil {
			return nil, err
		}
	}
	return payment, nil
}

func (s *PaymentService) sumVerified(where string, args ...interface{}) (float64, error) {
	var total float64
	err := s.DB.Model(&models.Payment{}).
		Where("da_xac_nhan = ?", true).
		Where(where, args...).
		Select("COALESCE(SUM(so_tien), 0)").
		Scan(&total).Error
	return total, err
}

// TotalByHousehold sums the verified amounts paid by one household.
func (s *PaymentService) TotalByHousehold(householdID uint) (float64, error) {
	return s.sumVerified("ho_khau_id = ?", householdID)
}

// TotalByFeeType sums the verified amounts collected for one fee type.
func (s *PaymentService) TotalByFeeType(feeTypeID uint) (float64, error) {
	return s.sumVerified("khoan_thu_id = ?", feeTypeID)
}

// TotalByDateRange sums verified amounts paid inside [from, to].
func (s *PaymentService) TotalByDateRange(from, to models.Date) (float64, error) {
	return s.sumVerified("ngay_nop BETWEEN ? AND ?", from, to)
}

// PercentVerified reports the verified share of all payments, 0 when
// no payments exist.
func (s *PaymentService) PercentVerified() (float64, error) {
	var total, verified int64
	if err := s.DB.Model(&models.Payment{}).Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	if err := s.DB.Model(&models.Payment{}).
		Where("da_xac_nhan = ?", true).Count(&verified).Error; err != nil {
		return 0, err
	}
	return float64(verified) * 100 / float64(total), nil
}

// GetStatistics aggregates payments under the filter. The household
// filter wins over the fee type filter; the date range is consulted
// only when neither ID filter is set.
func (s *PaymentService) GetStatistics(filter PaymentFilter) (*PaymentStatistics, error) {
	q := s.DB.Model(&models.Payment{})
	switch {
	case filter.HouseholdID != nil:
		q = q.Where("ho_khau_id = ?", *filter.HouseholdID)
	case filter.FeeTypeID != nil:
		q = q.Where("khoan_thu_id = ?", *filter.FeeTypeID)
	case filter.From != nil && filter.To != nil:
		q = q.Where("ngay_nop BETWEEN ? AND ?", *filter.From, *filter.To)
	}

	var payments []models.Payment
	if err := q.Find(&payments).Error; err != nil {
		return nil, err
	}

	stats := &PaymentStatistics{TotalPayments: int64(len(payments))}
	for _, p := range payments {
		if p.Verified {
			stats.VerifiedCount++
			stats.TotalAmount += p.AmountPaid
		} else {
			stats.UnverifiedCount++
		}
	}
	if stats.TotalPayments > 0 {
		stats.VerifiedPercentage = float64(stats.VerifiedCount) * 100 / float64(stats.TotalPayments)
	}
	return stats, nil
}
