package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/config"
	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/apperr"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
)

// FeeStatistics summarizes the collection state of one fee type.
type FeeStatistics struct {
	TotalPayments      int64   `json:"totalPayments"`
	TotalCollected     float64 `json:"totalCollected"`
	VerifiedCount      int64   `json:"verifiedCount"`
	VerifiedPercentage float64 `json:"verifiedPercentage"`
}

// InterfaceFeeService manages fee types.
type InterfaceFeeService interface {
	GetAllFees(showAll bool) ([]models.FeeType, error)
	GetFeeByID(id uint) (*models.FeeType, error)
	SearchByName(name string) ([]models.FeeType, error)
	FindByMandatory(mandatory bool) ([]models.FeeType, error)
	FindByDueDateRange(from, to models.Date) ([]models.FeeType, error)
	FindOverdue() ([]models.FeeType, error)
	CreateFee(fee *models.FeeType) error
	UpdateFee(id uint, updates *models.FeeType) (*models.FeeType, error)
	DeactivateOrDelete(id uint) (deleted bool, err error)
	ActivateFee(id uint) error
	SetFeeStatus(id uint, active bool) error
	GetStatistics(id uint) (*FeeStatistics, error)
	PaidHouseholds(id uint) ([]models.Household, error)
}

// FeeService implements fee type operations over gorm.
type FeeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewFeeService creates a fee service.
func NewFeeService(db *gorm.DB, cfg *config.Config) InterfaceFeeService {
	return &FeeService{DB: db, Config: cfg}
}

// GetAllFees lists fee types, active only unless showAll is set.
func (s *FeeService) GetAllFees(showAll bool) ([]models.FeeType, error) {
	var fees []models.FeeType
	q := s.DB.Model(&models.FeeType{})
	if !showAll {
		q = q.Where("hoat_dong = ?", true)
	}
	if err := q.Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

func (s *FeeService) GetFeeByID(id uint) (*models.FeeType, error) {
	var fee models.FeeType
	if err := s.DB.First(&fee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Không tìm thấy khoản thu với ID: %d", id)
		}
		return nil, err
	}
	return &fee, nil
}

func (s *FeeService) SearchByName(name string) ([]models.FeeType, error) {
	var fees []models.FeeType
	if err := s.DB.Where("ten_khoan_thu LIKE ?", "%"+name+"%").Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

func (s *FeeService) FindByMandatory(mandatory bool) ([]models.FeeType, error) {
	var fees []models.FeeType
	if err := s.DB.Where("bat_buoc = ?", mandatory).Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

func (s *FeeService) FindByDueDateRange(from, to models.Date) ([]models.FeeType, error) {
	var fees []models.FeeType
	if err := s.DB.Where("thoi_han BETWEEN ? AND ?", from, to).Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

// FindOverdue lists active fee types whose due date has already passed.
func (s *FeeService) FindOverdue() ([]models.FeeType, error) {
	var fees []models.FeeType
	if err := s.DB.Where("hoat_dong = ? AND thoi_han < ?", true, models.Today()).
		Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

// CreateFee inserts a fee type. An amount below zero is rejected.
func (s *FeeService) CreateFee(fee *models.FeeType) error {
	if fee.Name == "" {
		return apperr.Validation("Tên khoản thu không được để trống")
	}
	if fee.Amount < 0 {
		return apperr.Validation("Số tiền khoản thu không được âm")
	}
	fee.Active = true
	return s.DB.Create(fee).Error
}

func (s *FeeService) UpdateFee(id uint, updates *models.FeeType) (*models.FeeType, error) {
	fee, err := s.GetFeeByID(id)
	if err != nil {
		return nil, err
	}
	if updates.Amount < 0 {
		return nil, apperr.Validation("Số tiền khoản thu không được âm")
	}

	if updates.Name != "" {
		fee.Name = updates.Name
	}
	fee.Mandatory = updates.Mandatory
	fee.Amount = updates.Amount
	fee.Note = updates.Note
	fee.Active = updates.Active
	if !updates.DueDate.IsZero() {
		fee.DueDate = updates.DueDate
	}

	if err := s.DB.Save(fee).Error; err != nil {
		return nil, err
	}
	return fee, nil
}

// DeactivateOrDelete deactivates an active fee type; an already
// inactive one is permanently removed.
func (s *FeeService) DeactivateOrDelete(id uint) (bool, error) {
	fee, err := s.GetFeeByID(id)
	if err != nil {
		return false, err
	}
	if fee.Active {
		fee.Active = false
		return false, s.DB.Save(fee).Error
	}
	return true, s.DB.Delete(fee).Error
}

func (s *FeeService) ActivateFee(id uint) error {
	fee, err := s.GetFeeByID(id)
	if err != nil {
		return err
	}
	fee.Active = true
	return s.DB.Save(fee).Error
}

// SetFeeStatus sets the active flag directly, never deleting the row.
func (s *FeeService) SetFeeStatus(id uint, active bool) error {
	fee, err := s.GetFeeByID(id)
	if err != nil {
		return err
	}
	fee.Active = active
	return s.DB.Save(fee).Error
}

// GetStatistics aggregates the payments recorded for a fee type.
// Verified payments alone contribute to the collected total.
func (s *FeeService) GetStatistics(id uint) (*FeeStatistics, error) {
	if _, err := s.GetFeeByID(id); err != nil {
		return nil, err
	}

	var payments []models.Payment
	if err := s.DB.Where("khoan_thu_id = ?", id).Find(&payments).Error; err != nil {
		return nil, err
	}

	stats := &FeeStatistics{TotalPayments: int64(len(payments))}
	for _, p := range payments {
		if p.Verified {
			stats.VerifiedCount++
			stats.TotalCollected += p.AmountPaid
		}
	}
	if stats.TotalPayments > 0 {
		stats.VerifiedPercentage = float64(stats.VerifiedCount) * 100 / float64(stats.TotalPayments)
	}
	return stats, nil
}

// PaidHouseholds lists the distinct households that already have a
// payment recorded for this fee type.
func (s *FeeService) PaidHouseholds(id uint) ([]models.Household, error) {
	if _, err := s.GetFeeByID(id); err != nil {
		return nil, err
	}

	var households []models.Household
	err := s.DB.
		Joins("JOIN nop_phi ON nop_phi.ho_khau_id = ho_khau.id").
		Where("nop_phi.khoan_thu_id = ?", id).
		Distinct("ho_khau.*").
		Find(&households).Error
	if err != nil {
		return nil, err
	}
	return households, nil
}
