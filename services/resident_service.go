package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/config"
	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/apperr"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
)

// InterfaceResidentService manages resident records.
type InterfaceResidentService interface {
	GetAllResidents() ([]models.Resident, error)
	GetResidentByID(id uint) (*models.Resident, error)
	GetResidentByNationalID(nationalID string) (*models.Resident, error)
	GetResidentsByHousehold(householdID uint) ([]models.Resident, error)
	SearchByName(name string) ([]models.Resident, error)
	FindByBirthDateRange(from, to models.Date) ([]models.Resident, error)
	CreateResident(resident *models.Resident) error
	UpdateResident(id uint, updates map[string]interface{}) (*models.Resident, error)
	DeleteResident(id uint) error
}

// ResidentService implements resident operations over gorm.
type ResidentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewResidentService creates a resident service.
func NewResidentService(db *gorm.DB, cfg *config.Config) InterfaceResidentService {
	return &ResidentService{DB: db, Config: cfg}
}

func (s *ResidentService) GetAllResidents() ([]models.Resident, error) {
	var residents []models.Resident
	if err := s.DB.Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

func (s *ResidentService) GetResidentByID(id uint) (*models.Resident, error) {
	var resident models.Resident
	if err := s.DB.First(&resident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Không tìm thấy nhân khẩu với ID: %d", id)
		}
		return nil, err
	}
	return &resident, nil
}

// GetResidentByNationalID looks a resident up by citizen ID number.
func (s *ResidentService) GetResidentByNationalID(nationalID string) (*models.Resident, error) {
	var resident models.Resident
	if err := s.DB.Where("cccd = ?", nationalID).First(&resident).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Không tìm thấy nhân khẩu với CCCD: %s", nationalID)
		}
		return nil, err
	}
	return &resident, nil
}

func (s *ResidentService) GetResidentsByHousehold(householdID uint) ([]models.Resident, error) {
	var residents []models.Resident
	if err := s.DB.Where("ho_khau_id = ?", householdID).Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

func (s *ResidentService) SearchByName(name string) ([]models.Resident, error) {
	var residents []models.Resident
	if err := s.DB.Where("ho_ten LIKE ?", "%"+name+"%").Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

// FindByBirthDateRange lists residents born inside [from, to].
func (s *ResidentService) FindByBirthDateRange(from, to models.Date) ([]models.Resident, error) {
	var residents []models.Resident
	if err := s.DB.Where("ngay_sinh BETWEEN ? AND ?", from, to).Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

// CreateResident inserts a resident. The citizen ID, when provided,
// must be unique.
func (s *ResidentService) CreateResident(resident *models.Resident) error {
	if resident.FullName == "" {
		return apperr.Validation("Họ tên nhân khẩu không được để trống")
	}
	if resident.NationalID != "" {
		var count int64
		if err := s.DB.Model(&models.Resident{}).
			Where("cccd = ?", resident.NationalID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("CCCD %s đã tồn tại", resident.NationalID)
		}
	}
	if resident.HouseholdID != nil {
		var household models.Household
		if err := s.DB.First(&household, *resident.HouseholdID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Không tìm thấy hộ khẩu với ID: %d", *resident.HouseholdID)
			}
			return err
		}
	}
	return s.DB.Create(resident).Error
}

// UpdateResident applies a partial update. Only the provided keys
// change; a citizen ID change re-checks uniqueness against other rows.
func (s *ResidentService) UpdateResident(id uint, updates map[string]interface{}) (*models.Resident, error) {
	resident, err := s.GetResidentByID(id)
	if err != nil {
		return nil, err
	}

	if raw, ok := updates["cccd"]; ok {
		nationalID, _ := raw.(string)
		if nationalID != "" && nationalID != resident.NationalID {
			var count int64
			if err := s.DB.Model(&models.Resident{}).
				Where("cccd = ? AND id != ?", nationalID, id).
				Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, apperr.Conflict("CCCD %s đã tồn tại", nationalID)
			}
		}
	}

	if err := s.DB.Model(resident).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetResidentByID(id)
}

// DeleteResident removes a resident together with their history and
// temporary residence entries, so no row is left pointing at a
// resident that no longer exists. Everything runs in one transaction.
func (s *ResidentService) DeleteResident(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var resident models.Resident
		if err := tx.First(&resident, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Không tìm thấy nhân khẩu với ID: %d", id)
			}
			return err
		}

		if err := tx.Where("nhan_khau_id = ?", id).Delete(&models.HouseholdHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("nhan_khau_id = ?", id).Delete(&models.TemporaryResidence{}).Error; err != nil {
			return err
		}
		return tx.Delete(&resident).Error
	})
}
