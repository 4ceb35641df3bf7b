package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/config"
	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/apperr"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
)

// InterfaceTemporaryResidenceService manages temporary residence and
// temporary absence records.
type InterfaceTemporaryResidenceService interface {
	GetAllRecords() ([]models.TemporaryResidence, error)
	GetPage(page, pageSize int) ([]models.TemporaryResidence, *models.PaginationResult, error)
	GetRecordByID(id uint) (*models.TemporaryResidence, error)
	GetByResident(residentID uint) ([]models.TemporaryResidence, error)
	GetByStatus(status string) ([]models.TemporaryResidence, error)
	GetByDateRange(from, to models.Date) ([]models.TemporaryResidence, error)
	CreateRecord(record *models.TemporaryResidence) error
	UpdateRecord(id uint, updates *models.TemporaryResidence) (*models.TemporaryResidence, error)
	DeleteRecord(id uint) error
}

// TemporaryResidenceService implements the records over gorm.
type TemporaryResidenceService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewTemporaryResidenceService creates a temporary residence service.
func NewTemporaryResidenceService(db *gorm.DB, cfg *config.Config) InterfaceTemporaryResidenceService {
	return &TemporaryResidenceService{DB: db, Config: cfg}
}

// fillResidentNames resolves the display name for list responses.
func (s *TemporaryResidenceService) fillResidentNames(records []models.TemporaryResidence) error {
	for i := range records {
		var resident models.Resident
		if err := s.DB.Select("ho_ten").First(&resident, records[i].ResidentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		records[i].ResidentName = resident.FullName
	}
	return nil
}

func (s *TemporaryResidenceService) GetAllRecords() ([]models.TemporaryResidence, error) {
	var records []models.TemporaryResidence
	if err := s.DB.Order("thoi_gian DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	if err := s.fillResidentNames(records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetPage returns one page of records, newest first.
func (s *TemporaryResidenceService) GetPage(page, pageSize int) ([]models.TemporaryResidence, *models.PaginationResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	var total int64
	if err := s.DB.Model(&models.TemporaryResidence{}).Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var records []models.TemporaryResidence
	if err := s.DB.Order("thoi_gian DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error; err != nil {
		return nil, nil, err
	}
	if err := s.fillResidentNames(records); err != nil {
		return nil, nil, err
	}
	return records, models.NewPaginationResult(total, page, pageSize), nil
}

func (s *TemporaryResidenceService) GetRecordByID(id uint) (*models.TemporaryResidence, error) {
	var record models.TemporaryResidence
	if err := s.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Không tìm thấy bản ghi tạm trú tạm vắng với ID: %d", id)
		}
		return nil, err
	}
	records := []models.TemporaryResidence{record}
	if err := s.fillResidentNames(records); err != nil {
		return nil, err
	}
	return &records[0], nil
}

func (s *TemporaryResidenceService) GetByResident(residentID uint) ([]models.TemporaryResidence, error) {
	var records []models.TemporaryResidence
	if err := s.DB.Where("nhan_khau_id = ?", residentID).
		Order("thoi_gian DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	if err := s.fillResidentNames(records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *TemporaryResidenceService) GetByStatus(status string) ([]models.TemporaryResidence, error) {
	if !models.ValidResidenceStatus(status) {
		return nil, apperr.Validation("Trạng thái không hợp lệ: %s", status)
	}
	var records []models.TemporaryResidence
	if err := s.DB.Where("trang_thai = ?", status).
		Order("thoi_gian DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	if err := s.fillResidentNames(records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *TemporaryResidenceService) GetByDateRange(from, to models.Date) ([]models.TemporaryResidence, error) {
	var records []models.TemporaryResidence
	if err := s.DB.Where("thoi_gian BETWEEN ? AND ?", from, to).
		Order("thoi_gian DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	if err := s.fillResidentNames(records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateRecord inserts a temporary residence or absence declaration and
// appends the corresponding entry to the household history of the
// resident's current household, if any. Both writes are transactional.
func (s *TemporaryResidenceService) CreateRecord(record *models.TemporaryResidence) error {
	if !models.ValidResidenceStatus(record.Status) {
		return apperr.Validation("Trạng thái không hợp lệ: %s", record.Status)
	}
	if record.Address == "" {
		return apperr.Validation("Địa chỉ tạm trú tạm vắng không được để trống")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var resident models.Resident
		if err := tx.First(&resident, record.ResidentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Không tìm thấy nhân khẩu với ID: %d", record.ResidentID)
			}
			return err
		}

		if err := tx.Create(record).Error; err != nil {
			return err
		}

		if resident.HouseholdID != nil {
			changeType := models.ChangeTypeTemporaryResidence
			if record.Status == models.StatusTemporaryAbsence {
				changeType = models.ChangeTypeTemporaryAbsence
			}
			entry := models.HouseholdHistory{
				ChangeType:  changeType,
				Date:        record.Date,
				HouseholdID: *resident.HouseholdID,
				ResidentID:  resident.ID,
				Note:        record.Proposal,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateRecord rewrites address, proposal, date and status.
func (s *TemporaryResidenceService) UpdateRecord(id uint, updates *models.TemporaryResidence) (*models.TemporaryResidence, error) {
	record, err := s.GetRecordByID(id)
	if err != nil {
		return nil, err
	}

	if updates.Status != "" {
		if !models.ValidResidenceStatus(updates.Status) {
			return nil, apperr.Validation("Trạng thái không hợp lệ: %s", updates.Status)
		}
		record.Status = updates.Status
	}
	if updates.Address != "" {
		record.Address = updates.Address
	}
	if !updates.Date.IsZero() {
		record.Date = updates.Date
	}
	record.Proposal = updates.Proposal

	if err := s.DB.Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *TemporaryResidenceService) DeleteRecord(id uint) error {
	record, err := s.GetRecordByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(record).Error
}
