package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/config"
	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/apperr"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
)

// InterfaceHouseholdHistoryService exposes the household change log.
type InterfaceHouseholdHistoryService interface {
	GetAllEntries() ([]models.HouseholdHistory, error)
	GetEntryByID(id uint) (*models.HouseholdHistory, error)
	GetByHousehold(householdID uint) ([]models.HouseholdHistory, error)
	GetByResident(residentID uint) ([]models.HouseholdHistory, error)
	GetByChangeType(changeType string) ([]models.HouseholdHistory, error)
	GetByDateRange(from, to models.Date) ([]models.HouseholdHistory, error)
	CreateEntry(entry *models.HouseholdHistory) error
	DeleteEntry(id uint) error
}

// HouseholdHistoryService implements the change log over gorm.
type HouseholdHistoryService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewHouseholdHistoryService creates a history service.
func NewHouseholdHistoryService(db *gorm.DB, cfg *config.Config) InterfaceHouseholdHistoryService {
	return &HouseholdHistoryService{DB: db, Config: cfg}
}

func (s *HouseholdHistoryService) GetAllEntries() ([]models.HouseholdHistory, error) {
	var entries []models.HouseholdHistory
	if err := s.DB.Order("thoi_gian DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *HouseholdHistoryService) GetEntryByID(id uint) (*models.HouseholdHistory, error) {
	var entry models.HouseholdHistory
	if err := s.DB.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Không tìm thấy bản ghi lịch sử với ID: %d", id)
		}
		return nil, err
	}
	return &entry, nil
}

func (s *HouseholdHistoryService) GetByHousehold(householdID uint) ([]models.HouseholdHistory, error) {
	var entries []models.HouseholdHistory
	if err := s.DB.Where("ho_khau_id = ?", householdID).
		Order("thoi_gian DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *HouseholdHistoryService) GetByResident(residentID uint) ([]models.HouseholdHistory, error) {
	var entries []models.HouseholdHistory
	if err := s.DB.Where("nhan_khau_id = ?", residentID).
		Order("thoi_gian DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *HouseholdHistoryService) GetByChangeType(changeType string) ([]models.HouseholdHistory, error) {
	if !models.ValidChangeType(changeType) {
		return nil, apperr.Validation("Loại thay đổi không hợp lệ: %s", changeType)
	}
	var entries []models.HouseholdHistory
	if err := s.DB.Where("loai_thay_doi = ?", changeType).
		Order("thoi_gian DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *HouseholdHistoryService) GetByDateRange(from, to models.Date) ([]models.HouseholdHistory, error) {
	var entries []models.HouseholdHistory
	if err := s.DB.Where("thoi_gian BETWEEN ? AND ?", from, to).
		Order("thoi_gian DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateEntry records a manual history entry. The change type must be
// one of the known kinds and both referenced records must exist.
func (s *HouseholdHistoryService) CreateEntry(entry *models.HouseholdHistory) error {
	if !models.ValidChangeType(entry.ChangeType) {
		return apperr.Validation("Loại thay đổi không hợp lệ: %s", entry.ChangeType)
	}
	var household models.Household
	if err := s.DB.First(&household, entry.HouseholdID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Không tìm thấy hộ khẩu với ID: %d", entry.HouseholdID)
		}
		return err
	}
	var resident models.Resident
	if err := s.DB.First(&resident, entry.ResidentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Không tìm thấy nhân khẩu với ID: %d", entry.ResidentID)
		}
		return err
	}
	return s.DB.Create(entry).Error
}

func (s *HouseholdHistoryService) DeleteEntry(id uint) error {
	entry, err := s.GetEntryByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(entry).Error
}
