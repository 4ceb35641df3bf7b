package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/config"
	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/apperr"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
)

// HouseholdStatistics summarizes a household's payment status.
type HouseholdStatistics struct {
	TotalPayments      int64   `json:"totalPayments"`
	TotalPaid          float64 `json:"totalPaid"`
	VerifiedCount      int64   `json:"verifiedCount"`
	VerifiedPercentage float64 `json:"verifiedPercentage"`
}

// InterfaceHouseholdService manages households and their membership.
type InterfaceHouseholdService interface {
	GetAllHouseholds(showAll bool) ([]models.Household, error)
	GetHouseholdByID(id uint) (*models.Household, error)
	GetHouseholdByNumber(number string) (*models.Household, error)
	SearchByHeadName(headName string) ([]models.Household, error)
	SearchByAddress(address string) ([]models.Household, error)
	CreateHousehold(household *models.Household) error
	UpdateHousehold(id uint, updates *models.Household) (*models.Household, error)
	DeactivateOrDelete(id uint) (deleted bool, err error)
	ActivateHousehold(id uint) error
	MemberCount(id uint) (int64, error)
	GetMembers(householdID uint) ([]models.Resident, error)
	AddMember(householdID, residentID uint, relationship, note string) (*models.Household, error)
	RemoveMember(householdID, residentID uint, note string) (*models.Household, error)
	GetStatistics(id uint) (*HouseholdStatistics, error)
}

// HouseholdService implements household operations over gorm.
type HouseholdService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewHouseholdService creates a household service.
func NewHouseholdService(db *gorm.DB, cfg *config.Config) InterfaceHouseholdService {
	return &HouseholdService{DB: db, Config: cfg}
}

// GetAllHouseholds lists households, active only unless showAll is set.
// The derived member count is attached to every row.
func (s *HouseholdService) GetAllHouseholds(showAll bool) ([]models.Household, error) {
	var households []models.Household
	q := s.DB.Model(&models.Household{})
	if !showAll {
		q = q.Where("hoat_dong = ?", true)
	}
	if err := q.Find(&households).Error; err != nil {
		return nil, err
	}
	for i := range households {
		count, err := s.MemberCount(households[i].ID)
		if err != nil {
			return nil, err
		}
		households[i].MemberCount = count
	}
	return households, nil
}

// GetHouseholdByID fetches one household with its derived member count.
func (s *HouseholdService) GetHouseholdByID(id uint) (*models.Household, error) {
	var household models.Household
	if err := s.DB.First(&household, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Không tìm thấy hộ khẩu với ID: %d", id)
		}
		return nil, err
	}
	count, err := s.MemberCount(id)
	if err != nil {
		return nil, err
	}
	household.MemberCount = count
	return &household, nil
}

// GetHouseholdByNumber fetches a household by its unique number.
func (s *HouseholdService) GetHouseholdByNumber(number string) (*models.Household, error) {
	var household models.Household
	if err := s.DB.Where("so_ho_khau = ?", number).First(&household).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Không tìm thấy hộ khẩu với số hộ khẩu: %s", number)
		}
		return nil, err
	}
	count, err := s.MemberCount(household.ID)
	if err != nil {
		return nil, err
	}
	household.MemberCount = count
	return &household, nil
}

// SearchByHeadName finds households whose head name contains the term.
func (s *HouseholdService) SearchByHeadName(headName string) ([]models.Household, error) {
	var households []models.Household
	if err := s.DB.Where("chu_ho LIKE ?", "%"+headName+"%").Find(&households).Error; err != nil {
		return nil, err
	}
	return households, nil
}

// SearchByAddress finds households whose address contains the term.
func (s *HouseholdService) SearchByAddress(address string) ([]models.Household, error) {
	var households []models.Household
	if err := s.DB.Where("address LIKE ?", "%"+address+"%").Find(&households).Error; err != nil {
		return nil, err
	}
	return households, nil
}

// CreateHousehold inserts a new, active household. The household number
// must be unique across active and inactive households.
func (s *HouseholdService) CreateHousehold(household *models.Household) error {
	var count int64
	if err := s.DB.Model(&models.Household{}).
		Where("so_ho_khau = ?", household.HouseholdNumber).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Số hộ khẩu %s đã tồn tại", household.HouseholdNumber)
	}

	household.Active = true
	household.MemberCount = 0
	return s.DB.Create(household).Error
}

// UpdateHousehold overwrites the editable fields, re-checking number
// uniqueness against other rows.
func (s *HouseholdService) UpdateHousehold(id uint, updates *models.Household) (*models.Household, error) {
	household, err := s.GetHouseholdByID(id)
	if err != nil {
		return nil, err
	}

	if updates.HouseholdNumber != "" && updates.HouseholdNumber != household.HouseholdNumber {
		var count int64
		if err := s.DB.Model(&models.Household{}).
			Where("so_ho_khau = ? AND id != ?", updates.HouseholdNumber, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Conflict("Số hộ khẩu %s đã tồn tại", updates.HouseholdNumber)
		}
		household.HouseholdNumber = updates.HouseholdNumber
	}

	household.HeadName = updates.HeadName
	household.Address = updates.Address
	household.HouseNumber = updates.HouseNumber
	household.Street = updates.Street
	household.Ward = updates.Ward
	household.District = updates.District
	household.Phone = updates.Phone
	household.Email = updates.Email
	household.Active = updates.Active
	if !updates.RegistrationDate.IsZero() {
		household.RegistrationDate = updates.RegistrationDate
	}

	if err := s.DB.Save(household).Error; err != nil {
		return nil, err
	}
	return s.GetHouseholdByID(id)
}

// DeactivateOrDelete deactivates an active household; an already
// inactive household is permanently removed instead.
func (s *HouseholdService) DeactivateOrDelete(id uint) (bool, error) {
	household, err := s.GetHouseholdByID(id)
	if err != nil {
		return false, err
	}

	if household.Active {
		household.Active = false
		return false, s.DB.Save(household).Error
	}
	return true, s.DB.Delete(household).Error
}

// ActivateHousehold turns an inactive household back on.
func (s *HouseholdService) ActivateHousehold(id uint) error {
	household, err := s.GetHouseholdByID(id)
	if err != nil {
		return err
	}
	household.Active = true
	return s.DB.Save(household).Error
}

// MemberCount derives the member count from the residents table.
func (s *HouseholdService) MemberCount(id uint) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Resident{}).Where("ho_khau_id = ?", id).Count(&count).Error
	return count, err
}

// GetMembers lists the residents currently attached to the household.
func (s *HouseholdService) GetMembers(householdID uint) ([]models.Resident, error) {
	if _, err := s.GetHouseholdByID(householdID); err != nil {
		return nil, err
	}
	var residents []models.Resident
	if err := s.DB.Where("ho_khau_id = ?", householdID).Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

// AddMember attaches a resident to the household and appends the
// member-added history entry. Both writes commit in one transaction.
// A resident already belonging to another household is rejected.
func (s *HouseholdService) AddMember(householdID, residentID uint, relationship, note string) (*models.Household, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var household models.Household
		if err := tx.First(&household, householdID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Không tìm thấy hộ khẩu với ID: %d", householdID)
			}
			return err
		}

		var resident models.Resident
		if err := tx.First(&resident, residentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Không tìm thấy nhân khẩu với ID: %d", residentID)
			}
			return err
		}

		if resident.HouseholdID != nil {
			if *resident.HouseholdID == householdID {
				return apperr.Conflict("Nhân khẩu đã thuộc hộ khẩu này")
			}
			return apperr.Conflict("Nhân khẩu đã thuộc hộ khẩu khác, hãy xóa khỏi hộ khẩu cũ trước")
		}

		resident.HouseholdID = &householdID
		resident.RelationshipToHead = relationship
		if err := tx.Save(&resident).Error; err != nil {
			return err
		}

		entry := models.HouseholdHistory{
			ChangeType:  models.ChangeTypeMemberAdded,
			HouseholdID: householdID,
			ResidentID:  residentID,
			Note:        note,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetHouseholdByID(householdID)
}

// RemoveMember detaches a resident from the household and appends the
// member-removed history entry, atomically. The resident must currently
// belong to this household.
func (s *HouseholdService) RemoveMember(householdID, residentID uint, note string) (*models.Household, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var household models.Household
		if err := tx.First(&household, householdID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Không tìm thấy hộ khẩu với ID: %d", householdID)
			}
			return err
		}

		var resident models.Resident
		if err := tx.First(&resident, residentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Không tìm thấy nhân khẩu với ID: %d", residentID)
			}
			return err
		}

		if resident.HouseholdID == nil || *resident.HouseholdID != householdID {
			return apperr.Conflict("Nhân khẩu không thuộc hộ khẩu này")
		}

		resident.HouseholdID = nil
		resident.RelationshipToHead = ""
		if err := tx.Save(&resident).Error; err != nil {
			return err
		}

		entry := models.HouseholdHistory{
			ChangeType:  models.ChangeTypeMemberRemoved,
			HouseholdID: householdID,
			ResidentID:  residentID,
			Note:        note,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetHouseholdByID(householdID)
}

// GetStatistics aggregates the household's payments. Only verified
// payments contribute to the paid total; the verified percentage is 0
// when there are no payments at all.
func (s *HouseholdService) GetStatistics(id uint) (*HouseholdStatistics, error) {
	if _, err := s.GetHouseholdByID(id); err != nil {
		return nil, err
	}

	var payments []models.Payment
	if err := s.DB.Where("ho_khau_id = ?", id).Find(&payments).Error; err != nil {
		return nil, err
	}

	stats := &HouseholdStatistics{TotalPayments: int64(len(payments))}
	for _, p := range payments {
		if p.Verified {
			stats.VerifiedCount++
			stats.TotalPaid += p.AmountPaid
		}
	}
	if stats.TotalPayments > 0 {
		stats.VerifiedPercentage = float64(stats.VerifiedCount) * 100 / float64(stats.TotalPayments)
	}
	return stats, nil
}
