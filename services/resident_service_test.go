package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/apperr"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
)

type ResidentServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	svc InterfaceResidentService
}

func (s *ResidentServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewResidentService(s.db, testConfig())
}

func TestResidentServiceSuite(t *testing.T) {
	suite.Run(t, new(ResidentServiceSuite))
}

func (s *ResidentServiceSuite) TestCreateValidation() {
	s.Run("requires a name", func() {
		err := s.svc.CreateResident(&models.Resident{
			BirthDate: models.NewDate(1990, time.March, 15),
			Gender:    "Nam",
		})
		s.Require().True(apperr.IsValidation(err))
	})

	s.Run("rejects a duplicate citizen ID", func() {
		seedResident(s.T(), s.db, "Nguyễn Văn An", "001090000001", nil)
		err := s.svc.CreateResident(&models.Resident{
			FullName:   "Trần Thị Bình",
			BirthDate:  models.NewDate(1985, time.June, 1),
			Gender:     "Nữ",
			NationalID: "001090000001",
		})
		s.Require().True(apperr.IsConflict(err))
	})

	s.Run("rejects an unknown household", func() {
		err := s.svc.CreateResident(&models.Resident{
			FullName:    "Lê Văn Cường",
			BirthDate:   models.NewDate(2000, time.January, 20),
			Gender:      "Nam",
			HouseholdID: uintPtr(9999),
		})
		s.Require().True(apperr.IsNotFound(err))
	})

	s.Run("defaults the registration date", func() {
		r := &models.Resident{
			FullName:  "Phạm Thị Dung",
			BirthDate: models.NewDate(1995, time.May, 5),
			Gender:    "Nữ",
		}
		s.Require().NoError(s.svc.CreateResident(r))
		s.Equal(models.Today(), r.RegisteredDate)
	})
}

func (s *ResidentServiceSuite) TestLookupsAndSearch() {
	h := seedHousehold(s.T(), s.db, "HK100", "Nguyễn Văn An")
	seedResident(s.T(), s.db, "Nguyễn Văn An", "001090000010", uintPtr(h.ID))
	seedResident(s.T(), s.db, "Nguyễn Thị Hoa", "001090000011", uintPtr(h.ID))
	outsider := seedResident(s.T(), s.db, "Trần Văn Bách", "001090000012", nil)

	members, err := s.svc.GetResidentsByHousehold(h.ID)
	s.Require().NoError(err)
	s.Len(members, 2)

	byID, err := s.svc.GetResidentByNationalID("001090000012")
	s.Require().NoError(err)
	s.Equal(outsider.ID, byID.ID)

	_, err = s.svc.GetResidentByNationalID("999999999999")
	s.Require().True(apperr.IsNotFound(err))

	found, err := s.svc.SearchByName("Nguyễn")
	s.Require().NoError(err)
	s.Len(found, 2)
}

func (s *ResidentServiceSuite) TestFindByBirthDateRange() {
	old := seedResident(s.T(), s.db, "Cụ Tổ", "001090000020", nil)
	old.BirthDate = models.NewDate(1940, time.February, 2)
	s.Require().NoError(s.db.Save(old).Error)
	seedResident(s.T(), s.db, "Người Trẻ", "001090000021", nil)

	found, err := s.svc.FindByBirthDateRange(
		models.NewDate(1930, time.January, 1),
		models.NewDate(1950, time.December, 31),
	)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(old.ID, found[0].ID)
}

func (s *ResidentServiceSuite) TestPartialUpdate() {
	r := seedResident(s.T(), s.db, "Nguyễn Văn An", "001090000030", nil)
	other := seedResident(s.T(), s.db, "Trần Thị Bình", "001090000031", nil)

	s.Run("changes only the given columns", func() {
		updated, err := s.svc.UpdateResident(r.ID, map[string]interface{}{
			"nghe_nghiep": "Giáo viên",
		})
		s.Require().NoError(err)
		s.Equal("Giáo viên", updated.Occupation)
		s.Equal("Nguyễn Văn An", updated.FullName)
	})

	s.Run("citizen ID change checks other rows", func() {
		_, err := s.svc.UpdateResident(r.ID, map[string]interface{}{
			"cccd": other.NationalID,
		})
		s.Require().True(apperr.IsConflict(err))
	})

	s.Run("keeping the own citizen ID is fine", func() {
		_, err := s.svc.UpdateResident(r.ID, map[string]interface{}{
			"cccd": "001090000030",
		})
		s.Require().NoError(err)
	})
}

// TestDeleteCleansUp verifies deletion removes the resident and their
// temporary residence records while keeping the household log as an
// audit trail.
func (s *ResidentServiceSuite) TestDeleteCleansUp() {
	h := seedHousehold(s.T(), s.db, "HK110", "Nguyễn Văn An")
	r := seedResident(s.T(), s.db, "Nguyễn Thị Hoa", "001090000040", uintPtr(h.ID))
	s.Require().NoError(s.db.Create(&models.HouseholdHistory{
		ChangeType:  models.ChangeTypeMemberAdded,
		HouseholdID: h.ID,
		ResidentID:  r.ID,
		Date:        models.Today(),
	}).Error)
	s.Require().NoError(s.db.Create(&models.TemporaryResidence{
		Status:     models.StatusTemporaryResidence,
		Address:    "5 Hàng Bài, Hoàn Kiếm",
		Date:       models.Today(),
		ResidentID: r.ID,
	}).Error)

	s.Require().NoError(s.svc.DeleteResident(r.ID))

	_, err := s.svc.GetResidentByID(r.ID)
	s.Require().True(apperr.IsNotFound(err))

	var tempCount int64
	s.Require().NoError(s.db.Model(&models.TemporaryResidence{}).
		Where("nhan_khau_id = ?", r.ID).Count(&tempCount).Error)
	s.EqualValues(0, tempCount)

	var historyCount int64
	s.Require().NoError(s.db.Model(&models.HouseholdHistory{}).
		Where("nhan_khau_id = ?", r.ID).Count(&historyCount).Error)
	s.EqualValues(0, historyCount)

	s.Require().True(apperr.IsNotFound(s.svc.DeleteResident(r.ID)))
}
