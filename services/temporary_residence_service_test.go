package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/apperr"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
)

type TemporaryResidenceSuite struct {
	suite.Suite
	db  *gorm.DB
	svc InterfaceTemporaryResidenceService

	household *models.Household
	resident  *models.Resident
}

func (s *TemporaryResidenceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewTemporaryResidenceService(s.db, testConfig())
	s.household = seedHousehold(s.T(), s.db, "HK500", "Nguyễn Văn An")
	s.resident = seedResident(s.T(), s.db, "Nguyễn Thị Hoa", "001090000500", uintPtr(s.household.ID))
}

func TestTemporaryResidenceSuite(t *testing.T) {
	suite.Run(t, new(TemporaryResidenceSuite))
}

func (s *TemporaryResidenceSuite) TestCreateValidation() {
	s.Run("rejects an unknown status", func() {
		err := s.svc.CreateRecord(&models.TemporaryResidence{
			Status:     "DI_VANG",
			Address:    "5 Hàng Bài",
			ResidentID: s.resident.ID,
		})
		s.Require().True(apperr.IsValidation(err))
	})

	s.Run("requires an address", func() {
		err := s.svc.CreateRecord(&models.TemporaryResidence{
			Status:     models.StatusTemporaryResidence,
			ResidentID: s.resident.ID,
		})
		s.Require().True(apperr.IsValidation(err))
	})

	s.Run("rejects an unknown resident", func() {
		err := s.svc.CreateRecord(&models.TemporaryResidence{
			Status:     models.StatusTemporaryResidence,
			Address:    "5 Hàng Bài",
			ResidentID: 9999,
		})
		s.Require().True(apperr.IsNotFound(err))
	})
}

// TestCreateWritesHistory verifies a declaration for a household member
// also lands in the household change log, with the matching change type.
func (s *TemporaryResidenceSuite) TestCreateWritesHistory() {
	record := &models.TemporaryResidence{
		Status:     models.StatusTemporaryAbsence,
		Address:    "Thôn 3, Xã Phú Minh, Sóc Sơn",
		Date:       models.NewDate(2025, time.April, 10),
		Proposal:   "Về quê chăm sóc bố mẹ",
		ResidentID: s.resident.ID,
	}
	s.Require().NoError(s.svc.CreateRecord(record))

	var entries []models.HouseholdHistory
	s.Require().NoError(s.db.Where("nhan_khau_id = ?", s.resident.ID).Find(&entries).Error)
	s.Require().Len(entries, 1)
	s.Equal(models.ChangeTypeTemporaryAbsence, entries[0].ChangeType)
	s.Equal(s.household.ID, entries[0].HouseholdID)
	s.Equal("Về quê chăm sóc bố mẹ", entries[0].Note)
	s.True(entries[0].Date.Equal(record.Date.Time))
}

func (s *TemporaryResidenceSuite) TestCreateWithoutHouseholdSkipsHistory() {
	loner := seedResident(s.T(), s.db, "Trần Văn Bách", "001090000501", nil)
	s.Require().NoError(s.svc.CreateRecord(&models.TemporaryResidence{
		Status:     models.StatusTemporaryResidence,
		Address:    "5 Hàng Bài",
		ResidentID: loner.ID,
	}))

	var count int64
	s.Require().NoError(s.db.Model(&models.HouseholdHistory{}).Count(&count).Error)
	s.EqualValues(0, count)
}

func (s *TemporaryResidenceSuite) TestQueries() {
	s.Require().NoError(s.svc.CreateRecord(&models.TemporaryResidence{
		Status:     models.StatusTemporaryResidence,
		Address:    "5 Hàng Bài",
		Date:       models.NewDate(2025, time.February, 1),
		ResidentID: s.resident.ID,
	}))
	s.Require().NoError(s.svc.CreateRecord(&models.TemporaryResidence{
		Status:     models.StatusTemporaryAbsence,
		Address:    "Thôn 3, Sóc Sơn",
		Date:       models.NewDate(2025, time.May, 20),
		ResidentID: s.resident.ID,
	}))

	byStatus, err := s.svc.GetByStatus(models.StatusTemporaryAbsence)
	s.Require().NoError(err)
	s.Require().Len(byStatus, 1)
	s.Equal("Nguyễn Thị Hoa", byStatus[0].ResidentName)

	byResident, err := s.svc.GetByResident(s.resident.ID)
	s.Require().NoError(err)
	s.Len(byResident, 2)

	inRange, err := s.svc.GetByDateRange(
		models.NewDate(2025, time.January, 1),
		models.NewDate(2025, time.March, 1),
	)
	s.Require().NoError(err)
	s.Len(inRange, 1)
}

func (s *TemporaryResidenceSuite) TestPagination() {
	for i := 0; i < 12; i++ {
		s.Require().NoError(s.svc.CreateRecord(&models.TemporaryResidence{
			Status:     models.StatusTemporaryResidence,
			Address:    fmt.Sprintf("Số %d Hàng Bài", i+1),
			Date:       models.NewDate(2025, time.January, i+1),
			ResidentID: s.resident.ID,
		}))
	}

	s.Run("clamps page and page size", func() {
		records, page, err := s.svc.GetPage(0, 0)
		s.Require().NoError(err)
		s.Len(records, 10)
		s.EqualValues(12, page.Total)
		s.Equal(1, page.Page)
		s.Equal(10, page.PageSize)
	})

	s.Run("second page holds the remainder", func() {
		records, page, err := s.svc.GetPage(2, 10)
		s.Require().NoError(err)
		s.Len(records, 2)
		s.EqualValues(12, page.Total)
	})
}

func (s *TemporaryResidenceSuite) TestUpdateAndDelete() {
	record := &models.TemporaryResidence{
		Status:     models.StatusTemporaryResidence,
		Address:    "5 Hàng Bài",
		ResidentID: s.resident.ID,
	}
	s.Require().NoError(s.svc.CreateRecord(record))

	updated, err := s.svc.UpdateRecord(record.ID, &models.TemporaryResidence{
		Status:   models.StatusTemporaryAbsence,
		Address:  "Thôn 3, Sóc Sơn",
		Proposal: "Đổi nơi tạm vắng",
	})
	s.Require().NoError(err)
	s.Equal(models.StatusTemporaryAbsence, updated.Status)
	s.Equal("Thôn 3, Sóc Sơn", updated.Address)

	s.Require().NoError(s.svc.DeleteRecord(record.ID))
	_, err = s.svc.GetRecordByID(record.ID)
	s.Require().True(apperr.IsNotFound(err))
}
