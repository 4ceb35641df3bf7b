package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/apperr"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
)

type HouseholdHistorySuite struct {
	suite.Suite
	db  *gorm.DB
	svc InterfaceHouseholdHistoryService

	household *models.Household
	resident  *models.Resident
}

func (s *HouseholdHistorySuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewHouseholdHistoryService(s.db, testConfig())
	s.household = seedHousehold(s.T(), s.db, "HK400", "Nguyễn Văn An")
	s.resident = seedResident(s.T(), s.db, "Nguyễn Thị Hoa", "001090000400", uintPtr(s.household.ID))
}

func TestHouseholdHistorySuite(t *testing.T) {
	suite.Run(t, new(HouseholdHistorySuite))
}

func (s *HouseholdHistorySuite) entry(changeType string, date models.Date) *models.HouseholdHistory {
	return &models.HouseholdHistory{
		ChangeType:  changeType,
		Date:        date,
		HouseholdID: s.household.ID,
		ResidentID:  s.resident.ID,
	}
}

func (s *HouseholdHistorySuite) TestCreateValidation() {
	s.Run("rejects an unknown change type", func() {
		err := s.svc.CreateEntry(s.entry("CHUYEN_NHA", models.Today()))
		s.Require().True(apperr.IsValidation(err))
	})

	s.Run("rejects a missing household", func() {
		e := s.entry(models.ChangeTypeMemberAdded, models.Today())
		e.HouseholdID = 9999
		s.Require().True(apperr.IsNotFound(s.svc.CreateEntry(e)))
	})

	s.Run("rejects a missing resident", func() {
		e := s.entry(models.ChangeTypeMemberAdded, models.Today())
		e.ResidentID = 9999
		s.Require().True(apperr.IsNotFound(s.svc.CreateEntry(e)))
	})

	s.Run("defaults the change date", func() {
		e := s.entry(models.ChangeTypeMemberAdded, models.Date{})
		s.Require().NoError(s.svc.CreateEntry(e))
		s.Equal(models.Today(), e.Date)
	})
}

func (s *HouseholdHistorySuite) TestQueriesNewestFirst() {
	older := s.entry(models.ChangeTypeMemberAdded, models.NewDate(2025, time.January, 5))
	s.Require().NoError(s.svc.CreateEntry(older))
	newer := s.entry(models.ChangeTypeTemporaryAbsence, models.NewDate(2025, time.March, 9))
	s.Require().NoError(s.svc.CreateEntry(newer))

	s.Run("all entries, newest first", func() {
		entries, err := s.svc.GetAllEntries()
		s.Require().NoError(err)
		s.Require().Len(entries, 2)
		s.Equal(newer.ID, entries[0].ID)
	})

	s.Run("by household and by resident", func() {
		entries, err := s.svc.GetByHousehold(s.household.ID)
		s.Require().NoError(err)
		s.Len(entries, 2)

		entries, err = s.svc.GetByResident(s.resident.ID)
		s.Require().NoError(err)
		s.Len(entries, 2)
	})

	s.Run("by change type", func() {
		entries, err := s.svc.GetByChangeType(models.ChangeTypeTemporaryAbsence)
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		s.Equal(newer.ID, entries[0].ID)

		_, err = s.svc.GetByChangeType("KHONG_TON_TAI")
		s.Require().True(apperr.IsValidation(err))
	})

	s.Run("by date range", func() {
		entries, err := s.svc.GetByDateRange(
			models.NewDate(2025, time.January, 1),
			models.NewDate(2025, time.January, 31),
		)
		s.Require().NoError(err)
		s.Require().Len(entries, 1)
		s.Equal(older.ID, entries[0].ID)
	})
}

func (s *HouseholdHistorySuite) TestDelete() {
	e := s.entry(models.ChangeTypeMemberAdded, models.Today())
	s.Require().NoError(s.svc.CreateEntry(e))
	s.Require().NoError(s.svc.DeleteEntry(e.ID))
	_, err := s.svc.GetEntryByID(e.ID)
	s.Require().True(apperr.IsNotFound(err))
}
