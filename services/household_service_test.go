package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/apperr"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
)

type HouseholdServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	svc InterfaceHouseholdService
}

func (s *HouseholdServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewHouseholdService(s.db, testConfig())
}

func TestHouseholdServiceSuite(t *testing.T) {
	suite.Run(t, new(HouseholdServiceSuite))
}

func (s *HouseholdServiceSuite) TestCreateAndLookup() {
	s.Run("creates an active household", func() {
		h := &models.Household{
			HouseholdNumber: "HK001",
			HeadName:        "Nguyễn Văn An",
			Address:         "12 Trần Phú",
			Active:          false,
		}
		s.Require().NoError(s.svc.CreateHousehold(h))
		s.True(h.Active, "new households always start active")

		got, err := s.svc.GetHouseholdByNumber("HK001")
		s.Require().NoError(err)
		s.Equal(h.ID, got.ID)
		s.EqualValues(0, got.MemberCount)
	})

	s.Run("rejects a duplicate household number", func() {
		seedHousehold(s.T(), s.db, "HK002", "Trần Thị Bình")
		err := s.svc.CreateHousehold(&models.Household{
			HouseholdNumber: "HK002",
			HeadName:        "Lê Văn Cường",
			Address:         "3 Láng Hạ",
		})
		s.Require().True(apperr.IsConflict(err))
	})

	s.Run("missing household is not found", func() {
		_, err := s.svc.GetHouseholdByID(9999)
		s.Require().True(apperr.IsNotFound(err))
	})
}

func (s *HouseholdServiceSuite) TestListFiltersInactive() {
	seedHousehold(s.T(), s.db, "HK010", "A")
	inactive := seedHousehold(s.T(), s.db, "HK011", "B")
	inactive.Active = false
	s.Require().NoError(s.db.Save(inactive).Error)

	active, err := s.svc.GetAllHouseholds(false)
	s.Require().NoError(err)
	s.Len(active, 1)

	all, err := s.svc.GetAllHouseholds(true)
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *HouseholdServiceSuite) TestUpdateKeepsNumberUnique() {
	first := seedHousehold(s.T(), s.db, "HK020", "Nguyễn Văn An")
	second := seedHousehold(s.T(), s.db, "HK021", "Trần Thị Bình")

	s.Run("cannot take another household's number", func() {
		second.HouseholdNumber = first.HouseholdNumber
		_, err := s.svc.UpdateHousehold(second.ID, second)
		s.Require().True(apperr.IsConflict(err))
	})

	s.Run("keeping the own number is fine", func() {
		updated, err := s.svc.UpdateHousehold(first.ID, &models.Household{
			HouseholdNumber: "HK020",
			HeadName:        "Nguyễn Văn An",
			Address:         "45 Nguyễn Trãi",
			Active:          true,
		})
		s.Require().NoError(err)
		s.Equal("45 Nguyễn Trãi", updated.Address)
	})
}

// TestDeactivateThenDelete verifies the two-step removal: the first
// call only deactivates, the second permanently deletes.
func (s *HouseholdServiceSuite) TestDeactivateThenDelete() {
	h := seedHousehold(s.T(), s.db, "HK030", "Nguyễn Văn An")

	deleted, err := s.svc.DeactivateOrDelete(h.ID)
	s.Require().NoError(err)
	s.False(deleted)

	got, err := s.svc.GetHouseholdByID(h.ID)
	s.Require().NoError(err)
	s.False(got.Active)

	s.Require().NoError(s.svc.ActivateHousehold(h.ID))
	got, err = s.svc.GetHouseholdByID(h.ID)
	s.Require().NoError(err)
	s.True(got.Active)

	_, err = s.svc.DeactivateOrDelete(h.ID)
	s.Require().NoError(err)
	deleted, err = s.svc.DeactivateOrDelete(h.ID)
	s.Require().NoError(err)
	s.True(deleted)

	_, err = s.svc.GetHouseholdByID(h.ID)
	s.Require().True(apperr.IsNotFound(err))
}

func (s *HouseholdServiceSuite) TestMembership() {
	h := seedHousehold(s.T(), s.db, "HK040", "Nguyễn Văn An")
	other := seedHousehold(s.T(), s.db, "HK041", "Trần Thị Bình")
	r := seedResident(s.T(), s.db, "Nguyễn Thị Hoa", "001090012345", nil)

	s.Run("add attaches the resident and logs the change", func() {
		got, err := s.svc.AddMember(h.ID, r.ID, "Vợ", "Nhập khẩu theo chồng")
		s.Require().NoError(err)
		s.EqualValues(1, got.MemberCount)

		var reloaded models.Resident
		s.Require().NoError(s.db.First(&reloaded, r.ID).Error)
		s.Require().NotNil(reloaded.HouseholdID)
		s.Equal(h.ID, *reloaded.HouseholdID)
		s.Equal("Vợ", reloaded.RelationshipToHead)

		var entries []models.HouseholdHistory
		s.Require().NoError(s.db.Where("ho_khau_id = ?", h.ID).Find(&entries).Error)
		s.Require().Len(entries, 1)
		s.Equal(models.ChangeTypeMemberAdded, entries[0].ChangeType)
		s.Equal(r.ID, entries[0].ResidentID)
	})

	s.Run("adding twice to the same household conflicts", func() {
		_, err := s.svc.AddMember(h.ID, r.ID, "Vợ", "")
		s.Require().True(apperr.IsConflict(err))
	})

	s.Run("adding to a second household conflicts", func() {
		_, err := s.svc.AddMember(other.ID, r.ID, "Em", "")
		s.Require().True(apperr.IsConflict(err))
	})

	s.Run("remove detaches and logs the change", func() {
		got, err := s.svc.RemoveMember(h.ID, r.ID, "Chuyển đi nơi khác")
		s.Require().NoError(err)
		s.EqualValues(0, got.MemberCount)

		var reloaded models.Resident
		s.Require().NoError(s.db.First(&reloaded, r.ID).Error)
		s.Nil(reloaded.HouseholdID)
		s.Empty(reloaded.RelationshipToHead)

		var count int64
		s.Require().NoError(s.db.Model(&models.HouseholdHistory{}).
			Where("ho_khau_id = ? AND loai_thay_doi = ?", h.ID, models.ChangeTypeMemberRemoved).
			Count(&count).Error)
		s.EqualValues(1, count)
	})

	s.Run("removing a non-member conflicts", func() {
		_, err := s.svc.RemoveMember(h.ID, r.ID, "")
		s.Require().True(apperr.IsConflict(err))
	})
}

func (s *HouseholdServiceSuite) TestStatistics() {
	h := seedHousehold(s.T(), s.db, "HK050", "Nguyễn Văn An")
	fee := seedFee(s.T(), s.db, "Phí vệ sinh", 60000, models.Today())

	s.Require().NoError(s.db.Create(&models.Payment{
		HouseholdID: h.ID, FeeTypeID: fee.ID,
		PaymentDate: models.Today(), AmountDue: 60000, AmountPaid: 60000, Verified: true,
	}).Error)
	s.Require().NoError(s.db.Create(&models.Payment{
		HouseholdID: h.ID, FeeTypeID: fee.ID,
		PaymentDate: models.Today(), AmountDue: 60000, AmountPaid: 60000,
	}).Error)

	stats, err := s.svc.GetStatistics(h.ID)
	s.Require().NoError(err)
	s.EqualValues(2, stats.TotalPayments)
	s.EqualValues(1, stats.VerifiedCount)
	s.Equal(60000.0, stats.TotalPaid)
	s.Equal(50.0, stats.VerifiedPercentage)

	empty := seedHousehold(s.T(), s.db, "HK051", "Trần Thị Bình")
	stats, err = s.svc.GetStatistics(empty.ID)
	s.Require().NoError(err)
	s.EqualValues(0, stats.TotalPayments)
	s.Equal(0.0, stats.VerifiedPercentage)
}
