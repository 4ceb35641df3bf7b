package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/apperr"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
)

type FeeServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	svc InterfaceFeeService
}

func (s *FeeServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewFeeService(s.db, testConfig())
}

func TestFeeServiceSuite(t *testing.T) {
	suite.Run(t, new(FeeServiceSuite))
}

func (s *FeeServiceSuite) TestCreateValidation() {
	s.Run("requires a name", func() {
		err := s.svc.CreateFee(&models.FeeType{Amount: 50000, DueDate: models.Today()})
		s.Require().True(apperr.IsValidation(err))
	})

	s.Run("rejects a negative amount", func() {
		err := s.svc.CreateFee(&models.FeeType{
			Name: "Phí vệ sinh", Amount: -1, DueDate: models.Today(),
		})
		s.Require().True(apperr.IsValidation(err))
	})

	s.Run("starts active with a creation date", func() {
		fee := &models.FeeType{
			Name: "Phí bảo trì", Amount: 100000, DueDate: models.Today(),
		}
		s.Require().NoError(s.svc.CreateFee(fee))
		s.True(fee.Active)
		s.Equal(models.Today(), fee.CreatedDate)
	})
}

func (s *FeeServiceSuite) TestQueries() {
	sanitation := seedFee(s.T(), s.db, "Phí vệ sinh", 60000, models.NewDate(2025, time.June, 30))
	seedFee(s.T(), s.db, "Phí bảo trì", 150000, models.NewDate(2099, time.December, 31))
	voluntary := seedFee(s.T(), s.db, "Quỹ khuyến học", 0, models.NewDate(2099, time.December, 31))
	voluntary.Mandatory = false
	s.Require().NoError(s.db.Save(voluntary).Error)

	s.Run("search by name", func() {
		found, err := s.svc.SearchByName("Phí")
		s.Require().NoError(err)
		s.Len(found, 2)
	})

	s.Run("filter by mandatory flag", func() {
		found, err := s.svc.FindByMandatory(false)
		s.Require().NoError(err)
		s.Require().Len(found, 1)
		s.Equal(voluntary.ID, found[0].ID)
	})

	s.Run("due date range", func() {
		found, err := s.svc.FindByDueDateRange(
			models.NewDate(2025, time.January, 1),
			models.NewDate(2025, time.December, 31),
		)
		s.Require().NoError(err)
		s.Require().Len(found, 1)
		s.Equal(sanitation.ID, found[0].ID)
	})

	s.Run("overdue lists active past-due fees only", func() {
		found, err := s.svc.FindOverdue()
		s.Require().NoError(err)
		s.Require().Len(found, 1)
		s.Equal(sanitation.ID, found[0].ID)

		sanitation.Active = false
		s.Require().NoError(s.db.Save(sanitation).Error)
		found, err = s.svc.FindOverdue()
		s.Require().NoError(err)
		s.Empty(found)
	})
}

func (s *FeeServiceSuite) TestDeactivateThenDelete() {
	fee := seedFee(s.T(), s.db, "Phí gửi xe", 70000, models.Today())

	deleted, err := s.svc.DeactivateOrDelete(fee.ID)
	s.Require().NoError(err)
	s.False(deleted)

	active, err := s.svc.GetAllFees(false)
	s.Require().NoError(err)
	s.Empty(active)

	s.Require().NoError(s.svc.ActivateFee(fee.ID))
	active, err = s.svc.GetAllFees(false)
	s.Require().NoError(err)
	s.Len(active, 1)

	s.Require().NoError(s.svc.SetFeeStatus(fee.ID, false))
	active, err = s.svc.GetAllFees(false)
	s.Require().NoError(err)
	s.Empty(active)

	s.Require().NoError(s.svc.SetFeeStatus(fee.ID, true))
	active, err = s.svc.GetAllFees(false)
	s.Require().NoError(err)
	s.Len(active, 1)

	_, err = s.svc.DeactivateOrDelete(fee.ID)
	s.Require().NoError(err)
	deleted, err = s.svc.DeactivateOrDelete(fee.ID)
	s.Require().NoError(err)
	s.True(deleted)

	_, err = s.svc.GetFeeByID(fee.ID)
	s.Require().True(apperr.IsNotFound(err))
}

func (s *FeeServiceSuite) TestStatisticsAndPaidHouseholds() {
	fee := seedFee(s.T(), s.db, "Phí vệ sinh", 60000, models.Today())
	first := seedHousehold(s.T(), s.db, "HK200", "Nguyễn Văn An")
	second := seedHousehold(s.T(), s.db, "HK201", "Trần Thị Bình")
	seedHousehold(s.T(), s.db, "HK202", "Lê Văn Cường")

	s.Require().NoError(s.db.Create(&models.Payment{
		HouseholdID: first.ID, FeeTypeID: fee.ID,
		PaymentDate: models.Today(), AmountDue: 60000, AmountPaid: 60000, Verified: true,
	}).Error)
	s.Require().NoError(s.db.Create(&models.Payment{
		HouseholdID: first.ID, FeeTypeID: fee.ID,
		PaymentDate: models.Today(), AmountDue: 60000, AmountPaid: 60000, Verified: true,
	}).Error)
	s.Require().NoError(s.db.Create(&models.Payment{
		HouseholdID: second.ID, FeeTypeID: fee.ID,
		PaymentDate: models.Today(), AmountDue: 60000, AmountPaid: 60000,
	}).Error)

	stats, err := s.svc.GetStatistics(fee.ID)
	s.Require().NoError(err)
	s.EqualValues(3, stats.TotalPayments)
	s.EqualValues(2, stats.VerifiedCount)
	s.Equal(120000.0, stats.TotalCollected)
	s.InDelta(66.66, stats.VerifiedPercentage, 0.01)

	households, err := s.svc.PaidHouseholds(fee.ID)
	s.Require().NoError(err)
	s.Len(households, 2, "households appear once regardless of payment count")
}
