package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/apperr"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
)

type PaymentServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	svc InterfacePaymentService

	household *models.Household
	fee       *models.FeeType
}

func (s *PaymentServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewPaymentService(s.db, testConfig())
	s.household = seedHousehold(s.T(), s.db, "HK300", "Nguyễn Văn An")
	s.fee = seedFee(s.T(), s.db, "Phí vệ sinh", 60000, models.Today())
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

// TestCreateDefaults verifies the amounts fall back to the fee type,
// the date falls back to today and the payment starts unverified.
func (s *PaymentServiceSuite) TestCreateDefaults() {
	p := &models.Payment{
		HouseholdID: s.household.ID,
		FeeTypeID:   s.fee.ID,
		Verified:    true,
	}
	s.Require().NoError(s.svc.CreatePayment(p))

	s.Equal(60000.0, p.AmountDue)
	s.Equal(60000.0, p.AmountPaid)
	s.Equal(models.Today(), p.PaymentDate)
	s.False(p.Verified, "a new payment is never born verified")
}

func (s *PaymentServiceSuite) TestCreateChecksReferences() {
	err := s.svc.CreatePayment(&models.Payment{HouseholdID: 9999, FeeTypeID: s.fee.ID})
	s.Require().True(apperr.IsNotFound(err))

	err = s.svc.CreatePayment(&models.Payment{HouseholdID: s.household.ID, FeeTypeID: 9999})
	s.Require().True(apperr.IsNotFound(err))
}

func (s *PaymentServiceSuite) TestVerifyRoundTrip() {
	p := &models.Payment{HouseholdID: s.household.ID, FeeTypeID: s.fee.ID}
	s.Require().NoError(s.svc.CreatePayment(p))

	verified, err := s.svc.VerifyPayment(p.ID)
	s.Require().NoError(err)
	s.True(verified.Verified)

	// Verifying again is a no-op.
	verified, err = s.svc.VerifyPayment(p.ID)
	s.Require().NoError(err)
	s.True(verified.Verified)

	unverified, err := s.svc.UnverifyPayment(p.ID)
	s.Require().NoError(err)
	s.False(unverified.Verified)

	unverified, err = s.svc.UnverifyPayment(p.ID)
	s.Require().NoError(err)
	s.False(unverified.Verified)
}

func (s *PaymentServiceSuite) TestUpdateLeavesVerifiedAlone() {
	p := &models.Payment{HouseholdID: s.household.ID, FeeTypeID: s.fee.ID}
	s.Require().NoError(s.svc.CreatePayment(p))
	_, err := s.svc.VerifyPayment(p.ID)
	s.Require().NoError(err)

	updated, err := s.svc.UpdatePayment(p.ID, &models.Payment{
		PayerName: "Nguyễn Văn An",
		Note:      "Nộp hộ",
		Verified:  false,
	})
	s.Require().NoError(err)
	s.Equal("Nguyễn Văn An", updated.PayerName)
	s.Equal("Nộp hộ", updated.Note)
	s.True(updated.Verified, "the flag only moves through verify/unverify")
}

func (s *PaymentServiceSuite) TestVerifiedOnlyTotals() {
	other := seedHousehold(s.T(), s.db, "HK301", "Trần Thị Bình")

	paid := &models.Payment{HouseholdID: s.household.ID, FeeTypeID: s.fee.ID, AmountPaid: 50000}
	s.Require().NoError(s.svc.CreatePayment(paid))
	_, err := s.svc.VerifyPayment(paid.ID)
	s.Require().NoError(err)

	pending := &models.Payment{HouseholdID: s.household.ID, FeeTypeID: s.fee.ID, AmountPaid: 70000}
	s.Require().NoError(s.svc.CreatePayment(pending))

	elsewhere := &models.Payment{HouseholdID: other.ID, FeeTypeID: s.fee.ID, AmountPaid: 30000}
	s.Require().NoError(s.svc.CreatePayment(elsewhere))
	_, err = s.svc.VerifyPayment(elsewhere.ID)
	s.Require().NoError(err)

	total, err := s.svc.TotalByHousehold(s.household.ID)
	s.Require().NoError(err)
	s.Equal(50000.0, total, "unverified payments never count")

	total, err = s.svc.TotalByFeeType(s.fee.ID)
	s.Require().NoError(err)
	s.Equal(80000.0, total)

	total, err = s.svc.TotalByDateRange(
		models.NewDate(2000, time.January, 1),
		models.NewDate(2100, time.December, 31),
	)
	s.Require().NoError(err)
	s.Equal(80000.0, total)

	percent, err := s.svc.PercentVerified()
	s.Require().NoError(err)
	s.InDelta(66.66, percent, 0.01)
}

func (s *PaymentServiceSuite) TestPercentVerifiedEmpty() {
	percent, err := s.svc.PercentVerified()
	s.Require().NoError(err)
	s.Equal(0.0, percent)
}

// TestStatisticsFilterPrecedence verifies the household filter wins
// over the fee type filter, and the date range applies only when
// neither ID filter is set.
func (s *PaymentServiceSuite) TestStatisticsFilterPrecedence() {
	other := seedHousehold(s.T(), s.db, "HK302", "Trần Thị Bình")
	otherFee := seedFee(s.T(), s.db, "Phí bảo trì", 100000, models.Today())

	mine := &models.Payment{HouseholdID: s.household.ID, FeeTypeID: otherFee.ID}
	s.Require().NoError(s.svc.CreatePayment(mine))
	_, err := s.svc.VerifyPayment(mine.ID)
	s.Require().NoError(err)

	theirs := &models.Payment{HouseholdID: other.ID, FeeTypeID: s.fee.ID}
	s.Require().NoError(s.svc.CreatePayment(theirs))

	stats, err := s.svc.GetStatistics(PaymentFilter{
		HouseholdID: uintPtr(s.household.ID),
		FeeTypeID:   uintPtr(s.fee.ID),
	})
	s.Require().NoError(err)
	s.EqualValues(1, stats.TotalPayments, "household filter shadows the fee filter")
	s.EqualValues(1, stats.VerifiedCount)
	s.Equal(100000.0, stats.TotalAmount)

	stats, err = s.svc.GetStatistics(PaymentFilter{FeeTypeID: uintPtr(s.fee.ID)})
	s.Require().NoError(err)
	s.EqualValues(1, stats.TotalPayments)
	s.EqualValues(1, stats.UnverifiedCount)

	from := models.NewDate(2000, time.January, 1)
	to := models.NewDate(2100, time.December, 31)
	stats, err = s.svc.GetStatistics(PaymentFilter{From: &from, To: &to})
	s.Require().NoError(err)
	s.EqualValues(2, stats.TotalPayments)
	s.Equal(50.0, stats.VerifiedPercentage)
}

func (s *PaymentServiceSuite) TestDeleteAndUnverifiedListing() {
	p := &models.Payment{HouseholdID: s.household.ID, FeeTypeID: s.fee.ID}
	s.Require().NoError(s.svc.CreatePayment(p))

	pending, err := s.svc.FindUnverified()
	s.Require().NoError(err)
	s.Len(pending, 1)

	s.Require().NoError(s.svc.DeletePayment(p.ID))
	_, err = s.svc.GetPaymentByID(p.ID)
	s.Require().True(apperr.IsNotFound(err))
}
