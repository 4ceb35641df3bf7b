package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/apperr"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
)

type UtilityServiceSuite struct {
	suite.Suite
	db  *gorm.DB
	svc InterfaceUtilityService

	household *models.Household
}

func (s *UtilityServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewUtilityService(s.db, testConfig())
	s.household = seedHousehold(s.T(), s.db, "HK600", "Nguyễn Văn An")
}

func TestUtilityServiceSuite(t *testing.T) {
	suite.Run(t, new(UtilityServiceSuite))
}

func (s *UtilityServiceSuite) input(serviceType string, month, year int) *UtilityInput {
	return &UtilityInput{
		HouseholdID: s.household.ID,
		ServiceType: serviceType,
		Month:       month,
		Year:        year,
	}
}

// TestTotalPriority walks the pricing fallback chain: an explicit
// amount beats the fixed fee, the fixed fee beats meter readings,
// readings beat a bare unit price, and nothing at all means zero.
func (s *UtilityServiceSuite) TestTotalPriority() {
	s.Run("explicit amount wins", func() {
		in := s.input(models.UtilityTypeElectricity, 1, 2025)
		in.Amount = f64(123456)
		in.FixedFee = f64(100000)
		in.OldReading = f64(100)
		in.NewReading = f64(150)
		in.UnitPrice = f64(3500)
		rec, err := s.svc.CreateService(in)
		s.Require().NoError(err)
		s.Equal(123456.0, rec.Total)
		s.Nil(rec.UsageAmount)
	})

	s.Run("fixed fee beats readings", func() {
		in := s.input(models.UtilityTypeElectricity, 2, 2025)
		in.FixedFee = f64(100000)
		in.OldReading = f64(100)
		in.NewReading = f64(150)
		in.UnitPrice = f64(3500)
		rec, err := s.svc.CreateService(in)
		s.Require().NoError(err)
		s.Equal(100000.0, rec.Total)
	})

	s.Run("metered usage times unit price", func() {
		in := s.input(models.UtilityTypeWater, 3, 2025)
		in.OldReading = f64(120)
		in.NewReading = f64(135)
		in.UnitPrice = f64(8000)
		rec, err := s.svc.CreateService(in)
		s.Require().NoError(err)
		s.Equal(120000.0, rec.Total)
		s.Require().NotNil(rec.UsageAmount)
		s.Equal(15.0, *rec.UsageAmount)
	})

	s.Run("zero amount falls through to the readings", func() {
		in := s.input(models.UtilityTypeElectricity, 6, 2025)
		in.Amount = f64(0)
		in.OldReading = f64(100)
		in.NewReading = f64(150)
		in.UnitPrice = f64(3500)
		rec, err := s.svc.CreateService(in)
		s.Require().NoError(err)
		s.Equal(175000.0, rec.Total)
		s.Require().NotNil(rec.UsageAmount)
		s.Equal(50.0, *rec.UsageAmount)
	})

	s.Run("zero fixed fee falls through to the readings", func() {
		in := s.input(models.UtilityTypeWater, 7, 2025)
		in.FixedFee = f64(0)
		in.OldReading = f64(100)
		in.NewReading = f64(150)
		in.UnitPrice = f64(3500)
		rec, err := s.svc.CreateService(in)
		s.Require().NoError(err)
		s.Equal(175000.0, rec.Total)
	})

	s.Run("bare unit price", func() {
		in := s.input(models.UtilityTypeInternet, 4, 2025)
		in.UnitPrice = f64(220000)
		rec, err := s.svc.CreateService(in)
		s.Require().NoError(err)
		s.Equal(220000.0, rec.Total)
	})

	s.Run("no pricing input means zero", func() {
		rec, err := s.svc.CreateService(s.input(models.UtilityTypeGas, 5, 2025))
		s.Require().NoError(err)
		s.Equal(0.0, rec.Total)
	})
}

func (s *UtilityServiceSuite) TestMeterRegression() {
	s.Run("priced from the readings", func() {
		in := s.input(models.UtilityTypeElectricity, 1, 2025)
		in.OldReading = f64(10)
		in.NewReading = f64(5)
		in.UnitPrice = f64(3500)
		_, err := s.svc.CreateService(in)
		s.Require().True(apperr.IsValidation(err), "a metered reading must advance")
	})

	s.Run("rejected even when an explicit amount would price the record", func() {
		in := s.input(models.UtilityTypeWater, 2, 2025)
		in.Amount = f64(99999)
		in.OldReading = f64(10)
		in.NewReading = f64(5)
		_, err := s.svc.CreateService(in)
		s.Require().True(apperr.IsValidation(err))
	})

	s.Run("rejected on update", func() {
		in := s.input(models.UtilityTypeElectricity, 3, 2025)
		in.FixedFee = f64(100000)
		rec, err := s.svc.CreateService(in)
		s.Require().NoError(err)

		in.OldReading = f64(20)
		in.NewReading = f64(20)
		_, err = s.svc.UpdateService(rec.ID, in)
		s.Require().True(apperr.IsValidation(err))
	})
}

func (s *UtilityServiceSuite) TestCreateValidation() {
	s.Run("unknown service type", func() {
		_, err := s.svc.CreateService(s.input("RAC", 1, 2025))
		s.Require().True(apperr.IsValidation(err))
	})

	s.Run("month out of range", func() {
		_, err := s.svc.CreateService(s.input(models.UtilityTypeElectricity, 13, 2025))
		s.Require().True(apperr.IsValidation(err))
	})

	s.Run("year out of range", func() {
		_, err := s.svc.CreateService(s.input(models.UtilityTypeElectricity, 1, 1999))
		s.Require().True(apperr.IsValidation(err))
	})

	s.Run("unknown household", func() {
		in := s.input(models.UtilityTypeElectricity, 1, 2025)
		in.HouseholdID = 9999
		_, err := s.svc.CreateService(in)
		s.Require().True(apperr.IsNotFound(err))
	})
}

func (s *UtilityServiceSuite) TestOneRecordPerPeriod() {
	in := s.input(models.UtilityTypeElectricity, 6, 2025)
	in.FixedFee = f64(100000)
	first, err := s.svc.CreateService(in)
	s.Require().NoError(err)

	s.Run("duplicate period conflicts", func() {
		_, err := s.svc.CreateService(s.input(models.UtilityTypeElectricity, 6, 2025))
		s.Require().True(apperr.IsConflict(err))
	})

	s.Run("another type in the same period is fine", func() {
		_, err := s.svc.CreateService(s.input(models.UtilityTypeWater, 6, 2025))
		s.Require().NoError(err)
	})

	s.Run("update excludes the own row", func() {
		upd := s.input(models.UtilityTypeElectricity, 6, 2025)
		upd.FixedFee = f64(120000)
		rec, err := s.svc.UpdateService(first.ID, upd)
		s.Require().NoError(err)
		s.Equal(120000.0, rec.Total)
	})

	s.Run("update into an occupied period conflicts", func() {
		other, err := s.svc.CreateService(s.input(models.UtilityTypeElectricity, 7, 2025))
		s.Require().NoError(err)
		_, err = s.svc.UpdateService(other.ID, s.input(models.UtilityTypeElectricity, 6, 2025))
		s.Require().True(apperr.IsConflict(err))
	})
}

// TestUpdateRecomputes verifies an update always rebuilds the total
// from the new pricing inputs and drops a stale usage amount.
func (s *UtilityServiceSuite) TestUpdateRecomputes() {
	in := s.input(models.UtilityTypeElectricity, 8, 2025)
	in.OldReading = f64(100)
	in.NewReading = f64(150)
	in.UnitPrice = f64(3500)
	rec, err := s.svc.CreateService(in)
	s.Require().NoError(err)
	s.Equal(175000.0, rec.Total)

	upd := s.input(models.UtilityTypeElectricity, 8, 2025)
	upd.FixedFee = f64(90000)
	rec, err = s.svc.UpdateService(rec.ID, upd)
	s.Require().NoError(err)
	s.Equal(90000.0, rec.Total)
	s.Nil(rec.UsageAmount)
	s.Nil(rec.OldReading)
}

func (s *UtilityServiceSuite) TestPaymentStatusAndDelete() {
	in := s.input(models.UtilityTypeInternet, 9, 2025)
	in.FixedFee = f64(220000)
	rec, err := s.svc.CreateService(in)
	s.Require().NoError(err)
	s.Equal(models.UtilityStatusUnpaid, rec.Status)

	paid, err := s.svc.MarkPaid(rec.ID)
	s.Require().NoError(err)
	s.Equal(models.UtilityStatusPaid, paid.Status)

	// Marking again is a no-op.
	paid, err = s.svc.MarkPaid(rec.ID)
	s.Require().NoError(err)
	s.Equal(models.UtilityStatusPaid, paid.Status)

	s.Run("a paid record cannot be deleted", func() {
		s.Require().True(apperr.IsConflict(s.svc.DeleteService(rec.ID)))
	})

	unpaid, err := s.svc.MarkUnpaid(rec.ID)
	s.Require().NoError(err)
	s.Equal(models.UtilityStatusUnpaid, unpaid.Status)

	s.Require().NoError(s.svc.DeleteService(rec.ID))
	_, err = s.svc.GetServiceByID(rec.ID)
	s.Require().True(apperr.IsNotFound(err))
}

func (s *UtilityServiceSuite) TestTotals() {
	electricity := s.input(models.UtilityTypeElectricity, 10, 2025)
	electricity.FixedFee = f64(300000)
	_, err := s.svc.CreateService(electricity)
	s.Require().NoError(err)

	water := s.input(models.UtilityTypeWater, 10, 2025)
	water.FixedFee = f64(150000)
	_, err = s.svc.CreateService(water)
	s.Require().NoError(err)

	other := seedHousehold(s.T(), s.db, "HK601", "Trần Thị Bình")
	elsewhere := s.input(models.UtilityTypeGas, 10, 2025)
	elsewhere.HouseholdID = other.ID
	elsewhere.FixedFee = f64(50000)
	_, err = s.svc.CreateService(elsewhere)
	s.Require().NoError(err)

	total, err := s.svc.TotalByHousehold(s.household.ID)
	s.Require().NoError(err)
	s.Equal(450000.0, total)

	total, err = s.svc.TotalByPeriod(10, 2025)
	s.Require().NoError(err)
	s.Equal(500000.0, total)

	total, err = s.svc.TotalByHouseholdAndPeriod(s.household.ID, 10, 2025)
	s.Require().NoError(err)
	s.Equal(450000.0, total)

	total, err = s.svc.TotalByHouseholdAndPeriod(s.household.ID, 11, 2025)
	s.Require().NoError(err)
	s.Equal(0.0, total)

	unpaid, err := s.svc.GetUnpaid(nil)
	s.Require().NoError(err)
	s.Len(unpaid, 3)

	unpaid, err = s.svc.GetUnpaid(&other.ID)
	s.Require().NoError(err)
	s.Len(unpaid, 1)
}

func (s *UtilityServiceSuite) TestSearchAndDenormalizedInfo() {
	in := s.input(models.UtilityTypeElectricity, 11, 2025)
	in.FixedFee = f64(100000)
	_, err := s.svc.CreateService(in)
	s.Require().NoError(err)

	found, err := s.svc.Search(uintPtr(s.household.ID), models.UtilityTypeElectricity, 11, 2025, models.UtilityStatusUnpaid)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("HK600", found[0].HouseholdNumber)
	s.Equal("Nguyễn Văn An", found[0].HeadName)

	found, err = s.svc.Search(nil, "", 0, 0, models.UtilityStatusPaid)
	s.Require().NoError(err)
	s.Empty(found)
}

// TestBulkCreate verifies the batch run covers every active household
// exactly once and skips the ones already billed for the period.
func (s *UtilityServiceSuite) TestBulkCreate() {
	second := seedHousehold(s.T(), s.db, "HK602", "Trần Thị Bình")
	inactive := seedHousehold(s.T(), s.db, "HK603", "Lê Văn Cường")
	inactive.Active = false
	s.Require().NoError(s.db.Save(inactive).Error)

	pre := s.input(models.UtilityTypeInternet, 12, 2025)
	pre.FixedFee = f64(220000)
	_, err := s.svc.CreateService(pre)
	s.Require().NoError(err)

	created, skipped, err := s.svc.BulkCreate(models.UtilityTypeInternet, 12, 2025, nil, f64(220000), "tháng")
	s.Require().NoError(err)
	s.Equal(1, created)
	s.Equal(1, skipped)

	records, err := s.svc.GetByHousehold(second.ID)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(220000.0, records[0].Total)
	s.Equal(models.UtilityStatusUnpaid, records[0].Status)

	records, err = s.svc.GetByHousehold(inactive.ID)
	s.Require().NoError(err)
	s.Empty(records, "inactive households are not billed")
}
