package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/config"
	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/apperr"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
)

// UtilityInput carries the pricing inputs for a consumption record. An
// explicit Amount overrides every derived total.
type UtilityInput struct {
	HouseholdID uint     `json:"hoKhauId"`
	ServiceType string   `json:"loaiDichVu"`
	Month       int      `json:"thang"`
	Year        int      `json:"nam"`
	OldReading  *float64 `json:"chiSoCu"`
	NewReading  *float64 `json:"chiSoMoi"`
	UnitPrice   *float64 `json:"donGia"`
	FixedFee    *float64 `json:"phiCoDinh"`
	Amount      *float64 `json:"soTien"`
	Unit        string   `json:"donViTinh"`
	Note        string   `json:"ghiChu"`
}

// InterfaceUtilityService manages monthly utility consumption records.
type InterfaceUtilityService interface {
	GetAllServices() ([]models.UtilityService, error)
	GetServiceByID(id uint) (*models.UtilityService, error)
	GetByHousehold(householdID uint) ([]models.UtilityService, error)
	GetByPeriod(month, year int) ([]models.UtilityService, error)
	GetByType(serviceType string) ([]models.UtilityService, error)
	Search(householdID *uint, serviceType string, month, year int, status string) ([]models.UtilityService, error)
	CreateService(input *UtilityInput) (*models.UtilityService, error)
	UpdateService(id uint, input *UtilityInput) (*models.UtilityService, error)
	DeleteService(id uint) error
	MarkPaid(id uint) (*models.UtilityService, error)
	MarkUnpaid(id uint) (*models.UtilityService, error)
	GetUnpaid(householdID *uint) ([]models.UtilityService, error)
	TotalByHousehold(householdID uint) (float64, error)
	TotalByHouseholdAndPeriod(householdID uint, month, year int) (float64, error)
	TotalByPeriod(month, year int) (float64, error)
	BulkCreate(serviceType string, month, year int, unitPrice, fixedFee *float64, unit string) (created int, skipped int, err error)
}

// UtilityServiceImpl implements the consumption records over gorm.
type UtilityServiceImpl struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUtilityService creates a utility consumption service.
func NewUtilityService(db *gorm.DB, cfg *config.Config) InterfaceUtilityService {
	return &UtilityServiceImpl{DB: db, Config: cfg}
}

func validUtilityType(t string) bool {
	switch t {
	case models.UtilityTypeElectricity, models.UtilityTypeWater,
		models.UtilityTypeInternet, models.UtilityTypeGas:
		return true
	}
	return false
}

func validPeriod(month, year int) error {
	if month < 1 || month > 12 {
		return apperr.Validation("Tháng phải nằm trong khoảng 1-12")
	}
	if year < 2000 || year > 2100 {
		return apperr.Validation("Năm không hợp lệ: %d", year)
	}
	return nil
}

// validateReadings rejects a regressed meter reading for the metered
// types. It applies whenever both readings are present, regardless of
// which pricing input ends up winning.
func validateReadings(in *UtilityInput) error {
	if in.OldReading != nil && in.NewReading != nil &&
		models.MeteredUtilityType(in.ServiceType) &&
		*in.NewReading <= *in.OldReading {
		return apperr.Validation("Chỉ số mới phải lớn hơn chỉ số cũ")
	}
	return nil
}

// computeTotal resolves the amount due from the pricing inputs, in
// priority order: positive explicit amount, positive fixed fee, metered
// usage times unit price, bare unit price, zero. Metered usage is
// recorded back into the result so the bill shows what was charged for.
func computeTotal(in *UtilityInput, rec *models.UtilityService) float64 {
	if in.Amount != nil && *in.Amount > 0 {
		return *in.Amount
	}
	if in.FixedFee != nil && *in.FixedFee > 0 {
		return *in.FixedFee
	}
	if in.OldReading != nil && in.NewReading != nil && in.UnitPrice != nil {
		usage := *in.NewReading - *in.OldReading
		rec.UsageAmount = &usage
		return usage * *in.UnitPrice
	}
	if in.UnitPrice != nil {
		return *in.UnitPrice
	}
	return 0
}

// fillHouseholdInfo resolves the denormalized household columns.
func (s *UtilityServiceImpl) fillHouseholdInfo(records []models.UtilityService) error {
	for i := range records {
		var household models.Household
		if err := s.DB.Select("so_ho_khau", "chu_ho").
			First(&household, records[i].HouseholdID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		records[i].HouseholdNumber = household.HouseholdNumber
		records[i].HeadName = household.HeadName
	}
	return nil
}

func (s *UtilityServiceImpl) GetAllServices() ([]models.UtilityService, error) {
	var records []models.UtilityService
	if err := s.DB.Order("nam DESC, thang DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	if err := s.fillHouseholdInfo(records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *UtilityServiceImpl) GetServiceByID(id uint) (*models.UtilityService, error) {
	var record models.UtilityService
	if err := s.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Không tìm thấy dịch vụ tiện ích với ID: %d", id)
		}
		return nil, err
	}
	records := []models.UtilityService{record}
	if err := s.fillHouseholdInfo(records); err != nil {
		return nil, err
	}
	return &records[0], nil
}

func (s *UtilityServiceImpl) GetByHousehold(householdID uint) ([]models.UtilityService, error) {
	var records []models.UtilityService
	if err := s.DB.Where("ho_khau_id = ?", householdID).
		Order("nam DESC, thang DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	if err := s.fillHouseholdInfo(records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *UtilityServiceImpl) GetByPeriod(month, year int) ([]models.UtilityService, error) {
	if err := validPeriod(month, year); err != nil {
		return nil, err
	}
	var records []models.UtilityService
	if err := s.DB.Where("thang = ? AND nam = ?", month, year).Find(&records).Error; err != nil {
		return nil, err
	}
	if err := s.fillHouseholdInfo(records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *UtilityServiceImpl) GetByType(serviceType string) ([]models.UtilityService, error) {
	if !validUtilityType(serviceType) {
		return nil, apperr.Validation("Loại dịch vụ không hợp lệ: %s", serviceType)
	}
	var records []models.UtilityService
	if err := s.DB.Where("loai_dich_vu = ?", serviceType).
		Order("nam DESC, thang DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	if err := s.fillHouseholdInfo(records); err != nil {
		return nil, err
	}
	return records, nil
}

// Search combines the optional filters. Zero values mean "any".
func (s *UtilityServiceImpl) Search(householdID *uint, serviceType string, month, year int, status string) ([]models.UtilityService, error) {
	q := s.DB.Model(&models.UtilityService{})
	if householdID != nil {
		q = q.Where("ho_khau_id = ?", *householdID)
	}
	if serviceType != "" {
		q = q.Where("loai_dich_vu = ?", serviceType)
	}
	if month != 0 {
		q = q.Where("thang = ?", month)
	}
	if year != 0 {
		q = q.Where("nam = ?", year)
	}
	if status != "" {
		q = q.Where("trang_thai = ?", status)
	}

	var records []models.UtilityService
	if err := q.Order("nam DESC, thang DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	if err := s.fillHouseholdInfo(records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateService records one month's consumption. At most one record
// per household, type and period may exist.
func (s *UtilityServiceImpl) CreateService(input *UtilityInput) (*models.UtilityService, error) {
	if !validUtilityType(input.ServiceType) {
		return nil, apperr.Validation("Loại dịch vụ không hợp lệ: %s", input.ServiceType)
	}
	if err := validPeriod(input.Month, input.Year); err != nil {
		return nil, err
	}

	var household models.Household
	if err := s.DB.First(&household, input.HouseholdID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Không tìm thấy hộ khẩu với ID: %d", input.HouseholdID)
		}
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.UtilityService{}).
		Where("ho_khau_id = ? AND loai_dich_vu = ? AND thang = ? AND nam = ?",
			input.HouseholdID, input.ServiceType, input.Month, input.Year).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("Dịch vụ %s của hộ khẩu đã tồn tại trong kỳ %d/%d",
			input.ServiceType, input.Month, input.Year)
	}

	if err := validateReadings(input); err != nil {
		return nil, err
	}

	record := &models.UtilityService{
		HouseholdID: input.HouseholdID,
		ServiceType: input.ServiceType,
		Month:       input.Month,
		Year:        input.Year,
		OldReading:  input.OldReading,
		NewReading:  input.NewReading,
		UnitPrice:   input.UnitPrice,
		FixedFee:    input.FixedFee,
		Status:      models.UtilityStatusUnpaid,
		Unit:        input.Unit,
		Note:        input.Note,
	}
	record.Total = computeTotal(input, record)

	if err := s.DB.Create(record).Error; err != nil {
		return nil, err
	}
	record.HouseholdNumber = household.HouseholdNumber
	record.HeadName = household.HeadName
	return record, nil
}

// UpdateService rewrites the pricing inputs and always recomputes the
// total from the updated values. The uniqueness check excludes the row
// being updated.
func (s *UtilityServiceImpl) UpdateService(id uint, input *UtilityInput) (*models.UtilityService, error) {
	record, err := s.GetServiceByID(id)
	if err != nil {
		return nil, err
	}

	if input.ServiceType != "" && !validUtilityType(input.ServiceType) {
		return nil, apperr.Validation("Loại dịch vụ không hợp lệ: %s", input.ServiceType)
	}
	if input.ServiceType == "" {
		input.ServiceType = record.ServiceType
	}
	if input.Month == 0 {
		input.Month = record.Month
	}
	if input.Year == 0 {
		input.Year = record.Year
	}
	if err := validPeriod(input.Month, input.Year); err != nil {
		return nil, err
	}
	if input.HouseholdID == 0 {
		input.HouseholdID = record.HouseholdID
	}

	var count int64
	if err := s.DB.Model(&models.UtilityService{}).
		Where("ho_khau_id = ? AND loai_dich_vu = ? AND thang = ? AND nam = ? AND id != ?",
			input.HouseholdID, input.ServiceType, input.Month, input.Year, id).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("Dịch vụ %s của hộ khẩu đã tồn tại trong kỳ %d/%d",
			input.ServiceType, input.Month, input.Year)
	}

	if err := validateReadings(input); err != nil {
		return nil, err
	}

	record.HouseholdID = input.HouseholdID
	record.ServiceType = input.ServiceType
	record.Month = input.Month
	record.Year = input.Year
	record.OldReading = input.OldReading
	record.NewReading = input.NewReading
	record.UnitPrice = input.UnitPrice
	record.FixedFee = input.FixedFee
	record.UsageAmount = nil
	record.Unit = input.Unit
	record.Note = input.Note

	record.Total = computeTotal(input, record)

	if err := s.DB.Save(record).Error; err != nil {
		return nil, err
	}
	return s.GetServiceByID(id)
}

// DeleteService removes an unpaid record. A paid record is kept for
// the audit trail and must be unpaid first.
func (s *UtilityServiceImpl) DeleteService(id uint) error {
	record, err := s.GetServiceByID(id)
	if err != nil {
		return err
	}
	if record.Status == models.UtilityStatusPaid {
		return apperr.Conflict("Không thể xóa dịch vụ đã thanh toán")
	}
	return s.DB.Delete(record).Error
}

func (s *UtilityServiceImpl) setStatus(id uint, status string) (*models.UtilityService, error) {
	record, err := s.GetServiceByID(id)
	if err != nil {
		return nil, err
	}
	if record.Status != status {
		record.Status = status
		if err := s.DB.Save(record).Error; err != nil {
			return nil, err
		}
	}
	return record, nil
}

// MarkPaid flags the record paid. Idempotent.
func (s *UtilityServiceImpl) MarkPaid(id uint) (*models.UtilityService, error) {
	return s.setStatus(id, models.UtilityStatusPaid)
}

// MarkUnpaid flags the record back to unpaid. Idempotent.
func (s *UtilityServiceImpl) MarkUnpaid(id uint) (*models.UtilityService, error) {
	return s.setStatus(id, models.UtilityStatusUnpaid)
}

// TotalByHousehold sums the billed totals of one household.
// GetUnpaid lists open consumption records, optionally for one household.
func (s *UtilityServiceImpl) GetUnpaid(householdID *uint) ([]models.UtilityService, error) {
	q := s.DB.Where("trang_thai = ?", models.UtilityStatusUnpaid)
	if householdID != nil {
		q = q.Where("ho_khau_id = ?", *householdID)
	}
	var records []models.UtilityService
	if err := q.Order("nam DESC, thang DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	if err := s.fillHouseholdInfo(records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *UtilityServiceImpl) TotalByHousehold(householdID uint) (float64, error) {
	var total float64
	err := s.DB.Model(&models.UtilityService{}).
		Where("ho_khau_id = ?", householdID).
		Select("COALESCE(SUM(tong_tien), 0)").
		Scan(&total).Error
	return total, err
}

// TotalByPeriod sums every household's bill for one period.
func (s *UtilityServiceImpl) TotalByHouseholdAndPeriod(householdID uint, month, year int) (float64, error) {
	if err := validPeriod(month, year); err != nil {
		return 0, err
	}
	var total float64
	err := s.DB.Model(&models.UtilityService{}).
		Where("ho_khau_id = ? AND thang = ? AND nam = ?", householdID, month, year).
		Select("COALESCE(SUM(tong_tien), 0)").
		Scan(&total).Error
	return total, err
}

func (s *UtilityServiceImpl) TotalByPeriod(month, year int) (float64, error) {
	if err := validPeriod(month, year); err != nil {
		return 0, err
	}
	var total float64
	err := s.DB.Model(&models.UtilityService{}).
		Where("thang = ? AND nam = ?", month, year).
		Select("COALESCE(SUM(tong_tien), 0)").
		Scan(&total).Error
	return total, err
}

// BulkCreate opens a consumption record of one type for every active
// household in the period. Households that already have the record are
// skipped rather than failing the batch.
func (s *UtilityServiceImpl) BulkCreate(serviceType string, month, year int, unitPrice, fixedFee *float64, unit string) (int, int, error) {
	if !validUtilityType(serviceType) {
		return 0, 0, apperr.Validation("Loại dịch vụ không hợp lệ: %s", serviceType)
	}
	if err := validPeriod(month, year); err != nil {
		return 0, 0, err
	}

	var households []models.Household
	if err := s.DB.Where("hoat_dong = ?", true).Find(&households).Error; err != nil {
		return 0, 0, err
	}

	created, skipped := 0, 0
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, h := range households {
			var count int64
			if err := tx.Model(&models.UtilityService{}).
				Where("ho_khau_id = ? AND loai_dich_vu = ? AND thang = ? AND nam = ?",
					h.ID, serviceType, month, year).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				skipped++
				continue
			}

			record := models.UtilityService{
				HouseholdID: h.ID,
				ServiceType: serviceType,
				Month:       month,
				Year:        year,
				UnitPrice:   unitPrice,
				FixedFee:    fixedFee,
				Status:      models.UtilityStatusUnpaid,
				Unit:        unit,
				Note:        fmt.Sprintf("Tạo hàng loạt kỳ %d/%d", month, year),
			}
			switch {
			case fixedFee != nil:
				record.Total = *fixedFee
			case unitPrice != nil:
				record.Total = *unitPrice
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return created, skipped, nil
}
