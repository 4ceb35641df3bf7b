package models

import (
	"time"

	"gorm.io/gorm"
)

// Utility service types. Electricity and water are metered; the rest
// are fixed-fee.
const (
	UtilityTypeElectricity = "DIEN"
	UtilityTypeWater       = "NUOC"
	UtilityTypeInternet    = "INTERNET"
	UtilityTypeGas         = "GAS"
)

// Utility service payment statuses.
const (
	UtilityStatusUnpaid = "CHUA_THANH_TOAN"
	UtilityStatusPaid   = "DA_THANH_TOAN"
)

// MeteredUtilityType reports whether the type requires meter readings
// to advance (new reading strictly greater than old).
func MeteredUtilityType(t string) bool {
	return t == UtilityTypeElectricity || t == UtilityTypeWater
}

// UtilityService is one month's consumption record for a household.
// Total is computed once at creation from whichever pricing input is
// present; an update recomputes it from the caller's current values.
type UtilityService struct {
	BaseModel
	HouseholdID uint     `gorm:"column:ho_khau_id;not null;index" json:"hoKhauId"`
	ServiceType string   `gorm:"column:loai_dich_vu;type:varchar(30);not null" json:"loaiDichVu"`
	Month       int      `gorm:"column:thang;not null" json:"thang"`
	Year        int      `gorm:"column:nam;not null" json:"nam"`
	OldReading  *float64 `gorm:"column:chi_so_cu" json:"chiSoCu"`
	NewReading  *float64 `gorm:"column:chi_so_moi" json:"chiSoMoi"`
	UsageAmount *float64 `gorm:"column:so_luong_su_dung" json:"soLuongSuDung"`
	UnitPrice   *float64 `gorm:"column:don_gia" json:"donGia"`
	FixedFee    *float64 `gorm:"column:phi_co_dinh" json:"phiCoDinh"`
	Total       float64  `gorm:"column:tong_tien;not null" json:"tongTien"`
	Status      string   `gorm:"column:trang_thai;type:varchar(20);default:CHUA_THANH_TOAN" json:"trangThai"`
	RecordedAt  time.Time `gorm:"column:ngay_ghi_nhan" json:"ngayGhiNhan"`
	Unit        string   `gorm:"column:don_vi_tinh;type:varchar(20)" json:"donViTinh"`
	Note        string   `gorm:"column:ghi_chu;type:varchar(255)" json:"ghiChu"`

	Household *Household `gorm:"foreignKey:HouseholdID" json:"-"`

	// Denormalized for list responses.
	HouseholdNumber string `gorm:"-" json:"soHoKhau,omitempty"`
	HeadName        string `gorm:"-" json:"chuHo,omitempty"`
}

func (UtilityService) TableName() string {
	return "utility_service"
}

// BeforeCreate stamps the recording time.
func (u *UtilityService) BeforeCreate(tx *gorm.DB) error {
	if u.RecordedAt.IsZero() {
		u.RecordedAt = time.Now()
	}
	return nil
}
