package models

import "gorm.io/gorm"

// Utility payment statuses and methods.
const (
	UtilityPaymentStatusSuccess  = "THANH_CONG"
	UtilityPaymentStatusCanceled = "HUY"

	PaymentMethodCash     = "TIEN_MAT"
	PaymentMethodTransfer = "CHUYEN_KHOAN"
	PaymentMethodCard     = "THE"
)

// UtilityPayment settles a household's utility bill for one period. At
// most one payment per household per (month, year) is accepted; the
// transaction code is unique across the system.
type UtilityPayment struct {
	BaseModel
	HouseholdID      uint     `gorm:"column:ho_khau_id;not null;index" json:"hoKhauId"`
	UtilityServiceID *uint    `gorm:"column:utility_service_id;index" json:"utilityServiceId"`
	Month            int      `gorm:"column:thang;not null" json:"thang"`
	Year             int      `gorm:"column:nam;not null" json:"nam"`
	Amount           float64  `gorm:"column:so_tien_thanh_toan;not null" json:"soTienThanhToan"`
	ParkingFee       *float64 `gorm:"column:phi_gui_xe" json:"phiGuiXe"`
	ServiceFee       *float64 `gorm:"column:phi_dich_vu" json:"phiDichVu"`
	PaymentDate      Date     `gorm:"column:ngay_thanh_toan;not null" json:"ngayThanhToan"`
	PaymentMethod    string   `gorm:"column:phuong_thuc_thanh_toan;type:varchar(20);not null;default:TIEN_MAT" json:"phuongThucThanhToan"`
	TransactionCode  string   `gorm:"column:ma_giao_dich;type:varchar(30);uniqueIndex" json:"maGiaoDich"`
	Collector        string   `gorm:"column:nguoi_thu;type:varchar(100)" json:"nguoiThu"`
	Status           string   `gorm:"column:trang_thai;type:varchar(20);not null;default:THANH_CONG" json:"trangThai"`
	Note             string   `gorm:"column:ghi_chu;type:varchar(255)" json:"ghiChu"`

	Household      *Household      `gorm:"foreignKey:HouseholdID" json:"-"`
	UtilityService *UtilityService `gorm:"foreignKey:UtilityServiceID" json:"-"`

	// Denormalized for list responses.
	HouseholdNumber string `gorm:"-" json:"soHoKhau,omitempty"`
	HeadName        string `gorm:"-" json:"chuHo,omitempty"`
	ServiceType     string `gorm:"-" json:"loaiDichVu,omitempty"`
}

func (UtilityPayment) TableName() string {
	return "utility_payment"
}

// BeforeCreate defaults the payment date to today.
func (p *UtilityPayment) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentDate.IsZero() {
		p.PaymentDate = Today()
	}
	return nil
}
