package models

// Household is the administrative unit that owns residents, vehicles and
// fee payments. The member count is intentionally not stored: it is
// derived from the residents table on read so it can never drift from
// the actual membership.
type Household struct {
	BaseModel
	HouseholdNumber  string `gorm:"column:so_ho_khau;type:varchar(50);uniqueIndex;not null" json:"soHoKhau"`
	HeadName         string `gorm:"column:chu_ho;type:varchar(100);not null" json:"chuHo"`
	Address          string `gorm:"type:varchar(255);not null" json:"address"`
	HouseNumber      string `gorm:"column:so_nha;type:varchar(50)" json:"soNha"`
	Street           string `gorm:"column:duong;type:varchar(100)" json:"duong"`
	Ward             string `gorm:"column:phuong;type:varchar(100)" json:"phuong"`
	District         string `gorm:"column:quan;type:varchar(100)" json:"quan"`
	Phone            string `gorm:"column:so_dien_thoai;type:varchar(20)" json:"soDienThoai"`
	Email            string `gorm:"type:varchar(100)" json:"email"`
	RegistrationDate Date   `gorm:"column:ngay_lam_ho_khau" json:"ngayLamHoKhau"`
	Active           bool   `gorm:"column:hoat_dong;not null;default:true" json:"hoatDong"`

	// MemberCount is computed by the service layer, never persisted.
	MemberCount int64 `gorm:"-" json:"soThanhVien"`

	Residents []Resident `gorm:"foreignKey:HouseholdID" json:"residents,omitempty"`
	Payments  []Payment  `gorm:"foreignKey:HouseholdID" json:"payments,omitempty"`
	Vehicles  []Vehicle  `gorm:"foreignKey:HouseholdID" json:"vehicles,omitempty"`
}

func (Household) TableName() string {
	return "ho_khau"
}
