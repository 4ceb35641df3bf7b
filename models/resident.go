package models

import "gorm.io/gorm"

// Resident is an individual, optionally attached to one household via
// HouseholdID. The resident side is the only authoritative direction of
// the association; household member lists are always derived by query.
type Resident struct {
	BaseModel
	FullName           string `gorm:"column:ho_ten;type:varchar(100);not null" json:"hoTen"`
	BirthDate          Date   `gorm:"column:ngay_sinh;not null" json:"ngaySinh"`
	Gender             string `gorm:"column:gioi_tinh;type:varchar(10);not null" json:"gioiTinh"`
	Ethnicity          string `gorm:"column:dan_toc;type:varchar(50)" json:"danToc"`
	Religion           string `gorm:"column:ton_giao;type:varchar(50)" json:"tonGiao"`
	NationalID         string `gorm:"column:cccd;type:varchar(20);index" json:"cccd"`
	IDIssueDate        Date   `gorm:"column:ngay_cap" json:"ngayCap"`
	IDIssuePlace       string `gorm:"column:noi_cap;type:varchar(100)" json:"noiCap"`
	Occupation         string `gorm:"column:nghe_nghiep;type:varchar(100)" json:"ngheNghiep"`
	Note               string `gorm:"column:ghi_chu;type:varchar(255)" json:"ghiChu"`
	RegisteredDate     Date   `gorm:"column:ngay_them_nhan_khau;not null" json:"ngayThemNhanKhau"`
	RelationshipToHead string `gorm:"column:quan_he_voi_chu_ho;type:varchar(50)" json:"quanHeVoiChuHo"`
	HouseholdID        *uint  `gorm:"column:ho_khau_id;index" json:"hoKhauId"`

	HistoryEntries      []HouseholdHistory   `gorm:"foreignKey:ResidentID" json:"-"`
	TemporaryResidences []TemporaryResidence `gorm:"foreignKey:ResidentID" json:"-"`
}

func (Resident) TableName() string {
	return "nhan_khau"
}

// BeforeCreate defaults the registration date to today.
func (r *Resident) BeforeCreate(tx *gorm.DB) error {
	if r.RegisteredDate.IsZero() {
		r.RegisteredDate = Today()
	}
	return nil
}
