package models

import "gorm.io/gorm"

// FeeType defines an assessable charge (maintenance, sanitation, ...)
// that households pay against. The due date drives the overdue query.
type FeeType struct {
	BaseModel
	Name        string  `gorm:"column:ten_khoan_thu;type:varchar(100);not null" json:"tenKhoanThu"`
	Mandatory   bool    `gorm:"column:bat_buoc;not null" json:"batBuoc"`
	Amount      float64 `gorm:"column:so_tien;not null" json:"soTien"`
	DueDate     Date    `gorm:"column:thoi_han;not null" json:"thoiHan"`
	Note        string  `gorm:"column:ghi_chu;type:varchar(255)" json:"ghiChu"`
	CreatedDate Date    `gorm:"column:ngay_tao;not null" json:"ngayTao"`
	Active      bool    `gorm:"column:hoat_dong;not null;default:true" json:"hoatDong"`

	Payments []Payment `gorm:"foreignKey:FeeTypeID" json:"payments,omitempty"`
}

func (FeeType) TableName() string {
	return "khoan_thu"
}

// BeforeCreate defaults the creation date to today.
func (f *FeeType) BeforeCreate(tx *gorm.DB) error {
	if f.CreatedDate.IsZero() {
		f.CreatedDate = Today()
	}
	return nil
}
