package models

// Payment records a household's remittance against a fee type. Only
// verified payments contribute to any total or percentage.
type Payment struct {
	BaseModel
	HouseholdID uint    `gorm:"column:ho_khau_id;not null;index" json:"hoKhauId"`
	FeeTypeID   uint    `gorm:"column:khoan_thu_id;not null;index" json:"khoanThuId"`
	PayerName   string  `gorm:"column:nguoi_nop;type:varchar(100)" json:"nguoiNop"`
	PaymentDate Date    `gorm:"column:ngay_nop;not null" json:"ngayNop"`
	AmountDue   float64 `gorm:"column:tong_tien;not null" json:"tongTien"`
	AmountPaid  float64 `gorm:"column:so_tien;not null;default:0" json:"soTien"`
	Verified    bool    `gorm:"column:da_xac_nhan;not null;default:false" json:"daXacNhan"`
	Note        string  `gorm:"column:ghi_chu;type:varchar(255)" json:"ghiChu"`

	Household *Household `gorm:"foreignKey:HouseholdID" json:"hoKhau,omitempty"`
	FeeType   *FeeType   `gorm:"foreignKey:FeeTypeID" json:"khoanThu,omitempty"`
}

func (Payment) TableName() string {
	return "nop_phi"
}
