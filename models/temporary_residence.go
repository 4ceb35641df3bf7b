package models

import "gorm.io/gorm"

// Temporary residence statuses. These are terminal tags on an
// immutable-after-creation row, not states of a longer-lived machine.
const (
	StatusTemporaryResidence = "TAM_TRU"
	StatusTemporaryAbsence   = "TAM_VANG"
)

// ValidResidenceStatus reports whether s is a known status tag.
func ValidResidenceStatus(s string) bool {
	return s == StatusTemporaryResidence || s == StatusTemporaryAbsence
}

// TemporaryResidence records a resident's declared temporary residence
// or temporary absence.
type TemporaryResidence struct {
	BaseModel
	Status     string `gorm:"column:trang_thai;type:varchar(20);not null" json:"trangThai"`
	Address    string `gorm:"column:dia_chi_tam_tru_tam_vang;type:varchar(255);not null" json:"diaChiTamTruTamVang"`
	Date       Date   `gorm:"column:thoi_gian;not null" json:"thoiGian"`
	Proposal   string `gorm:"column:noi_dung_de_nghi;type:varchar(255)" json:"noiDungDeNghi"`
	ResidentID uint   `gorm:"column:nhan_khau_id;not null;index" json:"nhanKhauId"`

	Resident *Resident `gorm:"foreignKey:ResidentID" json:"-"`

	// ResidentName is filled from the relation for list responses.
	ResidentName string `gorm:"-" json:"hoTen,omitempty"`
}

func (TemporaryResidence) TableName() string {
	return "tam_tru_tam_vang"
}

// BeforeCreate defaults the record date to today.
func (t *TemporaryResidence) BeforeCreate(tx *gorm.DB) error {
	if t.Date.IsZero() {
		t.Date = Today()
	}
	return nil
}
