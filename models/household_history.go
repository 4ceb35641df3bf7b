package models

import "gorm.io/gorm"

// Change types recorded in the household history log.
const (
	ChangeTypeTemporaryResidence = "TAM_TRU"
	ChangeTypeTemporaryAbsence   = "TAM_VANG"
	ChangeTypeMemberAdded        = "THEM_NHAN_KHAU"
	ChangeTypeMemberRemoved      = "XOA_NHAN_KHAU"
)

// ValidChangeType reports whether s is one of the four change types.
func ValidChangeType(s string) bool {
	switch s {
	case ChangeTypeTemporaryResidence, ChangeTypeTemporaryAbsence,
		ChangeTypeMemberAdded, ChangeTypeMemberRemoved:
		return true
	}
	return false
}

// HouseholdHistory is an append-only log row describing one membership
// or residence change. Rows never mutate household or resident state.
type HouseholdHistory struct {
	BaseModel
	ChangeType  string `gorm:"column:loai_thay_doi;type:varchar(30);not null" json:"loaiThayDoi"`
	Date        Date   `gorm:"column:thoi_gian;not null" json:"thoiGian"`
	HouseholdID uint   `gorm:"column:ho_khau_id;not null;index" json:"hoKhauId"`
	ResidentID  uint   `gorm:"column:nhan_khau_id;not null;index" json:"nhanKhauId"`
	Note        string `gorm:"column:ghi_chu;type:varchar(255)" json:"ghiChu"`

	Household *Household `gorm:"foreignKey:HouseholdID" json:"-"`
	Resident  *Resident  `gorm:"foreignKey:ResidentID" json:"-"`
}

func (HouseholdHistory) TableName() string {
	return "lich_su_ho_khau"
}

// BeforeCreate defaults the change date to today.
func (h *HouseholdHistory) BeforeCreate(tx *gorm.DB) error {
	if h.Date.IsZero() {
		h.Date = Today()
	}
	return nil
}
