package models

// Vehicle types and their fixed monthly parking fees (VND).
const (
	VehicleTypeMotorcycle = "XE_MAY"
	VehicleTypeCar        = "OTO"

	MotorcycleMonthlyFee = 70000.0
	CarMonthlyFee        = 1200000.0
)

// ValidVehicleType reports whether t is a known vehicle type.
func ValidVehicleType(t string) bool {
	return t == VehicleTypeMotorcycle || t == VehicleTypeCar
}

// MonthlyFeeForType returns the parking fee for a vehicle type, 0 for
// unknown types.
func MonthlyFeeForType(vehicleType string) float64 {
	switch vehicleType {
	case VehicleTypeMotorcycle:
		return MotorcycleMonthlyFee
	case VehicleTypeCar:
		return CarMonthlyFee
	}
	return 0
}

// Vehicle belongs to one household; the license plate is unique across
// all vehicles.
type Vehicle struct {
	BaseModel
	LicensePlate    string `gorm:"column:bien_so_xe;type:varchar(20);uniqueIndex;not null" json:"bienSoXe"`
	VehicleType     string `gorm:"column:loai_xe;type:varchar(20);not null" json:"loaiXe"`
	Brand           string `gorm:"column:hang_xe;type:varchar(50)" json:"hangXe"`
	Model           string `gorm:"column:mau_xe;type:varchar(50)" json:"mauXe"`
	ManufactureYear *int   `gorm:"column:nam_san_xuat" json:"namSanXuat"`
	Color           string `gorm:"column:mau_sac;type:varchar(30)" json:"mauSac"`
	Note            string `gorm:"column:ghi_chu;type:varchar(255)" json:"ghiChu"`
	HouseholdID     uint   `gorm:"column:ho_khau_id;not null;index" json:"hoKhauId"`

	Household *Household `gorm:"foreignKey:HouseholdID" json:"-"`

	// Denormalized for list responses.
	HouseholdNumber string  `gorm:"-" json:"soHoKhau,omitempty"`
	HeadName        string  `gorm:"-" json:"chuHo,omitempty"`
	MonthlyFee      float64 `gorm:"-" json:"monthlyFee"`
}

func (Vehicle) TableName() string {
	return "vehicle"
}
