package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/config"
	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/apperr"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
)

// HouseholdParkingFees breaks a household's monthly parking bill down
// by vehicle type.
type HouseholdParkingFees struct {
	HouseholdID     uint    `json:"hoKhauId"`
	MotorcycleCount int64   `json:"soXeMay"`
	CarCount        int64   `json:"soOto"`
	MotorcycleFee   float64 `json:"phiXeMay"`
	CarFee          float64 `json:"phiOto"`
	TotalFee        float64 `json:"tongPhi"`
}

// VehicleStatistics summarizes the registered fleet.
type VehicleStatistics struct {
	TotalVehicles   int64   `json:"totalVehicles"`
	MotorcycleCount int64   `json:"motorcycleCount"`
	CarCount        int64   `json:"carCount"`
	MonthlyRevenue  float64 `json:"monthlyRevenue"`
}

// InterfaceVehicleService manages registered vehicles and parking fees.
type InterfaceVehicleService interface {
	GetAllVehicles() ([]models.Vehicle, error)
	GetVehicleByID(id uint) (*models.Vehicle, error)
	GetByLicensePlate(plate string) (*models.Vehicle, error)
	GetByHousehold(householdID uint) ([]models.Vehicle, error)
	GetByType(vehicleType string) ([]models.Vehicle, error)
	Search(term string) ([]models.Vehicle, error)
	CheckPlateUnique(plate string, excludeID *uint) (bool, error)
	CreateVehicle(vehicle *models.Vehicle) error
	UpdateVehicle(id uint, updates *models.Vehicle) (*models.Vehicle, error)
	DeleteVehicle(id uint) error
	CountByType(vehicleType string) (int64, error)
	MonthlyParkingFee(householdID uint) (float64, error)
	HouseholdFeeDetails(householdID uint) (*HouseholdParkingFees, error)
	GetStatistics() (*VehicleStatistics, error)
}

// VehicleService implements vehicle operations over gorm.
type VehicleService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewVehicleService creates a vehicle service.
func NewVehicleService(db *gorm.DB, cfg *config.Config) InterfaceVehicleService {
	return &VehicleService{DB: db, Config: cfg}
}

// fillInfo resolves the denormalized household columns and the monthly
// fee derived from the vehicle type.
func (s *VehicleService) fillInfo(vehicles []models.Vehicle) error {
	for i := range vehicles {
		vehicles[i].MonthlyFee = models.MonthlyFeeForType(vehicles[i].VehicleType)
		var household models.Household
		if err := s.DB.Select("so_ho_khau", "chu_ho").
			First(&household, vehicles[i].HouseholdID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		vehicles[i].HouseholdNumber = household.HouseholdNumber
		vehicles[i].HeadName = household.HeadName
	}
	return nil
}

func (s *VehicleService) GetAllVehicles() ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := s.DB.Find(&vehicles).Error; err != nil {
		return nil, err
	}
	if err := s.fillInfo(vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (s *VehicleService) GetVehicleByID(id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := s.DB.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Không tìm thấy phương tiện với ID: %d", id)
		}
		return nil, err
	}
	vehicles := []models.Vehicle{vehicle}
	if err := s.fillInfo(vehicles); err != nil {
		return nil, err
	}
	return &vehicles[0], nil
}

func (s *VehicleService) GetByLicensePlate(plate string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := s.DB.Where("bien_so_xe = ?", plate).First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Không tìm thấy phương tiện với biển số: %s", plate)
		}
		return nil, err
	}
	vehicles := []models.Vehicle{vehicle}
	if err := s.fillInfo(vehicles); err != nil {
		return nil, err
	}
	return &vehicles[0], nil
}

func (s *VehicleService) GetByHousehold(householdID uint) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := s.DB.Where("ho_khau_id = ?", householdID).Find(&vehicles).Error; err != nil {
		return nil, err
	}
	if err := s.fillInfo(vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (s *VehicleService) GetByType(vehicleType string) ([]models.Vehicle, error) {
	if !models.ValidVehicleType(vehicleType) {
		return nil, apperr.Validation("Loại phương tiện không hợp lệ: %s", vehicleType)
	}
	var vehicles []models.Vehicle
	if err := s.DB.Where("loai_xe = ?", vehicleType).Find(&vehicles).Error; err != nil {
		return nil, err
	}
	if err := s.fillInfo(vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Search matches the term against plate, brand and model.
func (s *VehicleService) Search(term string) ([]models.Vehicle, error) {
	like := "%" + term + "%"
	var vehicles []models.Vehicle
	if err := s.DB.
		Where("bien_so_xe LIKE ? OR hang_xe LIKE ? OR mau_xe LIKE ?", like, like, like).
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	if err := s.fillInfo(vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// CheckPlateUnique reports whether a plate is free, ignoring the
// vehicle with excludeID when given.
func (s *VehicleService) CheckPlateUnique(plate string, excludeID *uint) (bool, error) {
	q := s.DB.Model(&models.Vehicle{}).Where("bien_so_xe = ?", plate)
	if excludeID != nil {
		q = q.Where("id != ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// CreateVehicle registers a vehicle. License plates are unique across
// the whole system.
func (s *VehicleService) CreateVehicle(vehicle *models.Vehicle) error {
	if vehicle.LicensePlate == "" {
		return apperr.Validation("Biển số xe không được để trống")
	}
	if !models.ValidVehicleType(vehicle.VehicleType) {
		return apperr.Validation("Loại phương tiện không hợp lệ: %s", vehicle.VehicleType)
	}

	var household models.Household
	if err := s.DB.First(&household, vehicle.HouseholdID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Không tìm thấy hộ khẩu với ID: %d", vehicle.HouseholdID)
		}
		return err
	}

	var count int64
	if err := s.DB.Model(&models.Vehicle{}).
		Where("bien_so_xe = ?", vehicle.LicensePlate).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Biển số xe %s đã tồn tại trong hệ thống", vehicle.LicensePlate)
	}

	if err := s.DB.Create(vehicle).Error; err != nil {
		return err
	}
	vehicle.MonthlyFee = models.MonthlyFeeForType(vehicle.VehicleType)
	vehicle.HouseholdNumber = household.HouseholdNumber
	vehicle.HeadName = household.HeadName
	return nil
}

// UpdateVehicle rewrites the editable fields. A plate change re-checks
// uniqueness against every other vehicle; keeping one's own plate is
// never a conflict.
func (s *VehicleService) UpdateVehicle(id uint, updates *models.Vehicle) (*models.Vehicle, error) {
	vehicle, err := s.GetVehicleByID(id)
	if err != nil {
		return nil, err
	}

	if updates.LicensePlate != "" && updates.LicensePlate != vehicle.LicensePlate {
		var count int64
		if err := s.DB.Model(&models.Vehicle{}).
			Where("bien_so_xe = ? AND id != ?", updates.LicensePlate, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Conflict("Biển số xe %s đã tồn tại trong hệ thống", updates.LicensePlate)
		}
		vehicle.LicensePlate = updates.LicensePlate
	}

	if updates.VehicleType != "" {
		if !models.ValidVehicleType(updates.VehicleType) {
			return nil, apperr.Validation("Loại phương tiện không hợp lệ: %s", updates.VehicleType)
		}
		vehicle.VehicleType = updates.VehicleType
	}
	if updates.Brand != "" {
		vehicle.Brand = updates.Brand
	}
	if updates.Model != "" {
		vehicle.Model = updates.Model
	}
	if updates.ManufactureYear != nil {
		vehicle.ManufactureYear = updates.ManufactureYear
	}
	if updates.Color != "" {
		vehicle.Color = updates.Color
	}
	vehicle.Note = updates.Note

	if err := s.DB.Save(vehicle).Error; err != nil {
		return nil, err
	}
	return s.GetVehicleByID(id)
}

func (s *VehicleService) DeleteVehicle(id uint) error {
	vehicle, err := s.GetVehicleByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(vehicle).Error
}

func (s *VehicleService) CountByType(vehicleType string) (int64, error) {
	if !models.ValidVehicleType(vehicleType) {
		return 0, apperr.Validation("Loại phương tiện không hợp lệ: %s", vehicleType)
	}
	var count int64
	err := s.DB.Model(&models.Vehicle{}).Where("loai_xe = ?", vehicleType).Count(&count).Error
	return count, err
}

// MonthlyParkingFee totals the household's monthly parking charge from
// its registered vehicles.
func (s *VehicleService) MonthlyParkingFee(householdID uint) (float64, error) {
	details, err := s.HouseholdFeeDetails(householdID)
	if err != nil {
		return 0, err
	}
	return details.TotalFee, nil
}

// HouseholdFeeDetails breaks the household's parking bill down by
// vehicle type.
func (s *VehicleService) HouseholdFeeDetails(householdID uint) (*HouseholdParkingFees, error) {
	var household models.Household
	if err := s.DB.First(&household, householdID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Không tìm thấy hộ khẩu với ID: %d", householdID)
		}
		return nil, err
	}

	details := &HouseholdParkingFees{HouseholdID: householdID}
	if err := s.DB.Model(&models.Vehicle{}).
		Where("ho_khau_id = ? AND loai_xe = ?", householdID, models.VehicleTypeMotorcycle).
		Count(&details.MotorcycleCount).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Vehicle{}).
		Where("ho_khau_id = ? AND loai_xe = ?", householdID, models.VehicleTypeCar).
		Count(&details.CarCount).Error; err != nil {
		return nil, err
	}

	details.MotorcycleFee = float64(details.MotorcycleCount) * models.MotorcycleMonthlyFee
	details.CarFee = float64(details.CarCount) * models.CarMonthlyFee
	details.TotalFee = details.MotorcycleFee + details.CarFee
	return details, nil
}

// GetStatistics summarizes the registered fleet and its monthly
// parking revenue.
func (s *VehicleService) GetStatistics() (*VehicleStatistics, error) {
	stats := &VehicleStatistics{}
	if err := s.DB.Model(&models.Vehicle{}).Count(&stats.TotalVehicles).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Vehicle{}).
		Where("loai_xe = ?", models.VehicleTypeMotorcycle).
		Count(&stats.MotorcycleCount).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Vehicle{}).
		Where("loai_xe = ?", models.VehicleTypeCar).
		Count(&stats.CarCount).Error; err != nil {
		return nil, err
	}
	stats.MonthlyRevenue = float64(stats.MotorcycleCount)*models.MotorcycleMonthlyFee +
		float64(stats.CarCount)*models.CarMonthlyFee
	return stats, nil
}
