package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/response"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
	"github.com/lyng148/thien-nguyet-dong-phu/services"
	"github.com/lyng148/thien-nguyet-dong-phu/services/container"
)

// InterfaceVehicleController defines the vehicle endpoints.
type InterfaceVehicleController interface {
	GetVehicles()
	GetVehicle()
	GetByLicensePlate()
	SearchVehicles()
	CreateVehicle()
	UpdateVehicle()
	DeleteVehicle()
	CheckPlate()
	GetParkingFee()
	GetHouseholdFees()
	GetStatistics()
}

// VehicleController handles vehicle requests.
type VehicleController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewVehicleController creates a vehicle controller for one request.
func NewVehicleController(ctx *gin.Context, container *container.ServiceContainer) *VehicleController {
	return &VehicleController{Ctx: ctx, Container: container}
}

func (c *VehicleController) service() services.InterfaceVehicleService {
	return c.Container.GetService("vehicle").(services.InterfaceVehicleService)
}

// GetVehicles godoc
// @Summary      List vehicles
// @Description  All vehicles, or filtered by household or vehicle type
// @Tags         Vehicle
// @Produce      json
// @Param        hoKhauId query int false "household ID"
// @Param        loaiXe query string false "XE_MAY or OTO"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /vehicles [get]
func (c *VehicleController) GetVehicles() {
	if householdID := parseUintQuery(c.Ctx, "hoKhauId"); householdID != nil {
		vehicles, err := c.service().GetByHousehold(*householdID)
		if err != nil {
			response.ServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, vehicles)
		return
	}
	if vehicleType := c.Ctx.Query("loaiXe"); vehicleType != "" {
		vehicles, err := c.service().GetByType(vehicleType)
		if err != nil {
			response.ServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, vehicles)
		return
	}
	vehicles, err := c.service().GetAllVehicles()
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, vehicles)
}

// GetVehicle godoc
// @Summary      Get one vehicle
// @Tags         Vehicle
// @Produce      json
// @Param        id path int true "vehicle ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /vehicles/{id} [get]
func (c *VehicleController) GetVehicle() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	vehicle, err := c.service().GetVehicleByID(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, vehicle)
}

// GetByLicensePlate godoc
// @Summary      Get a vehicle by license plate
// @Tags         Vehicle
// @Produce      json
// @Param        plate path string true "license plate"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /vehicles/plate/{plate} [get]
func (c *VehicleController) GetByLicensePlate() {
	plate := c.Ctx.Param("plate")
	if plate == "" {
		response.ParamError(c.Ctx, "Biển số xe không được để trống")
		return
	}
	vehicle, err := c.service().GetByLicensePlate(plate)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, vehicle)
}

// SearchVehicles godoc
// @Summary      Search vehicles
// @Description  Matches plate, brand and model against the term
// @Tags         Vehicle
// @Produce      json
// @Param        q query string true "search term"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /vehicles/search [get]
func (c *VehicleController) SearchVehicles() {
	term := c.Ctx.Query("q")
	if term == "" {
		response.ParamError(c.Ctx, "Cần tham số q")
		return
	}
	vehicles, err := c.service().Search(term)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, vehicles)
}

// CreateVehicle godoc
// @Summary      Register a vehicle
// @Tags         Vehicle
// @Accept       json
// @Produce      json
// @Param        vehicle body models.Vehicle true "vehicle"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      409 {object} ErrorResponse
// @Router       /vehicles [post]
func (c *VehicleController) CreateVehicle() {
	var vehicle models.Vehicle
	if err := c.Ctx.ShouldBindJSON(&vehicle); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	if vehicle.HouseholdID == 0 {
		response.ParamError(c.Ctx, "hoKhauId là bắt buộc")
		return
	}
	if err := c.service().CreateVehicle(&vehicle); err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, vehicle)
}

// UpdateVehicle godoc
// @Summary      Update a vehicle
// @Tags         Vehicle
// @Accept       json
// @Produce      json
// @Param        id path int true "vehicle ID"
// @Param        vehicle body models.Vehicle true "updated fields"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /vehicles/{id} [put]
func (c *VehicleController) UpdateVehicle() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	var updates models.Vehicle
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	vehicle, err := c.service().UpdateVehicle(id, &updates)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, vehicle)
}

// DeleteVehicle godoc
// @Summary      Delete a vehicle
// @Tags         Vehicle
// @Produce      json
// @Param        id path int true "vehicle ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /vehicles/{id} [delete]
func (c *VehicleController) DeleteVehicle() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	if err := c.service().DeleteVehicle(id); err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// CheckPlate godoc
// @Summary      Check license plate availability
// @Description  vehicleId excludes one vehicle, for edit forms
// @Tags         Vehicle
// @Produce      json
// @Param        bienSoXe query string true "license plate"
// @Param        vehicleId query int false "vehicle ID to exclude"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /vehicles/check-license-plate [get]
func (c *VehicleController) CheckPlate() {
	plate := c.Ctx.Query("bienSoXe")
	if plate == "" {
		response.ParamError(c.Ctx, "Biển số xe không được để trống")
		return
	}
	unique, err := c.service().CheckPlateUnique(plate, parseUintQuery(c.Ctx, "vehicleId"))
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{"unique": unique})
}

// GetParkingFee godoc
// @Summary      Household monthly parking fee
// @Tags         Vehicle
// @Produce      json
// @Param        id path int true "household ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /vehicles/household/{id}/parking-fee [get]
func (c *VehicleController) GetParkingFee() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	fee, err := c.service().MonthlyParkingFee(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{"total": fee})
}

// GetHouseholdFees godoc
// @Summary      Household parking fee breakdown
// @Tags         Vehicle
// @Produce      json
// @Param        id path int true "household ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /vehicles/household/{id}/fees [get]
func (c *VehicleController) GetHouseholdFees() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	details, err := c.service().HouseholdFeeDetails(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, details)
}

// GetStatistics godoc
// @Summary      Fleet statistics
// @Tags         Vehicle
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /vehicles/statistics [get]
func (c *VehicleController) GetStatistics() {
	stats, err := c.service().GetStatistics()
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, stats)
}

// HandleVehicleFunc dispatches vehicle requests.
func HandleVehicleFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewVehicleController(ctx, container)

		switch method {
		case "getVehicles":
			controller.GetVehicles()
		case "getVehicle":
			controller.GetVehicle()
		case "getByLicensePlate":
			controller.GetByLicensePlate()
		case "searchVehicles":
			controller.SearchVehicles()
		case "createVehicle":
			controller.CreateVehicle()
		case "updateVehicle":
			controller.UpdateVehicle()
		case "deleteVehicle":
			controller.DeleteVehicle()
		case "checkPlate":
			controller.CheckPlate()
		case "getParkingFee":
			controller.GetParkingFee()
		case "getHouseholdFees":
			controller.GetHouseholdFees()
		case "getStatistics":
			controller.GetStatistics()
		default:
			response.ParamError(ctx, "Phương thức không hợp lệ")
		}
	}
}
