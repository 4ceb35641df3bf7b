package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/response"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
	"github.com/lyng148/thien-nguyet-dong-phu/services"
	"github.com/lyng148/thien-nguyet-dong-phu/services/container"
)

// InterfaceFeeController defines the fee type endpoints.
type InterfaceFeeController interface {
	GetFees()
	GetFee()
	SearchFees()
	GetOverdueFees()
	GetByDueDateRange()
	CreateFee()
	UpdateFee()
	DeleteFee()
	ActivateFee()
	ToggleStatus()
	GetStatistics()
	GetPaidHouseholds()
}

// FeeController handles fee type requests.
type FeeController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewFeeController creates a fee controller for one request.
func NewFeeController(ctx *gin.Context, container *container.ServiceContainer) *FeeController {
	return &FeeController{Ctx: ctx, Container: container}
}

func (c *FeeController) service() services.InterfaceFeeService {
	return c.Container.GetService("fee").(services.InterfaceFeeService)
}

// GetFees godoc
// @Summary      List fee types
// @Description  Active fee types by default; all=true includes deactivated ones, batBuoc filters by mandatory flag
// @Tags         Fee
// @Produce      json
// @Param        all query bool false "include inactive fee types"
// @Param        batBuoc query bool false "filter by mandatory flag"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /fees [get]
func (c *FeeController) GetFees() {
	if raw := c.Ctx.Query("batBuoc"); raw != "" {
		fees, err := c.service().FindByMandatory(raw == "true")
		if err != nil {
			response.ServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, fees)
		return
	}
	fees, err := c.service().GetAllFees(c.Ctx.Query("all") == "true")
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, fees)
}

// GetFee godoc
// @Summary      Get one fee type
// @Tags         Fee
// @Produce      json
// @Param        id path int true "fee type ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /fees/{id} [get]
func (c *FeeController) GetFee() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	fee, err := c.service().GetFeeByID(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, fee)
}

// SearchFees godoc
// @Summary      Search fee types by name
// @Tags         Fee
// @Produce      json
// @Param        tenKhoanThu query string true "name fragment"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /fees/search [get]
func (c *FeeController) SearchFees() {
	name := c.Ctx.Query("tenKhoanThu")
	if name == "" {
		response.ParamError(c.Ctx, "Cần tham số tenKhoanThu")
		return
	}
	fees, err := c.service().SearchByName(name)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, fees)
}

// GetOverdueFees godoc
// @Summary      List overdue fee types
// @Description  Active fee types whose due date has passed
// @Tags         Fee
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /fees/overdue [get]
func (c *FeeController) GetOverdueFees() {
	fees, err := c.service().FindOverdue()
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, fees)
}

// GetByDueDateRange godoc
// @Summary      List fee types due in a date range
// @Tags         Fee
// @Produce      json
// @Param        from query string true "start date (YYYY-MM-DD)"
// @Param        to query string true "end date (YYYY-MM-DD)"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /fees/due [get]
func (c *FeeController) GetByDueDateRange() {
	from, err := models.ParseDate(c.Ctx.Query("from"))
	if err != nil {
		response.ParamError(c.Ctx, "Tham số from không hợp lệ")
		return
	}
	to, err := models.ParseDate(c.Ctx.Query("to"))
	if err != nil {
		response.ParamError(c.Ctx, "Tham số to không hợp lệ")
		return
	}
	fees, err := c.service().FindByDueDateRange(from, to)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, fees)
}

// CreateFee godoc
// @Summary      Create a fee type
// @Tags         Fee
// @Accept       json
// @Produce      json
// @Param        fee body models.FeeType true "fee type"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      400 {object} ErrorResponse
// @Router       /fees [post]
func (c *FeeController) CreateFee() {
	var fee models.FeeType
	if err := c.Ctx.ShouldBindJSON(&fee); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	if err := c.service().CreateFee(&fee); err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, fee)
}

// UpdateFee godoc
// @Summary      Update a fee type
// @Tags         Fee
// @Accept       json
// @Produce      json
// @Param        id path int true "fee type ID"
// @Param        fee body models.FeeType true "updated fields"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /fees/{id} [put]
func (c *FeeController) UpdateFee() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	var updates models.FeeType
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	fee, err := c.service().UpdateFee(id, &updates)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, fee)
}

// DeleteFee godoc
// @Summary      Deactivate or delete a fee type
// @Description  An active fee type is deactivated; an already inactive one is permanently removed
// @Tags         Fee
// @Produce      json
// @Param        id path int true "fee type ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /fees/{id} [delete]
func (c *FeeController) DeleteFee() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	deleted, err := c.service().DeactivateOrDelete(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{"deleted": deleted})
}

// ActivateFee godoc
// @Summary      Reactivate a fee type
// @Tags         Fee
// @Produce      json
// @Param        id path int true "fee type ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /fees/{id}/activate [put]
func (c *FeeController) ActivateFee() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	if err := c.service().ActivateFee(id); err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// FeeStatusRequest carries the target active flag for a status toggle.
type FeeStatusRequest struct {
	Active bool `json:"hoatDong"`
}

// ToggleStatus godoc
// @Summary      Set a fee type's active flag
// @Tags         Fee
// @Accept       json
// @Produce      json
// @Param        id path int true "fee type ID"
// @Param        status body FeeStatusRequest true "target status"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /fees/{id}/status [patch]
func (c *FeeController) ToggleStatus() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	var req FeeStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	if err := c.service().SetFeeStatus(id, req.Active); err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// GetStatistics godoc
// @Summary      Fee type collection statistics
// @Tags         Fee
// @Produce      json
// @Param        id path int true "fee type ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /fees/{id}/statistics [get]
func (c *FeeController) GetStatistics() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	stats, err := c.service().GetStatistics(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, stats)
}

// GetPaidHouseholds godoc
// @Summary      Households that paid a fee type
// @Tags         Fee
// @Produce      json
// @Param        id path int true "fee type ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /fees/{id}/households [get]
func (c *FeeController) GetPaidHouseholds() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	households, err := c.service().PaidHouseholds(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, households)
}

// HandleFeeFunc dispatches fee type requests.
func HandleFeeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewFeeController(ctx, container)

		switch method {
		case "getFees":
			controller.GetFees()
		case "getFee":
			controller.GetFee()
		case "searchFees":
			controller.SearchFees()
		case "getOverdueFees":
			controller.GetOverdueFees()
		case "getByDueDateRange":
			controller.GetByDueDateRange()
		case "createFee":
			controller.CreateFee()
		case "updateFee":
			controller.UpdateFee()
		case "deleteFee":
			controller.DeleteFee()
		case "activateFee":
			controller.ActivateFee()
		case "toggleStatus":
			controller.ToggleStatus()
		case "getStatistics":
			controller.GetStatistics()
		case "getPaidHouseholds":
			controller.GetPaidHouseholds()
		default:
			response.ParamError(ctx, "Phương thức không hợp lệ")
		}
	}
}
