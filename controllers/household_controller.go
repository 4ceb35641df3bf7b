package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/response"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
	"github.com/lyng148/thien-nguyet-dong-phu/services"
	"github.com/lyng148/thien-nguyet-dong-phu/services/container"
)

// InterfaceHouseholdController defines the household endpoints.
type InterfaceHouseholdController interface {
	GetHouseholds()
	GetHousehold()
	GetHouseholdByNumber()
	SearchHouseholds()
	CreateHousehold()
	UpdateHousehold()
	DeleteHousehold()
	ActivateHousehold()
	GetMembers()
	AddMember()
	RemoveMember()
	GetPayments()
	GetStatistics()
}

// HouseholdController handles household requests.
type HouseholdController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHouseholdController creates a household controller for one request.
func NewHouseholdController(ctx *gin.Context, container *container.ServiceContainer) *HouseholdController {
	return &HouseholdController{Ctx: ctx, Container: container}
}

func (c *HouseholdController) service() services.InterfaceHouseholdService {
	return c.Container.GetService("household").(services.InterfaceHouseholdService)
}

// MemberRequest attaches or detaches a resident.
type MemberRequest struct {
	ResidentID   uint   `json:"nhanKhauId" binding:"required"`
	Relationship string `json:"quanHeVoiChuHo"`
	Note         string `json:"ghiChu"`
}

// GetHouseholds godoc
// @Summary      List households
// @Description  Lists active households; pass all=true to include deactivated ones
// @Tags         Household
// @Produce      json
// @Param        all query bool false "include inactive households"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      500 {object} ErrorResponse
// @Router       /households [get]
func (c *HouseholdController) GetHouseholds() {
	showAll := c.Ctx.Query("all") == "true"
	households, err := c.service().GetAllHouseholds(showAll)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, households)
}

// GetHousehold godoc
// @Summary      Get one household
// @Tags         Household
// @Produce      json
// @Param        id path int true "household ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /households/{id} [get]
func (c *HouseholdController) GetHousehold() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	household, err := c.service().GetHouseholdByID(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, household)
}

// GetHouseholdByNumber godoc
// @Summary      Get a household by its number
// @Tags         Household
// @Produce      json
// @Param        number path string true "household number"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /households/number/{number} [get]
func (c *HouseholdController) GetHouseholdByNumber() {
	number := c.Ctx.Param("number")
	if number == "" {
		response.ParamError(c.Ctx, "Số hộ khẩu không được để trống")
		return
	}
	household, err := c.service().GetHouseholdByNumber(number)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, household)
}

// SearchHouseholds godoc
// @Summary      Search households
// @Description  Searches by head name (chuHo) or address; one of the two query parameters is required
// @Tags         Household
// @Produce      json
// @Param        chuHo query string false "head name fragment"
// @Param        address query string false "address fragment"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /households/search [get]
func (c *HouseholdController) SearchHouseholds() {
	if headName := c.Ctx.Query("chuHo"); headName != "" {
		households, err := c.service().SearchByHeadName(headName)
		if err != nil {
			response.ServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, households)
		return
	}
	if address := c.Ctx.Query("address"); address != "" {
		households, err := c.service().SearchByAddress(address)
		if err != nil {
			response.ServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, households)
		return
	}
	response.ParamError(c.Ctx, "Cần tham số chuHo hoặc address")
}

// CreateHousehold godoc
// @Summary      Create a household
// @Tags         Household
// @Accept       json
// @Produce      json
// @Param        household body models.Household true "household"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      409 {object} ErrorResponse
// @Router       /households [post]
func (c *HouseholdController) CreateHousehold() {
	var household models.Household
	if err := c.Ctx.ShouldBindJSON(&household); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	if household.HouseholdNumber == "" || household.HeadName == "" {
		response.ParamError(c.Ctx, "Số hộ khẩu và chủ hộ không được để trống")
		return
	}
	if err := c.service().CreateHousehold(&household); err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, household)
}

// UpdateHousehold godoc
// @Summary      Update a household
// @Tags         Household
// @Accept       json
// @Produce      json
// @Param        id path int true "household ID"
// @Param        household body models.Household true "updated fields"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /households/{id} [put]
func (c *HouseholdController) UpdateHousehold() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	var updates models.Household
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	household, err := c.service().UpdateHousehold(id, &updates)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, household)
}

// DeleteHousehold godoc
// @Summary      Deactivate or delete a household
// @Description  An active household is deactivated; an already inactive one is permanently removed
// @Tags         Household
// @Produce      json
// @Param        id path int true "household ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /households/{id} [delete]
func (c *HouseholdController) DeleteHousehold() {
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

// ActivateHousehold godoc
// @Summary      Reactivate a household
// @Tags         Household
// @Produce      json
// @Param        id path int true "household ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /households/{id}/activate [put]
func (c *HouseholdController) ActivateHousehold() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	if err := c.service().ActivateHousehold(id); err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// GetMembers godoc
// @Summary      List household members
// @Tags         Household
// @Produce      json
// @Param        id path int true "household ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /households/{id}/members [get]
func (c *HouseholdController) GetMembers() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	members, err := c.service().GetMembers(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, members)
}

// AddMember godoc
// @Summary      Add a resident to the household
// @Description  Attaches an unattached resident and records the change in the household history
// @Tags         Household
// @Accept       json
// @Produce      json
// @Param        id path int true "household ID"
// @Param        member body MemberRequest true "member"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /households/{id}/members [post]
func (c *HouseholdController) AddMember() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	var req MemberRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	household, err := c.service().AddMember(id, req.ResidentID, req.Relationship, req.Note)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, household)
}

// RemoveMember godoc
// @Summary      Remove a resident from the household
// @Tags         Household
// @Produce      json
// @Param        id path int true "household ID"
// @Param        residentId path int true "resident ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /households/{id}/members/{residentId} [delete]
func (c *HouseholdController) RemoveMember() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	residentID, ok := parsePathUint(c.Ctx, "residentId")
	if !ok {
		return
	}
	household, err := c.service().RemoveMember(id, residentID, c.Ctx.Query("ghiChu"))
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, household)
}

// GetStatistics godoc
// @Summary      Household payment statistics
// @Tags         Household
// @Produce      json
// @Param        id path int true "household ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /households/{id}/statistics [get]
// GetPayments godoc
// @Summary      List a household's fee payments
// @Tags         Household
// @Produce      json
// @Param        id path int true "household ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /households/{id}/payments [get]
func (c *HouseholdController) GetPayments() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	if _, err := c.service().GetHouseholdByID(id); err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	payments, err := c.Container.GetService("payment").(services.InterfacePaymentService).
		GetPaymentsByHousehold(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, payments)
}

func (c *HouseholdController) GetStatistics() {
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

// HandleHouseholdFunc dispatches household requests to a controller
// built for the request.
func HandleHouseholdFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHouseholdController(ctx, container)

		switch method {
		case "getHouseholds":
			controller.GetHouseholds()
		case "getHousehold":
			controller.GetHousehold()
		case "getHouseholdByNumber":
			controller.GetHouseholdByNumber()
		case "searchHouseholds":
			controller.SearchHouseholds()
		case "createHousehold":
			controller.CreateHousehold()
		case "updateHousehold":
			controller.UpdateHousehold()
		case "deleteHousehold":
			controller.DeleteHousehold()
		case "activateHousehold":
			controller.ActivateHousehold()
		case "getMembers":
			controller.GetMembers()
		case "addMember":
			controller.AddMember()
		case "removeMember":
			controller.RemoveMember()
		case "getPayments":
			controller.GetPayments()
		case "getStatistics":
			controller.GetStatistics()
		default:
			response.ParamError(ctx, "Phương thức không hợp lệ")
		}
	}
}
