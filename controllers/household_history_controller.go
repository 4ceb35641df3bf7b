package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/response"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
	"github.com/lyng148/thien-nguyet-dong-phu/services"
	"github.com/lyng148/thien-nguyet-dong-phu/services/container"
)

// InterfaceHouseholdHistoryController defines the change log endpoints.
type InterfaceHouseholdHistoryController interface {
	GetEntries()
	GetEntry()
	CreateEntry()
	DeleteEntry()
}

// HouseholdHistoryController handles change log requests.
type HouseholdHistoryController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHouseholdHistoryController creates a history controller for one request.
func NewHouseholdHistoryController(ctx *gin.Context, container *container.ServiceContainer) *HouseholdHistoryController {
	return &HouseholdHistoryController{Ctx: ctx, Container: container}
}

func (c *HouseholdHistoryController) service() services.InterfaceHouseholdHistoryService {
	return c.Container.GetService("household_history").(services.InterfaceHouseholdHistoryService)
}

// GetEntries godoc
// @Summary      List history entries
// @Description  Newest first; filter by household, resident, change type or date range
// @Tags         HouseholdHistory
// @Produce      json
// @Param        hoKhauId query int false "household ID"
// @Param        nhanKhauId query int false "resident ID"
// @Param        loaiThayDoi query string false "change type"
// @Param        from query string false "start date (YYYY-MM-DD)"
// @Param        to query string false "end date (YYYY-MM-DD)"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /household-history [get]
func (c *HouseholdHistoryController) GetEntries() {
	var (
		entries []models.HouseholdHistory
		err     error
	)
	switch {
	case parseUintQuery(c.Ctx, "hoKhauId") != nil:
		entries, err = c.service().GetByHousehold(*parseUintQuery(c.Ctx, "hoKhauId"))
	case parseUintQuery(c.Ctx, "nhanKhauId") != nil:
		entries, err = c.service().GetByResident(*parseUintQuery(c.Ctx, "nhanKhauId"))
	case c.Ctx.Query("loaiThayDoi") != "":
		entries, err = c.service().GetByChangeType(c.Ctx.Query("loaiThayDoi"))
	case c.Ctx.Query("from") != "" && c.Ctx.Query("to") != "":
		var from, to models.Date
		from, err = models.ParseDate(c.Ctx.Query("from"))
		if err != nil {
			response.ParamError(c.Ctx, "Tham số from không hợp lệ")
			return
		}
		to, err = models.ParseDate(c.Ctx.Query("to"))
		if err != nil {
			response.ParamError(c.Ctx, "Tham số to không hợp lệ")
			return
		}
		entries, err = c.service().GetByDateRange(from, to)
	default:
		entries, err = c.service().GetAllEntries()
	}
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, entries)
}

// GetEntry godoc
// @Summary      Get one history entry
// @Tags         HouseholdHistory
// @Produce      json
// @Param        id path int true "entry ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /household-history/{id} [get]
func (c *HouseholdHistoryController) GetEntry() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	entry, err := c.service().GetEntryByID(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, entry)
}

// CreateEntry godoc
// @Summary      Record a manual history entry
// @Tags         HouseholdHistory
// @Accept       json
// @Produce      json
// @Param        entry body models.HouseholdHistory true "entry"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      400 {object} ErrorResponse
// @Router       /household-history [post]
func (c *HouseholdHistoryController) CreateEntry() {
	var entry models.HouseholdHistory
	if err := c.Ctx.ShouldBindJSON(&entry); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	if err := c.service().CreateEntry(&entry); err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, entry)
}

// DeleteEntry godoc
// @Summary      Delete a history entry
// @Tags         HouseholdHistory
// @Produce      json
// @Param        id path int true "entry ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /household-history/{id} [delete]
func (c *HouseholdHistoryController) DeleteEntry() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	if err := c.service().DeleteEntry(id); err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// HandleHouseholdHistoryFunc dispatches change log requests.
func HandleHouseholdHistoryFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHouseholdHistoryController(ctx, container)

		switch method {
		case "getEntries":
			controller.GetEntries()
		case "getEntry":
			controller.GetEntry()
		case "createEntry":
			controller.CreateEntry()
		case "deleteEntry":
			controller.DeleteEntry()
		default:
			response.ParamError(ctx, "Phương thức không hợp lệ")
		}
	}
}
