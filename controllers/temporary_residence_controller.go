package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/response"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
	"github.com/lyng148/thien-nguyet-dong-phu/services"
	"github.com/lyng148/thien-nguyet-dong-phu/services/container"
)

// InterfaceTemporaryResidenceController defines the temporary residence
// endpoints.
type InterfaceTemporaryResidenceController interface {
	GetRecords()
	GetRecord()
	CreateRecord()
	UpdateRecord()
	DeleteRecord()
}

// TemporaryResidenceController handles temporary residence requests.
type TemporaryResidenceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewTemporaryResidenceController creates a controller for one request.
func NewTemporaryResidenceController(ctx *gin.Context, container *container.ServiceContainer) *TemporaryResidenceController {
	return &TemporaryResidenceController{Ctx: ctx, Container: container}
}

func (c *TemporaryResidenceController) service() services.InterfaceTemporaryResidenceService {
	return c.Container.GetService("temporary_residence").(services.InterfaceTemporaryResidenceService)
}

// GetRecords godoc
// @Summary      List temporary residence records
// @Description  Paginated, newest first; filter by resident, status or date range
// @Tags         TemporaryResidence
// @Produce      json
// @Param        page query int false "page, default 1"
// @Param        pageSize query int false "page size, default 10"
// @Param        nhanKhauId query int false "resident ID"
// @Param        trangThai query string false "TAM_TRU or TAM_VANG"
// @Param        from query string false "start date (YYYY-MM-DD)"
// @Param        to query string false "end date (YYYY-MM-DD)"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /temporary-residence [get]
func (c *TemporaryResidenceController) GetRecords() {
	if residentID := parseUintQuery(c.Ctx, "nhanKhauId"); residentID != nil {
		records, err := c.service().GetByResident(*residentID)
		if err != nil {
			response.ServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, records)
		return
	}
	if status := c.Ctx.Query("trangThai"); status != "" {
		records, err := c.service().GetByStatus(status)
		if err != nil {
			response.ServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, records)
		return
	}
	if c.Ctx.Query("from") != "" && c.Ctx.Query("to") != "" {
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
		records, err := c.service().GetByDateRange(from, to)
		if err != nil {
			response.ServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, records)
		return
	}

	page := parseIntQuery(c.Ctx, "page")
	pageSize := parseIntQuery(c.Ctx, "pageSize")
	records, pagination, err := c.service().GetPage(page, pageSize)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{
		"records":    records,
		"pagination": pagination,
	})
}

// GetRecord godoc
// @Summary      Get one temporary residence record
// @Tags         TemporaryResidence
// @Produce      json
// @Param        id path int true "record ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /temporary-residence/{id} [get]
func (c *TemporaryResidenceController) GetRecord() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	record, err := c.service().GetRecordByID(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, record)
}

// CreateRecord godoc
// @Summary      Declare a temporary residence or absence
// @Description  Also appends the matching entry to the resident's household history
// @Tags         TemporaryResidence
// @Accept       json
// @Produce      json
// @Param        record body models.TemporaryResidence true "record"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      400 {object} ErrorResponse
// @Router       /temporary-residence [post]
func (c *TemporaryResidenceController) CreateRecord() {
	var record models.TemporaryResidence
	if err := c.Ctx.ShouldBindJSON(&record); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	if err := c.service().CreateRecord(&record); err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, record)
}

// UpdateRecord godoc
// @Summary      Update a temporary residence record
// @Tags         TemporaryResidence
// @Accept       json
// @Produce      json
// @Param        id path int true "record ID"
// @Param        record body models.TemporaryResidence true "updated fields"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /temporary-residence/{id} [put]
func (c *TemporaryResidenceController) UpdateRecord() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	var updates models.TemporaryResidence
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	record, err := c.service().UpdateRecord(id, &updates)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, record)
}

// DeleteRecord godoc
// @Summary      Delete a temporary residence record
// @Tags         TemporaryResidence
// @Produce      json
// @Param        id path int true "record ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /temporary-residence/{id} [delete]
func (c *TemporaryResidenceController) DeleteRecord() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	if err := c.service().DeleteRecord(id); err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// HandleTemporaryResidenceFunc dispatches temporary residence requests.
func HandleTemporaryResidenceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTemporaryResidenceController(ctx, container)

		switch method {
		case "getRecords":
			controller.GetRecords()
		case "getRecord":
			controller.GetRecord()
		case "createRecord":
			controller.CreateRecord()
		case "updateRecord":
			controller.UpdateRecord()
		case "deleteRecord":
			controller.DeleteRecord()
		default:
			response.ParamError(ctx, "Phương thức không hợp lệ")
		}
	}
}
