package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/response"
	"github.com/lyng148/thien-nguyet-dong-phu/services"
	"github.com/lyng148/thien-nguyet-dong-phu/services/container"
)

// InterfaceUtilityServiceController defines the utility consumption
// endpoints.
type InterfaceUtilityServiceController interface {
	GetServices()
	GetService()
	SearchServices()
	GetUnpaid()
	CreateService()
	UpdateService()
	DeleteService()
	MarkPaid()
	MarkUnpaid()
	GetTotals()
	BulkCreate()
}

// UtilityServiceController handles utility consumption requests.
type UtilityServiceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUtilityServiceController creates a controller for one request.
func NewUtilityServiceController(ctx *gin.Context, container *container.ServiceContainer) *UtilityServiceController {
	return &UtilityServiceController{Ctx: ctx, Container: container}
}

func (c *UtilityServiceController) service() services.InterfaceUtilityService {
	return c.Container.GetService("utility").(services.InterfaceUtilityService)
}

// BulkCreateRequest opens one consumption record per active household.
type BulkCreateRequest struct {
	ServiceType string   `json:"loaiDichVu" binding:"required"`
	Month       int      `json:"thang" binding:"required"`
	Year        int      `json:"nam" binding:"required"`
	UnitPrice   *float64 `json:"donGia"`
	FixedFee    *float64 `json:"phiCoDinh"`
	Unit        string   `json:"donViTinh"`
}

// GetServices godoc
// @Summary      List utility consumption records
// @Description  Newest period first; filter by household, type or period
// @Tags         Utility
// @Produce      json
// @Param        hoKhauId query int false "household ID"
// @Param        loaiDichVu query string false "DIEN, NUOC, INTERNET or GAS"
// @Param        thang query int false "month"
// @Param        nam query int false "year"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /utility-services [get]
func (c *UtilityServiceController) GetServices() {
	householdID := parseUintQuery(c.Ctx, "hoKhauId")
	serviceType := c.Ctx.Query("loaiDichVu")
	month := parseIntQuery(c.Ctx, "thang")
	year := parseIntQuery(c.Ctx, "nam")

	if householdID == nil && serviceType == "" && month == 0 && year == 0 {
		records, err := c.service().GetAllServices()
		if err != nil {
			response.ServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, records)
		return
	}

	records, err := c.service().Search(householdID, serviceType, month, year, "")
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, records)
}

// GetService godoc
// @Summary      Get one consumption record
// @Tags         Utility
// @Produce      json
// @Param        id path int true "record ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /utility-services/{id} [get]
func (c *UtilityServiceController) GetService() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	record, err := c.service().GetServiceByID(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, record)
}

// SearchServices godoc
// @Summary      Search consumption records
// @Tags         Utility
// @Produce      json
// @Param        hoKhauId query int false "household ID"
// @Param        loaiDichVu query string false "service type"
// @Param        thang query int false "month"
// @Param        nam query int false "year"
// @Param        trangThai query string false "CHUA_THANH_TOAN or DA_THANH_TOAN"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /utility-services/search [get]
func (c *UtilityServiceController) SearchServices() {
	records, err := c.service().Search(
		parseUintQuery(c.Ctx, "hoKhauId"),
		c.Ctx.Query("loaiDichVu"),
		parseIntQuery(c.Ctx, "thang"),
		parseIntQuery(c.Ctx, "nam"),
		c.Ctx.Query("trangThai"),
	)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, records)
}

// GetUnpaid godoc
// @Summary      List unpaid consumption records
// @Tags         Utility
// @Produce      json
// @Param        hoKhauId query int false "household ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /utility-services/unpaid [get]
func (c *UtilityServiceController) GetUnpaid() {
	records, err := c.service().GetUnpaid(parseUintQuery(c.Ctx, "hoKhauId"))
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, records)
}

// CreateService godoc
// @Summary      Record one month's consumption
// @Description  The total resolves from the first present input: explicit amount, fixed fee, metered usage times unit price, bare unit price, zero
// @Tags         Utility
// @Accept       json
// @Produce      json
// @Param        record body services.UtilityInput true "consumption inputs"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /utility-services [post]
func (c *UtilityServiceController) CreateService() {
	var input services.UtilityInput
	if err := c.Ctx.ShouldBindJSON(&input); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	record, err := c.service().CreateService(&input)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, record)
}

// UpdateService godoc
// @Summary      Update a consumption record
// @Description  The total is always recomputed from the updated inputs
// @Tags         Utility
// @Accept       json
// @Produce      json
// @Param        id path int true "record ID"
// @Param        record body services.UtilityInput true "consumption inputs"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /utility-services/{id} [put]
func (c *UtilityServiceController) UpdateService() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	var input services.UtilityInput
	if err := c.Ctx.ShouldBindJSON(&input); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	record, err := c.service().UpdateService(id, &input)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, record)
}

// DeleteService godoc
// @Summary      Delete an unpaid consumption record
// @Tags         Utility
// @Produce      json
// @Param        id path int true "record ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /utility-services/{id} [delete]
func (c *UtilityServiceController) DeleteService() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	if err := c.service().DeleteService(id); err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// MarkPaid godoc
// @Summary      Mark a consumption record paid
// @Tags         Utility
// @Produce      json
// @Param        id path int true "record ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /utility-services/{id}/pay [put]
func (c *UtilityServiceController) MarkPaid() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	record, err := c.service().MarkPaid(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, record)
}

// MarkUnpaid godoc
// @Summary      Mark a consumption record unpaid
// @Tags         Utility
// @Produce      json
// @Param        id path int true "record ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /utility-services/{id}/unpay [put]
func (c *UtilityServiceController) MarkUnpaid() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	record, err := c.service().MarkUnpaid(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, record)
}

// GetTotals godoc
// @Summary      Consumption totals
// @Description  Total billed for one household, for one household's period, or for a whole period
// @Tags         Utility
// @Produce      json
// @Param        hoKhauId query int false "household ID"
// @Param        thang query int false "month"
// @Param        nam query int false "year"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /utility-services/totals [get]
func (c *UtilityServiceController) GetTotals() {
	month := parseIntQuery(c.Ctx, "thang")
	year := parseIntQuery(c.Ctx, "nam")

	if householdID := parseUintQuery(c.Ctx, "hoKhauId"); householdID != nil {
		var (
			total float64
			err   error
		)
		if month != 0 && year != 0 {
			total, err = c.service().TotalByHouseholdAndPeriod(*householdID, month, year)
		} else {
			total, err = c.service().TotalByHousehold(*householdID)
		}
		if err != nil {
			response.ServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, gin.H{"total": total})
		return
	}

	if month == 0 || year == 0 {
		response.ParamError(c.Ctx, "Cần hoKhauId hoặc cặp thang/nam")
		return
	}
	total, err := c.service().TotalByPeriod(month, year)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{"total": total})
}

// BulkCreate godoc
// @Summary      Open a period for every active household
// @Description  Households that already have the record for the period are skipped
// @Tags         Utility
// @Accept       json
// @Produce      json
// @Param        request body BulkCreateRequest true "bulk parameters"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      400 {object} ErrorResponse
// @Router       /utility-services/bulk [post]
func (c *UtilityServiceController) BulkCreate() {
	var req BulkCreateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	created, skipped, err := c.service().BulkCreate(
		req.ServiceType, req.Month, req.Year, req.UnitPrice, req.FixedFee, req.Unit)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{"created": created, "skipped": skipped})
}

// HandleUtilityServiceFunc dispatches utility consumption requests.
func HandleUtilityServiceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUtilityServiceController(ctx, container)

		switch method {
		case "getServices":
			controller.GetServices()
		case "getService":
			controller.GetService()
		case "searchServices":
			controller.SearchServices()
		case "getUnpaid":
			controller.GetUnpaid()
		case "createService":
			controller.CreateService()
		case "updateService":
			controller.UpdateService()
		case "deleteService":
			controller.DeleteService()
		case "markPaid":
			controller.MarkPaid()
		case "markUnpaid":
			controller.MarkUnpaid()
		case "getTotals":
			controller.GetTotals()
		case "bulkCreate":
			controller.BulkCreate()
		default:
			response.ParamError(ctx, "Phương thức không hợp lệ")
		}
	}
}
