package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/response"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
	"github.com/lyng148/thien-nguyet-dong-phu/services"
	"github.com/lyng148/thien-nguyet-dong-phu/services/container"
)

// InterfaceUtilityPaymentController defines the utility settlement
// endpoints.
type InterfaceUtilityPaymentController interface {
	GetPayments()
	GetPayment()
	GetByTransactionCode()
	CreatePayment()
	UpdatePayment()
	CancelPayment()
	DeletePayment()
	GetTotals()
}

// UtilityPaymentController handles utility settlement requests.
type UtilityPaymentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUtilityPaymentController creates a controller for one request.
func NewUtilityPaymentController(ctx *gin.Context, container *container.ServiceContainer) *UtilityPaymentController {
	return &UtilityPaymentController{Ctx: ctx, Container: container}
}

func (c *UtilityPaymentController) service() services.InterfaceUtilityPaymentService {
	return c.Container.GetService("utility_payment").(services.InterfaceUtilityPaymentService)
}

// CancelRequest carries the cancellation reason.
type CancelRequest struct {
	Reason string `json:"lyDo"`
}

// GetPayments godoc
// @Summary      List utility payments
// @Description  Newest period first; filter by household, period or status
// @Tags         UtilityPayment
// @Produce      json
// @Param        hoKhauId query int false "household ID"
// @Param        thang query int false "month"
// @Param        nam query int false "year"
// @Param        trangThai query string false "THANH_CONG or HUY"
// @Param        from query string false "payment date from (yyyy-MM-dd)"
// @Param        to query string false "payment date to (yyyy-MM-dd)"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /utility-payments [get]
func (c *UtilityPaymentController) GetPayments() {
	householdID := parseUintQuery(c.Ctx, "hoKhauId")
	month := parseIntQuery(c.Ctx, "thang")
	year := parseIntQuery(c.Ctx, "nam")
	status := c.Ctx.Query("trangThai")

	if c.Ctx.Query("from") != "" && c.Ctx.Query("to") != "" {
		from, err := models.ParseDate(c.Ctx.Query("from"))
		if err != nil {
			response.ParamError(c.Ctx, "Ngày bắt đầu không hợp lệ")
			return
		}
		to, err := models.ParseDate(c.Ctx.Query("to"))
		if err != nil {
			response.ParamError(c.Ctx, "Ngày kết thúc không hợp lệ")
			return
		}
		payments, err := c.service().GetByDateRange(from, to)
		if err != nil {
			response.ServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, payments)
		return
	}

	if householdID == nil && month == 0 && year == 0 && status == "" {
		payments, err := c.service().GetAllPayments()
		if err != nil {
			response.ServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, payments)
		return
	}

	payments, err := c.service().Search(householdID, month, year, status)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, payments)
}

// GetPayment godoc
// @Summary      Get one utility payment
// @Tags         UtilityPayment
// @Produce      json
// @Param        id path int true "payment ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /utility-payments/{id} [get]
func (c *UtilityPaymentController) GetPayment() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	payment, err := c.service().GetPaymentByID(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, payment)
}

// GetByTransactionCode godoc
// @Summary      Look a payment up by transaction code
// @Tags         UtilityPayment
// @Produce      json
// @Param        code path string true "transaction code"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /utility-payments/code/{code} [get]
func (c *UtilityPaymentController) GetByTransactionCode() {
	transactionCode := c.Ctx.Param("code")
	if transactionCode == "" {
		response.ParamError(c.Ctx, "Mã giao dịch không được để trống")
		return
	}
	payment, err := c.service().GetByTransactionCode(transactionCode)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, payment)
}

// CreatePayment godoc
// @Summary      Settle a household's period
// @Description  One successful payment per household per period; the transaction code is generated server side
// @Tags         UtilityPayment
// @Accept       json
// @Produce      json
// @Param        payment body models.UtilityPayment true "payment"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      409 {object} ErrorResponse
// @Router       /utility-payments [post]
func (c *UtilityPaymentController) CreatePayment() {
	var payment models.UtilityPayment
	if err := c.Ctx.ShouldBindJSON(&payment); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	if payment.HouseholdID == 0 {
		response.ParamError(c.Ctx, "hoKhauId là bắt buộc")
		return
	}
	created, err := c.service().CreatePayment(&payment)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, created)
}

// UpdatePayment godoc
// @Summary      Update a utility payment
// @Tags         UtilityPayment
// @Accept       json
// @Produce      json
// @Param        id path int true "payment ID"
// @Param        payment body models.UtilityPayment true "updated fields"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /utility-payments/{id} [put]
func (c *UtilityPaymentController) UpdatePayment() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	var updates models.UtilityPayment
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	payment, err := c.service().UpdatePayment(id, &updates)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, payment)
}

// CancelPayment godoc
// @Summary      Cancel a utility payment
// @Description  Voids the payment, appends the reason to the note and reopens the linked consumption record
// @Tags         UtilityPayment
// @Accept       json
// @Produce      json
// @Param        id path int true "payment ID"
// @Param        request body CancelRequest false "cancellation reason"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /utility-payments/{id}/cancel [put]
func (c *UtilityPaymentController) CancelPayment() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	var req CancelRequest
	_ = c.Ctx.ShouldBindJSON(&req)
	payment, err := c.service().CancelPayment(id, req.Reason)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, payment)
}

// DeletePayment godoc
// @Summary      Delete a canceled utility payment
// @Tags         UtilityPayment
// @Produce      json
// @Param        id path int true "payment ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /utility-payments/{id} [delete]
func (c *UtilityPaymentController) DeletePayment() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	if err := c.service().DeletePayment(id); err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// GetTotals godoc
// @Summary      Settlement totals
// @Description  Sum of successful payments, scoped to one period when thang and nam are given, and to one household when hoKhauId is also given
// @Tags         UtilityPayment
// @Produce      json
// @Param        hoKhauId query int false "household ID"
// @Param        thang query int false "month"
// @Param        nam query int false "year"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /utility-payments/totals [get]
func (c *UtilityPaymentController) GetTotals() {
	month := parseIntQuery(c.Ctx, "thang")
	year := parseIntQuery(c.Ctx, "nam")

	var (
		total float64
		err   error
	)
	householdID := parseUintQuery(c.Ctx, "hoKhauId")
	switch {
	case householdID != nil && month != 0 && year != 0:
		total, err = c.service().TotalPaidByHouseholdAndPeriod(*householdID, month, year)
	case month != 0 && year != 0:
		total, err = c.service().TotalPaidByPeriod(month, year)
	default:
		total, err = c.service().TotalPaid()
	}
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{"total": total})
}

// HandleUtilityPaymentFunc dispatches utility settlement requests.
func HandleUtilityPaymentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUtilityPaymentController(ctx, container)

		switch method {
		case "getPayments":
			controller.GetPayments()
		case "getPayment":
			controller.GetPayment()
		case "getByTransactionCode":
			controller.GetByTransactionCode()
		case "createPayment":
			controller.CreatePayment()
		case "updatePayment":
			controller.UpdatePayment()
		case "cancelPayment":
			controller.CancelPayment()
		case "deletePayment":
			controller.DeletePayment()
		case "getTotals":
			controller.GetTotals()
		default:
			response.ParamError(ctx, "Phương thức không hợp lệ")
		}
	}
}
