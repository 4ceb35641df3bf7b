package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/response"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
	"github.com/lyng148/thien-nguyet-dong-phu/services"
	"github.com/lyng148/thien-nguyet-dong-phu/services/container"
)

// InterfacePaymentController defines the payment endpoints.
type InterfacePaymentController interface {
	GetPayments()
	GetPayment()
	GetUnverified()
	GetByDateRange()
	CreatePayment()
	UpdatePayment()
	DeletePayment()
	VerifyPayment()
	UnverifyPayment()
	GetTotals()
	GetStatistics()
}

// PaymentController handles fee payment requests.
type PaymentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPaymentController creates a payment controller for one request.
func NewPaymentController(ctx *gin.Context, container *container.ServiceContainer) *PaymentController {
	return &PaymentController{Ctx: ctx, Container: container}
}

func (c *PaymentController) service() services.InterfacePaymentService {
	return c.Container.GetService("payment").(services.InterfacePaymentService)
}

// GetPayments godoc
// @Summary      List payments
// @Description  All payments, narrowed by household and/or fee type when the query parameters are given
// @Tags         Payment
// @Produce      json
// @Param        hoKhauId query int false "household ID"
// @Param        khoanThuId query int false "fee type ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /payments [get]
func (c *PaymentController) GetPayments() {
	householdID := parseUintQuery(c.Ctx, "hoKhauId")
	feeTypeID := parseUintQuery(c.Ctx, "khoanThuId")

	var (
		payments []models.Payment
		err      error
	)
	switch {
	case householdID != nil && feeTypeID != nil:
		payments, err = c.service().GetPaymentsByHouseholdAndFeeType(*householdID, *feeTypeID)
	case householdID != nil:
		payments, err = c.service().GetPaymentsByHousehold(*householdID)
	case feeTypeID != nil:
		payments, err = c.service().GetPaymentsByFeeType(*feeTypeID)
	default:
		payments, err = c.service().GetAllPayments()
	}
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, payments)
}

// GetPayment godoc
// @Summary      Get one payment
// @Tags         Payment
// @Produce      json
// @Param        id path int true "payment ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /payments/{id} [get]
func (c *PaymentController) GetPayment() {
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

// GetUnverified godoc
// @Summary      List unverified payments
// @Tags         Payment
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /payments/unverified [get]
func (c *PaymentController) GetUnverified() {
	payments, err := c.service().FindUnverified()
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, payments)
}

// GetByDateRange godoc
// @Summary      List payments in a date range
// @Tags         Payment
// @Produce      json
// @Param        from query string true "start date (YYYY-MM-DD)"
// @Param        to query string true "end date (YYYY-MM-DD)"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /payments/daterange [get]
func (c *PaymentController) GetByDateRange() {
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
	payments, err := c.service().GetPaymentsByDateRange(from, to)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, payments)
}

// CreatePayment godoc
// @Summary      Record a payment
// @Description  Amounts default from the fee type when omitted; the payment date defaults to today and the payment starts unverified
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        payment body models.Payment true "payment"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /payments [post]
func (c *PaymentController) CreatePayment() {
	var payment models.Payment
	if err := c.Ctx.ShouldBindJSON(&payment); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	if payment.HouseholdID == 0 || payment.FeeTypeID == 0 {
		response.ParamError(c.Ctx, "hoKhauId và khoanThuId là bắt buộc")
		return
	}
	if err := c.service().CreatePayment(&payment); err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, payment)
}

// UpdatePayment godoc
// @Summary      Update a payment
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        id path int true "payment ID"
// @Param        payment body models.Payment true "updated fields"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /payments/{id} [put]
func (c *PaymentController) UpdatePayment() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	var updates models.Payment
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

// DeletePayment godoc
// @Summary      Delete a payment
// @Tags         Payment
// @Produce      json
// @Param        id path int true "payment ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /payments/{id} [delete]
func (c *PaymentController) DeletePayment() {
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

// VerifyPayment godoc
// @Summary      Verify a payment
// @Description  Idempotent: verifying an already verified payment changes nothing
// @Tags         Payment
// @Produce      json
// @Param        id path int true "payment ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /payments/{id}/verify [put]
func (c *PaymentController) VerifyPayment() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	payment, err := c.service().VerifyPayment(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, payment)
}

// UnverifyPayment godoc
// @Summary      Revoke a payment's verification
// @Tags         Payment
// @Produce      json
// @Param        id path int true "payment ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /payments/{id}/unverify [put]
func (c *PaymentController) UnverifyPayment() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	payment, err := c.service().UnverifyPayment(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, payment)
}

// GetTotals godoc
// @Summary      Verified payment totals
// @Description  Totals over verified payments only, scoped by household, fee type or date range
// @Tags         Payment
// @Produce      json
// @Param        hoKhauId query int false "household ID"
// @Param        khoanThuId query int false "fee type ID"
// @Param        from query string false "start date (YYYY-MM-DD)"
// @Param        to query string false "end date (YYYY-MM-DD)"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /payments/totals [get]
func (c *PaymentController) GetTotals() {
	if householdID := parseUintQuery(c.Ctx, "hoKhauId"); householdID != nil {
		total, err := c.service().TotalByHousehold(*householdID)
		if err != nil {
			response.ServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, gin.H{"total": total})
		return
	}
	if feeTypeID := parseUintQuery(c.Ctx, "khoanThuId"); feeTypeID != nil {
		total, err := c.service().TotalByFeeType(*feeTypeID)
		if err != nil {
			response.ServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, gin.H{"total": total})
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
		total, err := c.service().TotalByDateRange(from, to)
		if err != nil {
			response.ServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, gin.H{"total": total})
		return
	}

	percent, err := c.service().PercentVerified()
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{"verifiedPercentage": percent})
}

// GetStatistics godoc
// @Summary      Payment statistics
// @Description  Household filter wins over fee type; the date range applies only when neither ID filter is set
// @Tags         Payment
// @Produce      json
// @Param        hoKhauId query int false "household ID"
// @Param        khoanThuId query int false "fee type ID"
// @Param        from query string false "start date (YYYY-MM-DD)"
// @Param        to query string false "end date (YYYY-MM-DD)"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /payments/statistics [get]
func (c *PaymentController) GetStatistics() {
	filter := services.PaymentFilter{
		HouseholdID: parseUintQuery(c.Ctx, "hoKhauId"),
		FeeTypeID:   parseUintQuery(c.Ctx, "khoanThuId"),
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
		filter.From = &from
		filter.To = &to
	}

	stats, err := c.service().GetStatistics(filter)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, stats)
}

// HandlePaymentFunc dispatches payment requests.
func HandlePaymentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPaymentController(ctx, container)

		switch method {
		case "getPayments":
			controller.GetPayments()
		case "getPayment":
			controller.GetPayment()
		case "getUnverified":
			controller.GetUnverified()
		case "getByDateRange":
			controller.GetByDateRange()
		case "createPayment":
			controller.CreatePayment()
		case "updatePayment":
			controller.UpdatePayment()
		case "deletePayment":
			controller.DeletePayment()
		case "verifyPayment":
			controller.VerifyPayment()
		case "unverifyPayment":
			controller.UnverifyPayment()
		case "getTotals":
			controller.GetTotals()
		case "getStatistics":
			controller.GetStatistics()
		default:
			response.ParamError(ctx, "Phương thức không hợp lệ")
		}
	}
}
