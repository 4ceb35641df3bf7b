package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/response"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
	"github.com/lyng148/thien-nguyet-dong-phu/services"
	"github.com/lyng148/thien-nguyet-dong-phu/services/container"
)

// InterfaceResidentController defines the resident endpoints.
type InterfaceResidentController interface {
	GetResidents()
	GetResident()
	GetResidentByNationalID()
	SearchResidents()
	GetByBirthDateRange()
	CreateResident()
	UpdateResident()
	DeleteResident()
}

// ResidentController handles resident requests.
type ResidentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewResidentController creates a resident controller for one request.
func NewResidentController(ctx *gin.Context, container *container.ServiceContainer) *ResidentController {
	return &ResidentController{Ctx: ctx, Container: container}
}

func (c *ResidentController) service() services.InterfaceResidentService {
	return c.Container.GetService("resident").(services.InterfaceResidentService)
}

// GetResidents godoc
// @Summary      List residents
// @Description  Lists all residents, or one household's residents when hoKhauId is given
// @Tags         Resident
// @Produce      json
// @Param        hoKhauId query int false "household ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /persons [get]
func (c *ResidentController) GetResidents() {
	if householdID := parseUintQuery(c.Ctx, "hoKhauId"); householdID != nil {
		residents, err := c.service().GetResidentsByHousehold(*householdID)
		if err != nil {
			response.ServiceError(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, residents)
		return
	}
	residents, err := c.service().GetAllResidents()
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, residents)
}

// GetResident godoc
// @Summary      Get one resident
// @Tags         Resident
// @Produce      json
// @Param        id path int true "resident ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /persons/{id} [get]
func (c *ResidentController) GetResident() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	resident, err := c.service().GetResidentByID(id)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, resident)
}

// GetResidentByNationalID godoc
// @Summary      Get a resident by citizen ID
// @Tags         Resident
// @Produce      json
// @Param        cccd path string true "citizen ID number"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /persons/cccd/{cccd} [get]
func (c *ResidentController) GetResidentByNationalID() {
	nationalID := c.Ctx.Param("cccd")
	if nationalID == "" {
		response.ParamError(c.Ctx, "CCCD không được để trống")
		return
	}
	resident, err := c.service().GetResidentByNationalID(nationalID)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, resident)
}

// SearchResidents godoc
// @Summary      Search residents by name
// @Tags         Resident
// @Produce      json
// @Param        hoTen query string true "name fragment"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /persons/search [get]
func (c *ResidentController) SearchResidents() {
	name := c.Ctx.Query("hoTen")
	if name == "" {
		response.ParamError(c.Ctx, "Cần tham số hoTen")
		return
	}
	residents, err := c.service().SearchByName(name)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, residents)
}

// GetByBirthDateRange godoc
// @Summary      List residents born in a date range
// @Tags         Resident
// @Produce      json
// @Param        from query string true "start date (YYYY-MM-DD)"
// @Param        to query string true "end date (YYYY-MM-DD)"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /persons/birthdate [get]
func (c *ResidentController) GetByBirthDateRange() {
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
	residents, err := c.service().FindByBirthDateRange(from, to)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, residents)
}

// CreateResident godoc
// @Summary      Create a resident
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        resident body models.Resident true "resident"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      409 {object} ErrorResponse
// @Router       /persons [post]
func (c *ResidentController) CreateResident() {
	var resident models.Resident
	if err := c.Ctx.ShouldBindJSON(&resident); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	if err := c.service().CreateResident(&resident); err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, resident)
}

// UpdateResident godoc
// @Summary      Update a resident
// @Description  Partial update: only the provided JSON keys change
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        id path int true "resident ID"
// @Param        resident body map[string]interface{} true "changed fields"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /persons/{id} [put]
func (c *ResidentController) UpdateResident() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	var body map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&body); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}
	updates := residentColumnUpdates(body)
	if len(updates) == 0 {
		response.ParamError(c.Ctx, "Không có trường nào để cập nhật")
		return
	}
	resident, err := c.service().UpdateResident(id, updates)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, resident)
}

// residentColumnUpdates maps the JSON body keys onto column names,
// dropping anything that is not an editable resident field.
func residentColumnUpdates(body map[string]interface{}) map[string]interface{} {
	columns := map[string]string{
		"hoTen":          "ho_ten",
		"ngaySinh":       "ngay_sinh",
		"gioiTinh":       "gioi_tinh",
		"danToc":         "dan_toc",
		"tonGiao":        "ton_giao",
		"cccd":           "cccd",
		"ngayCap":        "ngay_cap",
		"noiCap":         "noi_cap",
		"ngheNghiep":     "nghe_nghiep",
		"ghiChu":         "ghi_chu",
		"quanHeVoiChuHo": "quan_he_voi_chu_ho",
	}
	updates := make(map[string]interface{})
	for key, value := range body {
		if column, ok := columns[key]; ok {
			updates[column] = value
		}
	}
	return updates
}

// DeleteResident godoc
// @Summary      Delete a resident
// @Description  Removes the resident together with their temporary residence records; a member-removed history entry is kept
// @Tags         Resident
// @Produce      json
// @Param        id path int true "resident ID"
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      404 {object} ErrorResponse
// @Router       /persons/{id} [delete]
func (c *ResidentController) DeleteResident() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}
	if err := c.service().DeleteResident(id); err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// HandleResidentFunc dispatches resident requests.
func HandleResidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewResidentController(ctx, container)

		switch method {
		case "getResidents":
			controller.GetResidents()
		case "getResident":
			controller.GetResident()
		case "getResidentByNationalID":
			controller.GetResidentByNationalID()
		case "searchResidents":
			controller.SearchResidents()
		case "getByBirthDateRange":
			controller.GetByBirthDateRange()
		case "createResident":
			controller.CreateResident()
		case "updateResident":
			controller.UpdateResident()
		case "deleteResident":
			controller.DeleteResident()
		default:
			response.ParamError(ctx, "Phương thức không hợp lệ")
		}
	}
}
