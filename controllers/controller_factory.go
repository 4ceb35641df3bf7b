package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/response"
	"github.com/lyng148/thien-nguyet-dong-phu/services/container"
)

// ErrorResponse is re-exported for the generated API docs.
type ErrorResponse = response.ErrorResponse

// BaseController gives handlers access to the request context and the
// service container.
type BaseController interface {
	GetContainer() *container.ServiceContainer
	GetContext() *gin.Context
}

// ControllerFactory builds per-request controllers around one shared
// container.
type ControllerFactory struct {
	Container *container.ServiceContainer
}

// NewControllerFactory creates a controller factory.
func NewControllerFactory(container *container.ServiceContainer) *ControllerFactory {
	return &ControllerFactory{Container: container}
}

// parseIDParam reads the :id path parameter as an unsigned integer.
// The second return is false after an error response has been written.
func parseIDParam(ctx *gin.Context) (uint, bool) {
	raw := ctx.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.ParamError(ctx, "ID không hợp lệ: "+raw)
		return 0, false
	}
	return uint(id), true
}

// parsePathUint reads a named path parameter as an unsigned integer.
// The second return is false after an error response has been written.
func parsePathUint(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.ParamError(ctx, name+" không hợp lệ: "+raw)
		return 0, false
	}
	return uint(v), true
}

// parseUintQuery reads an optional unsigned query parameter.
func parseUintQuery(ctx *gin.Context, name string) *uint {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	u := uint(v)
	return &u
}

// parseIntQuery reads an optional integer query parameter, 0 when
// absent or malformed.
func parseIntQuery(ctx *gin.Context, name string) int {
	raw := ctx.Query(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
