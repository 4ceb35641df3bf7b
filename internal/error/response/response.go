package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/apperr"
	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/code"
)

// Response is the uniform JSON envelope for every endpoint.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse documents the failure shape for swagger.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    code.ErrSuccess,
		Message: code.GetMessage(code.ErrSuccess),
		Data:    data,
	})
}

// Fail writes the envelope for an error code with its default message.
func Fail(c *gin.Context, errorCode int, data interface{}) {
	c.JSON(code.GetStatus(errorCode), Response{
		Code:    errorCode,
		Message: code.GetMessage(errorCode),
		Data:    data,
	})
}

// FailWithMessage writes the envelope with a caller-supplied message.
func FailWithMessage(c *gin.Context, errorCode int, message string, data interface{}) {
	c.JSON(code.GetStatus(errorCode), Response{
		Code:    errorCode,
		Message: message,
		Data:    data,
	})
}

// ParamError reports a binding or parameter problem.
func ParamError(c *gin.Context, message string) {
	FailWithMessage(c, code.ErrBind, message, nil)
}

// Unauthorized reports a missing or invalid token.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = code.GetMessage(code.ErrTokenInvalid)
	}
	FailWithMessage(c, code.ErrTokenInvalid, message, nil)
}

// ServiceError maps a domain-service error onto the envelope: NotFound,
// Conflict and Validation keep their message and 4xx status, everything
// else degrades to a generic 500.
func ServiceError(c *gin.Context, err error) {
	switch {
	case apperr.IsNotFound(err):
		FailWithMessage(c, code.ErrNotFound, err.Error(), nil)
	case apperr.IsConflict(err):
		FailWithMessage(c, code.ErrConflict, err.Error(), nil)
	case apperr.IsValidation(err):
		FailWithMessage(c, code.ErrValidation, err.Error(), nil)
	default:
		Fail(c, code.ErrUnknown, nil)
	}
}
