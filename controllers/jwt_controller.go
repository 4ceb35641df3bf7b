package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/response"
	"github.com/lyng148/thien-nguyet-dong-phu/services"
	"github.com/lyng148/thien-nguyet-dong-phu/services/container"
)

// JWTController handles authentication requests.
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController creates an auth controller for one request.
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{Ctx: ctx, Container: container}
}

// LoginRequest carries the credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary      Log in
// @Description  Exchanges username and password for a bearer token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials body LoginRequest true "credentials"
// @Success      200 {object} response.Response
// @Failure      400 {object} ErrorResponse
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, user, err := jwtService.Login(req.Username, req.Password)
	if err != nil {
		response.ServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// HandleJWTFunc dispatches auth requests.
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		default:
			response.ParamError(ctx, "Phương thức không hợp lệ")
		}
	}
}
