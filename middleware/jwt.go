package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/config"
	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/code"
	"github.com/lyng148/thien-nguyet-dong-phu/internal/error/response"
	"github.com/lyng148/thien-nguyet-dong-phu/services"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware wires the auth middleware to the shared JWT
// service. Must run before the router is built.
func InitAuthMiddleware(cfg *config.Config, db *gorm.DB) {
	jwtService = services.NewJWTService(cfg, db)
}

// Authentication rejects requests without a valid bearer token and
// stores the claims on the context.
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Thiếu header Authorization")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(c, "Header Authorization phải có dạng Bearer {token}")
			c.Abort()
			return
		}

		claims, err := jwtService.ExtractClaims(parts[1])
		if err != nil {
			response.Unauthorized(c, "Token không hợp lệ hoặc đã hết hạn")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Set("claims", claims)
		c.Next()
	}
}

// RequireRole allows only the listed roles past. Runs after
// Authentication, which put the role on the context.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		roleName, _ := role.(string)
		for _, allowed := range roles {
			if roleName == allowed {
				c.Next()
				return
			}
		}
		response.Fail(c, code.ErrPermissionDenied, nil)
		c.Abort()
	}
}
