package middleware

import (
	"strings"

	"visionguide-http-service/config"
	"visionguide-http-service/internal/error/code"
	"visionguide-http-service/internal/error/response"
	"visionguide-http-service/services"

	"github.com/gin-gonic/gin"
)

// gin上下文键（API侧）
const (
	ContextKeyAPIUserID   = "apiUserID"
	ContextKeyAPIUsername = "apiUsername"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化API认证中间件
func InitAuthMiddleware(cfg *config.Config) {
	jwtService = services.NewJWTService(cfg)
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// AuthenticateAppUser 验证伴随应用用户的JWT令牌
func AuthenticateAppUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Authorization header is required", nil)
			c.Abort()
			return
		}

		claims, err := jwtService.ExtractClaims(extractToken(authHeader))
		if err != nil {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Invalid token: "+err.Error(), nil)
			c.Abort()
			return
		}

		// 存储claims到上下文
		c.Set(ContextKeyAPIUserID, claims.UserID)
		c.Set(ContextKeyAPIUsername, claims.Username)
		c.Next()
	}
}
