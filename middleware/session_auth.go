package middleware

import (
	"net/http"

	"visionguide-http-service/config"
	"visionguide-http-service/models"
	"visionguide-http-service/services"
	"visionguide-http-service/utils"

	"github.com/gin-gonic/gin"
)

// SessionCookieName 会话Cookie名称
const SessionCookieName = "vg_session"

// gin上下文键
const (
	ContextKeyPrincipal = "principal"
	ContextKeySessionID = "sessionID"
)

var (
	sessionService services.InterfaceSessionService
	sessionSecret  string
)

// InitSessionMiddleware 初始化会话中间件
func InitSessionMiddleware(cfg *config.Config, svc services.InterfaceSessionService) {
	sessionService = svc
	sessionSecret = cfg.SessionSecret
}

// resolveSession 从签名Cookie解析出会话，任何一步失败都视为未登录
func resolveSession(c *gin.Context) (*models.Session, bool) {
	signed, err := c.Cookie(SessionCookieName)
	if err != nil {
		return nil, false
	}
	sessionID, ok := utils.VerifySignedValue(signed, sessionSecret)
	if !ok {
		return nil, false
	}
	session, err := sessionService.Get(sessionID)
	if err != nil {
		return nil, false
	}
	return session, true
}

// RequireAuthenticated 认证守卫：未登录时重定向到登录页，不执行后续处理器。
// 解析出的主体写入请求上下文，供处理器和角色守卫读取。
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := resolveSession(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(ContextKeyPrincipal, session.Principal())
		c.Set(ContextKeySessionID, session.ID)
		c.Next()
	}
}

// RequireSuperAdmin 角色守卫：要求 super_admin 角色。
// 必须排在 RequireAuthenticated 之后，匿名请求没有角色可查。
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		if !principal.IsSuperAdmin() {
			if sessionID, ok := CurrentSessionID(c); ok {
				if err := sessionService.QueueNotice(sessionID, "Super Admin access required."); err != nil {
					config.Warning("排队页面通知失败: %v", err)
				}
			}
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentPrincipal 读取当前请求的登录主体
func CurrentPrincipal(c *gin.Context) (models.Principal, bool) {
	value, exists := c.Get(ContextKeyPrincipal)
	if !exists {
		return models.Principal{}, false
	}
	principal, ok := value.(models.Principal)
	return principal, ok
}

// CurrentSessionID 读取当前请求的会话ID
func CurrentSessionID(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextKeySessionID)
	if !exists {
		return "", false
	}
	sessionID, ok := value.(string)
	return sessionID, ok
}
