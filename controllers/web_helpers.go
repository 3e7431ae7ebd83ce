package controllers

import (
	"net/http"

	"visionguide-http-service/config"
	"visionguide-http-service/middleware"
	"visionguide-http-service/models"
	"visionguide-http-service/services"
	"visionguide-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// sessionServiceOf 从容器取会话服务
func sessionServiceOf(c *container.ServiceContainer) services.InterfaceSessionService {
	return c.GetService("session").(services.InterfaceSessionService)
}

// popNotices 取出当前会话排队的一次性页面通知
func popNotices(ctx *gin.Context, c *container.ServiceContainer) []string {
	sessionID, ok := middleware.CurrentSessionID(ctx)
	if !ok {
		return nil
	}
	notices, err := sessionServiceOf(c).PopNotices(sessionID)
	if err != nil {
		config.Warning("读取页面通知失败: %v", err)
		return nil
	}
	return notices
}

// redirectWithNotice 排队一条通知并以303重定向到列表页。
// 变更类处理器一律走这里，从不直接渲染页面。
func redirectWithNotice(ctx *gin.Context, c *container.ServiceContainer, target, notice string) {
	sessionID, ok := middleware.CurrentSessionID(ctx)
	if ok {
		if err := sessionServiceOf(c).QueueNotice(sessionID, notice); err != nil {
			config.Warning("排队页面通知失败: %v", err)
		}
	}
	ctx.Redirect(http.StatusSeeOther, target)
}

// currentPrincipal 读取守卫写入的登录主体
func currentPrincipal(ctx *gin.Context) models.Principal {
	principal, _ := middleware.CurrentPrincipal(ctx)
	return principal
}
