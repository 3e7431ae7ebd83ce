package controllers

import (
	"net/http"

	"visionguide-http-service/config"
	"visionguide-http-service/services"
	"visionguide-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// 审计日志页固定展示最近100条记录
const activityLogPageSize = 100

// InterfaceActivityLogController 定义审计日志控制器接口
type InterfaceActivityLogController interface {
	ActivityLog()
}

// ActivityLogController 审计日志控制器，仅限 super_admin
type ActivityLogController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewActivityLogController 创建一个新的审计日志控制器
func NewActivityLogController(ctx *gin.Context, container *container.ServiceContainer) *ActivityLogController {
	return &ActivityLogController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleActivityLogFunc 返回一个处理审计日志请求的Gin处理函数
func HandleActivityLogFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewActivityLogController(ctx, container)

		switch method {
		case "activityLog":
			controller.ActivityLog()
		default:
			ctx.String(http.StatusNotFound, "not found")
		}
	}
}

// 1. ActivityLog 渲染审计日志，固定按时间倒序
func (c *ActivityLogController) ActivityLog() {
	activityService := c.Container.GetService("activity_log").(services.InterfaceActivityLogService)
	logs, err := activityService.GetRecent(activityLogPageSize)
	if err != nil {
		config.Error("查询审计日志失败: %v", err)
		c.Ctx.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.Ctx.HTML(http.StatusOK, "activity_log.html", gin.H{
		"logs":      logs,
		"notices":   popNotices(c.Ctx, c.Container),
		"principal": currentPrincipal(c.Ctx),
	})
}
