package controllers

import (
	"net/http"

	"visionguide-http-service/config"
	"visionguide-http-service/services"
	"visionguide-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceGuidanceController 定义引导记录控制器接口
type InterfaceGuidanceController interface {
	GuidanceHistory()
}

// GuidanceController 引导记录控制器
type GuidanceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewGuidanceController 创建一个新的引导记录控制器
func NewGuidanceController(ctx *gin.Context, container *container.ServiceContainer) *GuidanceController {
	return &GuidanceController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleGuidanceFunc 返回一个处理引导记录请求的Gin处理函数
func HandleGuidanceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewGuidanceController(ctx, container)

		switch method {
		case "guidanceHistory":
			controller.GuidanceHistory()
		default:
			ctx.String(http.StatusNotFound, "not found")
		}
	}
}

// 1. GuidanceHistory 渲染目标检测/引导历史，支持排序和子串过滤
func (c *GuidanceController) GuidanceHistory() {
	sortField := c.Ctx.DefaultQuery("sort", "timestamp")
	sortDir := c.Ctx.DefaultQuery("dir", services.SortDesc)
	userIDFilter := c.Ctx.Query("userId")
	objectNameFilter := c.Ctx.Query("objectName")

	guidanceService := c.Container.GetService("guidance_log").(services.InterfaceGuidanceLogService)
	logs, err := guidanceService.GetAllGuidanceLogs(sortField, sortDir, userIDFilter, objectNameFilter)
	if err != nil {
		config.Error("查询引导记录失败: %v", err)
		c.Ctx.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.Ctx.HTML(http.StatusOK, "guidance_history.html", gin.H{
		"guidance":         logs,
		"sortField":        sortField,
		"sortDir":          sortDir,
		"userIdFilter":     userIDFilter,
		"objectNameFilter": objectNameFilter,
		"notices":          popNotices(c.Ctx, c.Container),
		"principal":        currentPrincipal(c.Ctx),
	})
}
