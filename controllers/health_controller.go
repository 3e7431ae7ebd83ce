package controllers

import (
	"visionguide-http-service/internal/error/code"
	"visionguide-http-service/internal/error/response"
	"visionguide-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// HandleHealthFunc 返回健康检查处理函数
// @Summary      健康检查
// @Description  检查服务与数据库连接状态
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /health [get]
func HandleHealthFunc(container *container.ServiceContainer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sqlDB, err := container.GetDB().DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			response.Fail(ctx, code.ErrDatabase, gin.H{"status": "degraded"})
			return
		}

		response.Success(ctx, gin.H{"status": "ok"})
	}
}
