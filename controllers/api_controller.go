package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"visionguide-http-service/config"
	"visionguide-http-service/internal/error/code"
	"visionguide-http-service/internal/error/response"
	"visionguide-http-service/middleware"
	"visionguide-http-service/models"
	"visionguide-http-service/services"
	"visionguide-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceAPIController 定义伴随应用API控制器接口
type InterfaceAPIController interface {
	Login()
	ListGuidance()
	RecordGuidance()
}

// APIController 伴随应用API控制器
type APIController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAPIController 创建一个新的API控制器
func NewAPIController(ctx *gin.Context, container *container.ServiceContainer) *APIController {
	return &APIController{
		Ctx:       ctx,
		Container: container,
	}
}

// APILoginRequest 伴随应用登录请求
type APILoginRequest struct {
	Username string `json:"username" binding:"required" example:"zhangwei"`
	Password string `json:"password" binding:"required" example:"Secret@123"`
}

// RecordGuidanceRequest 上报检测/引导事件请求
type RecordGuidanceRequest struct {
	ObjectName     string  `json:"object_name" binding:"required" example:"crosswalk"`
	DistanceMeters float64 `json:"distance_meters" example:"2.4"`
	Direction      string  `json:"direction" example:"center"`
	Confidence     float64 `json:"confidence" example:"0.92"`
}

// HandleAPIFunc 返回一个处理伴随应用API请求的Gin处理函数
func HandleAPIFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAPIController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "listGuidance":
			controller.ListGuidance()
		case "recordGuidance":
			controller.RecordGuidance()
		default:
			response.Fail(ctx, code.ErrBind, nil)
		}
	}
}

// 1. Login 伴随应用登录
// @Summary      伴随应用登录
// @Description  校验视障用户凭据并签发JWT令牌
// @Tags         API
// @Accept       json
// @Produce      json
// @Param        request body APILoginRequest true "登录凭据"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /api/auth/login [post]
func (c *APIController) Login() {
	var req APILoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	individualService := c.Container.GetService("individual").(services.InterfaceIndividualService)
	individual, err := individualService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Fail(c.Ctx, code.ErrPasswordIncorrect, nil)
			return
		}
		config.Error("API登录查询失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token, err := jwtService.GenerateToken(individual.ID, individual.Username)
	if err != nil {
		config.Error("签发令牌失败: %v", err)
		response.Fail(c.Ctx, code.ErrUnknown, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":       individual.ID,
			"username": individual.Username,
		},
	})
}

// 2. ListGuidance 获取当前用户的引导历史
// @Summary      获取引导历史
// @Description  按时间倒序返回当前用户最近的检测/引导记录
// @Tags         API
// @Produce      json
// @Param        limit query int false "返回条数, 默认为100"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /api/guidance [get]
// @Security     BearerAuth
func (c *APIController) ListGuidance() {
	userID := c.Ctx.GetString(middleware.ContextKeyAPIUserID)

	limit, _ := strconv.Atoi(c.Ctx.DefaultQuery("limit", "100"))
	if limit < 1 || limit > 500 {
		limit = 100
	}

	guidanceService := c.Container.GetService("guidance_log").(services.InterfaceGuidanceLogService)
	logs, err := guidanceService.GetUserGuidanceLogs(userID, limit)
	if err != nil {
		config.Error("查询引导历史失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, logs)
}

// 3. RecordGuidance 上报一条检测/引导事件
// @Summary      上报引导事件
// @Description  为当前用户追加一条目标检测/引导记录
// @Tags         API
// @Accept       json
// @Produce      json
// @Param        request body RecordGuidanceRequest true "检测事件"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /api/guidance [post]
// @Security     BearerAuth
func (c *APIController) RecordGuidance() {
	var req RecordGuidanceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	entry := &models.GuidanceLog{
		UserID:         c.Ctx.GetString(middleware.ContextKeyAPIUserID),
		ObjectName:     req.ObjectName,
		DistanceMeters: req.DistanceMeters,
		Direction:      req.Direction,
		Confidence:     req.Confidence,
	}

	guidanceService := c.Container.GetService("guidance_log").(services.InterfaceGuidanceLogService)
	if err := guidanceService.RecordGuidanceEvent(entry); err != nil {
		config.Error("写入引导记录失败: %v", err)
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	c.Ctx.JSON(http.StatusCreated, response.Response{
		Code:    code.ErrSuccess,
		Message: code.GetMessage(code.ErrSuccess),
		Data:    entry,
	})
}
