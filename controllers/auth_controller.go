package controllers

import (
	"errors"
	"net/http"
	"strings"

	"visionguide-http-service/config"
	"visionguide-http-service/middleware"
	"visionguide-http-service/models"
	"visionguide-http-service/services"
	"visionguide-http-service/services/container"
	"visionguide-http-service/utils"

	"github.com/gin-gonic/gin"
)

// InterfaceAuthController 定义登录控制器接口
type InterfaceAuthController interface {
	ShowLogin()
	Login()
	Logout()
}

// AuthController 登录控制器
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController 创建一个新的登录控制器
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAuthFunc 返回一个处理登录请求的Gin处理函数
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "showLogin":
			controller.ShowLogin()
		case "login":
			controller.Login()
		case "logout":
			controller.Logout()
		default:
			ctx.String(http.StatusNotFound, "not found")
		}
	}
}

// 1. ShowLogin 渲染登录页
func (c *AuthController) ShowLogin() {
	c.Ctx.HTML(http.StatusOK, "login.html", gin.H{})
}

// 2. Login 处理登录表单。
// 用户名不存在和密码错误返回同一条通知，不区分失败原因。
func (c *AuthController) Login() {
	username := strings.TrimSpace(c.Ctx.PostForm("username"))
	password := c.Ctx.PostForm("password")

	adminService := c.Container.GetService("admin_user").(services.InterfaceAdminUserService)
	admin, err := adminService.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.Ctx.HTML(http.StatusUnauthorized, "login.html", gin.H{"notice": "Invalid credentials"})
			return
		}
		config.Error("登录查询失败: %v", err)
		c.Ctx.String(http.StatusInternalServerError, "internal error")
		return
	}

	sessionService := sessionServiceOf(c.Container)
	session, err := sessionService.Create(models.Principal{Username: admin.Username, Role: admin.Role})
	if err != nil {
		config.Error("创建会话失败: %v", err)
		c.Ctx.String(http.StatusInternalServerError, "internal error")
		return
	}

	cfg := c.Container.GetService("config").(*config.Config)
	signed := utils.SignValue(session.ID, cfg.SessionSecret)
	c.Ctx.SetCookie(middleware.SessionCookieName, signed, cfg.SessionTTLMinutes*60, "/", "", false, true)
	c.Ctx.Redirect(http.StatusSeeOther, "/")
}

// 3. Logout 无条件销毁会话并回到登录页
func (c *AuthController) Logout() {
	cfg := c.Container.GetService("config").(*config.Config)
	if signed, err := c.Ctx.Cookie(middleware.SessionCookieName); err == nil {
		if sessionID, ok := utils.VerifySignedValue(signed, cfg.SessionSecret); ok {
			if err := sessionServiceOf(c.Container).Destroy(sessionID); err != nil {
				config.Warning("销毁会话失败: %v", err)
			}
		}
	}

	c.Ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.Ctx.Redirect(http.StatusFound, "/login")
}
