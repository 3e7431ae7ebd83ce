package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"visionguide-http-service/config"
	"visionguide-http-service/services"
	"visionguide-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceIndividualController 定义视障用户控制器接口
type InterfaceIndividualController interface {
	Index()
	EditIndividual()
	DeleteIndividual()
}

// IndividualController 视障用户控制器
type IndividualController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewIndividualController 创建一个新的视障用户控制器
func NewIndividualController(ctx *gin.Context, container *container.ServiceContainer) *IndividualController {
	return &IndividualController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleIndividualFunc 返回一个处理视障用户请求的Gin处理函数
func HandleIndividualFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewIndividualController(ctx, container)

		switch method {
		case "index":
			controller.Index()
		case "editIndividual":
			controller.EditIndividual()
		case "deleteIndividual":
			controller.DeleteIndividual()
		default:
			ctx.String(http.StatusNotFound, "not found")
		}
	}
}

// 1. Index 渲染用户列表，支持排序和子串过滤
func (c *IndividualController) Index() {
	sortField := c.Ctx.DefaultQuery("sort", "registration_date")
	sortDir := c.Ctx.DefaultQuery("dir", services.SortDesc)
	usernameFilter := c.Ctx.Query("username")
	emailFilter := c.Ctx.Query("email")

	individualService := c.Container.GetService("individual").(services.InterfaceIndividualService)
	individuals, err := individualService.GetAllIndividuals(sortField, sortDir, usernameFilter, emailFilter)
	if err != nil {
		config.Error("查询用户列表失败: %v", err)
		c.Ctx.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.Ctx.HTML(http.StatusOK, "individuals.html", gin.H{
		"users":          individuals,
		"sortField":      sortField,
		"sortDir":        sortDir,
		"usernameFilter": usernameFilter,
		"emailFilter":    emailFilter,
		"notices":        popNotices(c.Ctx, c.Container),
		"principal":      currentPrincipal(c.Ctx),
	})
}

// 2. EditIndividual 编辑用户，密码为空时保持不变
func (c *IndividualController) EditIndividual() {
	id := c.Ctx.Param("id")
	username := strings.TrimSpace(c.Ctx.PostForm("username"))
	password := c.Ctx.PostForm("password")

	individualService := c.Container.GetService("individual").(services.InterfaceIndividualService)
	if _, err := individualService.UpdateIndividual(currentPrincipal(c.Ctx).Username, id, username, password); err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameRequired):
			redirectWithNotice(c.Ctx, c.Container, "/", "Username is required")
		case errors.Is(err, services.ErrIndividualNotFound):
			redirectWithNotice(c.Ctx, c.Container, "/", "User not found")
		default:
			config.Error("更新用户失败: %v", err)
			c.Ctx.String(http.StatusInternalServerError, "internal error")
		}
		return
	}

	redirectWithNotice(c.Ctx, c.Container, "/", fmt.Sprintf("Updated user %s", id))
}

// 3. DeleteIndividual 删除用户
func (c *IndividualController) DeleteIndividual() {
	id := c.Ctx.Param("id")

	individualService := c.Container.GetService("individual").(services.InterfaceIndividualService)
	if err := individualService.DeleteIndividual(currentPrincipal(c.Ctx).Username, id); err != nil {
		if errors.Is(err, services.ErrIndividualNotFound) {
			redirectWithNotice(c.Ctx, c.Container, "/", "User not found")
			return
		}
		config.Error("删除用户失败: %v", err)
		c.Ctx.String(http.StatusInternalServerError, "internal error")
		return
	}

	redirectWithNotice(c.Ctx, c.Container, "/", fmt.Sprintf("Deleted user %s", id))
}
