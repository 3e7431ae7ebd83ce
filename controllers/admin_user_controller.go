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

// InterfaceAdminUserController 定义管理员控制器接口
type InterfaceAdminUserController interface {
	ManageAdmins()
	AddAdmin()
	EditAdmin()
	DeleteAdmin()
}

// AdminUserController 管理员控制器，全部操作仅限 super_admin
type AdminUserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAdminUserController 创建一个新的管理员控制器
func NewAdminUserController(ctx *gin.Context, container *container.ServiceContainer) *AdminUserController {
	return &AdminUserController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAdminUserFunc 返回一个处理管理员请求的Gin处理函数
func HandleAdminUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAdminUserController(ctx, container)

		switch method {
		case "manageAdmins":
			controller.ManageAdmins()
		case "addAdmin":
			controller.AddAdmin()
		case "editAdmin":
			controller.EditAdmin()
		case "deleteAdmin":
			controller.DeleteAdmin()
		default:
			ctx.String(http.StatusNotFound, "not found")
		}
	}
}

// adminService 从容器取管理员服务
func (c *AdminUserController) adminService() services.InterfaceAdminUserService {
	return c.Container.GetService("admin_user").(services.InterfaceAdminUserService)
}

// 1. ManageAdmins 渲染管理员列表，支持排序和子串过滤
func (c *AdminUserController) ManageAdmins() {
	sortField := c.Ctx.DefaultQuery("sort", "username")
	sortDir := c.Ctx.DefaultQuery("dir", services.SortDesc)
	usernameFilter := c.Ctx.Query("username")

	admins, err := c.adminService().GetAllAdmins(sortField, sortDir, usernameFilter)
	if err != nil {
		config.Error("查询管理员列表失败: %v", err)
		c.Ctx.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.Ctx.HTML(http.StatusOK, "manage_admins.html", gin.H{
		"admins":         admins,
		"sortField":      sortField,
		"sortDir":        sortDir,
		"usernameFilter": usernameFilter,
		"notices":        popNotices(c.Ctx, c.Container),
		"principal":      currentPrincipal(c.Ctx),
	})
}

// 2. AddAdmin 创建管理员，默认角色为 admin
func (c *AdminUserController) AddAdmin() {
	username := strings.TrimSpace(c.Ctx.PostForm("username"))
	password := c.Ctx.PostForm("password")

	admin, err := c.adminService().CreateAdmin(currentPrincipal(c.Ctx).Username, username, password)
	if err != nil {
		c.failAdminMutation(err, "创建管理员失败")
		return
	}

	redirectWithNotice(c.Ctx, c.Container, "/manage_admins", fmt.Sprintf("Added new admin: %s", admin.Username))
}

// 3. EditAdmin 编辑管理员，角色保持不变，密码为空时保持不变
func (c *AdminUserController) EditAdmin() {
	id := c.Ctx.Param("id")
	username := strings.TrimSpace(c.Ctx.PostForm("username"))
	password := c.Ctx.PostForm("password")

	admin, err := c.adminService().UpdateAdmin(currentPrincipal(c.Ctx).Username, id, username, password)
	if err != nil {
		c.failAdminMutation(err, "更新管理员失败")
		return
	}

	redirectWithNotice(c.Ctx, c.Container, "/manage_admins", fmt.Sprintf("Updated admin: %s", admin.Username))
}

// 4. DeleteAdmin 删除管理员
func (c *AdminUserController) DeleteAdmin() {
	id := c.Ctx.Param("id")

	admin, err := c.adminService().GetAdminByID(id)
	if err != nil {
		c.failAdminMutation(err, "删除管理员失败")
		return
	}

	if err := c.adminService().DeleteAdmin(currentPrincipal(c.Ctx).Username, id); err != nil {
		c.failAdminMutation(err, "删除管理员失败")
		return
	}

	redirectWithNotice(c.Ctx, c.Container, "/manage_admins", fmt.Sprintf("Deleted admin: %s", admin.Username))
}

// failAdminMutation 把业务错误转换为页面通知，其余错误按500处理
func (c *AdminUserController) failAdminMutation(err error, logPrefix string) {
	switch {
	case errors.Is(err, services.ErrUsernameRequired):
		redirectWithNotice(c.Ctx, c.Container, "/manage_admins", "Username is required")
	case errors.Is(err, services.ErrUsernameTaken):
		redirectWithNotice(c.Ctx, c.Container, "/manage_admins", "Username already exists")
	case errors.Is(err, services.ErrAdminNotFound):
		redirectWithNotice(c.Ctx, c.Container, "/manage_admins", "Admin not found")
	default:
		config.Error("%s: %v", logPrefix, err)
		c.Ctx.String(http.StatusInternalServerError, "internal error")
	}
}
