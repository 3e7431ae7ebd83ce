package routes

import (
	"visionguide-http-service/config"
	"visionguide-http-service/controllers"
	_ "visionguide-http-service/docs"
	"visionguide-http-service/middleware"
	"visionguide-http-service/services"
	"visionguide-http-service/services/container"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 管理面板为服务端渲染，加载页面模板
	r.LoadHTMLGlob("templates/*.html")

	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)

	// 初始化中间件
	middleware.InitSessionMiddleware(cfg, serviceContainer.GetService("session").(services.InterfaceSessionService))
	middleware.InitAuthMiddleware(cfg)

	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// 健康检查
	r.GET("/health", controllers.HandleHealthFunc(container))

	// 注册管理面板路由
	registerPanelRoutes(r, container)
	// 注册伴随应用API路由
	registerAPIRoutes(r, container)
}

// registerPanelRoutes 注册管理面板路由（会话Cookie认证）
func registerPanelRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// 登录登出
	r.GET("/login", controllers.HandleAuthFunc(container, "showLogin"))
	r.POST("/login", controllers.HandleAuthFunc(container, "login"))
	r.GET("/logout", controllers.HandleAuthFunc(container, "logout"))

	// 登录后可访问的路由
	authed := r.Group("/")
	authed.Use(middleware.RequireAuthenticated())

	authed.GET("", controllers.HandleIndividualFunc(container, "index"))
	authed.POST("/edit/:id", controllers.HandleIndividualFunc(container, "editIndividual"))
	authed.POST("/delete/:id", controllers.HandleIndividualFunc(container, "deleteIndividual"))
	authed.GET("/guidance_history", controllers.HandleGuidanceFunc(container, "guidanceHistory"))

	// 仅限 super_admin 的路由，认证守卫必须先于角色守卫
	super := r.Group("/")
	super.Use(middleware.RequireAuthenticated(), middleware.RequireSuperAdmin())

	super.GET("/activity_log", controllers.HandleActivityLogFunc(container, "activityLog"))
	super.GET("/manage_admins", controllers.HandleAdminUserFunc(container, "manageAdmins"))
	super.POST("/add_admin", controllers.HandleAdminUserFunc(container, "addAdmin"))
	super.POST("/edit_admin/:id", controllers.HandleAdminUserFunc(container, "editAdmin"))
	super.POST("/delete_admin/:id", controllers.HandleAdminUserFunc(container, "deleteAdmin"))
}

// registerAPIRoutes 注册伴随应用API路由（JWT认证）
func registerAPIRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	api := r.Group("/api")

	// 认证路由
	api.POST("/auth/login", controllers.HandleAPIFunc(container, "login"))

	// 需要JWT的路由
	guarded := api.Group("/")
	guarded.Use(middleware.AuthenticateAppUser())
	guarded.GET("/guidance", controllers.HandleAPIFunc(container, "listGuidance"))
	guarded.POST("/guidance", controllers.HandleAPIFunc(container, "recordGuidance"))
}
