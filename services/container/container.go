package container

import (
	"context"
	"sync"
	"time"

	"visionguide-http-service/config"
	"visionguide-http-service/services"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService     services.InterfaceJWTService
	sessionService services.InterfaceSessionService

	// 业务服务
	adminUserService   services.InterfaceAdminUserService
	individualService  services.InterfaceIndividualService
	activityLogService services.InterfaceActivityLogService
	guidanceLogService services.InterfaceGuidanceLogService

	// MQTT接入服务
	guidanceIngestService services.InterfaceGuidanceIngestService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			config.Warning("Redis连接测试失败: %v", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)
	c.sessionService = services.NewSessionService(c.config, c.redis)

	// 初始化业务服务
	c.adminUserService = services.NewAdminUserService(c.db, c.config)
	c.individualService = services.NewIndividualService(c.db, c.config)
	c.activityLogService = services.NewActivityLogService(c.db, c.config)
	c.guidanceLogService = services.NewGuidanceLogService(c.db, c.config)

	// 初始化MQTT接入服务并尝试连接
	c.guidanceIngestService = services.NewGuidanceIngestService(c.db, c.config, c.guidanceLogService)
	if err := c.guidanceIngestService.Connect(); err != nil {
		config.Warning("MQTT服务连接失败: %v", err)
	}
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "session":
		return c.sessionService
	case "admin_user":
		return c.adminUserService
	case "individual":
		return c.individualService
	case "activity_log":
		return c.activityLogService
	case "guidance_log":
		return c.guidanceLogService
	case "guidance_ingest":
		return c.guidanceIngestService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
