// @title           VisionGuide HTTP Service API
// @version         1.0
// @description     Administrative panel and companion app API for a visual assistance platform
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  support@visionguide.dev

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"fmt"
	"log"
	"os"

	"visionguide-http-service/config"
	"visionguide-http-service/models"
	"visionguide-http-service/routes"
	"visionguide-http-service/utils"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// 初始化日志配置
	if err := config.SetupLogger(); err != nil {
		fmt.Printf("初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}

	// 加载.env文件
	if err := godotenv.Load(); err != nil {
		config.Warning("无法加载.env文件: %v", err)
		// 即使加载失败也继续执行，可能环境变量已经通过其他方式设置
	} else {
		config.Info("成功加载.env文件")
	}

	// 获取配置
	cfg := config.GetConfig()

	// 连接数据库
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("无法连接数据库: %v", err)
	}

	// 根据配置执行不同的数据库操作
	if cfg.DBMigrationMode == "drop" {
		// 删除并重建表
		log.Println("警告: 在drop模式下运行，将删除并重建所有表")
		if err := dropAndRecreateTables(db); err != nil {
			log.Fatalf("删除并重建表失败: %v", err)
		}
	} else {
		// 默认AutoMigrate，只会添加新列和新表，不会删除或修改列
		log.Println("在标准模式下运行，将只添加新列和新表")
		if err := autoMigrate(db); err != nil {
			log.Fatalf("自动迁移失败: %v", err)
		}
	}

	// 确保系统中有超级管理员账户
	ensureSuperAdminExists(db, cfg)

	// 初始化Redis客户端，用于会话存储
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})

	// 初始化路由
	r := routes.SetupRouter(db, cfg, redisClient)

	// 启动服务器
	port := cfg.ServerPort
	config.Info("服务器启动在: http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		config.Error("启动服务器失败: %v", err)
		os.Exit(1)
	}
}

// initDB 初始化数据库连接
func initDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	fmt.Println("Database connection established")
	return db, nil
}

// autoMigrate 自动迁移所有模型（只添加新列和新表）
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.AdminUser{},
		&models.Individual{},
		&models.ActivityLog{},
		&models.GuidanceLog{},
	)

	if err != nil {
		return err
	}

	fmt.Println("Database migration completed")
	return nil
}

// dropAndRecreateTables 删除并重建所有表
func dropAndRecreateTables(db *gorm.DB) error {
	err := db.Migrator().DropTable(
		&models.AdminUser{},
		&models.Individual{},
		&models.ActivityLog{},
		&models.GuidanceLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}

	return autoMigrate(db)
}

// ensureSuperAdminExists 确保系统中至少存在一个超级管理员账户
func ensureSuperAdminExists(db *gorm.DB, cfg *config.Config) {
	var count int64
	if err := db.Model(&models.AdminUser{}).Where("role = ?", models.RoleSuperAdmin).Count(&count).Error; err != nil {
		config.Error("查询超级管理员失败: %v", err)
		return
	}

	if count > 0 {
		return
	}

	hashed, err := utils.HashPassword(cfg.DefaultAdminPassword)
	if err != nil {
		config.Error("生成默认管理员密码失败: %v", err)
		return
	}

	admin := models.AdminUser{
		Username: "admin",
		Password: hashed,
		Role:     models.RoleSuperAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		config.Error("创建默认超级管理员失败: %v", err)
		return
	}

	config.Info("已创建默认超级管理员账户: admin")
}
