package services

import (
	"errors"
	"fmt"

	"visionguide-http-service/config"
	"visionguide-http-service/models"
	"visionguide-http-service/utils"

	"gorm.io/gorm"
)

// 管理员列表允许的排序字段（请求参数 -> 存储列）
var adminSortFields = map[string]string{
	"username":   "username",
	"role":       "role",
	"created_at": "created_at",
}

// InterfaceAdminUserService 管理员账号服务接口
type InterfaceAdminUserService interface {
	Authenticate(username, password string) (*models.AdminUser, error)
	GetAdminByID(id string) (*models.AdminUser, error)
	GetAllAdmins(sortField, sortDir, usernameFilter string) ([]models.AdminUser, error)
	CreateAdmin(actor, username, password string) (*models.AdminUser, error)
	UpdateAdmin(actor, id, username, password string) (*models.AdminUser, error)
	DeleteAdmin(actor, id string) error
}

// AdminUserService 提供管理员账号相关的服务
type AdminUserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAdminUserService 创建一个新的管理员账号服务
func NewAdminUserService(db *gorm.DB, cfg *config.Config) InterfaceAdminUserService {
	return &AdminUserService{
		DB:     db,
		Config: cfg,
	}
}

// 1 Authenticate 校验登录凭据。
// 用户名不存在和密码不匹配返回同一个错误，不向调用方泄露差别。
func (s *AdminUserService) Authenticate(username, password string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := s.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, admin.Password) {
		return nil, ErrInvalidCredentials
	}
	return &admin, nil
}

// 2 GetAdminByID 根据ID获取管理员
func (s *AdminUserService) GetAdminByID(id string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := s.DB.Where("id = ?", id).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// 3 GetAllAdmins 获取管理员列表，存储层负责排序，子串过滤在内存中完成
func (s *AdminUserService) GetAllAdmins(sortField, sortDir, usernameFilter string) ([]models.AdminUser, error) {
	sort := NormalizeSort(sortField, sortDir, "username", adminSortFields)

	var admins []models.AdminUser
	if err := s.DB.Order(sort.OrderClause()).Find(&admins).Error; err != nil {
		return nil, err
	}

	filtered := make([]models.AdminUser, 0, len(admins))
	for _, admin := range admins {
		if !MatchesFilter(admin.Username, usernameFilter) {
			continue
		}
		filtered = append(filtered, admin)
	}
	return filtered, nil
}

// 4 CreateAdmin 创建新管理员，默认角色为 admin。
// 唯一性检查、写入和审计日志在同一个事务内完成。
func (s *AdminUserService) CreateAdmin(actor, username, password string) (*models.AdminUser, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &models.AdminUser{
		Username: username,
		Password: hashedPassword,
		Role:     models.RoleAdmin,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.AdminUser{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}

		if err := tx.Create(admin).Error; err != nil {
			return err
		}

		return tx.Create(&models.ActivityLog{
			Admin:      actor,
			Action:     fmt.Sprintf("add_admin: Added new admin: %s", username),
			TargetUID:  admin.ID,
			TargetRole: models.TargetRoleAdmin,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// 5 UpdateAdmin 更新管理员用户名，密码为空时保持不变。
// 角色不经由该入口修改，部分更新自然保留原角色。
func (s *AdminUserService) UpdateAdmin(actor, id, username, password string) (*models.AdminUser, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}

	var admin models.AdminUser
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// 检查用户名是否被其他管理员占用
		var count int64
		if err := tx.Model(&models.AdminUser{}).Where("username = ? AND id <> ?", username, id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}

		if err := tx.Where("id = ?", id).First(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAdminNotFound
			}
			return err
		}

		updates := map[string]interface{}{"username": username}
		if password != "" {
			hashedPassword, err := utils.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			updates["password"] = hashedPassword
		}
		if err := tx.Model(&admin).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Create(&models.ActivityLog{
			Admin:      actor,
			Action:     fmt.Sprintf("edit_admin: Updated admin: %s", username),
			TargetUID:  admin.ID,
			TargetRole: admin.Role,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// 6 DeleteAdmin 删除管理员并记录审计日志
func (s *AdminUserService) DeleteAdmin(actor, id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var admin models.AdminUser
		if err := tx.Where("id = ?", id).First(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAdminNotFound
			}
			return err
		}

		if err := tx.Delete(&admin).Error; err != nil {
			return err
		}

		return tx.Create(&models.ActivityLog{
			Admin:      actor,
			Action:     fmt.Sprintf("delete_admin: Deleted admin: %s", admin.Username),
			TargetUID:  admin.ID,
			TargetRole: models.TargetRoleAdmin,
		}).Error
	})
}
