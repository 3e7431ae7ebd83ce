package services

import (
	"errors"
	"fmt"

	"visionguide-http-service/config"
	"visionguide-http-service/models"
	"visionguide-http-service/utils"

	"gorm.io/gorm"
)

// 用户列表允许的排序字段（请求参数 -> 存储列）
var individualSortFields = map[string]string{
	"username":          "username",
	"email":             "email",
	"registration_date": "registration_date",
}

// InterfaceIndividualService 视障用户服务接口
type InterfaceIndividualService interface {
	Authenticate(username, password string) (*models.Individual, error)
	GetIndividualByID(id string) (*models.Individual, error)
	GetAllIndividuals(sortField, sortDir, usernameFilter, emailFilter string) ([]models.Individual, error)
	UpdateIndividual(actor, id, username, password string) (*models.Individual, error)
	DeleteIndividual(actor, id string) error
}

// IndividualService 提供视障用户相关的服务
type IndividualService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewIndividualService 创建一个新的视障用户服务
func NewIndividualService(db *gorm.DB, cfg *config.Config) InterfaceIndividualService {
	return &IndividualService{
		DB:     db,
		Config: cfg,
	}
}

// 1 Authenticate 校验伴随应用的登录凭据
func (s *IndividualService) Authenticate(username, password string) (*models.Individual, error) {
	var individual models.Individual
	if err := s.DB.Where("username = ?", username).First(&individual).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, individual.Password) {
		return nil, ErrInvalidCredentials
	}
	return &individual, nil
}

// 2 GetIndividualByID 根据ID获取用户
func (s *IndividualService) GetIndividualByID(id string) (*models.Individual, error) {
	var individual models.Individual
	if err := s.DB.Where("id = ?", id).First(&individual).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIndividualNotFound
		}
		return nil, err
	}
	return &individual, nil
}

// 3 GetAllIndividuals 获取用户列表，存储层负责排序，子串过滤在内存中完成。
// 过滤条件全部满足的记录才会保留，过滤后不再重新排序。
func (s *IndividualService) GetAllIndividuals(sortField, sortDir, usernameFilter, emailFilter string) ([]models.Individual, error) {
	sort := NormalizeSort(sortField, sortDir, "registration_date", individualSortFields)

	var individuals []models.Individual
	if err := s.DB.Order(sort.OrderClause()).Find(&individuals).Error; err != nil {
		return nil, err
	}

	filtered := make([]models.Individual, 0, len(individuals))
	for _, individual := range individuals {
		if !MatchesFilter(individual.Username, usernameFilter) {
			continue
		}
		if !MatchesFilter(individual.Email, emailFilter) {
			continue
		}
		filtered = append(filtered, individual)
	}
	return filtered, nil
}

// 4 UpdateIndividual 更新用户名，密码为空时保持不变。
// 其余档案字段不经由该入口修改，部分更新保留原值。
func (s *IndividualService) UpdateIndividual(actor, id, username, password string) (*models.Individual, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}

	var individual models.Individual
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&individual).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIndividualNotFound
			}
			return err
		}

		action := fmt.Sprintf("edit: Changed username to %s", username)
		updates := map[string]interface{}{"username": username}
		if password != "" {
			hashedPassword, err := utils.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			updates["password"] = hashedPassword
			action += ", password updated"
		}
		if err := tx.Model(&individual).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Create(&models.ActivityLog{
			Admin:      actor,
			Action:     action,
			TargetUID:  individual.ID,
			TargetRole: models.TargetRoleUser,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &individual, nil
}

// 5 DeleteIndividual 删除用户并记录审计日志
func (s *IndividualService) DeleteIndividual(actor, id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var individual models.Individual
		if err := tx.Where("id = ?", id).First(&individual).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIndividualNotFound
			}
			return err
		}

		if err := tx.Delete(&individual).Error; err != nil {
			return err
		}

		return tx.Create(&models.ActivityLog{
			Admin:      actor,
			Action:     "delete: Deleted user",
			TargetUID:  individual.ID,
			TargetRole: models.TargetRoleUser,
		}).Error
	})
}
