package services

import (
	"visionguide-http-service/config"
	"visionguide-http-service/models"

	"gorm.io/gorm"
)

// InterfaceActivityLogService 审计日志服务接口
type InterfaceActivityLogService interface {
	AppendTx(tx *gorm.DB, entry *models.ActivityLog) error
	GetRecent(limit int) ([]models.ActivityLog, error)
}

// ActivityLogService 提供审计日志相关的服务。
// 日志只追加，不提供任何修改或删除入口。
type ActivityLogService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewActivityLogService 创建一个新的审计日志服务
func NewActivityLogService(db *gorm.DB, cfg *config.Config) InterfaceActivityLogService {
	return &ActivityLogService{
		DB:     db,
		Config: cfg,
	}
}

// 1 AppendTx 在给定事务内追加一条审计日志。
// 管理类变更和它的审计记录必须落在同一个事务里。
func (s *ActivityLogService) AppendTx(tx *gorm.DB, entry *models.ActivityLog) error {
	return tx.Create(entry).Error
}

// 2 GetRecent 按时间倒序获取最近的审计日志
func (s *ActivityLogService) GetRecent(limit int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	if err := s.DB.Order("timestamp desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
