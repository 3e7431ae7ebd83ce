package services

import (
	"visionguide-http-service/config"
	"visionguide-http-service/models"

	"gorm.io/gorm"
)

// 引导记录列表允许的排序字段（请求参数 -> 存储列）
var guidanceSortFields = map[string]string{
	"timestamp":   "timestamp",
	"user_id":     "user_id",
	"object_name": "object_name",
}

// InterfaceGuidanceLogService 引导记录服务接口
type InterfaceGuidanceLogService interface {
	GetAllGuidanceLogs(sortField, sortDir, userIDFilter, objectNameFilter string) ([]models.GuidanceLog, error)
	GetUserGuidanceLogs(userID string, limit int) ([]models.GuidanceLog, error)
	RecordGuidanceEvent(entry *models.GuidanceLog) error
}

// GuidanceLogService 提供目标检测/引导记录相关的服务。
// 管理面板只读取这些记录，写入来自伴随应用的 API 和 MQTT 通道。
type GuidanceLogService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewGuidanceLogService 创建一个新的引导记录服务
func NewGuidanceLogService(db *gorm.DB, cfg *config.Config) InterfaceGuidanceLogService {
	return &GuidanceLogService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllGuidanceLogs 获取引导记录列表，存储层负责排序，子串过滤在内存中完成
func (s *GuidanceLogService) GetAllGuidanceLogs(sortField, sortDir, userIDFilter, objectNameFilter string) ([]models.GuidanceLog, error) {
	sort := NormalizeSort(sortField, sortDir, "timestamp", guidanceSortFields)

	var logs []models.GuidanceLog
	if err := s.DB.Order(sort.OrderClause()).Find(&logs).Error; err != nil {
		return nil, err
	}

	filtered := make([]models.GuidanceLog, 0, len(logs))
	for _, entry := range logs {
		if !MatchesFilter(entry.UserID, userIDFilter) {
			continue
		}
		if !MatchesFilter(entry.ObjectName, objectNameFilter) {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered, nil
}

// 2 GetUserGuidanceLogs 获取单个用户最近的引导记录
func (s *GuidanceLogService) GetUserGuidanceLogs(userID string, limit int) ([]models.GuidanceLog, error) {
	var logs []models.GuidanceLog
	if err := s.DB.Where("user_id = ?", userID).Order("timestamp desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// 3 RecordGuidanceEvent 追加一条引导记录
func (s *GuidanceLogService) RecordGuidanceEvent(entry *models.GuidanceLog) error {
	return s.DB.Create(entry).Error
}
