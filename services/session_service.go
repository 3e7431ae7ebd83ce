package services

import (
	"context"
	"encoding/json"
	"time"

	"visionguide-http-service/config"
	"visionguide-http-service/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const sessionKeyPrefix = "session:"

// InterfaceSessionService 浏览器会话服务接口
type InterfaceSessionService interface {
	Create(principal models.Principal) (*models.Session, error)
	Get(sessionID string) (*models.Session, error)
	Destroy(sessionID string) error
	QueueNotice(sessionID, notice string) error
	PopNotices(sessionID string) ([]string, error)
}

// SessionService 基于 Redis 的会话存储，承载登录主体和一次性页面通知
type SessionService struct {
	Client *redis.Client
	Ctx    context.Context
	TTL    time.Duration
}

// NewSessionService 创建一个新的会话服务
func NewSessionService(cfg *config.Config, client *redis.Client) InterfaceSessionService {
	return &SessionService{
		Client: client,
		Ctx:    context.Background(),
		TTL:    time.Duration(cfg.SessionTTLMinutes) * time.Minute,
	}
}

// 1 Create 为登录主体创建新会话
func (s *SessionService) Create(principal models.Principal) (*models.Session, error) {
	session := &models.Session{
		ID:        uuid.NewString(),
		Username:  principal.Username,
		Role:      principal.Role,
		CreatedAt: time.Now(),
	}
	if err := s.save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// 2 Get 根据会话ID加载会话，不存在或已过期时返回 redis.Nil
func (s *SessionService) Get(sessionID string) (*models.Session, error) {
	val, err := s.Client.Get(s.Ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return nil, err
	}
	var session models.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// 3 Destroy 删除会话，登出时无条件执行
func (s *SessionService) Destroy(sessionID string) error {
	return s.Client.Del(s.Ctx, sessionKeyPrefix+sessionID).Err()
}

// 4 QueueNotice 为下一次页面渲染排队一条一次性通知
func (s *SessionService) QueueNotice(sessionID, notice string) error {
	session, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	session.Notices = append(session.Notices, notice)
	return s.save(session)
}

// 5 PopNotices 取出并清空已排队的通知
func (s *SessionService) PopNotices(sessionID string) ([]string, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	notices := session.Notices
	if len(notices) == 0 {
		return nil, nil
	}
	session.Notices = nil
	if err := s.save(session); err != nil {
		return nil, err
	}
	return notices, nil
}

// save 序列化会话并刷新TTL
func (s *SessionService) save(session *models.Session) error {
	jsonValue, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.Client.Set(s.Ctx, sessionKeyPrefix+session.ID, jsonValue, s.TTL).Err()
}
