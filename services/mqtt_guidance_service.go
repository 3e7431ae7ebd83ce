package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"visionguide-http-service/config"
	"visionguide-http-service/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"gorm.io/gorm"
)

// 主题常量
const (
	// TopicGuidanceEvents 伴随应用上报检测/引导事件的主题，中段为用户ID
	TopicGuidanceEvents = "guidance/+/events"
)

// GuidanceEventMessage 伴随应用经MQTT上报的检测/引导事件
type GuidanceEventMessage struct {
	UserID         string  `json:"user_id"`
	ObjectName     string  `json:"object_name"`
	DistanceMeters float64 `json:"distance_meters"`
	Direction      string  `json:"direction"`
	Confidence     float64 `json:"confidence"`
	Timestamp      int64   `json:"timestamp"` // Unix毫秒时间戳，缺省时取服务端时间
}

// InterfaceGuidanceIngestService MQTT引导事件接入服务接口
type InterfaceGuidanceIngestService interface {
	Connect() error
	Disconnect()
	IsConnected() bool
}

// GuidanceIngestService 订阅MQTT主题并把检测事件落库
type GuidanceIngestService struct {
	DB              *gorm.DB
	Config          *config.Config
	GuidanceService InterfaceGuidanceLogService
	Client          mqtt.Client

	connected      bool
	connectedMutex sync.RWMutex
}

// NewGuidanceIngestService 创建一个新的MQTT接入服务
func NewGuidanceIngestService(db *gorm.DB, cfg *config.Config, guidanceService InterfaceGuidanceLogService) *GuidanceIngestService {
	return &GuidanceIngestService{
		DB:              db,
		Config:          cfg,
		GuidanceService: guidanceService,
	}
}

// 1 Connect 连接MQTT服务器并订阅引导事件主题。
// 未配置 MQTT_BROKER_URL 时直接返回，不视为错误。
func (s *GuidanceIngestService) Connect() error {
	if s.Config.MQTTBrokerURL == "" {
		config.Info("MQTT broker not configured, guidance ingestion disabled")
		return nil
	}

	opts := mqtt.NewClientOptions().
		AddBroker(s.Config.MQTTBrokerURL).
		SetClientID(s.Config.MQTTClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second).
		SetOnConnectHandler(func(client mqtt.Client) {
			s.setConnected(true)
			if token := client.Subscribe(TopicGuidanceEvents, 1, s.handleGuidanceEvent); token.Wait() && token.Error() != nil {
				config.Error("订阅引导事件主题失败: %v", token.Error())
			}
		}).
		SetConnectionLostHandler(func(client mqtt.Client, err error) {
			s.setConnected(false)
			config.Warning("MQTT连接断开: %v", err)
		})

	s.Client = mqtt.NewClient(opts)
	if token := s.Client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect mqtt broker: %w", token.Error())
	}
	return nil
}

// 2 Disconnect 断开MQTT连接
func (s *GuidanceIngestService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
	s.setConnected(false)
}

// 3 IsConnected 返回当前连接状态
func (s *GuidanceIngestService) IsConnected() bool {
	s.connectedMutex.RLock()
	defer s.connectedMutex.RUnlock()
	return s.connected
}

func (s *GuidanceIngestService) setConnected(connected bool) {
	s.connectedMutex.Lock()
	defer s.connectedMutex.Unlock()
	s.connected = connected
}

// handleGuidanceEvent 解析并落库一条引导事件，坏消息记日志后丢弃
func (s *GuidanceIngestService) handleGuidanceEvent(client mqtt.Client, msg mqtt.Message) {
	if err := s.ProcessGuidanceEvent(msg.Topic(), msg.Payload()); err != nil {
		config.Warning("丢弃无法处理的引导事件 (topic=%s): %v", msg.Topic(), err)
	}
}

// 4 ProcessGuidanceEvent 处理一条引导事件消息。
// 消息体缺少 user_id 时退回主题中段的用户ID。
func (s *GuidanceIngestService) ProcessGuidanceEvent(topic string, payload []byte) error {
	var event GuidanceEventMessage
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("decode guidance event: %w", err)
	}

	if event.UserID == "" {
		parts := strings.Split(topic, "/")
		if len(parts) == 3 {
			event.UserID = parts[1]
		}
	}
	if event.UserID == "" || event.ObjectName == "" {
		return fmt.Errorf("guidance event missing user_id or object_name")
	}

	entry := &models.GuidanceLog{
		UserID:         event.UserID,
		ObjectName:     event.ObjectName,
		DistanceMeters: event.DistanceMeters,
		Direction:      event.Direction,
		Confidence:     event.Confidence,
	}
	if event.Timestamp > 0 {
		entry.Timestamp = time.UnixMilli(event.Timestamp).UTC()
	}

	return s.GuidanceService.RecordGuidanceEvent(entry)
}
