package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GuidanceLog represents one object detection / guidance event reported
// by the companion app. The admin panel only reads these records.
type GuidanceLog struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID         string    `gorm:"type:varchar(36);index;not null" json:"userId"`
	ObjectName     string    `gorm:"type:varchar(100);not null" json:"objectName"`
	DistanceMeters float64   `json:"distanceMeters"`
	Direction      string    `gorm:"type:varchar(20)" json:"direction"` // left / center / right
	Confidence     float64   `json:"confidence"`
	Timestamp      time.Time `gorm:"index" json:"timestamp"`
}

// BeforeCreate is a GORM hook assigning an opaque document id
func (g *GuidanceLog) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.Timestamp.IsZero() {
		g.Timestamp = time.Now().UTC()
	}
	return nil
}
