package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit target role tags
const (
	TargetRoleUser  = "user"
	TargetRoleAdmin = "admin"
)

// ActivityLog represents one append-only audit entry recorded after
// every successful administrative mutation
type ActivityLog struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Admin      string    `gorm:"type:varchar(50);not null" json:"admin"`  // Acting admin username
	Action     string    `gorm:"type:varchar(255);not null" json:"action"` // Verb plus human-readable detail
	TargetUID  string    `gorm:"type:varchar(36);not null" json:"target_uid"`
	TargetRole string    `gorm:"type:varchar(20)" json:"target_role"`
	Timestamp  time.Time `gorm:"index" json:"timestamp"`
}

// BeforeCreate is a GORM hook assigning an opaque document id
func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	return nil
}
