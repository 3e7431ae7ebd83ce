package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Individual represents a visually impaired individual registered
// through the companion app
type Individual struct {
	ID               string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username         string    `gorm:"type:varchar(50);not null" json:"username"`
	Password         string    `gorm:"type:varchar(100);not null" json:"-"` // Password hash, not exposed in JSON
	Email            string    `gorm:"type:varchar(100)" json:"email"`
	Phone            string    `gorm:"type:varchar(20)" json:"phone"`
	RegistrationDate time.Time `json:"registration_date"`
}

// BeforeCreate is a GORM hook assigning an opaque document id
func (i *Individual) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.RegistrationDate.IsZero() {
		i.RegistrationDate = time.Now()
	}
	return nil
}
