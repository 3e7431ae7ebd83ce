package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin roles
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// AdminUser represents a panel administrator account
type AdminUser struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"type:varchar(100);not null" json:"-"` // Password hash, not exposed in JSON
	Role      string    `gorm:"type:varchar(20);not null;default:admin" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsSuperAdmin reports whether the account carries the super_admin role
func (a *AdminUser) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}

// BeforeCreate is a GORM hook assigning an opaque document id
func (a *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Role == "" {
		a.Role = RoleAdmin
	}
	return nil
}
