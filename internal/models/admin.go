package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// JSONB for PostgreSQL JSON support
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	}
	return nil
}

// AdminUser represents a back-office administrator account
type AdminUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	Name         string    `gorm:"size:255" json:"name"`
	Role         string    `gorm:"size:20;not null;default:ADMIN" json:"role"` // SUPER_ADMIN, ADMIN
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

// AdminLog records admin actions for audit
type AdminLog struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	AdminID    uint       `gorm:"not null;index" json:"admin_id"`
	Admin      *AdminUser `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	Action     string     `gorm:"size:100;not null" json:"action"` // REVIEW_REGISTRATION, CREATE_NEWS, ...
	EntityType string     `gorm:"size:50" json:"entity_type"`
	EntityID   *uint      `json:"entity_id,omitempty"`
	Details    JSONB      `gorm:"type:jsonb" json:"details,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (AdminLog) TableName() string {
	return "admin_logs"
}
