package models

import (
	"time"
)

// Member represents an entry in the federation member directory
type Member struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Role      string    `gorm:"size:100;index" json:"role"` // president, secretary, coach, player
	District  string    `gorm:"size:100" json:"district,omitempty"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	Phone     string    `gorm:"size:30" json:"phone,omitempty"`
	PhotoURL  string    `gorm:"size:1000" json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Member model
func (Member) TableName() string {
	return "members"
}
