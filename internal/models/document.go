package models

import (
	"time"
)

// Document represents a compliance or governance document (constitution,
// audit reports, meeting minutes) published on the site
type Document struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:500;not null" json:"title"`
	Category    string    `gorm:"size:100;index" json:"category"` // constitution, audit, minutes, circular
	Description string    `gorm:"type:text" json:"description,omitempty"`
	FileURL     string    `gorm:"size:1000;not null" json:"file_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Document model
func (Document) TableName() string {
	return "documents"
}
