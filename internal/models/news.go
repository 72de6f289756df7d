package models

import (
	"time"
)

// News represents a news article on the public site
type News struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:500;not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	ImageURL  string    `gorm:"size:1000" json:"image_url,omitempty"`
	Published bool      `gorm:"default:true;index" json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for News model
func (News) TableName() string {
	return "news"
}
