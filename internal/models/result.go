package models

import (
	"time"
)

// Result represents a published match result
type Result struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventName string    `gorm:"size:500;not null" json:"event_name"`
	EventDate time.Time `gorm:"index" json:"event_date"`
	Category  string    `gorm:"size:100" json:"category,omitempty"` // regu, doubles, quad
	TeamA     string    `gorm:"size:255" json:"team_a"`
	TeamB     string    `gorm:"size:255" json:"team_b"`
	ScoreA    int       `gorm:"default:0" json:"score_a"`
	ScoreB    int       `gorm:"default:0" json:"score_b"`
	Venue     string    `gorm:"size:255" json:"venue,omitempty"`
	PhotoURLs string    `gorm:"type:text" json:"photo_urls,omitempty"` // comma-separated public URLs
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Result model
func (Result) TableName() string {
	return "results"
}
