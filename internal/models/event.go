package models

import (
	"time"
)

// Event represents a federation event (tournament, camp, meeting)
type Event struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:500;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Location    string     `gorm:"size:255" json:"location,omitempty"`
	StartDate   time.Time  `gorm:"index" json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	PosterURL   string     `gorm:"size:1000" json:"poster_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name for Event model
func (Event) TableName() string {
	return "events"
}
