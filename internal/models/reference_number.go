package models

import (
	"time"
)

// ReferenceNumber represents a registration reference code issued in Step 1.
// A code is consumed (used=true) at most once by a Step 2 submission and is
// never deleted, so the table doubles as an audit trail.
type ReferenceNumber struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Code      string     `gorm:"uniqueIndex;not null;size:20" json:"code"`
	FullName  string     `gorm:"size:255;not null" json:"full_name"`
	Email     string     `gorm:"size:255;not null" json:"email"`
	Used      bool       `gorm:"not null;default:false;index" json:"used"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName specifies the table name for ReferenceNumber model
func (ReferenceNumber) TableName() string {
	return "reference_numbers"
}

// IsExpired reports whether the code is past its expiry.
func (r *ReferenceNumber) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
