package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Registration status values
const (
	RegistrationStatusPending     = "pending"
	RegistrationStatusApproved    = "approved"
	RegistrationStatusRejected    = "rejected"
	RegistrationStatusUnderReview = "under_review"
)

// ValidRegistrationStatus reports whether s is one of the known statuses.
func ValidRegistrationStatus(s string) bool {
	switch s {
	case RegistrationStatusPending, RegistrationStatusApproved,
		RegistrationStatusRejected, RegistrationStatusUnderReview:
		return true
	}
	return false
}

// Registration represents a full player registration submitted in Step 2.
// The reference code is carried by value; the code row itself lives in
// reference_numbers and is consumed atomically with this insert.
type Registration struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	ReferenceNumber string `gorm:"uniqueIndex;not null;size:20" json:"reference_number"`

	FullName    string `gorm:"size:255;not null" json:"full_name"`
	Email       string `gorm:"size:255;not null" json:"email"`
	Phone       string `gorm:"size:30;not null" json:"phone"`
	DateOfBirth string `gorm:"size:10;not null" json:"date_of_birth"` // YYYY-MM-DD
	Gender      string `gorm:"size:20;not null" json:"gender"`

	Address         string `gorm:"type:text" json:"address,omitempty"`
	City            string `gorm:"size:100" json:"city,omitempty"`
	PlayingPosition string `gorm:"size:50" json:"playing_position,omitempty"` // tekong, feeder, striker
	ExperienceYears int    `gorm:"default:0" json:"experience_years"`
	PreviousClub    string `gorm:"size:255" json:"previous_club,omitempty"`

	EmergencyContactName  string `gorm:"size:255" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `gorm:"size:30" json:"emergency_contact_phone,omitempty"`

	TermsAccepted   bool `gorm:"not null" json:"terms_accepted"`
	PrivacyAccepted bool `gorm:"not null" json:"privacy_accepted"`

	FeeAmount decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"fee_amount"`

	Status      string     `gorm:"size:20;not null;default:pending;index" json:"status"`
	SubmittedAt time.Time  `json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes *string    `gorm:"type:text" json:"review_notes,omitempty"`
	ReviewedBy  *string    `gorm:"size:255" json:"reviewed_by,omitempty"`
}

// TableName specifies the table name for Registration model
func (Registration) TableName() string {
	return "registrations"
}
