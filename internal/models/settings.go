package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SiteSetting holds the singleton site configuration edited from the
// admin settings page. Exactly one row is expected.
type SiteSetting struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	FederationName  string          `gorm:"size:255;not null" json:"federation_name"`
	ContactEmail    string          `gorm:"size:255" json:"contact_email,omitempty"`
	ContactPhone    string          `gorm:"size:30" json:"contact_phone,omitempty"`
	Address         string          `gorm:"type:text" json:"address,omitempty"`
	RegistrationFee decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"registration_fee"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name for SiteSetting model
func (SiteSetting) TableName() string {
	return "site_settings"
}
