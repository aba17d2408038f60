package model

import (
	"time"
)

// Lead represents a prospective customer business in the PostgreSQL database.
// Leads are created once via the new-lead submission path and never mutated.
type Lead struct {
	ID           string    `json:"id" gorm:"primaryKey;type:text"`
	BusinessName string    `json:"business_name" gorm:"type:text" validate:"required"`
	ContactName  string    `json:"contact_name" gorm:"type:text" validate:"required"`
	ContactPhone string    `json:"contact_phone,omitempty" gorm:"type:text"`
	ContactEmail string    `json:"contact_email,omitempty" gorm:"type:text" validate:"omitempty,email"`
	City         string    `json:"city,omitempty" gorm:"type:text"`
	LeadSource   string    `json:"lead_source,omitempty" gorm:"type:text"`
	Industry     string    `json:"industry,omitempty" gorm:"type:text"`
	CompanySize  string    `json:"company_size,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the Lead model.
func (Lead) TableName() string {
	return "leads"
}
