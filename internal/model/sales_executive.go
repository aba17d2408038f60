package model

import (
	"time"
)

// SalesExecutive represents a sales rep who files call reports. Reference
// data only; the dashboard never writes to it outside the seeding path.
type SalesExecutive struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	Name      string    `json:"name" gorm:"type:text" validate:"required"`
	CreatedAt time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the SalesExecutive model.
func (SalesExecutive) TableName() string {
	return "sales_executives"
}
