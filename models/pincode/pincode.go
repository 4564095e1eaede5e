package pincode

import (
	"time"
)

// Pincode is a serviceable postal code.
type Pincode struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Pincode  string `gorm:"type:varchar(10);not null;uniqueIndex" json:"pincode"`
	City     string `gorm:"type:varchar(100);not null" json:"city"`
	State    string `gorm:"type:varchar(100);not null" json:"state"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Pincode model
func (Pincode) TableName() string {
	return "pincodes"
}
