package booking

import (
	"time"
)

// TrackingEvent is one entry of a booking's append-only tracking history.
// Rows are only ever inserted; insertion order is the chronology of record.
type TrackingEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	BookingRef uint `gorm:"column:booking_ref;not null;index" json:"booking_ref"`

	Status      string    `gorm:"type:varchar(100);not null" json:"status"`
	Location    string    `gorm:"type:varchar(255);not null" json:"location"`
	Description string    `gorm:"type:text;not null" json:"description"`
	RecordedAt  time.Time `gorm:"not null" json:"timestamp"`

	CreatedBy string    `gorm:"type:varchar(255)" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the TrackingEvent model
func (TrackingEvent) TableName() string {
	return "tracking_events"
}
