package booking

import (
	"time"
)

// BookingStatusEvent is an audit row recorded on every booking status
// transition, including the initial pending state.
type BookingStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	BookingID uint    `gorm:"not null;index" json:"booking_id"`
	Booking   Booking `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Status    BookingStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedBy string        `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the BookingStatusEvent model.
func (BookingStatusEvent) TableName() string {
	return "booking_status_events"
}
