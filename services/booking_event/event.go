package booking_event

import (
	bookingModel "locker-booking/models/booking"

	"gorm.io/gorm"
)

// RecordStatus appends an audit row capturing the booking's current status.
// Callers pass the transaction the transition ran in so the event commits or
// rolls back with it.
func RecordStatus(tx *gorm.DB, b *bookingModel.Booking, createdBy string) error {
	ev := bookingModel.BookingStatusEvent{
		BookingID: b.ID,
		Status:    b.Status,
		CreatedBy: createdBy,
	}
	return tx.Create(&ev).Error
}

// History returns the recorded status transitions for a booking, oldest
// first.
func History(db *gorm.DB, bookingID uint) ([]bookingModel.BookingStatusEvent, error) {
	var events []bookingModel.BookingStatusEvent
	err := db.Where("booking_id = ?", bookingID).Order("created_at").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
