package booking

// BookingStatus is the lifecycle state of a reservation.
//
// pending -> active -> completed, with pending/active -> cancelled as the
// user-triggered exits. completed and cancelled are terminal.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (bs BookingStatus) IsTerminal() bool {
	return bs == StatusCompleted || bs == StatusCancelled
}

// Blocks reports whether a booking in this status still reserves the unit's
// dates. Completed and cancelled bookings never block.
func (bs BookingStatus) Blocks() bool {
	return bs == StatusPending || bs == StatusActive
}

// CanBeCancelled reports whether the user may still cancel the booking.
func (bs BookingStatus) CanBeCancelled() bool {
	return bs == StatusPending || bs == StatusActive
}

// GetAllBookingStatuses returns all valid booking statuses.
func GetAllBookingStatuses() []BookingStatus {
	return []BookingStatus{StatusPending, StatusActive, StatusCompleted, StatusCancelled}
}

// BlockingStatuses returns the statuses that reserve a unit's dates, for use
// in query filters.
func BlockingStatuses() []BookingStatus {
	return []BookingStatus{StatusPending, StatusActive}
}
