package booking

import "errors"

// Sentinel errors returned by the booking service. Controllers map these to
// HTTP status codes with errors.Is.
var (
	ErrNotFound          = errors.New("booking not found")
	ErrLockerNotFound    = errors.New("locker not found")
	ErrLockerUnavailable = errors.New("locker is not available for booking")
	ErrConflict          = errors.New("locker is already booked for the selected dates")
	ErrForbidden         = errors.New("booking belongs to another user")
	ErrInvalidState      = errors.New("booking cannot be changed in its current status")
)
