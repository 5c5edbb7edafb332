// Package pricing implements the rental price calculation and the date-range
// conflict rules for locker reservations. Everything here is pure so the
// rules can be exercised with synthetic dates; "today" validation lives one
// layer up in the booking service.
package pricing

import (
	"errors"
	"math"
	"time"

	bookingModel "locker-booking/models/booking"
)

// ErrInvalidRange reports a reservation range whose end date precedes its
// start date, or one that otherwise cannot be billed.
var ErrInvalidRange = errors.New("invalid date range")

const hoursPerDay = 24

// BilledDays returns the number of billable days for an inclusive date range.
// Both endpoints count, so the minimum is one day.
func BilledDays(start, end time.Time) (int, error) {
	s := Day(start)
	e := Day(end)
	if e.Before(s) {
		return 0, ErrInvalidRange
	}
	return int(math.Round(e.Sub(s).Hours()/hoursPerDay)) + 1, nil
}

// TotalPrice computes dailyRate times the billed days, rounded to currency
// precision.
func TotalPrice(dailyRate float64, start, end time.Time) (float64, error) {
	days, err := BilledDays(start, end)
	if err != nil {
		return 0, err
	}
	return math.Round(dailyRate*float64(days)*100) / 100, nil
}

// Overlaps reports whether two inclusive date ranges intersect. Ranges that
// merely touch on a shared day do overlap; adjacent ranges do not.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !Day(aStart).After(Day(bEnd)) && !Day(aEnd).Before(Day(bStart))
}

// HasConflict reports whether any booking that still blocks the unit
// intersects the candidate range.
func HasConflict(existing []bookingModel.Booking, start, end time.Time) bool {
	for _, b := range existing {
		if !b.Status.Blocks() {
			continue
		}
		if Overlaps(b.StartDate, b.EndDate, start, end) {
			return true
		}
	}
	return false
}

// Day truncates a timestamp to its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
