package pricing

import (
	"testing"
	"time"

	bookingModel "locker-booking/models/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBilledDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", date(2026, 2, 1), date(2026, 2, 1), 1},
		{"three days inclusive", date(2026, 2, 1), date(2026, 2, 3), 3},
		{"full month", date(2026, 2, 1), date(2026, 2, 28), 28},
		{"across month boundary", date(2026, 1, 30), date(2026, 2, 2), 4},
		{"across dst change", date(2026, 3, 7), date(2026, 3, 9), 3},
		{"full year", date(2026, 1, 1), date(2026, 12, 31), 365},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BilledDays(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBilledDaysRejectsReversedRange(t *testing.T) {
	_, err := BilledDays(date(2026, 2, 10), date(2026, 2, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestBilledDaysIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, 2, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2026, 2, 3, 0, 1, 0, 0, time.UTC)
	got, err := BilledDays(start, end)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestTotalPrice(t *testing.T) {
	tests := []struct {
		name  string
		rate  float64
		start time.Time
		end   time.Time
		want  float64
	}{
		{"one day at 10", 10, date(2026, 2, 1), date(2026, 2, 1), 10},
		{"three days at 10", 10, date(2026, 2, 1), date(2026, 2, 3), 30},
		{"fractional rate rounds to cents", 7.99, date(2026, 2, 1), date(2026, 2, 3), 23.97},
		{"repeating fraction", 0.1, date(2026, 2, 1), date(2026, 2, 3), 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TotalPrice(tt.rate, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTotalPriceRejectsReversedRange(t *testing.T) {
	_, err := TotalPrice(10, date(2026, 2, 10), date(2026, 2, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{"contained", date(2026, 2, 1), date(2026, 2, 10), date(2026, 2, 4), date(2026, 2, 6), true},
		{"partial tail", date(2026, 2, 1), date(2026, 2, 10), date(2026, 2, 5), date(2026, 2, 15), true},
		{"partial head", date(2026, 2, 5), date(2026, 2, 15), date(2026, 2, 1), date(2026, 2, 10), true},
		{"shared single day", date(2026, 2, 1), date(2026, 2, 10), date(2026, 2, 10), date(2026, 2, 12), true},
		{"identical", date(2026, 2, 1), date(2026, 2, 10), date(2026, 2, 1), date(2026, 2, 10), true},
		{"adjacent after", date(2026, 2, 1), date(2026, 2, 10), date(2026, 2, 11), date(2026, 2, 20), false},
		{"adjacent before", date(2026, 2, 11), date(2026, 2, 20), date(2026, 2, 1), date(2026, 2, 10), false},
		{"disjoint", date(2026, 2, 1), date(2026, 2, 5), date(2026, 3, 1), date(2026, 3, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestHasConflictSkipsNonBlockingBookings(t *testing.T) {
	existing := []bookingModel.Booking{
		{StartDate: date(2026, 2, 1), EndDate: date(2026, 2, 10), Status: bookingModel.StatusCancelled},
		{StartDate: date(2026, 2, 1), EndDate: date(2026, 2, 10), Status: bookingModel.StatusCompleted},
	}
	assert.False(t, HasConflict(existing, date(2026, 2, 5), date(2026, 2, 6)))

	existing = append(existing, bookingModel.Booking{
		StartDate: date(2026, 2, 1), EndDate: date(2026, 2, 10), Status: bookingModel.StatusPending,
	})
	assert.True(t, HasConflict(existing, date(2026, 2, 5), date(2026, 2, 6)))
}

func TestHasConflictActiveBlocks(t *testing.T) {
	existing := []bookingModel.Booking{
		{StartDate: date(2026, 2, 1), EndDate: date(2026, 2, 10), Status: bookingModel.StatusActive},
	}
	assert.True(t, HasConflict(existing, date(2026, 2, 10), date(2026, 2, 12)))
	assert.False(t, HasConflict(existing, date(2026, 2, 11), date(2026, 2, 12)))
}
