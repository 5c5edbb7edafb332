// Package booking implements the reservation lifecycle: creation with
// conflict checking, lazy calendar-driven status transitions and user
// cancellation.
package booking

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"locker-booking/metrics"
	bookingModel "locker-booking/models/booking"
	lockerModel "locker-booking/models/locker"
	"locker-booking/services/booking_event"
	"locker-booking/services/pricing"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxBookingDays caps a single reservation at one year.
const maxBookingDays = 365

// Service manages booking persistence and state transitions.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// NewService creates a booking service backed by db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// CreateInput is a reservation request for a specific locker unit.
type CreateInput struct {
	UserID              uint
	LockerID            uint
	StartDate           time.Time
	EndDate             time.Time
	SpecialInstructions string
}

// CreateForSizeInput is a reservation request by location and size; the
// service assigns the first unit of that size whose dates are free.
type CreateForSizeInput struct {
	UserID              uint
	LocationID          uint
	Size                lockerModel.LockerSize
	StartDate           time.Time
	EndDate             time.Time
	SpecialInstructions string
}

// Create reserves the given locker for an inclusive date range. The conflict
// check and the insert run in one transaction with the locker row locked, so
// two concurrent requests cannot double-book the same dates.
func (s *Service) Create(in CreateInput) (*bookingModel.Booking, error) {
	start, end, today, err := s.validateRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	var created bookingModel.Booking
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var unit lockerModel.Locker
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&unit, in.LockerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLockerNotFound
			}
			return err
		}
		if !unit.Status.IsBookable() {
			return ErrLockerUnavailable
		}

		free, err := s.datesFree(tx, unit.ID, start, end)
		if err != nil {
			return err
		}
		if !free {
			return ErrConflict
		}

		created, err = s.insertBooking(tx, &unit, in.UserID, start, end, today, in.SpecialInstructions)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			metrics.IncBookingConflict()
		}
		return nil, err
	}

	metrics.IncBookingCreated(created.Status.String())
	return &created, nil
}

// CreateForSize reserves the first available unit of the requested size at a
// location. Units are considered in locker-number order; a unit whose dates
// clash with the candidate range is skipped in favor of the next one.
func (s *Service) CreateForSize(in CreateForSizeInput) (*bookingModel.Booking, error) {
	start, end, today, err := s.validateRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	var created bookingModel.Booking
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var units []lockerModel.Locker
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("location_id = ? AND size = ? AND status = ?", in.LocationID, in.Size, lockerModel.StatusAvailable).
			Order("locker_number").
			Find(&units).Error
		if err != nil {
			return err
		}
		if len(units) == 0 {
			return ErrLockerUnavailable
		}

		for i := range units {
			free, err := s.datesFree(tx, units[i].ID, start, end)
			if err != nil {
				return err
			}
			if free {
				created, err = s.insertBooking(tx, &units[i], in.UserID, start, end, today, in.SpecialInstructions)
				return err
			}
		}
		return ErrConflict
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			metrics.IncBookingConflict()
		}
		return nil, err
	}

	metrics.IncBookingCreated(created.Status.String())
	return &created, nil
}

// Cancel transitions a booking to cancelled on behalf of its owner. The
// locker keeps its occupied status; releasing it automatically is an open
// product question (see DESIGN.md).
func (s *Service) Cancel(bookingID, requestingUserID uint) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if b.UserID != requestingUserID {
			return ErrForbidden
		}
		if !b.Status.CanBeCancelled() {
			return ErrInvalidState
		}

		b.Status = bookingModel.StatusCancelled
		if err := tx.Model(&b).Update("status", b.Status).Error; err != nil {
			return err
		}
		return booking_event.RecordStatus(tx, &b, strconv.FormatUint(uint64(requestingUserID), 10))
	})
	if err != nil {
		return nil, err
	}

	metrics.IncBookingCancelled()
	return &b, nil
}

// RefreshStatus advances a booking along the calendar: pending becomes active
// once the start date arrives, active becomes completed once the end date has
// passed. Idempotent for a fixed today. Returns true when the status changed.
func RefreshStatus(b *bookingModel.Booking, today time.Time) bool {
	today = pricing.Day(today)
	changed := false
	if b.Status == bookingModel.StatusPending && !pricing.Day(b.StartDate).After(today) {
		b.Status = bookingModel.StatusActive
		changed = true
	}
	if b.Status == bookingModel.StatusActive && pricing.Day(b.EndDate).Before(today) {
		b.Status = bookingModel.StatusCompleted
		changed = true
	}
	return changed
}

// ListForUser returns a user's bookings, newest first, optionally filtered by
// status. Statuses are refreshed lazily on read; any transition is persisted
// together with an audit event.
func (s *Service) ListForUser(userID uint, status bookingModel.BookingStatus) ([]bookingModel.Booking, error) {
	q := s.db.Preload("Locker").Preload("Locker.Location").
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var list []bookingModel.Booking
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}

	today := s.now()
	for i := range list {
		if !RefreshStatus(&list[i], today) {
			continue
		}
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&list[i]).Update("status", list[i].Status).Error; err != nil {
				return err
			}
			return booking_event.RecordStatus(tx, &list[i], "system")
		})
		if err != nil {
			return nil, err
		}
	}
	return list, nil
}

// ListAll returns bookings across all users for the back office, newest
// first, optionally filtered by status and locker.
func (s *Service) ListAll(status bookingModel.BookingStatus, lockerID uint) ([]bookingModel.Booking, error) {
	q := s.db.Preload("User").Preload("Locker").Preload("Locker.Location").
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if lockerID != 0 {
		q = q.Where("locker_id = ?", lockerID)
	}

	var list []bookingModel.Booking
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// UpcomingForLocker returns the blocking bookings for a unit that end today
// or later, ordered by start date. Used on detail pages to show unavailable
// dates.
func (s *Service) UpcomingForLocker(lockerID uint) ([]bookingModel.Booking, error) {
	today := pricing.Day(s.now())
	var list []bookingModel.Booking
	err := s.db.
		Where("locker_id = ? AND status IN ? AND end_date >= ?", lockerID, bookingModel.BlockingStatuses(), today).
		Order("start_date").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) validateRange(startDate, endDate time.Time) (start, end, today time.Time, err error) {
	today = now.With(s.now()).BeginningOfDay()
	start = pricing.Day(startDate)
	end = pricing.Day(endDate)

	days, err := pricing.BilledDays(start, end)
	if err != nil {
		return start, end, today, err
	}
	if start.Before(today) {
		return start, end, today, fmt.Errorf("%w: start date cannot be in the past", pricing.ErrInvalidRange)
	}
	if days > maxBookingDays {
		return start, end, today, fmt.Errorf("%w: booking cannot exceed %d days", pricing.ErrInvalidRange, maxBookingDays)
	}
	return start, end, today, nil
}

func (s *Service) datesFree(tx *gorm.DB, lockerID uint, start, end time.Time) (bool, error) {
	var existing []bookingModel.Booking
	err := tx.Where("locker_id = ? AND status IN ?", lockerID, bookingModel.BlockingStatuses()).
		Find(&existing).Error
	if err != nil {
		return false, err
	}
	return !pricing.HasConflict(existing, start, end), nil
}

func (s *Service) insertBooking(tx *gorm.DB, unit *lockerModel.Locker, userID uint, start, end, today time.Time, instructions string) (bookingModel.Booking, error) {
	total, err := pricing.TotalPrice(unit.DailyPrice, start, end)
	if err != nil {
		return bookingModel.Booking{}, err
	}

	b := bookingModel.Booking{
		UserID:              userID,
		LockerID:            unit.ID,
		StartDate:           start,
		EndDate:             end,
		Status:              bookingModel.StatusPending,
		TotalPrice:          total,
		SpecialInstructions: instructions,
	}
	if err := tx.Create(&b).Error; err != nil {
		return bookingModel.Booking{}, err
	}

	// A reservation starting today takes the unit immediately; the catalog
	// stops listing it.
	if !start.After(today) {
		if err := tx.Model(unit).Update("status", lockerModel.StatusOccupied).Error; err != nil {
			return bookingModel.Booking{}, err
		}
	}

	if err := booking_event.RecordStatus(tx, &b, strconv.FormatUint(uint64(userID), 10)); err != nil {
		return bookingModel.Booking{}, err
	}
	return b, nil
}
