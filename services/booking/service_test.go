package booking

import (
	"fmt"
	"strings"
	"testing"
	"time"

	bookingModel "locker-booking/models/booking"
	locationModel "locker-booking/models/location"
	lockerModel "locker-booking/models/locker"
	userModel "locker-booking/models/user"
	"locker-booking/services/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// today is the synthetic clock every test service runs on.
var today = time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

func date(m time.Month, d int) time.Time {
	return time.Date(2026, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.User{},
		&locationModel.Location{},
		&lockerModel.Locker{},
		&bookingModel.Booking{},
		&bookingModel.BookingStatusEvent{},
	))
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewService(db)
	svc.now = func() time.Time { return today }
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *userModel.User {
	t.Helper()
	u := userModel.User{
		Uuid:         "uuid-" + username,
		Username:     username,
		PasswordHash: "x",
		Role:         userModel.RoleCustomer,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func seedLocker(t *testing.T, db *gorm.DB, number string, size lockerModel.LockerSize, price float64) *lockerModel.Locker {
	t.Helper()
	var loc locationModel.Location
	err := db.Where(locationModel.Location{Name: "Downtown Hub"}).
		Attrs(locationModel.Location{StreetAddress: "1 Main St", City: "Springfield", State: "IL", Zip: "62701"}).
		FirstOrCreate(&loc).Error
	require.NoError(t, err)

	unit := lockerModel.Locker{
		LockerNumber: number,
		LocationID:   loc.ID,
		Size:         size,
		Status:       lockerModel.StatusAvailable,
		DailyPrice:   price,
	}
	require.NoError(t, db.Create(&unit).Error)
	return &unit
}

func TestCreateComputesPriceServerSide(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db, "alice")
	unit := seedLocker(t, db, "L001", lockerModel.SizeSmall, 10)

	created, err := svc.Create(CreateInput{
		UserID:    u.ID,
		LockerID:  unit.ID,
		StartDate: date(time.February, 1),
		EndDate:   date(time.February, 3),
	})
	require.NoError(t, err)

	// Both endpoints are billed: 3 days at 10.
	assert.Equal(t, 30.0, created.TotalPrice)
	assert.Equal(t, bookingModel.StatusPending, created.Status)

	var events []bookingModel.BookingStatusEvent
	require.NoError(t, db.Where("booking_id = ?", created.ID).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, bookingModel.StatusPending, events[0].Status)
	assert.Equal(t, fmt.Sprintf("%d", u.ID), events[0].CreatedBy)
}

func TestCreateRejectsOverlappingDates(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		conflict bool
	}{
		{"contained", date(time.February, 4), date(time.February, 6), true},
		{"tail overlap", date(time.February, 5), date(time.February, 15), true},
		{"head overlap", date(time.January, 25), date(time.February, 1), true},
		{"touching last day", date(time.February, 10), date(time.February, 12), true},
		{"adjacent after", date(time.February, 11), date(time.February, 20), false},
		{"disjoint before", date(time.January, 20), date(time.January, 31), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, db := newTestService(t)
			u := seedUser(t, db, "alice")
			unit := seedLocker(t, db, "L001", lockerModel.SizeSmall, 10)

			_, err := svc.Create(CreateInput{
				UserID: u.ID, LockerID: unit.ID,
				StartDate: date(time.February, 1), EndDate: date(time.February, 10),
			})
			require.NoError(t, err)

			_, err = svc.Create(CreateInput{
				UserID: u.ID, LockerID: unit.ID,
				StartDate: tt.start, EndDate: tt.end,
			})
			if tt.conflict {
				assert.ErrorIs(t, err, ErrConflict)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateIgnoresCancelledBookings(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db, "alice")
	unit := seedLocker(t, db, "L001", lockerModel.SizeSmall, 10)

	first, err := svc.Create(CreateInput{
		UserID: u.ID, LockerID: unit.ID,
		StartDate: date(time.February, 1), EndDate: date(time.February, 10),
	})
	require.NoError(t, err)
	_, err = svc.Cancel(first.ID, u.ID)
	require.NoError(t, err)

	// The cancelled booking no longer blocks the dates.
	_, err = svc.Create(CreateInput{
		UserID: u.ID, LockerID: unit.ID,
		StartDate: date(time.February, 1), EndDate: date(time.February, 10),
	})
	assert.NoError(t, err)
}

func TestCreateValidatesRange(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db, "alice")
	unit := seedLocker(t, db, "L001", lockerModel.SizeSmall, 10)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"start in the past", today.AddDate(0, 0, -1), date(time.February, 1)},
		{"end before start", date(time.February, 10), date(time.February, 1)},
		{"longer than a year", date(time.February, 1), date(time.February, 1).AddDate(0, 0, 365)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(CreateInput{
				UserID: u.ID, LockerID: unit.ID,
				StartDate: tt.start, EndDate: tt.end,
			})
			assert.ErrorIs(t, err, pricing.ErrInvalidRange)
		})
	}

	t.Run("exactly a year is allowed", func(t *testing.T) {
		_, err := svc.Create(CreateInput{
			UserID: u.ID, LockerID: unit.ID,
			StartDate: date(time.February, 1), EndDate: date(time.February, 1).AddDate(0, 0, 364),
		})
		assert.NoError(t, err)
	})
}

func TestCreateStartingTodayOccupiesLocker(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db, "alice")
	unit := seedLocker(t, db, "L001", lockerModel.SizeSmall, 10)

	_, err := svc.Create(CreateInput{
		UserID: u.ID, LockerID: unit.ID,
		StartDate: today, EndDate: today.AddDate(0, 0, 5),
	})
	require.NoError(t, err)

	var reloaded lockerModel.Locker
	require.NoError(t, db.First(&reloaded, unit.ID).Error)
	assert.Equal(t, lockerModel.StatusOccupied, reloaded.Status)
}

func TestCreateFutureStartKeepsLockerAvailable(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db, "alice")
	unit := seedLocker(t, db, "L001", lockerModel.SizeSmall, 10)

	_, err := svc.Create(CreateInput{
		UserID: u.ID, LockerID: unit.ID,
		StartDate: date(time.February, 1), EndDate: date(time.February, 5),
	})
	require.NoError(t, err)

	var reloaded lockerModel.Locker
	require.NoError(t, db.First(&reloaded, unit.ID).Error)
	assert.Equal(t, lockerModel.StatusAvailable, reloaded.Status)
}

func TestCreateUnknownOrUnbookableLocker(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db, "alice")

	_, err := svc.Create(CreateInput{
		UserID: u.ID, LockerID: 999,
		StartDate: date(time.February, 1), EndDate: date(time.February, 5),
	})
	assert.ErrorIs(t, err, ErrLockerNotFound)

	unit := seedLocker(t, db, "L001", lockerModel.SizeSmall, 10)
	require.NoError(t, db.Model(unit).Update("status", lockerModel.StatusMaintenance).Error)

	_, err = svc.Create(CreateInput{
		UserID: u.ID, LockerID: unit.ID,
		StartDate: date(time.February, 1), EndDate: date(time.February, 5),
	})
	assert.ErrorIs(t, err, ErrLockerUnavailable)
}

func TestCreateForSizeAssignsNextFreeUnit(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db, "alice")
	first := seedLocker(t, db, "L001", lockerModel.SizeMedium, 15)
	second := seedLocker(t, db, "L002", lockerModel.SizeMedium, 15)

	in := CreateForSizeInput{
		UserID: u.ID, LocationID: first.LocationID, Size: lockerModel.SizeMedium,
		StartDate: date(time.February, 1), EndDate: date(time.February, 10),
	}

	b1, err := svc.CreateForSize(in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, b1.LockerID)

	// Same dates land on the next unit in locker-number order.
	b2, err := svc.CreateForSize(in)
	require.NoError(t, err)
	assert.Equal(t, second.ID, b2.LockerID)

	// Every unit of the size is taken for these dates.
	_, err = svc.CreateForSize(in)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateForSizeNoUnitsOfSize(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db, "alice")
	unit := seedLocker(t, db, "L001", lockerModel.SizeSmall, 10)

	_, err := svc.CreateForSize(CreateForSizeInput{
		UserID: u.ID, LocationID: unit.LocationID, Size: lockerModel.SizeXLarge,
		StartDate: date(time.February, 1), EndDate: date(time.February, 5),
	})
	assert.ErrorIs(t, err, ErrLockerUnavailable)
}

func TestCancel(t *testing.T) {
	svc, db := newTestService(t)
	owner := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")
	unit := seedLocker(t, db, "L001", lockerModel.SizeSmall, 10)

	created, err := svc.Create(CreateInput{
		UserID: owner.ID, LockerID: unit.ID,
		StartDate: date(time.February, 1), EndDate: date(time.February, 10),
	})
	require.NoError(t, err)

	_, err = svc.Cancel(created.ID, other.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := svc.Cancel(created.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusCancelled, cancelled.Status)

	var reloaded bookingModel.Booking
	require.NoError(t, db.First(&reloaded, created.ID).Error)
	assert.Equal(t, bookingModel.StatusCancelled, reloaded.Status)

	// Cancelling twice is rejected; so is cancelling a completed booking.
	_, err = svc.Cancel(created.ID, owner.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.Cancel(999, owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelRecordsEvent(t *testing.T) {
	svc, db := newTestService(t)
	owner := seedUser(t, db, "alice")
	unit := seedLocker(t, db, "L001", lockerModel.SizeSmall, 10)

	created, err := svc.Create(CreateInput{
		UserID: owner.ID, LockerID: unit.ID,
		StartDate: date(time.February, 1), EndDate: date(time.February, 10),
	})
	require.NoError(t, err)
	_, err = svc.Cancel(created.ID, owner.ID)
	require.NoError(t, err)

	var events []bookingModel.BookingStatusEvent
	require.NoError(t, db.Where("booking_id = ?", created.ID).Order("id").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, bookingModel.StatusPending, events[0].Status)
	assert.Equal(t, bookingModel.StatusCancelled, events[1].Status)
}

func TestRefreshStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  bookingModel.BookingStatus
		start   time.Time
		end     time.Time
		want    bookingModel.BookingStatus
		changed bool
	}{
		{"pending before start stays", bookingModel.StatusPending, date(time.February, 1), date(time.February, 10), bookingModel.StatusPending, false},
		{"pending activates on start day", bookingModel.StatusPending, today, date(time.February, 10), bookingModel.StatusActive, true},
		{"active completes after end", bookingModel.StatusActive, date(time.January, 1), date(time.January, 10), bookingModel.StatusCompleted, true},
		{"active stays on end day", bookingModel.StatusActive, date(time.January, 10), today, bookingModel.StatusActive, false},
		{"pending fully in the past completes in one pass", bookingModel.StatusPending, date(time.January, 1), date(time.January, 10), bookingModel.StatusCompleted, true},
		{"cancelled never moves", bookingModel.StatusCancelled, date(time.January, 1), date(time.January, 10), bookingModel.StatusCancelled, false},
		{"completed never moves", bookingModel.StatusCompleted, date(time.January, 1), date(time.January, 10), bookingModel.StatusCompleted, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bookingModel.Booking{Status: tt.status, StartDate: tt.start, EndDate: tt.end}
			assert.Equal(t, tt.changed, RefreshStatus(&b, today))
			assert.Equal(t, tt.want, b.Status)

			// A second pass on the same day is a no-op.
			assert.False(t, RefreshStatus(&b, today))
			assert.Equal(t, tt.want, b.Status)
		})
	}
}

func TestListForUserRefreshesAndPersists(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db, "alice")
	unit := seedLocker(t, db, "L001", lockerModel.SizeSmall, 10)

	stale := bookingModel.Booking{
		UserID: u.ID, LockerID: unit.ID,
		StartDate: date(time.January, 1), EndDate: date(time.January, 10),
		Status: bookingModel.StatusPending, TotalPrice: 100,
	}
	require.NoError(t, db.Create(&stale).Error)

	list, err := svc.ListForUser(u.ID, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, bookingModel.StatusCompleted, list[0].Status)

	var reloaded bookingModel.Booking
	require.NoError(t, db.First(&reloaded, stale.ID).Error)
	assert.Equal(t, bookingModel.StatusCompleted, reloaded.Status)

	var event bookingModel.BookingStatusEvent
	require.NoError(t, db.Where("booking_id = ?", stale.ID).First(&event).Error)
	assert.Equal(t, bookingModel.StatusCompleted, event.Status)
	assert.Equal(t, "system", event.CreatedBy)
}

func TestListForUserFiltersByStatusAndOwner(t *testing.T) {
	svc, db := newTestService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	unit := seedLocker(t, db, "L001", lockerModel.SizeSmall, 10)

	mine, err := svc.Create(CreateInput{
		UserID: alice.ID, LockerID: unit.ID,
		StartDate: date(time.February, 1), EndDate: date(time.February, 10),
	})
	require.NoError(t, err)
	_, err = svc.Create(CreateInput{
		UserID: bob.ID, LockerID: unit.ID,
		StartDate: date(time.March, 1), EndDate: date(time.March, 10),
	})
	require.NoError(t, err)

	list, err := svc.ListForUser(alice.ID, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	list, err = svc.ListForUser(alice.ID, bookingModel.StatusCancelled)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpcomingForLocker(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db, "alice")
	unit := seedLocker(t, db, "L001", lockerModel.SizeSmall, 10)

	rows := []bookingModel.Booking{
		{UserID: u.ID, LockerID: unit.ID, StartDate: date(time.February, 1), EndDate: date(time.February, 10), Status: bookingModel.StatusPending},
		{UserID: u.ID, LockerID: unit.ID, StartDate: date(time.January, 10), EndDate: date(time.January, 20), Status: bookingModel.StatusActive},
		{UserID: u.ID, LockerID: unit.ID, StartDate: date(time.January, 1), EndDate: date(time.January, 5), Status: bookingModel.StatusCompleted},
		{UserID: u.ID, LockerID: unit.ID, StartDate: date(time.March, 1), EndDate: date(time.March, 10), Status: bookingModel.StatusCancelled},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	list, err := svc.UpcomingForLocker(unit.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Ordered by start date; only blocking bookings that have not ended.
	assert.Equal(t, bookingModel.StatusActive, list[0].Status)
	assert.Equal(t, bookingModel.StatusPending, list[1].Status)
}
