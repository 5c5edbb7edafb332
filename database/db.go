package database

import (
	"fmt"
	"os"

	"locker-booking/logger"
	bookingModel "locker-booking/models/booking"
	customerModel "locker-booking/models/customer"
	locationModel "locker-booking/models/location"
	lockerModel "locker-booking/models/locker"
	logModel "locker-booking/models/log"
	userModel "locker-booking/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB opens the database connection, migrates the schema and installs the
// constraints and indexes the booking flow relies on.
func InitDB() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createBookingOverlapConstraint(); err != nil {
		logger.Error("Failed to create booking overlap constraint", err)
		return nil, err
	}

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models, parents before children so
// foreign keys resolve.
func autoMigrate() error {
	stages := [][]interface{}{
		{&userModel.User{}, &locationModel.Location{}},
		{&customerModel.Customer{}, &lockerModel.Locker{}},
		{&bookingModel.Booking{}, &bookingModel.BookingStatusEvent{}},
		{&logModel.Log{}},
	}

	for _, stage := range stages {
		for _, model := range stage {
			if err := DB.AutoMigrate(model); err != nil {
				return fmt.Errorf("failed to migrate %T: %w", model, err)
			}
		}
	}
	return nil
}

// createBookingOverlapConstraint installs a database-level backstop against
// double booking: no two pending/active bookings for the same locker may hold
// intersecting date ranges, even if the application-level check is ever
// bypassed.
func createBookingOverlapConstraint() error {
	if err := DB.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return fmt.Errorf("failed to create btree_gist extension: %w", err)
	}

	var exists bool
	checkSQL := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.table_constraints
			WHERE constraint_name = 'bookings_no_date_overlap'
		)
	`
	if err := DB.Raw(checkSQL).Scan(&exists).Error; err != nil {
		return fmt.Errorf("failed to check constraint existence: %w", err)
	}
	if exists {
		logger.Debug("Constraint already exists: bookings_no_date_overlap")
		return nil
	}

	constraintSQL := `
		ALTER TABLE bookings ADD CONSTRAINT bookings_no_date_overlap
		EXCLUDE USING gist (
			locker_id WITH =,
			daterange(start_date::date, end_date::date, '[]') WITH &&
		)
		WHERE (status IN ('pending', 'active'))
	`
	if err := DB.Exec(constraintSQL).Error; err != nil {
		return fmt.Errorf("failed to create constraint: %w", err)
	}
	logger.Success("Successfully created constraint: bookings_no_date_overlap")
	return nil
}

// createIndexes creates additional indexes for the hot query paths.
func createIndexes() error {
	indexes := []struct {
		name string
		sql  string
	}{
		{"idx_users_uuid", "CREATE INDEX IF NOT EXISTS idx_users_uuid ON users(uuid)"},
		{"idx_lockers_status", "CREATE INDEX IF NOT EXISTS idx_lockers_status ON lockers(status)"},
		{"idx_lockers_size", "CREATE INDEX IF NOT EXISTS idx_lockers_size ON lockers(size)"},
		{"idx_bookings_status", "CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)"},
		{"idx_bookings_dates", "CREATE INDEX IF NOT EXISTS idx_bookings_dates ON bookings(locker_id, start_date, end_date)"},
		{"idx_bookings_created_at", "CREATE INDEX IF NOT EXISTS idx_bookings_created_at ON bookings(created_at)"},
		{"idx_logs_created_at", "CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)"},
	}

	for _, idx := range indexes {
		if err := DB.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}
	return nil
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return DB
}
