package locker

import (
	"time"

	locationModel "locker-booking/models/location"
)

// Locker is a rentable unit at a location. The locker number is unique within
// its location, not globally.
type Locker struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	LockerNumber string `gorm:"type:varchar(20);not null;uniqueIndex:idx_lockers_location_number" json:"locker_number"`

	LocationID uint                   `gorm:"not null;uniqueIndex:idx_lockers_location_number" json:"location_id"`
	Location   locationModel.Location `gorm:"foreignKey:LocationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"location"`

	Size       LockerSize   `gorm:"type:varchar(20);not null" json:"size"`
	Status     LockerStatus `gorm:"type:varchar(20);not null;default:available" json:"status"`
	DailyPrice float64      `gorm:"type:numeric(10,2);not null" json:"daily_price"`

	Description string  `gorm:"type:text" json:"description"`
	Image       *string `gorm:"type:varchar(2048)" json:"image,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
