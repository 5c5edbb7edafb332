package booking

import (
	"time"

	lockerModel "locker-booking/models/locker"
	userModel "locker-booking/models/user"
)

// Booking reserves a locker unit for an inclusive date range. The total price
// is derived at creation from the unit's daily rate and is never taken from
// client input.
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID uint           `gorm:"not null;index" json:"user_id"`
	User   userModel.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`

	LockerID uint               `gorm:"not null;index" json:"locker_id"`
	Locker   lockerModel.Locker `gorm:"foreignKey:LockerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"locker"`

	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`

	Status     BookingStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	TotalPrice float64       `gorm:"type:numeric(10,2);not null" json:"total_price"`

	SpecialInstructions string `gorm:"type:text" json:"special_instructions"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
