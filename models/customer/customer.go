package customer

import (
	"time"

	userModel "locker-booking/models/user"
)

// Customer holds optional profile data linked one-to-one to a user account.
// It is not referenced by the booking flow.
type Customer struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	User   userModel.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	FirstName string `gorm:"type:varchar(50)" json:"first_name"`
	LastName  string `gorm:"type:varchar(50)" json:"last_name"`
	Phone     string `gorm:"type:varchar(15)" json:"phone"`
	Email     string `gorm:"type:varchar(100)" json:"email"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
