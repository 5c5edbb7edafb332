package user

import (
	"time"
)

// Roles assigned to accounts. Admins manage locations, lockers and bookings
// through the back-office API; customers only book for themselves.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is a local account. The password is stored as a bcrypt hash and never
// serialized.
type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid         string  `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	Username     string  `gorm:"type:varchar(255);not null;unique" json:"username"`
	Email        *string `gorm:"type:varchar(255);unique" json:"email,omitempty"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:customer" json:"role"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// IsAdmin reports whether the account may use the back-office endpoints.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
