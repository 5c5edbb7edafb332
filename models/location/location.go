package location

import (
	"strings"
	"time"
)

// Location is a site that hosts locker units. Coordinates are derived from the
// postal address by the geocoding adapter and are best effort: (0,0) means
// unknown, never a real position.
type Location struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string  `gorm:"type:varchar(100);not null" json:"name"`
	StreetAddress string  `gorm:"type:varchar(255);not null" json:"street_address"`
	City          string  `gorm:"type:varchar(100);not null" json:"city"`
	State         string  `gorm:"type:varchar(100);not null" json:"state"`
	Zip           string  `gorm:"type:varchar(20);not null" json:"zip"`
	Description   string  `gorm:"type:text" json:"description"`
	Image         *string `gorm:"type:varchar(2048)" json:"image,omitempty"`

	Latitude  float64 `gorm:"type:double precision;default:0" json:"latitude"`
	Longitude float64 `gorm:"type:double precision;default:0" json:"longitude"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// FullAddress joins the structured address parts for display and geocoding.
func (l *Location) FullAddress() string {
	parts := []string{l.StreetAddress, l.City, l.State, l.Zip}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(p))
		}
	}
	return strings.Join(nonEmpty, ", ")
}

// HasCoordinates reports whether geocoding produced a usable position.
func (l *Location) HasCoordinates() bool {
	return l.Latitude != 0 || l.Longitude != 0
}
