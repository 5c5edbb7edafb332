// Package catalog lists locations and available locker units for browsing.
package catalog

import (
	"errors"
	"strings"

	locationModel "locker-booking/models/location"
	lockerModel "locker-booking/models/locker"

	"gorm.io/gorm"
)

// ErrLocationNotFound reports a lookup for a location that does not exist.
var ErrLocationNotFound = errors.New("location not found")

// Service reads the locker catalog.
type Service struct {
	db *gorm.DB
}

// NewService creates a catalog service backed by db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// LockerFilters narrows the available-locker listing. Zero values mean
// "no filter".
type LockerFilters struct {
	LocationID uint
	Size       lockerModel.LockerSize
	Search     string
}

// SizeSummary describes the available units of one size at a location.
type SizeSummary struct {
	Size         lockerModel.LockerSize `json:"size"`
	MinimumPrice float64                `json:"minimum_price"`
	Count        int64                  `json:"count"`
}

// AvailableLockers returns units with status available matching every
// provided filter. The search term matches case-insensitively against the
// locker number and the location name.
func (s *Service) AvailableLockers(f LockerFilters) ([]lockerModel.Locker, error) {
	q := s.db.Preload("Location").
		Joins("JOIN locations ON locations.id = lockers.location_id").
		Where("lockers.status = ?", lockerModel.StatusAvailable)

	if f.LocationID != 0 {
		q = q.Where("lockers.location_id = ?", f.LocationID)
	}
	if f.Size != "" {
		q = q.Where("lockers.size = ?", f.Size)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(lockers.locker_number) LIKE ? OR LOWER(locations.name) LIKE ?", pattern, pattern)
	}

	var lockers []lockerModel.Locker
	err := q.Order("lockers.location_id, lockers.locker_number").Find(&lockers).Error
	if err != nil {
		return nil, err
	}
	return lockers, nil
}

// SizesAtLocation groups the available units at a location by size. Sizes
// with no available unit are omitted.
func (s *Service) SizesAtLocation(locationID uint) ([]SizeSummary, error) {
	var summaries []SizeSummary
	err := s.db.Model(&lockerModel.Locker{}).
		Select("size, MIN(daily_price) AS minimum_price, COUNT(*) AS count").
		Where("location_id = ? AND status = ?", locationID, lockerModel.StatusAvailable).
		Group("size").
		Order("size").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Locations returns every location, for the catalog's filter dropdown.
func (s *Service) Locations() ([]locationModel.Location, error) {
	var locations []locationModel.Location
	if err := s.db.Order("name").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Location returns one location by id.
func (s *Service) Location(id uint) (*locationModel.Location, error) {
	var loc locationModel.Location
	if err := s.db.First(&loc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &loc, nil
}
