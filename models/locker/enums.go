package locker

// LockerSize is the physical size class of a unit.
type LockerSize string

const (
	SizeSmall  LockerSize = "small"
	SizeMedium LockerSize = "medium"
	SizeLarge  LockerSize = "large"
	SizeXLarge LockerSize = "xlarge"
)

func (s LockerSize) String() string {
	return string(s)
}

func (s LockerSize) IsValid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeXLarge:
		return true
	default:
		return false
	}
}

// Label returns the human readable size with dimensions.
func (s LockerSize) Label() string {
	switch s {
	case SizeSmall:
		return `Small (12" x 12" x 12")`
	case SizeMedium:
		return `Medium (18" x 18" x 18")`
	case SizeLarge:
		return `Large (24" x 24" x 24")`
	case SizeXLarge:
		return `Extra Large (30" x 30" x 30")`
	default:
		return string(s)
	}
}

// GetAllLockerSizes returns all valid locker sizes.
func GetAllLockerSizes() []LockerSize {
	return []LockerSize{SizeSmall, SizeMedium, SizeLarge, SizeXLarge}
}

// LockerStatus is the operational state of a unit.
type LockerStatus string

const (
	StatusAvailable   LockerStatus = "available"
	StatusOccupied    LockerStatus = "occupied"
	StatusMaintenance LockerStatus = "maintenance"
)

func (s LockerStatus) String() string {
	return string(s)
}

func (s LockerStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance:
		return true
	default:
		return false
	}
}

// IsBookable reports whether new reservations may be taken for the unit.
func (s LockerStatus) IsBookable() bool {
	return s == StatusAvailable
}
