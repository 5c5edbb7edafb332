package locker

import (
	"fmt"
	"strings"

	lockerModel "locker-booking/models/locker"
)

// LockerRequest is the back-office payload for creating or updating a locker
// unit.
type LockerRequest struct {
	LockerNumber string  `json:"locker_number"`
	LocationID   uint    `json:"location_id"`
	Size         string  `json:"size"`
	Status       string  `json:"status"`
	DailyPrice   float64 `json:"daily_price"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
}

func (l LockerRequest) Validate() error {
	if strings.TrimSpace(l.LockerNumber) == "" {
		return fmt.Errorf("locker_number is required")
	}
	if l.LocationID == 0 {
		return fmt.Errorf("location_id is required")
	}
	if !lockerModel.LockerSize(l.Size).IsValid() {
		return fmt.Errorf("size must be one of small, medium, large, xlarge")
	}
	if l.Status != "" && !lockerModel.LockerStatus(l.Status).IsValid() {
		return fmt.Errorf("status must be one of available, occupied, maintenance")
	}
	if l.DailyPrice <= 0 {
		return fmt.Errorf("daily_price must be positive")
	}
	return nil
}
