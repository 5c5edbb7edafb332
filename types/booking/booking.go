package booking

import (
	"fmt"
	"strings"
)

// BookingCreateRequest is the payload for creating a reservation. Dates use
// the YYYY-MM-DD wire format; the server never trusts a client supplied
// price.
type BookingCreateRequest struct {
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	SpecialInstructions string `json:"special_instructions"`
}

func (b BookingCreateRequest) Validate() error {
	if strings.TrimSpace(b.StartDate) == "" {
		return fmt.Errorf("start_date is required")
	}
	if strings.TrimSpace(b.EndDate) == "" {
		return fmt.Errorf("end_date is required")
	}
	return nil
}
