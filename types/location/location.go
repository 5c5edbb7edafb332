package location

import (
	"fmt"
	"strings"
)

// LocationRequest is the back-office payload for creating or updating a
// location. The address is immutable input; coordinates are derived by the
// geocoding adapter, never accepted from the client.
type LocationRequest struct {
	Name          string `json:"name"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	Description   string `json:"description"`
	Image         string `json:"image"`
}

func (l LocationRequest) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(l.StreetAddress) == "" {
		return fmt.Errorf("street_address is required")
	}
	if strings.TrimSpace(l.City) == "" {
		return fmt.Errorf("city is required")
	}
	if strings.TrimSpace(l.State) == "" {
		return fmt.Errorf("state is required")
	}
	if strings.TrimSpace(l.Zip) == "" {
		return fmt.Errorf("zip is required")
	}
	return nil
}
