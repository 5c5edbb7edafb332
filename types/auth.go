package types

import (
	"fmt"
	"strings"
)

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload for session creation.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must contain at least 8 characters")
	}
	return nil
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}
