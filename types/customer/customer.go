package customer

// ProfileRequest is the payload for updating the optional customer profile
// linked to an account.
type ProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}
