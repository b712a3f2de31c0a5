package dto

import "strings"

// UserRequest is the body of user create and update calls.
type UserRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// Normalize trims the phone number and checks it is present.
func (r UserRequest) Normalize() (string, error) {
	phone := strings.TrimSpace(r.PhoneNumber)
	if phone == "" {
		return "", Required("phone_number")
	}
	return phone, nil
}

// CreatedResponse reports the id of a newly created row.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// ExistsResponse answers the account existence check.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}
