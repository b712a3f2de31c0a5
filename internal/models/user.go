package models

import "time"

// User is an account bound to one external identity.
type User struct {
	ID          int64     `json:"id"`
	ExternalID  string    `json:"external_id"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}
