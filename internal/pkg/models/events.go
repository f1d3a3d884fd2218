package models

import "time"

// UserRegisteredEvent is published when verification creates a new user
type UserRegisteredEvent struct {
	UserID string    `json:"user_id"`
	Mobile string    `json:"mobile"`
	At     time.Time `json:"at"`
}

// OTPVerifiedEvent is published on every successful verification
type OTPVerifiedEvent struct {
	UserID  string    `json:"user_id"`
	Mobile  string    `json:"mobile"`
	NewUser bool      `json:"new_user"`
	At      time.Time `json:"at"`
}
