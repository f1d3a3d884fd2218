package models

import (
	"time"
)

// User represents a storefront customer identified by mobile number
type User struct {
	ID        string    `json:"id" db:"id"`
	Mobile    string    `json:"mobile" db:"mobile"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserResponse is the public projection of a user
type UserResponse struct {
	ID     string `json:"id"`
	Mobile string `json:"mobile"`
}

// ToResponse projects the user to its public fields
func (u *User) ToResponse() UserResponse {
	return UserResponse{ID: u.ID, Mobile: u.Mobile}
}
