package model

import "time"

// User is a guest participant. No credentials; identity is the opaque id
// handed back at creation.
type User struct {
	ID        string    `json:"userId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateUserRequest is the API request body for creating a guest user.
type CreateUserRequest struct {
	Username string `json:"username"`
}
