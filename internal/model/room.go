package model

import "time"

// Room status constants.
const (
	RoomActive    = "active"
	RoomCompleted = "completed"
	RoomArchived  = "archived"
)

// Room is an isolated voting session scoping photos, votes, and import jobs.
// Code is the 5-digit join code shared with participants.
type Room struct {
	ID        string    `json:"roomId"`
	Code      string    `json:"code"`
	CreatorID string    `json:"creatorId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Participant is a user who joined a room.
type Participant struct {
	RoomID   string    `json:"roomId"`
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joinedAt"`
}

// CreateRoomResponse is the API response after creating a room.
type CreateRoomResponse struct {
	RoomID    string `json:"roomId"`
	Code      string `json:"code"`
	CreatorID string `json:"creatorId"`
}

// JoinRoomRequest is the API request body for joining a room by code.
type JoinRoomRequest struct {
	Code     string `json:"code"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// JoinRoomResponse is the API response after joining a room.
type JoinRoomResponse struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

// RoomDetailResponse is the API response for a room detail lookup.
type RoomDetailResponse struct {
	Room         Room          `json:"room"`
	Participants []Participant `json:"participants"`
	PhotoCount   int           `json:"photoCount"`
}
