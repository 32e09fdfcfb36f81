package model

import "time"

// Score is a participant's judgment of a photo. Zero is not a valid score;
// a vote is always directional.
type Score int

// ValidScores are the accepted vote values.
var ValidScores = map[Score]bool{
	-3: true,
	-2: true,
	-1: true,
	1:  true,
	2:  true,
	3:  true,
}

// Valid reports whether s is an accepted vote value.
func (s Score) Valid() bool {
	return ValidScores[s]
}

// Vote is one participant's score for one photo. Unique per
// (room, photo, user); re-voting replaces the prior score.
type Vote struct {
	RoomID    string    `json:"roomId"`
	PhotoID   string    `json:"photoId"`
	UserID    string    `json:"userId"`
	Score     Score     `json:"score"`
	VotedAt   time.Time `json:"timestamp"`
}

// VoteRequest is the API request body for submitting a vote.
type VoteRequest struct {
	RoomID  string `json:"roomId"`
	PhotoID string `json:"photoId"`
	UserID  string `json:"userId"`
	Score   Score  `json:"score"`
}

// UndoVoteRequest is the API request body for undoing a user's last vote.
type UndoVoteRequest struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

// VoteResponse is the API response after submitting a vote.
type VoteResponse struct {
	Accepted bool  `json:"accepted"`
	Score    Score `json:"score"`
}

// UndoVoteResponse is the API response after undoing a vote.
type UndoVoteResponse struct {
	PhotoID string `json:"photoId"`
}

// PhotoVotesResponse is the API response for per-photo vote listings.
type PhotoVotesResponse struct {
	Votes        []Vote  `json:"votes"`
	VoteCount    int     `json:"voteCount"`
	AverageScore float64 `json:"averageScore"`
}

// UserVotesResponse is the API response for per-user vote listings.
type UserVotesResponse struct {
	Votes []Vote `json:"votes"`
}
