package model

import "time"

// ExportJob records one top-N export of a room's ranking.
type ExportJob struct {
	ID              string    `json:"jobId"`
	RoomID          string    `json:"roomId"`
	TopN            int       `json:"topN"`
	DestinationType string    `json:"destinationType"`
	DestinationPath string    `json:"destinationPath,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ExportRequest is the API request body for exporting a room's top photos.
type ExportRequest struct {
	RoomID          string `json:"roomId"`
	TopN            int    `json:"topN"`
	DestinationType string `json:"destinationType"`
	DestinationPath string `json:"destinationPath,omitempty"`
}

// ExportResponse is the API response after an export run.
type ExportResponse struct {
	JobID     string         `json:"jobId"`
	Status    string         `json:"status"`
	TopPhotos []RankingEntry `json:"topPhotos"`
	CSVReport string         `json:"csvReport"`
}
