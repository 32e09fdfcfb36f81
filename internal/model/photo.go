package model

import "time"

// SourceKind tags where a photo's binary data lives. The catalog never copies
// the underlying file; it stores the kind plus a kind-specific locator.
type SourceKind string

const (
	SourceLocal    SourceKind = "local"
	SourceRemote   SourceKind = "remote"
	SourceUploaded SourceKind = "uploaded"
)

// ValidSourceKinds are the accepted source tags for imports.
var ValidSourceKinds = map[SourceKind]bool{
	SourceLocal:    true,
	SourceRemote:   true,
	SourceUploaded: true,
}

// Photo represents one importable image reference in a room.
// (RoomID, SourceKind, Locator) is unique; OrderingIndex is assigned once at
// import time and stable thereafter.
type Photo struct {
	ID            string     `json:"photoId"`
	RoomID        string     `json:"roomId"`
	SourceKind    SourceKind `json:"sourceKind"`
	Locator       string     `json:"locator"`
	Filename      string     `json:"filename"`
	ThumbnailURL  string     `json:"thumbnailUrl,omitempty"`
	OrderingIndex int        `json:"index"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// PhotoDescriptor is one item produced by a source fetcher page.
type PhotoDescriptor struct {
	Name         string
	MimeType     string
	SizeBytes    int64
	Locator      string
	ThumbnailURL string
}

// PhotoListResponse is the paginated API response for room photo listings.
type PhotoListResponse struct {
	Photos []Photo `json:"photos"`
	Total  int     `json:"total"`
	Skip   int     `json:"skip"`
	Limit  int     `json:"limit"`
}
