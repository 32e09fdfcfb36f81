package model

import "time"

// Import job status constants. Status only advances forward; completed and
// failed are sticky.
const (
	JobPending    = "pending"
	JobProcessing = "processing"
	JobCompleted  = "completed"
	JobFailed     = "failed"
)

// SourceDescriptor identifies what an import run should enumerate.
type SourceDescriptor struct {
	Kind        SourceKind `json:"sourceKind"`
	FolderPath  string     `json:"folderPath,omitempty"`
	FolderID    string     `json:"driveFolderId,omitempty"`
	AccessToken string     `json:"driveAccessToken,omitempty"`
}

// Empty reports whether the descriptor names nothing to enumerate.
func (d SourceDescriptor) Empty() bool {
	switch d.Kind {
	case SourceLocal:
		return d.FolderPath == ""
	case SourceRemote:
		return d.FolderID == "" || d.AccessToken == ""
	default:
		return true
	}
}

// ImportJob tracks one background ingestion run for a room.
// Total is a running estimate of discovered items until the run reaches a
// terminal state, at which point it is exact.
type ImportJob struct {
	ID         string     `json:"jobId"`
	RoomID     string     `json:"roomId"`
	SourceKind SourceKind `json:"sourceKind"`
	Status     string     `json:"status"`
	Total      int        `json:"total"`
	Processed  int        `json:"processed"`
	Failed     int        `json:"failed"`
	LastError  *string    `json:"lastError,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// Terminal reports whether the job has reached a sticky terminal state.
func (j *ImportJob) Terminal() bool {
	return j.Status == JobCompleted || j.Status == JobFailed
}

// ImportRequest is the API request body for starting an import.
type ImportRequest struct {
	RoomID           string     `json:"roomId"`
	SourceKind       SourceKind `json:"sourceKind"`
	FolderPath       string     `json:"folderPath,omitempty"`
	DriveFolderID    string     `json:"driveFolderId,omitempty"`
	DriveAccessToken string     `json:"driveAccessToken,omitempty"`
}

// ImportResponse is the API response after starting an import.
type ImportResponse struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}
