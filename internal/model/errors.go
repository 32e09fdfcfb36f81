package model

import "errors"

// Sentinel errors separating the caller-fault / conflict / not-found cases
// from storage failures. Handlers map these to HTTP statuses; everything else
// is a 500.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidScore     = errors.New("invalid score: must be -3, -2, -1, 1, 2, or 3")
	ErrInvalidSource    = errors.New("invalid or empty source descriptor")
	ErrImportInProgress = errors.New("an import is already processing for this room")
	ErrNotFound         = errors.New("not found")
	ErrNothingToUndo    = errors.New("no vote to undo")
)
