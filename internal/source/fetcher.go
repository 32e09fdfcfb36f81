package source

import (
	"context"

	"github.com/middha141/VowSelect/internal/model"
)

// Page is one batch of photo descriptors from a source. NextPageToken is
// empty on the final page. Duplicates across pages are acceptable, the
// catalog's idempotent insert absorbs them.
type Page struct {
	Items         []model.PhotoDescriptor
	NextPageToken string
}

// Fetcher lazily enumerates importable files from a configured source, one
// page at a time. The same token must yield a superset-safe continuation.
type Fetcher interface {
	ListPage(ctx context.Context, pageToken string) (*Page, error)
}

// New builds the fetcher for a source descriptor.
func New(ctx context.Context, desc model.SourceDescriptor, pageSize int) (Fetcher, error) {
	switch desc.Kind {
	case model.SourceLocal:
		return NewLocalFetcher(desc.FolderPath, pageSize), nil
	case model.SourceRemote:
		return NewDriveFetcher(ctx, desc.FolderID, desc.AccessToken, pageSize)
	default:
		return nil, model.ErrInvalidSource
	}
}
