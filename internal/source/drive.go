package source

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/middha141/VowSelect/internal/model"
)

// DriveFetcher enumerates image files in a Google Drive folder using the
// caller-supplied OAuth access token. Pagination maps directly onto the Drive
// API's page tokens. Subfolders are not traversed; clients pick the folder
// that actually holds the shoot.
type DriveFetcher struct {
	svc      *drive.Service
	folderID string
	pageSize int
}

func NewDriveFetcher(ctx context.Context, folderID, accessToken string, pageSize int) (*DriveFetcher, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create drive client: %w", err)
	}
	return &DriveFetcher{svc: svc, folderID: folderID, pageSize: pageSize}, nil
}

// ListPage implements Fetcher.
func (f *DriveFetcher) ListPage(ctx context.Context, pageToken string) (*Page, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false and mimeType contains 'image/'", f.folderID)

	call := f.svc.Files.List().
		Context(ctx).
		Q(query).
		Spaces("drive").
		Fields("nextPageToken, files(id, name, mimeType, size, thumbnailLink)").
		PageSize(int64(f.pageSize)).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list drive folder %s: %w", f.folderID, err)
	}

	items := make([]model.PhotoDescriptor, 0, len(resp.Files))
	for _, file := range resp.Files {
		items = append(items, model.PhotoDescriptor{
			Name:         file.Name,
			MimeType:     file.MimeType,
			SizeBytes:    file.Size,
			Locator:      file.Id,
			ThumbnailURL: file.ThumbnailLink,
		})
	}

	return &Page{Items: items, NextPageToken: resp.NextPageToken}, nil
}
