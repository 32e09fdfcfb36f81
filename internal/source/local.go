package source

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/middha141/VowSelect/internal/model"
)

// imageExtensions are the file suffixes treated as importable images when
// walking a local folder tree.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".svg":  true,
}

// LocalFetcher enumerates image files under a folder tree on the server's
// filesystem. The tree is walked once (paths only, sorted for a stable
// order); pages are served from that listing by numeric offset token.
type LocalFetcher struct {
	root     string
	pageSize int
	paths    []string
	scanned  bool
}

func NewLocalFetcher(root string, pageSize int) *LocalFetcher {
	return &LocalFetcher{root: root, pageSize: pageSize}
}

// ListPage implements Fetcher. An unreadable root is a fatal enumeration
// error; unreadable entries below it are skipped.
func (f *LocalFetcher) ListPage(ctx context.Context, pageToken string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !f.scanned {
		if err := f.scan(); err != nil {
			return nil, err
		}
	}

	offset := 0
	if pageToken != "" {
		n, err := strconv.Atoi(pageToken)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("malformed page token %q", pageToken)
		}
		offset = n
	}

	if offset >= len(f.paths) {
		return &Page{}, nil
	}

	end := offset + f.pageSize
	if end > len(f.paths) {
		end = len(f.paths)
	}

	items := make([]model.PhotoDescriptor, 0, end-offset)
	for _, path := range f.paths[offset:end] {
		var size int64
		if info, err := os.Stat(path); err == nil {
			size = info.Size()
		}
		items = append(items, model.PhotoDescriptor{
			Name:      filepath.Base(path),
			MimeType:  mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
			SizeBytes: size,
			Locator:   path,
		})
	}

	page := &Page{Items: items}
	if end < len(f.paths) {
		page.NextPageToken = strconv.Itoa(end)
	}
	return page, nil
}

func (f *LocalFetcher) scan() error {
	info, err := os.Stat(f.root)
	if err != nil {
		return fmt.Errorf("source folder %q: %w", f.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source path %q is not a folder", f.root)
	}

	var paths []string
	err = filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip unreadable subtrees; the root itself was already checked.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if imageExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk source folder %q: %w", f.root, err)
	}

	sort.Strings(paths)
	f.paths = paths
	f.scanned = true
	return nil
}
