package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLocalFetcher_WalksTreeAndFiltersImages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jpg"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "sub", "b.PNG"))
	writeFile(t, filepath.Join(dir, "sub", "deep", "c.webp"))

	f := NewLocalFetcher(dir, 10)
	page, err := f.ListPage(context.Background(), "")
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}

	if len(page.Items) != 3 {
		t.Fatalf("got %d items, want 3 (txt must be filtered)", len(page.Items))
	}
	if page.NextPageToken != "" {
		t.Errorf("single page expected, got token %q", page.NextPageToken)
	}
}

func TestLocalFetcher_Pagination(t *testing.T) {
	dir := t.TempDir()
	names := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}
	for _, n := range names {
		writeFile(t, filepath.Join(dir, n))
	}

	f := NewLocalFetcher(dir, 2)
	ctx := context.Background()

	var got []string
	token := ""
	pages := 0
	for {
		page, err := f.ListPage(ctx, token)
		if err != nil {
			t.Fatalf("ListPage: %v", err)
		}
		pages++
		for _, item := range page.Items {
			got = append(got, item.Name)
		}
		if page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}

	if pages != 3 {
		t.Errorf("got %d pages, want 3", pages)
	}
	if len(got) != len(names) {
		t.Fatalf("got %d items, want %d", len(got), len(names))
	}
	// Walk output is sorted, so pagination must preserve name order.
	for i, n := range names {
		if got[i] != n {
			t.Errorf("item %d = %q, want %q", i, got[i], n)
		}
	}
}

func TestLocalFetcher_MissingFolderFails(t *testing.T) {
	f := NewLocalFetcher(filepath.Join(t.TempDir(), "nope"), 10)
	if _, err := f.ListPage(context.Background(), ""); err == nil {
		t.Fatal("expected error for missing folder")
	}
}

func TestLocalFetcher_EmptyFolderYieldsEmptyPage(t *testing.T) {
	f := NewLocalFetcher(t.TempDir(), 10)
	page, err := f.ListPage(context.Background(), "")
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if len(page.Items) != 0 || page.NextPageToken != "" {
		t.Errorf("expected empty terminal page, got %d items token %q", len(page.Items), page.NextPageToken)
	}
}

func TestLocalFetcher_MalformedToken(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jpg"))

	f := NewLocalFetcher(dir, 10)
	if _, err := f.ListPage(context.Background(), "zzz"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
