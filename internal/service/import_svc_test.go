package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/middha141/VowSelect/internal/model"
	"github.com/middha141/VowSelect/internal/source"
)

// fakeJobStore keeps jobs in memory and mimics the one-active-per-room
// constraint of the real store.
type fakeJobStore struct {
	mu   sync.Mutex
	jobs map[string]*model.ImportJob
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[string]*model.ImportJob)}
}

func (f *fakeJobStore) Create(_ context.Context, job *model.ImportJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.jobs {
		if j.RoomID == job.RoomID && !j.Terminal() {
			return model.ErrImportInProgress
		}
	}
	cp := *job
	f.jobs[job.ID] = &cp
	return nil
}

func (f *fakeJobStore) MarkProcessing(_ context.Context, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs[jobID].Status = model.JobProcessing
	return nil
}

func (f *fakeJobStore) UpdateProgress(_ context.Context, jobID string, total, processed, failed int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	j := f.jobs[jobID]
	j.Total, j.Processed, j.Failed = total, processed, failed
	return nil
}

func (f *fakeJobStore) Complete(_ context.Context, jobID string, total, processed, failed int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	j := f.jobs[jobID]
	j.Status = model.JobCompleted
	j.Total, j.Processed, j.Failed = total, processed, failed
	now := time.Now()
	j.FinishedAt = &now
	return nil
}

func (f *fakeJobStore) Fail(_ context.Context, jobID, lastError string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	j := f.jobs[jobID]
	j.Status = model.JobFailed
	j.LastError = &lastError
	now := time.Now()
	j.FinishedAt = &now
	return nil
}

func (f *fakeJobStore) Get(_ context.Context, jobID string) (*model.ImportJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[jobID]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

// fakeCatalog records merged descriptors keyed by (room, kind, locator).
type fakeCatalog struct {
	mu     sync.Mutex
	seen   map[string]bool
	addErr error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{seen: make(map[string]bool)}
}

func (f *fakeCatalog) AddIfAbsent(_ context.Context, roomID string, kind model.SourceKind, d model.PhotoDescriptor) (*model.Photo, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return nil, false, f.addErr
	}
	key := roomID + "/" + string(kind) + "/" + d.Locator
	created := !f.seen[key]
	f.seen[key] = true
	return &model.Photo{RoomID: roomID, SourceKind: kind, Locator: d.Locator, Filename: d.Name}, created, nil
}

type fakeRooms struct {
	missing bool
}

func (f *fakeRooms) GetByID(_ context.Context, roomID string) (*model.Room, error) {
	if f.missing {
		return nil, model.ErrNotFound
	}
	return &model.Room{ID: roomID, Code: "12345"}, nil
}

// stubFetcher serves pre-built pages, optionally erroring on a given page
// number (0-based).
type stubFetcher struct {
	pages     []source.Page
	errOnPage int
	errToGive error
	calls     int
}

func (s *stubFetcher) ListPage(_ context.Context, pageToken string) (*source.Page, error) {
	n := s.calls
	s.calls++
	if s.errToGive != nil && n == s.errOnPage {
		return nil, s.errToGive
	}
	if n >= len(s.pages) {
		return &source.Page{}, nil
	}
	return &s.pages[n], nil
}

func descriptors(prefix string, n int) []model.PhotoDescriptor {
	out := make([]model.PhotoDescriptor, n)
	for i := range out {
		out[i] = model.PhotoDescriptor{
			Name:     fmt.Sprintf("%s-%03d.jpg", prefix, i),
			MimeType: "image/jpeg",
			Locator:  fmt.Sprintf("/photos/%s-%03d.jpg", prefix, i),
		}
	}
	return out
}

func newTestImportService(jobs *fakeJobStore, catalog *fakeCatalog, fetcher source.Fetcher, fetchErr error) *ImportService {
	svc := NewImportService(context.Background(), jobs, catalog, &fakeRooms{}, nil, 50, time.Second)
	svc.newFetcher = func(context.Context, model.SourceDescriptor, int) (source.Fetcher, error) {
		if fetchErr != nil {
			return nil, fetchErr
		}
		return fetcher, nil
	}
	return svc
}

func startImport(t *testing.T, svc *ImportService, roomID string) *model.ImportJob {
	t.Helper()
	job, err := svc.StartImport(context.Background(), model.ImportRequest{
		RoomID:     roomID,
		SourceKind: model.SourceLocal,
		FolderPath: "/photos",
	})
	if err != nil {
		t.Fatalf("StartImport: %v", err)
	}
	return job
}

func TestImport_CompletesAcrossPages(t *testing.T) {
	jobs := newFakeJobStore()
	catalog := newFakeCatalog()
	fetcher := &stubFetcher{pages: []source.Page{
		{Items: descriptors("a", 3), NextPageToken: "2"},
		{Items: descriptors("b", 2)},
	}}
	svc := newTestImportService(jobs, catalog, fetcher, nil)

	job := startImport(t, svc, "room-1")
	svc.Wait()

	final, err := jobs.Get(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if final.Status != model.JobCompleted {
		t.Errorf("status = %s, want completed", final.Status)
	}
	if final.Processed != 5 || final.Failed != 0 || final.Total != 5 {
		t.Errorf("processed/failed/total = %d/%d/%d, want 5/0/5",
			final.Processed, final.Failed, final.Total)
	}
	if final.FinishedAt == nil {
		t.Error("FinishedAt not set on completion")
	}
}

func TestImport_NonImageItemsCounted(t *testing.T) {
	items := descriptors("a", 3)
	items = append(items,
		model.PhotoDescriptor{Name: "notes.txt", MimeType: "text/plain", Locator: "/photos/notes.txt"},
		model.PhotoDescriptor{Name: "", Locator: "/photos/anonymous.jpg"},
	)
	jobs := newFakeJobStore()
	svc := newTestImportService(jobs, newFakeCatalog(), &stubFetcher{pages: []source.Page{{Items: items}}}, nil)

	job := startImport(t, svc, "room-1")
	svc.Wait()

	final, _ := jobs.Get(context.Background(), job.ID)
	if final.Status != model.JobCompleted {
		t.Errorf("status = %s, want completed despite item failures", final.Status)
	}
	if final.Processed != 3 || final.Failed != 2 {
		t.Errorf("processed/failed = %d/%d, want 3/2", final.Processed, final.Failed)
	}
}

func TestImport_FirstPageFetchErrorFailsJob(t *testing.T) {
	jobs := newFakeJobStore()
	fetcher := &stubFetcher{errOnPage: 0, errToGive: errors.New("folder unreadable")}
	svc := newTestImportService(jobs, newFakeCatalog(), fetcher, nil)

	job := startImport(t, svc, "room-1")
	svc.Wait()

	final, _ := jobs.Get(context.Background(), job.ID)
	if final.Status != model.JobFailed {
		t.Errorf("status = %s, want failed", final.Status)
	}
	if final.LastError == nil || *final.LastError == "" {
		t.Error("LastError not recorded")
	}
}

func TestImport_LaterPageFetchErrorKeepsPartialResults(t *testing.T) {
	jobs := newFakeJobStore()
	fetcher := &stubFetcher{
		pages:     []source.Page{{Items: descriptors("a", 4), NextPageToken: "2"}},
		errOnPage: 1,
		errToGive: errors.New("timeout"),
	}
	svc := newTestImportService(jobs, newFakeCatalog(), fetcher, nil)

	job := startImport(t, svc, "room-1")
	svc.Wait()

	final, _ := jobs.Get(context.Background(), job.ID)
	if final.Status != model.JobCompleted {
		t.Errorf("status = %s, want completed with partial results", final.Status)
	}
	if final.Processed != 4 {
		t.Errorf("processed = %d, want 4", final.Processed)
	}
	if final.Failed != 1 {
		t.Errorf("failed = %d, want 1 for the lost page", final.Failed)
	}
}

func TestImport_EmptySourceFails(t *testing.T) {
	jobs := newFakeJobStore()
	svc := newTestImportService(jobs, newFakeCatalog(), &stubFetcher{}, nil)

	job := startImport(t, svc, "room-1")
	svc.Wait()

	final, _ := jobs.Get(context.Background(), job.ID)
	if final.Status != model.JobFailed {
		t.Errorf("status = %s, want failed for empty source", final.Status)
	}
}

func TestImport_StorageErrorAbortsRun(t *testing.T) {
	jobs := newFakeJobStore()
	catalog := newFakeCatalog()
	catalog.addErr = errors.New("connection reset")
	svc := newTestImportService(jobs, catalog, &stubFetcher{pages: []source.Page{{Items: descriptors("a", 3)}}}, nil)

	job := startImport(t, svc, "room-1")
	svc.Wait()

	final, _ := jobs.Get(context.Background(), job.ID)
	if final.Status != model.JobFailed {
		t.Errorf("status = %s, want failed on storage error", final.Status)
	}
}

func TestImport_SecondStartForSameRoomConflicts(t *testing.T) {
	jobs := newFakeJobStore()
	// Pre-seed an active job so Create rejects a second one.
	if err := jobs.Create(context.Background(), &model.ImportJob{
		ID: "existing", RoomID: "room-1", Status: model.JobProcessing,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := newTestImportService(jobs, newFakeCatalog(), &stubFetcher{}, nil)

	_, err := svc.StartImport(context.Background(), model.ImportRequest{
		RoomID:     "room-1",
		SourceKind: model.SourceLocal,
		FolderPath: "/photos",
	})
	if !errors.Is(err, model.ErrImportInProgress) {
		t.Errorf("err = %v, want ErrImportInProgress", err)
	}
}

func TestImport_InvalidSourceRejected(t *testing.T) {
	svc := newTestImportService(newFakeJobStore(), newFakeCatalog(), &stubFetcher{}, nil)

	cases := []model.ImportRequest{
		{RoomID: "room-1", SourceKind: "ftp", FolderPath: "/photos"},
		{RoomID: "room-1", SourceKind: model.SourceLocal}, // no locator at all
	}
	for _, req := range cases {
		if _, err := svc.StartImport(context.Background(), req); !errors.Is(err, model.ErrInvalidSource) {
			t.Errorf("StartImport(%+v) err = %v, want ErrInvalidSource", req, err)
		}
	}
}

func TestImport_UnknownRoomRejected(t *testing.T) {
	svc := NewImportService(context.Background(), newFakeJobStore(), newFakeCatalog(), &fakeRooms{missing: true}, nil, 50, time.Second)

	_, err := svc.StartImport(context.Background(), model.ImportRequest{
		RoomID:     "ghost",
		SourceKind: model.SourceLocal,
		FolderPath: "/photos",
	})
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// countingInvalidator records cache drops per room.
type countingInvalidator struct {
	mu       sync.Mutex
	rankings map[string]int
	details  map[string]int
}

func newCountingInvalidator() *countingInvalidator {
	return &countingInvalidator{rankings: make(map[string]int), details: make(map[string]int)}
}

func (c *countingInvalidator) InvalidateRankings(_ context.Context, roomID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rankings[roomID]++
	return nil
}

func (c *countingInvalidator) InvalidateRoomDetail(_ context.Context, roomID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.details[roomID]++
	return nil
}

func TestImport_InvalidatesCachesAfterEveryPage(t *testing.T) {
	jobs := newFakeJobStore()
	fetcher := &stubFetcher{pages: []source.Page{
		{Items: descriptors("a", 3), NextPageToken: "2"},
		{Items: descriptors("b", 3), NextPageToken: "3"},
		{Items: descriptors("c", 2)},
	}}
	svc := newTestImportService(jobs, newFakeCatalog(), fetcher, nil)
	inv := newCountingInvalidator()
	svc.cache = inv

	job := startImport(t, svc, "room-1")
	svc.Wait()

	final, _ := jobs.Get(context.Background(), job.ID)
	if final.Status != model.JobCompleted {
		t.Fatalf("status = %s, want completed", final.Status)
	}
	// Cataloged photos become readable page by page, so cached rankings and
	// room detail must be dropped per page, not once at the end.
	if got := inv.rankings["room-1"]; got != 3 {
		t.Errorf("rankings invalidated %d times, want once per page (3)", got)
	}
	if got := inv.details["room-1"]; got != 3 {
		t.Errorf("room detail invalidated %d times, want once per page (3)", got)
	}
}

func TestImport_FetcherConstructionErrorFailsJob(t *testing.T) {
	jobs := newFakeJobStore()
	svc := newTestImportService(jobs, newFakeCatalog(), nil, errors.New("bad folder"))

	job := startImport(t, svc, "room-1")
	svc.Wait()

	final, _ := jobs.Get(context.Background(), job.ID)
	if final.Status != model.JobFailed {
		t.Errorf("status = %s, want failed", final.Status)
	}
}
