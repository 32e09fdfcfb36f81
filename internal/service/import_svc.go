package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/middha141/VowSelect/internal/metrics"
	"github.com/middha141/VowSelect/internal/model"
	"github.com/middha141/VowSelect/internal/source"
)

// photoCatalog is the slice of PhotoRepo the import runner needs.
type photoCatalog interface {
	AddIfAbsent(ctx context.Context, roomID string, kind model.SourceKind, d model.PhotoDescriptor) (*model.Photo, bool, error)
}

// jobStore is the slice of JobRepo the import runner needs.
type jobStore interface {
	Create(ctx context.Context, job *model.ImportJob) error
	MarkProcessing(ctx context.Context, jobID string) error
	UpdateProgress(ctx context.Context, jobID string, total, processed, failed int) error
	Complete(ctx context.Context, jobID string, total, processed, failed int) error
	Fail(ctx context.Context, jobID, lastError string) error
	Get(ctx context.Context, jobID string) (*model.ImportJob, error)
}

type roomGetter interface {
	GetByID(ctx context.Context, roomID string) (*model.Room, error)
}

// cacheInvalidator is the slice of CacheService the import runner needs:
// cataloged photos change both the leaderboard and the room's photo count.
type cacheInvalidator interface {
	InvalidateRankings(ctx context.Context, roomID string) error
	InvalidateRoomDetail(ctx context.Context, roomID string) error
}

// fetcherFactory builds the fetcher for a descriptor. Swappable for tests.
type fetcherFactory func(ctx context.Context, desc model.SourceDescriptor, pageSize int) (source.Fetcher, error)

// ImportService runs one background ingestion per job: pages are requested
// from the source in order, each page's items merged into the catalog, and
// the job row updated so polling clients observe progress. Item-level
// failures are absorbed into the failed counter and never abort the run;
// only an unenumerable source (or a storage error) is fatal.
type ImportService struct {
	jobs        jobStore
	photos      photoCatalog
	rooms       roomGetter
	cache       cacheInvalidator
	newFetcher  fetcherFactory
	pageSize    int
	pageTimeout time.Duration

	// runCtx outlives any single request; import runs are only stopped by
	// process shutdown.
	runCtx context.Context
	wg     sync.WaitGroup
}

func NewImportService(runCtx context.Context, jobs jobStore, photos photoCatalog, rooms roomGetter, cache cacheInvalidator, pageSize int, pageTimeout time.Duration) *ImportService {
	return &ImportService{
		jobs:        jobs,
		photos:      photos,
		rooms:       rooms,
		cache:       cache,
		newFetcher:  source.New,
		pageSize:    pageSize,
		pageTimeout: pageTimeout,
		runCtx:      runCtx,
	}
}

// StartImport validates the request, persists a job, and schedules the
// background run without blocking the caller. The job id is returned
// synchronously so the client can begin polling. A second import for a room
// that already has one processing fails fast with ErrImportInProgress and
// creates nothing.
func (s *ImportService) StartImport(ctx context.Context, req model.ImportRequest) (*model.ImportJob, error) {
	desc := model.SourceDescriptor{
		Kind:        req.SourceKind,
		FolderPath:  req.FolderPath,
		FolderID:    req.DriveFolderID,
		AccessToken: req.DriveAccessToken,
	}
	if !model.ValidSourceKinds[desc.Kind] || desc.Empty() {
		return nil, model.ErrInvalidSource
	}

	if _, err := s.rooms.GetByID(ctx, req.RoomID); err != nil {
		return nil, err
	}

	job := &model.ImportJob{
		ID:         uuid.NewString(),
		RoomID:     req.RoomID,
		SourceKind: desc.Kind,
		Status:     model.JobPending,
		StartedAt:  time.Now().UTC(),
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	if err := s.jobs.MarkProcessing(ctx, job.ID); err != nil {
		return nil, err
	}
	job.Status = model.JobProcessing

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(job.ID, job.RoomID, desc)
	}()

	return job, nil
}

// GetStatus returns a snapshot of the job. Cheap, side-effect-free, safe to
// poll arbitrarily often; it never blocks on the run.
func (s *ImportService) GetStatus(ctx context.Context, jobID string) (*model.ImportJob, error) {
	return s.jobs.Get(ctx, jobID)
}

// Wait blocks until all in-flight import runs finish. Used at shutdown.
func (s *ImportService) Wait() {
	s.wg.Wait()
}

// run drains the source page by page. Each page is merged and discarded
// before the next is requested, so the working set is one page regardless of
// corpus size.
func (s *ImportService) run(jobID, roomID string, desc model.SourceDescriptor) {
	ctx := s.runCtx
	start := time.Now()

	fetcher, err := s.newFetcher(ctx, desc, s.pageSize)
	if err != nil {
		s.fail(ctx, jobID, err)
		return
	}

	var total, processed, failed int
	token := ""
	firstPage := true

	for {
		pageCtx, cancel := context.WithTimeout(ctx, s.pageTimeout)
		page, err := fetcher.ListPage(pageCtx, token)
		cancel()
		if err != nil {
			if firstPage {
				// Nothing was ever enumerable; fail fast.
				s.fail(ctx, jobID, err)
				return
			}
			// A later page failing (timeout, transient fetch error) does not
			// sink the photos already cataloged.
			log.Printf("import %s: page fetch failed, finishing with partial results: %v", jobID, err)
			failed++
			break
		}
		firstPage = false

		total += len(page.Items)
		for _, item := range page.Items {
			if !importable(item) {
				failed++
				continue
			}
			if _, _, err := s.photos.AddIfAbsent(ctx, roomID, desc.Kind, item); err != nil {
				// Storage errors are not per-item noise; abort the run.
				s.fail(ctx, jobID, err)
				return
			}
			processed++
		}

		if err := s.jobs.UpdateProgress(ctx, jobID, total, processed, failed); err != nil {
			log.Printf("import %s: progress update failed: %v", jobID, err)
		}
		// The page's photos are already visible to readers; stale cached
		// rankings and room counts must not outlive them.
		s.invalidateRoom(ctx, roomID)

		if page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}

	if processed+failed == 0 {
		s.jobs.Fail(ctx, jobID, "no image files found in source")
		s.markTerminal(model.JobFailed)
		log.Printf("import %s: failed, source enumerated but empty", jobID)
		return
	}

	// Partial success is success: completed even with failed > 0.
	if err := s.jobs.Complete(ctx, jobID, total, processed, failed); err != nil {
		log.Printf("import %s: completion update failed: %v", jobID, err)
		return
	}
	s.markTerminal(model.JobCompleted)
	s.observeItems(processed, failed)

	log.Printf("import %s: completed, %d processed, %d failed of %d discovered (%s)",
		jobID, processed, failed, total, time.Since(start).Round(time.Millisecond))
}

func (s *ImportService) invalidateRoom(ctx context.Context, roomID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateRankings(ctx, roomID); err != nil {
		log.Printf("cache: invalidate rankings error: %v", err)
	}
	if err := s.cache.InvalidateRoomDetail(ctx, roomID); err != nil {
		log.Printf("cache: invalidate room detail error: %v", err)
	}
}

func (s *ImportService) fail(ctx context.Context, jobID string, cause error) {
	msg := cause.Error()
	if len(msg) > 500 {
		msg = msg[:500]
	}
	if err := s.jobs.Fail(ctx, jobID, msg); err != nil {
		log.Printf("import %s: failure update failed: %v", jobID, err)
		return
	}
	s.markTerminal(model.JobFailed)
	log.Printf("import %s: failed: %s", jobID, msg)
}

func (s *ImportService) markTerminal(status string) {
	if metrics.Metrics.ImportJobsTotal != nil {
		metrics.Metrics.ImportJobsTotal.WithLabelValues(status).Inc()
	}
}

func (s *ImportService) observeItems(processed, failed int) {
	if metrics.Metrics.ImportItemsProcessed != nil {
		metrics.Metrics.ImportItemsProcessed.Add(float64(processed))
	}
	if metrics.Metrics.ImportItemsFailed != nil {
		metrics.Metrics.ImportItemsFailed.Add(float64(failed))
	}
}

// importable rejects items whose descriptor cannot become a photo record:
// missing identity or a declared non-image content type.
func importable(d model.PhotoDescriptor) bool {
	if d.Name == "" || d.Locator == "" {
		return false
	}
	if d.MimeType != "" && !strings.HasPrefix(d.MimeType, "image/") {
		return false
	}
	return true
}
