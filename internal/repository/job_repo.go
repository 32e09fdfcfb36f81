package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/middha141/VowSelect/internal/model"
)

const uniqueViolation = "23505"

type JobRepo struct {
	pool *pgxpool.Pool
}

func NewJobRepo(pool *pgxpool.Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

// Create persists a new import job in pending state. The partial unique index
// on live jobs makes "at most one processing import per room" a storage-level
// guarantee; a violation maps to ErrImportInProgress with no job created.
func (r *JobRepo) Create(ctx context.Context, job *model.ImportJob) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO import_jobs (job_id, room_id, source_kind, status, total, processed, failed, started_at)
		VALUES ($1, $2, $3, $4, 0, 0, 0, $5)`,
		job.ID, job.RoomID, job.SourceKind, job.Status, job.StartedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return model.ErrImportInProgress
	}
	return err
}

// MarkProcessing advances a pending job to processing.
func (r *JobRepo) MarkProcessing(ctx context.Context, jobID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE import_jobs SET status = $1
		WHERE job_id = $2 AND status = $3`,
		model.JobProcessing, jobID, model.JobPending)
	return err
}

// UpdateProgress writes the running counters. GREATEST keeps them monotonic
// even if updates land out of order.
func (r *JobRepo) UpdateProgress(ctx context.Context, jobID string, total, processed, failed int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE import_jobs
		SET total = GREATEST(total, $2),
		    processed = GREATEST(processed, $3),
		    failed = GREATEST(failed, $4)
		WHERE job_id = $1 AND status = $5`,
		jobID, total, processed, failed, model.JobProcessing)
	return err
}

// Complete moves a processing job to its completed terminal state with exact
// final counts. Terminal states are sticky: the status guard makes a second
// transition a no-op.
func (r *JobRepo) Complete(ctx context.Context, jobID string, total, processed, failed int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE import_jobs
		SET status = $2, total = $3, processed = $4, failed = $5, finished_at = NOW()
		WHERE job_id = $1 AND status = $6`,
		jobID, model.JobCompleted, total, processed, failed, model.JobProcessing)
	return err
}

// Fail moves a job to its failed terminal state with a human-readable reason.
func (r *JobRepo) Fail(ctx context.Context, jobID, lastError string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE import_jobs
		SET status = $2, last_error = $3, finished_at = NOW()
		WHERE job_id = $1 AND status NOT IN ($4, $5)`,
		jobID, model.JobFailed, lastError, model.JobCompleted, model.JobFailed)
	return err
}

// Get returns a snapshot of a job. Pure read, safe to poll.
func (r *JobRepo) Get(ctx context.Context, jobID string) (*model.ImportJob, error) {
	var j model.ImportJob
	err := r.pool.QueryRow(ctx, `
		SELECT job_id, room_id, source_kind, status, total, processed, failed, last_error, started_at, finished_at
		FROM import_jobs WHERE job_id = $1`, jobID).Scan(
		&j.ID, &j.RoomID, &j.SourceKind, &j.Status, &j.Total, &j.Processed,
		&j.Failed, &j.LastError, &j.StartedAt, &j.FinishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}
