package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/middha141/VowSelect/internal/model"
)

type ExportRepo struct {
	pool *pgxpool.Pool
}

func NewExportRepo(pool *pgxpool.Pool) *ExportRepo {
	return &ExportRepo{pool: pool}
}

// Create persists an export job record.
func (r *ExportRepo) Create(ctx context.Context, job *model.ExportJob) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO export_jobs (job_id, room_id, top_n, destination_type, destination_path, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		job.ID, job.RoomID, job.TopN, job.DestinationType, job.DestinationPath, job.Status, job.CreatedAt)
	return err
}

// Get returns an export job by id.
func (r *ExportRepo) Get(ctx context.Context, jobID string) (*model.ExportJob, error) {
	var j model.ExportJob
	err := r.pool.QueryRow(ctx, `
		SELECT job_id, room_id, top_n, destination_type, destination_path, status, created_at
		FROM export_jobs WHERE job_id = $1`, jobID).Scan(
		&j.ID, &j.RoomID, &j.TopN, &j.DestinationType, &j.DestinationPath, &j.Status, &j.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}
