package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/middha141/VowSelect/internal/model"
)

type PhotoRepo struct {
	pool *pgxpool.Pool
}

func NewPhotoRepo(pool *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{pool: pool}
}

const photoColumns = `photo_id, room_id, source_kind, locator, filename, thumbnail_url, ordering_index, created_at`

func scanPhoto(row pgx.Row) (*model.Photo, error) {
	var p model.Photo
	err := row.Scan(&p.ID, &p.RoomID, &p.SourceKind, &p.Locator, &p.Filename,
		&p.ThumbnailURL, &p.OrderingIndex, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// AddIfAbsent catalogs a photo reference, assigning the room's next ordering
// index atomically. Re-importing the same (room, kind, locator) returns the
// existing record unchanged. The counter upsert and the insert run in one
// transaction; when a concurrent insert of the same key wins, the burned
// index leaves a gap, which is fine: indices are monotonic, not dense.
func (r *PhotoRepo) AddIfAbsent(ctx context.Context, roomID string, kind model.SourceKind, d model.PhotoDescriptor) (*model.Photo, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	existing, err := scanPhoto(tx.QueryRow(ctx, `
		SELECT `+photoColumns+` FROM photos
		WHERE room_id = $1 AND source_kind = $2 AND locator = $3`,
		roomID, kind, d.Locator))
	if err == nil {
		return existing, false, tx.Commit(ctx)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	var index int
	err = tx.QueryRow(ctx, `
		INSERT INTO room_counters (room_id, next_index) VALUES ($1, 1)
		ON CONFLICT (room_id) DO UPDATE SET next_index = room_counters.next_index + 1
		RETURNING next_index - 1`,
		roomID).Scan(&index)
	if err != nil {
		return nil, false, err
	}

	photo := &model.Photo{
		ID:            uuid.NewString(),
		RoomID:        roomID,
		SourceKind:    kind,
		Locator:       d.Locator,
		Filename:      d.Name,
		ThumbnailURL:  d.ThumbnailURL,
		OrderingIndex: index,
		CreatedAt:     time.Now().UTC(),
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO photos (photo_id, room_id, source_kind, locator, filename, thumbnail_url, ordering_index, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (room_id, source_kind, locator) DO NOTHING`,
		photo.ID, photo.RoomID, photo.SourceKind, photo.Locator, photo.Filename,
		photo.ThumbnailURL, photo.OrderingIndex, photo.CreatedAt)
	if err != nil {
		return nil, false, err
	}

	if tag.RowsAffected() == 0 {
		// Lost the race to a concurrent import of the same file.
		winner, err := scanPhoto(tx.QueryRow(ctx, `
			SELECT `+photoColumns+` FROM photos
			WHERE room_id = $1 AND source_kind = $2 AND locator = $3`,
			roomID, kind, d.Locator))
		if err != nil {
			return nil, false, err
		}
		return winner, false, tx.Commit(ctx)
	}

	return photo, true, tx.Commit(ctx)
}

// List returns a room's photos ordered by ordering index, with offset/limit
// so large rooms never load the full set.
func (r *PhotoRepo) List(ctx context.Context, roomID string, skip, limit int) ([]model.Photo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+photoColumns+` FROM photos
		WHERE room_id = $1
		ORDER BY ordering_index ASC
		OFFSET $2 LIMIT $3`,
		roomID, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []model.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, *p)
	}
	return photos, rows.Err()
}

// GetByID returns a single photo.
func (r *PhotoRepo) GetByID(ctx context.Context, photoID string) (*model.Photo, error) {
	p, err := scanPhoto(r.pool.QueryRow(ctx, `
		SELECT `+photoColumns+` FROM photos WHERE photo_id = $1`, photoID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	return p, err
}

// CountByRoom returns the number of cataloged photos in a room.
func (r *PhotoRepo) CountByRoom(ctx context.Context, roomID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM photos WHERE room_id = $1`, roomID).Scan(&n)
	return n, err
}
