package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/middha141/VowSelect/internal/model"
)

type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// Upsert records a vote using atomic SQL. A prior vote by the same user on
// the same photo is overwritten in place; the old score is not retained. The
// same transaction replaces the user's last-action marker, so the most recent
// cast (by server-observed order) is what UndoLast will remove.
func (r *VoteRepo) Upsert(ctx context.Context, roomID, photoID, userID string, score model.Score) (*model.Vote, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var votedAt time.Time
	err = tx.QueryRow(ctx, `
		INSERT INTO votes (room_id, photo_id, user_id, score, voted_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (room_id, photo_id, user_id) DO UPDATE
		SET score = EXCLUDED.score, voted_at = NOW()
		RETURNING voted_at`,
		roomID, photoID, userID, score).Scan(&votedAt)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO last_actions (room_id, user_id, photo_id, acted_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (room_id, user_id) DO UPDATE
		SET photo_id = EXCLUDED.photo_id, acted_at = NOW()`,
		roomID, userID, photoID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &model.Vote{
		RoomID:  roomID,
		PhotoID: photoID,
		UserID:  userID,
		Score:   score,
		VotedAt: votedAt,
	}, nil
}

// UndoLast removes the vote named by the user's last-action marker and clears
// the marker. Undo is single-level: a second undo without an intervening cast
// finds no marker and reports ErrNothingToUndo. The FOR UPDATE lock on the
// marker row serializes concurrent undos for the same user across server
// instances; different users never contend.
func (r *VoteRepo) UndoLast(ctx context.Context, roomID, userID string) (*model.Vote, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var photoID string
	err = tx.QueryRow(ctx, `
		SELECT photo_id FROM last_actions
		WHERE room_id = $1 AND user_id = $2
		FOR UPDATE`,
		roomID, userID).Scan(&photoID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNothingToUndo
	}
	if err != nil {
		return nil, err
	}

	var undone model.Vote
	err = tx.QueryRow(ctx, `
		DELETE FROM votes
		WHERE room_id = $1 AND photo_id = $2 AND user_id = $3
		RETURNING room_id, photo_id, user_id, score, voted_at`,
		roomID, photoID, userID).Scan(&undone.RoomID, &undone.PhotoID, &undone.UserID, &undone.Score, &undone.VotedAt)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	voteGone := errors.Is(err, pgx.ErrNoRows)

	_, err = tx.Exec(ctx, `
		DELETE FROM last_actions WHERE room_id = $1 AND user_id = $2`,
		roomID, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if voteGone {
		// Marker pointed at a vote removed out from under us (photo teardown).
		return nil, model.ErrNothingToUndo
	}
	return &undone, nil
}

// ListByPhoto returns all votes for one photo in a room.
func (r *VoteRepo) ListByPhoto(ctx context.Context, roomID, photoID string) ([]model.Vote, error) {
	return r.list(ctx, `
		SELECT room_id, photo_id, user_id, score, voted_at FROM votes
		WHERE room_id = $1 AND photo_id = $2
		ORDER BY voted_at DESC`, roomID, photoID)
}

// ListByUser returns all votes a user has cast in a room, newest first, so a
// reconnecting client can resume its voting position.
func (r *VoteRepo) ListByUser(ctx context.Context, roomID, userID string) ([]model.Vote, error) {
	return r.list(ctx, `
		SELECT room_id, photo_id, user_id, score, voted_at FROM votes
		WHERE room_id = $1 AND user_id = $2
		ORDER BY voted_at DESC`, roomID, userID)
}

func (r *VoteRepo) list(ctx context.Context, query string, args ...any) ([]model.Vote, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []model.Vote
	for rows.Next() {
		var v model.Vote
		if err := rows.Scan(&v.RoomID, &v.PhotoID, &v.UserID, &v.Score, &v.VotedAt); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}
