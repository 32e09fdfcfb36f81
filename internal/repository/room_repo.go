package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/middha141/VowSelect/internal/model"
)

// ErrCodeTaken reports a join-code collision; the caller generates a fresh
// code and retries.
var ErrCodeTaken = errors.New("room code already in use")

type RoomRepo struct {
	pool *pgxpool.Pool
}

func NewRoomRepo(pool *pgxpool.Pool) *RoomRepo {
	return &RoomRepo{pool: pool}
}

// Create inserts a room and enrolls the creator as its first participant.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room, creatorName string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO rooms (room_id, code, creator_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		room.ID, room.Code, room.CreatorID, room.Status, room.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrCodeTaken
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO room_participants (room_id, user_id, username, joined_at)
		VALUES ($1, $2, $3, $4)`,
		room.ID, room.CreatorID, creatorName, room.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByID returns a room by id.
func (r *RoomRepo) GetByID(ctx context.Context, roomID string) (*model.Room, error) {
	return r.get(ctx, `SELECT room_id, code, creator_id, status, created_at FROM rooms WHERE room_id = $1`, roomID)
}

// GetByCode returns a room by join code.
func (r *RoomRepo) GetByCode(ctx context.Context, code string) (*model.Room, error) {
	return r.get(ctx, `SELECT room_id, code, creator_id, status, created_at FROM rooms WHERE code = $1`, code)
}

func (r *RoomRepo) get(ctx context.Context, query, arg string) (*model.Room, error) {
	var room model.Room
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&room.ID, &room.Code, &room.CreatorID, &room.Status, &room.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// AddParticipant enrolls a user in a room. Joining twice is a no-op; wasNew
// tells the caller which case it was.
func (r *RoomRepo) AddParticipant(ctx context.Context, roomID, userID, username string) (wasNew bool, err error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO room_participants (room_id, user_id, username, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (room_id, user_id) DO NOTHING`,
		roomID, userID, username, time.Now().UTC())
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListParticipants returns everyone enrolled in a room, join order.
func (r *RoomRepo) ListParticipants(ctx context.Context, roomID string) ([]model.Participant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT room_id, user_id, username, joined_at FROM room_participants
		WHERE room_id = $1
		ORDER BY joined_at ASC`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []model.Participant
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.RoomID, &p.UserID, &p.Username, &p.JoinedAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
