package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/middha141/VowSelect/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persists a guest user.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (user_id, username, created_at) VALUES ($1, $2, $3)`,
		u.ID, u.Username, u.CreatedAt)
	return err
}

// GetByID returns a user by id.
func (r *UserRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, username, created_at FROM users WHERE user_id = $1`,
		userID).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
