package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/middha141/VowSelect/internal/model"
	"github.com/middha141/VowSelect/internal/repository"
)

type UserService struct {
	users *repository.UserRepo
}

func NewUserService(users *repository.UserRepo) *UserService {
	return &UserService{users: users}
}

// Create registers a guest user.
func (s *UserService) Create(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}
