package service

import (
	"context"

	"github.com/middha141/VowSelect/internal/model"
	"github.com/middha141/VowSelect/internal/repository"
)

type PhotoService struct {
	photos *repository.PhotoRepo
	rooms  *repository.RoomRepo
}

func NewPhotoService(photos *repository.PhotoRepo, rooms *repository.RoomRepo) *PhotoService {
	return &PhotoService{photos: photos, rooms: rooms}
}

// List returns a page of a room's photos ordered by arrival index.
func (s *PhotoService) List(ctx context.Context, roomID string, skip, limit int) (*model.PhotoListResponse, error) {
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return nil, err
	}

	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	photos, err := s.photos.List(ctx, roomID, skip, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.photos.CountByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if photos == nil {
		photos = []model.Photo{}
	}
	return &model.PhotoListResponse{
		Photos: photos,
		Total:  total,
		Skip:   skip,
		Limit:  limit,
	}, nil
}

func (s *PhotoService) Get(ctx context.Context, photoID string) (*model.Photo, error) {
	return s.photos.GetByID(ctx, photoID)
}
