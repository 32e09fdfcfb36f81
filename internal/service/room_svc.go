package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/middha141/VowSelect/internal/model"
	"github.com/middha141/VowSelect/internal/repository"
	"github.com/middha141/VowSelect/pkg/roomcode"
)

// codeAttempts bounds join-code collision retries. With 100k codes the loop
// realistically never runs twice until rooms number in the tens of thousands.
const codeAttempts = 10

type RoomService struct {
	rooms  *repository.RoomRepo
	users  *repository.UserRepo
	photos *repository.PhotoRepo
	cache  *CacheService
}

func NewRoomService(rooms *repository.RoomRepo, users *repository.UserRepo, photos *repository.PhotoRepo, cache *CacheService) *RoomService {
	return &RoomService{rooms: rooms, users: users, photos: photos, cache: cache}
}

// Create makes a new room with a unique 5-digit join code and enrolls the
// creator as the first participant.
func (s *RoomService) Create(ctx context.Context, creatorID string) (*model.Room, error) {
	creator, err := s.users.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := roomcode.Generate()
		if err != nil {
			return nil, err
		}

		room := &model.Room{
			ID:        uuid.NewString(),
			Code:      code,
			CreatorID: creator.ID,
			Status:    model.RoomActive,
			CreatedAt: time.Now().UTC(),
		}

		err = s.rooms.Create(ctx, room, creator.Username)
		if errors.Is(err, repository.ErrCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return room, nil
	}

	return nil, fmt.Errorf("could not allocate a unique room code after %d attempts", codeAttempts)
}

// Join enrolls a user in the room behind a join code. Joining a room the user
// is already in is a no-op.
func (s *RoomService) Join(ctx context.Context, req model.JoinRoomRequest) (*model.JoinRoomResponse, error) {
	room, err := s.rooms.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	wasNew, err := s.rooms.AddParticipant(ctx, room.ID, req.UserID, req.Username)
	if err != nil {
		return nil, err
	}

	msg := "Already in room"
	if wasNew {
		msg = "Joined successfully"
		if s.cache != nil {
			if err := s.cache.InvalidateRoomDetail(ctx, room.ID); err != nil {
				log.Printf("cache: invalidate room detail error: %v", err)
			}
		}
	}

	return &model.JoinRoomResponse{RoomID: room.ID, Message: msg}, nil
}

// Detail returns a room with its participants and photo count.
func (s *RoomService) Detail(ctx context.Context, roomID string) (*model.RoomDetailResponse, error) {
	if s.cache != nil {
		if data, err := s.cache.GetRoomDetail(ctx, roomID); err == nil && data != nil {
			var cached model.RoomDetailResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	participants, err := s.rooms.ListParticipants(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []model.Participant{}
	}

	count, err := s.photos.CountByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	resp := &model.RoomDetailResponse{
		Room:         *room,
		Participants: participants,
		PhotoCount:   count,
	}

	if s.cache != nil {
		if err := s.cache.SetRoomDetail(ctx, roomID, resp); err != nil {
			log.Printf("cache: set room detail error: %v", err)
		}
	}

	return resp, nil
}

// Participants lists everyone enrolled in a room.
func (s *RoomService) Participants(ctx context.Context, roomID string) ([]model.Participant, error) {
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return nil, err
	}
	participants, err := s.rooms.ListParticipants(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []model.Participant{}
	}
	return participants, nil
}
