package service

import (
	"context"
	"log"

	"github.com/middha141/VowSelect/internal/model"
)

// voteLedger is the slice of VoteRepo the vote service needs.
type voteLedger interface {
	Upsert(ctx context.Context, roomID, photoID, userID string, score model.Score) (*model.Vote, error)
	UndoLast(ctx context.Context, roomID, userID string) (*model.Vote, error)
	ListByPhoto(ctx context.Context, roomID, photoID string) ([]model.Vote, error)
	ListByUser(ctx context.Context, roomID, userID string) ([]model.Vote, error)
}

// photoGetter is the slice of PhotoRepo the vote service needs.
type photoGetter interface {
	GetByID(ctx context.Context, photoID string) (*model.Photo, error)
}

type VoteService struct {
	votes  voteLedger
	photos photoGetter
	cache  *CacheService
}

func NewVoteService(votes voteLedger, photos photoGetter, cache *CacheService) *VoteService {
	return &VoteService{votes: votes, photos: photos, cache: cache}
}

// Cast validates and records a vote. Re-voting on the same photo replaces the
// prior score; the ledger keeps at most one vote per (room, photo, user).
func (s *VoteService) Cast(ctx context.Context, req model.VoteRequest) (*model.Vote, error) {
	if !req.Score.Valid() {
		return nil, model.ErrInvalidScore
	}

	photo, err := s.photos.GetByID(ctx, req.PhotoID)
	if err != nil {
		return nil, err
	}
	if photo.RoomID != req.RoomID {
		return nil, model.ErrNotFound
	}

	vote, err := s.votes.Upsert(ctx, req.RoomID, req.PhotoID, req.UserID, req.Score)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.RoomID)
	return vote, nil
}

// Undo removes the user's most recently cast vote in the room. Single-level:
// a second undo without an intervening cast reports ErrNothingToUndo.
func (s *VoteService) Undo(ctx context.Context, req model.UndoVoteRequest) (*model.Vote, error) {
	undone, err := s.votes.UndoLast(ctx, req.RoomID, req.UserID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.RoomID)
	return undone, nil
}

// ListByPhoto returns a photo's votes with their count and mean.
func (s *VoteService) ListByPhoto(ctx context.Context, roomID, photoID string) (*model.PhotoVotesResponse, error) {
	votes, err := s.votes.ListByPhoto(ctx, roomID, photoID)
	if err != nil {
		return nil, err
	}

	resp := &model.PhotoVotesResponse{
		Votes:     votes,
		VoteCount: len(votes),
	}
	if len(votes) > 0 {
		var sum int
		for _, v := range votes {
			sum += int(v.Score)
		}
		resp.AverageScore = float64(sum) / float64(len(votes))
	}
	if resp.Votes == nil {
		resp.Votes = []model.Vote{}
	}
	return resp, nil
}

// ListByUser returns every vote a user has cast in a room, newest first.
func (s *VoteService) ListByUser(ctx context.Context, roomID, userID string) (*model.UserVotesResponse, error) {
	votes, err := s.votes.ListByUser(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if votes == nil {
		votes = []model.Vote{}
	}
	return &model.UserVotesResponse{Votes: votes}, nil
}

func (s *VoteService) invalidate(ctx context.Context, roomID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateRankings(ctx, roomID); err != nil {
		log.Printf("cache: invalidate rankings error: %v", err)
	}
}
