package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/middha141/VowSelect/internal/model"
	"github.com/middha141/VowSelect/internal/repository"
)

// ExportService produces the top-N report for a room: a ranking slice plus a
// CSV summary the client can save or print.
type ExportService struct {
	rankings *RankingService
	exports  *repository.ExportRepo
}

func NewExportService(rankings *RankingService, exports *repository.ExportRepo) *ExportService {
	return &ExportService{rankings: rankings, exports: exports}
}

// Export computes the room's current ranking, takes the top N entries, and
// records an export job. The report reflects the ranking at call time;
// exports are not re-run when votes change.
func (s *ExportService) Export(ctx context.Context, req model.ExportRequest) (*model.ExportResponse, error) {
	if req.TopN <= 0 {
		return nil, fmt.Errorf("topN must be positive: %w", model.ErrInvalidInput)
	}

	entries, err := s.rankings.Rank(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	top := entries
	if len(top) > req.TopN {
		top = top[:req.TopN]
	}

	report, err := csvReport(top)
	if err != nil {
		return nil, err
	}

	job := &model.ExportJob{
		ID:              uuid.NewString(),
		RoomID:          req.RoomID,
		TopN:            req.TopN,
		DestinationType: req.DestinationType,
		DestinationPath: req.DestinationPath,
		Status:          model.JobCompleted,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.exports.Create(ctx, job); err != nil {
		return nil, err
	}

	return &model.ExportResponse{
		JobID:     job.ID,
		Status:    job.Status,
		TopPhotos: top,
		CSVReport: report,
	}, nil
}

// GetJob returns an export job record.
func (s *ExportService) GetJob(ctx context.Context, jobID string) (*model.ExportJob, error) {
	return s.exports.Get(ctx, jobID)
}

func csvReport(entries []model.RankingEntry) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"rank", "photo_id", "filename", "score", "votes"}); err != nil {
		return "", err
	}
	for _, e := range entries {
		score := ""
		if e.WeightedScore != nil {
			score = strconv.FormatFloat(*e.WeightedScore, 'f', 2, 64)
		}
		record := []string{
			strconv.Itoa(e.Rank),
			e.PhotoID,
			e.Filename,
			score,
			strconv.Itoa(e.VoteCount),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}
