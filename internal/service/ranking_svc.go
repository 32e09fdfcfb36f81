package service

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/middha141/VowSelect/internal/metrics"
	"github.com/middha141/VowSelect/internal/model"
)

// RankingService derives the live leaderboard for a room from the current
// photo catalog and vote ledger. It is a pure read: nothing is persisted, and
// identical underlying state always yields an identical ordered list.
//
// The weighted score is a plain arithmetic mean, as the product defines it.
// Known characteristic of that formula: a photo with a single +3 vote ranks
// above one holding ten votes averaging +2.9.
type RankingService struct {
	pool  *pgxpool.Pool
	cache *CacheService
}

func NewRankingService(pool *pgxpool.Pool, cache *CacheService) *RankingService {
	return &RankingService{pool: pool, cache: cache}
}

// Rank returns every photo in the room ordered by mean score descending.
// Photos with no votes sort after every voted photo; ties break by vote count
// descending, then ordering index ascending, so the order is total and
// deterministic.
func (s *RankingService) Rank(ctx context.Context, roomID string) ([]model.RankingEntry, error) {
	if s.cache != nil {
		if data, err := s.cache.GetRankings(ctx, roomID); err == nil && data != nil {
			var cached []model.RankingEntry
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	start := time.Now()
	entries, err := s.compute(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if metrics.Metrics.RankingDuration != nil {
		metrics.Metrics.RankingDuration.Observe(time.Since(start).Seconds())
	}

	if s.cache != nil {
		if err := s.cache.SetRankings(ctx, roomID, entries); err != nil {
			log.Printf("cache: set rankings error: %v", err)
		}
	}

	return entries, nil
}

func (s *RankingService) compute(ctx context.Context, roomID string) ([]model.RankingEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.photo_id, p.filename, p.source_kind, p.locator, p.thumbnail_url, p.ordering_index,
		       COUNT(v.score) AS vote_count,
		       AVG(v.score)::float8 AS mean_score
		FROM photos p
		LEFT JOIN votes v ON v.room_id = p.room_id AND v.photo_id = p.photo_id
		WHERE p.room_id = $1
		GROUP BY p.photo_id, p.filename, p.source_kind, p.locator, p.thumbnail_url, p.ordering_index`,
		roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type aggregated struct {
		entry model.RankingEntry
		index int
	}

	var photos []aggregated
	for rows.Next() {
		var a aggregated
		err := rows.Scan(&a.entry.PhotoID, &a.entry.Filename, &a.entry.SourceKind,
			&a.entry.Locator, &a.entry.ThumbnailURL, &a.index,
			&a.entry.VoteCount, &a.entry.WeightedScore)
		if err != nil {
			return nil, err
		}
		photos = append(photos, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(photos, func(i, j int) bool {
		return rankLess(
			photos[i].entry.WeightedScore, photos[i].entry.VoteCount, photos[i].index,
			photos[j].entry.WeightedScore, photos[j].entry.VoteCount, photos[j].index,
		)
	})

	entries := make([]model.RankingEntry, 0, len(photos))
	for i, a := range photos {
		a.entry.Rank = i + 1
		entries = append(entries, a.entry)
	}

	return entries, nil
}

// rankLess is the leaderboard's total order: mean descending with unvoted
// photos (nil mean) after every voted one, then vote count descending, then
// ordering index ascending.
func rankLess(meanI *float64, countI, indexI int, meanJ *float64, countJ, indexJ int) bool {
	switch {
	case meanI != nil && meanJ == nil:
		return true
	case meanI == nil && meanJ != nil:
		return false
	case meanI != nil && meanJ != nil && *meanI != *meanJ:
		return *meanI > *meanJ
	}
	if countI != countJ {
		return countI > countJ
	}
	return indexI < indexJ
}
