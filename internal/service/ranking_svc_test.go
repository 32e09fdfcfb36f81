package service

import (
	"sort"
	"testing"
)

type rankedPhoto struct {
	id    string
	mean  *float64
	count int
	index int
}

// orderPhotos mirrors the sort applied in compute: same comparator, same
// rank assignment, without a database.
func orderPhotos(photos []rankedPhoto) []rankedPhoto {
	out := make([]rankedPhoto, len(photos))
	copy(out, photos)
	sort.Slice(out, func(i, j int) bool {
		return rankLess(out[i].mean, out[i].count, out[i].index,
			out[j].mean, out[j].count, out[j].index)
	})
	return out
}

func mean(v float64) *float64 { return &v }

func TestRankOrder_MeanDescending(t *testing.T) {
	photos := []rankedPhoto{
		{id: "low", mean: mean(-1.0), count: 3, index: 0},
		{id: "high", mean: mean(2.5), count: 2, index: 1},
		{id: "mid", mean: mean(1.0), count: 4, index: 2},
	}

	got := orderPhotos(photos)

	want := []string{"high", "mid", "low"}
	for i, id := range want {
		if got[i].id != id {
			t.Errorf("position %d = %s, want %s", i, got[i].id, id)
		}
	}
}

func TestRankOrder_TieBrokenByVoteCount(t *testing.T) {
	// Equal mean of 2.0: two votes beats one vote.
	photos := []rankedPhoto{
		{id: "one-vote", mean: mean(2.0), count: 1, index: 0},
		{id: "negative", mean: mean(-1.0), count: 1, index: 1},
		{id: "two-votes", mean: mean(2.0), count: 2, index: 2},
	}

	got := orderPhotos(photos)

	want := []string{"two-votes", "one-vote", "negative"}
	for i, id := range want {
		if got[i].id != id {
			t.Errorf("position %d = %s, want %s", i, got[i].id, id)
		}
	}
}

func TestRankOrder_TieBrokenByOrderingIndex(t *testing.T) {
	// Same mean, same count: earlier catalog arrival wins.
	photos := []rankedPhoto{
		{id: "later", mean: mean(1.5), count: 2, index: 7},
		{id: "earlier", mean: mean(1.5), count: 2, index: 3},
	}

	got := orderPhotos(photos)

	if got[0].id != "earlier" || got[1].id != "later" {
		t.Errorf("order = [%s, %s], want [earlier, later]", got[0].id, got[1].id)
	}
}

func TestRankOrder_UnvotedSortLast(t *testing.T) {
	photos := []rankedPhoto{
		{id: "unvoted-b", mean: nil, count: 0, index: 5},
		{id: "worst-voted", mean: mean(-3.0), count: 1, index: 1},
		{id: "unvoted-a", mean: nil, count: 0, index: 2},
	}

	got := orderPhotos(photos)

	// Even a -3 average outranks a photo nobody voted on; unvoted photos
	// order among themselves by index.
	want := []string{"worst-voted", "unvoted-a", "unvoted-b"}
	for i, id := range want {
		if got[i].id != id {
			t.Errorf("position %d = %s, want %s", i, got[i].id, id)
		}
	}
}

func TestRankOrder_SingleHighVoteOutranksManyLower(t *testing.T) {
	// Documented consequence of the plain mean: one +3 vote beats ten
	// votes averaging +2.9.
	photos := []rankedPhoto{
		{id: "many", mean: mean(2.9), count: 10, index: 0},
		{id: "single", mean: mean(3.0), count: 1, index: 1},
	}

	got := orderPhotos(photos)

	if got[0].id != "single" {
		t.Errorf("top = %s, want single", got[0].id)
	}
}

func TestRankOrder_Deterministic(t *testing.T) {
	photos := []rankedPhoto{
		{id: "a", mean: mean(1.0), count: 2, index: 4},
		{id: "b", mean: mean(1.0), count: 2, index: 2},
		{id: "c", mean: nil, count: 0, index: 0},
		{id: "d", mean: mean(2.0), count: 1, index: 3},
	}

	first := orderPhotos(photos)
	for run := 0; run < 10; run++ {
		again := orderPhotos(photos)
		for i := range first {
			if again[i].id != first[i].id {
				t.Fatalf("run %d position %d = %s, want %s", run, i, again[i].id, first[i].id)
			}
		}
	}
}

func TestRankOrder_Empty(t *testing.T) {
	if got := orderPhotos(nil); len(got) != 0 {
		t.Errorf("expected empty order, got %d entries", len(got))
	}
}
