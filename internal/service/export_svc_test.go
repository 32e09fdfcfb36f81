package service

import (
	"strings"
	"testing"

	"github.com/middha141/VowSelect/internal/model"
)

func TestCSVReport_FormatsRankedEntries(t *testing.T) {
	score := 2.5
	entries := []model.RankingEntry{
		{Rank: 1, PhotoID: "p1", Filename: "ceremony.jpg", WeightedScore: &score, VoteCount: 4},
		{Rank: 2, PhotoID: "p2", Filename: "reception.jpg", VoteCount: 0},
	}

	report, err := csvReport(entries)
	if err != nil {
		t.Fatalf("csvReport: %v", err)
	}

	lines := strings.Split(strings.TrimRight(report, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + 2 rows)", len(lines))
	}
	if lines[0] != "rank,photo_id,filename,score,votes" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "1,p1,ceremony.jpg,2.50,4" {
		t.Errorf("row 1 = %q, want fixed two-decimal score", lines[1])
	}
	// Unvoted photo exports with an empty score column, not "0.00".
	if lines[2] != "2,p2,reception.jpg,,0" {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestCSVReport_EmptyRanking(t *testing.T) {
	report, err := csvReport(nil)
	if err != nil {
		t.Fatalf("csvReport: %v", err)
	}
	if strings.TrimRight(report, "\n") != "rank,photo_id,filename,score,votes" {
		t.Errorf("empty ranking report = %q, want header only", report)
	}
}

func TestCSVReport_QuotesCommasInFilenames(t *testing.T) {
	score := 1.0
	entries := []model.RankingEntry{
		{Rank: 1, PhotoID: "p1", Filename: `first dance, closeup.jpg`, WeightedScore: &score, VoteCount: 1},
	}

	report, err := csvReport(entries)
	if err != nil {
		t.Fatalf("csvReport: %v", err)
	}
	if !strings.Contains(report, `"first dance, closeup.jpg"`) {
		t.Errorf("filename with comma not quoted: %q", report)
	}
}
