package model

// RankingEntry is one row of a room's live leaderboard. Derived, never stored.
// WeightedScore is the arithmetic mean of the photo's vote scores; nil when the
// photo has no votes yet (unranked sorts after every ranked photo).
type RankingEntry struct {
	PhotoID       string     `json:"photoId"`
	Filename      string     `json:"filename"`
	SourceKind    SourceKind `json:"sourceKind"`
	Locator       string     `json:"locator"`
	ThumbnailURL  string     `json:"thumbnailUrl,omitempty"`
	WeightedScore *float64   `json:"weightedScore"`
	VoteCount     int        `json:"voteCount"`
	Rank          int        `json:"rank"`
}
