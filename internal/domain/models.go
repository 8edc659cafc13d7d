package domain

import (
	"time"
)

// ResolvedPlatform is the pair of identifiers the r6data API expects for an account.
type ResolvedPlatform struct {
	PlatformType   string `json:"platformType"`   // "uplay", "psn" or "xbl"
	PlatformFamily string `json:"platformFamily"` // "pc" or "console"
}

// RankedStats is the flattened ranked-board snapshot of one player.
// Matches is always Wins+Losses+Abandons; KD and WinRate are always finite.
type RankedStats struct {
	BoardID       *string  `json:"boardId,omitempty"`
	SeasonID      *string  `json:"seasonId,omitempty"`
	Rank          *float64 `json:"rank,omitempty"`
	RankPoints    *float64 `json:"rankPoints,omitempty"`
	MaxRank       *float64 `json:"maxRank,omitempty"`
	MaxRankPoints *float64 `json:"maxRankPoints,omitempty"`

	Kills    int     `json:"kills"`
	Deaths   int     `json:"deaths"`
	KD       float64 `json:"kd"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	Abandons int     `json:"abandons"`
	Matches  int     `json:"matches"`
	WinRate  float64 `json:"winRate"`

	// nil unless the seasonal source produced at least one field
	*Enrichment
}

// Enrichment is display metadata for the current rank taken from the seasonal history.
type Enrichment struct {
	RankName     *string `json:"rankName"`
	RankImageURL *string `json:"rankImageUrl"`
	RankColor    *string `json:"rankColor"`
}

func (e *Enrichment) IsEmpty() bool {
	return e == nil || (e.RankName == nil && e.RankImageURL == nil && e.RankColor == nil)
}

type PlayerStatsResult struct {
	Source   string       `json:"source"`
	Platform string       `json:"platform"`
	Name     string       `json:"name"`
	Ranked   *RankedStats `json:"ranked"`
}

type PlayerRequest struct {
	Name     string  `json:"name"`
	Platform string  `json:"platform,omitempty"`
	Team     *string `json:"team,omitempty"`
}

type PlayerResult struct {
	Name     string       `json:"name"`
	Platform string       `json:"platform"`
	Team     *string      `json:"team"`
	Ranked   *RankedStats `json:"ranked"`
	Error    *string      `json:"error"`
}

type MatchRequest struct {
	Players []PlayerRequest `json:"players"`
}

type MatchResult struct {
	Players []PlayerResult `json:"players"`
}

// Lookup is one remembered player identity, used for search suggestions.
type Lookup struct {
	ID           string    `json:"-"`
	Name         string    `json:"name"`
	Platform     string    `json:"platform"`
	Lookups      int       `json:"lookups"`
	LastLookupAt time.Time `json:"lastLookupAt"`
	CreatedAt    time.Time `json:"-"`
}
