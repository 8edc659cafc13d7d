package stats

import (
	"siege-tracker/internal/constants"
	"siege-tracker/internal/domain"
	"siege-tracker/internal/payload"
)

// ExtractRankedStats walks a `type=stats` payload down to the first full profile
// of the ranked board and flattens it. It returns nil when any level is missing.
func ExtractRankedStats(root payload.Node) *domain.RankedStats {
	families := root.Get("platform_families_full_profiles")
	if !families.IsArray() || families.Len() == 0 {
		return nil
	}

	boards := families.First().Get("board_ids_full_profiles")
	if !boards.IsArray() || boards.Len() == 0 {
		return nil
	}

	board := boards.Find(func(b payload.Node) bool {
		id, ok := b.Get("board_id").AsString()
		return ok && id == constants.RankedBoardID
	})
	if !board.Exists() {
		return nil
	}

	fullProfiles := board.Get("full_profiles")
	if fullProfiles.Len() == 0 {
		return nil
	}

	ranked := fullProfiles.First()
	profile := ranked.Get("profile")
	season := ranked.Get("season_statistics")
	if !profile.IsObject() || !season.IsObject() {
		return nil
	}

	outcomes := season.Get("match_outcomes")
	rs := &domain.RankedStats{
		BoardID:       profile.Get("board_id").TextPtr(),
		SeasonID:      profile.Get("season_id").TextPtr(),
		Rank:          profile.Get("rank").NumberPtr(),
		RankPoints:    profile.Get("rank_points").NumberPtr(),
		MaxRank:       profile.Get("max_rank").NumberPtr(),
		MaxRankPoints: profile.Get("max_rank_points").NumberPtr(),

		Kills:    season.Get("kills").Int(),
		Deaths:   season.Get("deaths").Int(),
		Wins:     outcomes.Get("wins").Int(),
		Losses:   outcomes.Get("losses").Int(),
		Abandons: outcomes.Get("abandons").Int(),
	}
	rs.KD = KD(rs.Kills, rs.Deaths)
	rs.Matches = rs.Wins + rs.Losses + rs.Abandons
	rs.WinRate = WinRate(rs.Wins, rs.Losses)

	return rs
}

// KD is kills per death. With no deaths it is the kill count itself, so a
// player with neither kills nor deaths has a KD of 0.
func KD(kills, deaths int) float64 {
	if deaths > 0 {
		return float64(kills) / float64(deaths)
	}
	return float64(kills)
}

// WinRate is the percentage (0-100) of decided matches won. Abandons are not decided.
func WinRate(wins, losses int) float64 {
	if wins+losses > 0 {
		return float64(wins) / float64(wins+losses) * 100
	}
	return 0
}
