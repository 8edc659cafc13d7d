package stats

import (
	"siege-tracker/internal/domain"
	"siege-tracker/internal/payload"
)

// ResolveSeasonalRank reads rank display metadata from the most recent point of
// a `type=seasonalStats` history. Each history point is a [timestamp, stats] pair.
// Missing structure at any level gives an empty Enrichment.
func ResolveSeasonalRank(root payload.Node) domain.Enrichment {
	history := root.Path("data", "history", "data")
	if !history.IsArray() || history.Len() == 0 {
		return domain.Enrichment{}
	}

	meta := history.Last().Index(1).Get("metadata")
	return domain.Enrichment{
		RankName:     meta.Get("rank").NonEmptyString(),
		RankImageURL: meta.Get("imageUrl").NonEmptyString(),
		RankColor:    meta.Get("color").NonEmptyString(),
	}
}

// Merge attaches enrichment to a ranked record. The input record is never
// mutated; with nothing to attach it is returned as is, and a nil record
// stays nil.
func Merge(ranked *domain.RankedStats, enrichment *domain.Enrichment) *domain.RankedStats {
	if ranked == nil || enrichment.IsEmpty() {
		return ranked
	}

	merged := *ranked
	e := *enrichment
	merged.Enrichment = &e
	return &merged
}
