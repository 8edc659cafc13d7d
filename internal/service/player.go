package service

import (
	"context"

	"siege-tracker/internal/constants"
	"siege-tracker/internal/domain"
	"siege-tracker/internal/payload"
	"siege-tracker/internal/stats"

	"github.com/rs/zerolog"
)

// StatsSource is the upstream stats API.
type StatsSource interface {
	GetStats(ctx context.Context, name string, platform domain.ResolvedPlatform) (payload.Node, error)
	GetSeasonalStats(ctx context.Context, name string, platform domain.ResolvedPlatform) (payload.Node, error)
}

// LookupRecorder remembers player identities that were looked up.
type LookupRecorder interface {
	RecordLookup(ctx context.Context, name, platform string)
}

type PlayerService struct {
	source  StatsSource
	lookups LookupRecorder
	logger  zerolog.Logger
}

func NewPlayerService(source StatsSource, lookups LookupRecorder, logger zerolog.Logger) *PlayerService {
	return &PlayerService{source: source, lookups: lookups, logger: logger}
}

// GetPlayer looks up one player's ranked snapshot. A player without ranked
// history yields a result with a nil Ranked and no error.
func (s *PlayerService) GetPlayer(ctx context.Context, platform, name string) (*domain.PlayerStatsResult, error) {
	ranked, err := s.fetchRanked(ctx, platform, name)
	if err != nil {
		return nil, err
	}

	return &domain.PlayerStatsResult{
		Source:   constants.R6DataSource,
		Platform: platform,
		Name:     name,
		Ranked:   ranked,
	}, nil
}

func (s *PlayerService) fetchRanked(ctx context.Context, platform, name string) (*domain.RankedStats, error) {
	if name == "" {
		return nil, domain.InvalidInput("missing player name")
	}

	resolved, ok := stats.MapPlatform(platform)
	if !ok {
		s.logger.Debug().Str("platform", platform).Str("name", name).Msg("unsupported platform")
		return nil, domain.UnsupportedPlatform(platform)
	}

	s.logger.Info().Str("name", name).Str("platform", platform).Msg("getting player stats")

	body, err := s.source.GetStats(ctx, name, resolved)
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Str("platform", platform).Msg("failed to fetch stats")
		return nil, err
	}

	if s.lookups != nil {
		s.lookups.RecordLookup(ctx, name, platform)
	}

	ranked := stats.ExtractRankedStats(body)
	if ranked == nil {
		s.logger.Info().Str("name", name).Str("platform", platform).Msg("no ranked data for player")
	}

	// the seasonal call only runs once the primary one succeeded
	enrichment := s.fetchEnrichment(ctx, name, resolved)

	return stats.Merge(ranked, enrichment), nil
}

// fetchEnrichment is best-effort: every failure is logged and reported as nil.
func (s *PlayerService) fetchEnrichment(ctx context.Context, name string, platform domain.ResolvedPlatform) *domain.Enrichment {
	body, err := s.source.GetSeasonalStats(ctx, name, platform)
	if err != nil {
		s.logger.Warn().Err(err).Str("name", name).Msg("seasonal stats unavailable, skipping rank enrichment")
		return nil
	}

	enrichment := stats.ResolveSeasonalRank(body)
	if enrichment.IsEmpty() {
		s.logger.Debug().Str("name", name).Msg("no rank metadata in seasonal stats")
		return nil
	}
	return &enrichment
}
