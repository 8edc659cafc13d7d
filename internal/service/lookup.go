package service

import (
	"context"
	"strings"

	"siege-tracker/internal/constants"
	"siege-tracker/internal/domain"
	"siege-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type LookupService struct {
	repo   *repository.LookupRepository
	logger zerolog.Logger
}

func NewLookupService(repo *repository.LookupRepository, logger zerolog.Logger) *LookupService {
	return &LookupService{repo: repo, logger: logger}
}

// RecordLookup stores the identity. A failed write is logged and otherwise
// ignored, it never fails the lookup itself.
func (s *LookupService) RecordLookup(ctx context.Context, name, platform string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.DatabaseTimeout)
	defer cancel()

	if err := s.repo.Upsert(ctx, name, strings.ToLower(platform)); err != nil {
		s.logger.Warn().Err(err).Str("name", name).Str("platform", platform).Msg("failed to record lookup")
	}
}

func (s *LookupService) SearchSuggestions(ctx context.Context, query string) ([]domain.Lookup, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	query = strings.TrimSpace(query)
	s.logger.Debug().Str("query", query).Msg("searching lookups")

	if query == "" {
		return []domain.Lookup{}, nil
	}

	lookups, err := s.repo.Search(ctx, query, constants.SearchSuggestionLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search lookups")
		return nil, err
	}

	s.logger.Info().Int("count", len(lookups)).Str("query", query).Msg("search completed")
	return lookups, nil
}
