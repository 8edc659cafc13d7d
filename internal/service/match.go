package service

import (
	"context"
	"fmt"

	"siege-tracker/internal/constants"
	"siege-tracker/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	errUnsupportedPlatform = "Unsupported platform"
	errUpstream            = "Upstream API error"
	errUnknown             = "Unknown error"
)

type MatchService struct {
	players *PlayerService
	logger  zerolog.Logger
}

func NewMatchService(players *PlayerService, logger zerolog.Logger) *MatchService {
	return &MatchService{players: players, logger: logger}
}

// Resolve looks up every player of a match concurrently. Only the size of the
// list can fail the batch; a player's own failure becomes its row's Error and
// rows keep the input order.
func (s *MatchService) Resolve(ctx context.Context, players []domain.PlayerRequest) (*domain.MatchResult, error) {
	if len(players) == 0 {
		return nil, domain.InvalidInput("players list must not be empty")
	}
	if len(players) > constants.MaxMatchPlayers {
		return nil, domain.InvalidInput(fmt.Sprintf("at most %d players per match request", constants.MaxMatchPlayers))
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.logger.Info().Int("players", len(players)).Msg("resolving match")

	results := make([]domain.PlayerResult, len(players))

	// plain group: one player's failure must not cancel its siblings
	g := new(errgroup.Group)
	for i, p := range players {
		g.Go(func() error {
			results[i] = s.resolvePlayer(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
		}
	}
	s.logger.Info().Int("players", len(results)).Int("failed", failed).Msg("match resolved")

	return &domain.MatchResult{Players: results}, nil
}

func (s *MatchService) resolvePlayer(ctx context.Context, p domain.PlayerRequest) (result domain.PlayerResult) {
	platform := p.Platform
	if platform == "" {
		platform = constants.DefaultPlatform
	}
	var team *string
	if p.Team != nil && *p.Team != "" {
		t := *p.Team
		team = &t
	}

	result = domain.PlayerResult{Name: p.Name, Platform: platform, Team: team}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Str("name", p.Name).Msg("player lookup panicked")
			msg := errUnknown
			result.Ranked = nil
			result.Error = &msg
		}
	}()

	stats, err := s.players.GetPlayer(ctx, platform, p.Name)
	if err != nil {
		s.logger.Warn().Err(err).Str("name", p.Name).Str("platform", platform).Msg("player lookup failed")
		msg := errorMessage(err)
		result.Error = &msg
		return result
	}

	result.Ranked = stats.Ranked
	return result
}

func errorMessage(err error) string {
	switch domain.KindOf(err) {
	case domain.KindUnsupportedPlatform:
		return errUnsupportedPlatform
	case domain.KindUpstream:
		return errUpstream
	default:
		return errUnknown
	}
}
