package overlay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"siege-tracker/internal/capture"
	"siege-tracker/internal/constants"
	"siege-tracker/internal/domain"
	"siege-tracker/internal/names"

	"github.com/rs/zerolog"
)

type Recognizer interface {
	CaptureAndRecognize(ctx context.Context, region capture.Region) capture.Result
}

type MatchResolver interface {
	ResolveMatch(ctx context.Context, slots []names.Slot, platform string) (*domain.MatchResult, error)
}

var ErrNoCandidates = errors.New("no candidate names detected")

type Runner struct {
	cfg        *Config
	recognizer Recognizer
	backend    MatchResolver
	logger     zerolog.Logger
}

func NewRunner(cfg *Config, recognizer Recognizer, backend MatchResolver, logger zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, recognizer: recognizer, backend: backend, logger: logger}
}

// Run resolves the players visible on screen and prints both teams to w.
// A non-nil text is used in place of a screen capture.
func (r *Runner) Run(ctx context.Context, w io.Writer, text *string) error {
	var recognized string
	if text != nil {
		recognized = *text
	} else {
		res := r.recognizer.CaptureAndRecognize(ctx, r.cfg.Region)
		if !res.OK {
			return fmt.Errorf("capture failed: %s", res.Error)
		}
		recognized = res.Text
	}

	candidates := names.ExtractCandidates(recognized)
	r.logger.Info().Int("candidates", len(candidates)).Msg("names extracted")
	if len(candidates) == 0 {
		return ErrNoCandidates
	}
	if _, err := fmt.Fprintf(w, "Candidates: %s\n\n", strings.Join(candidates, ", ")); err != nil {
		return err
	}

	slots := names.AssignTeams(candidates, constants.MaxMatchPlayers)
	result, err := r.backend.ResolveMatch(ctx, slots, r.cfg.Platform)
	if err != nil {
		return err
	}

	return RenderTeams(w, result)
}
