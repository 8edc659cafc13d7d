package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"siege-tracker/internal/domain"
	"siege-tracker/internal/payload"

	"github.com/rs/zerolog"
)

const rankedPayload = `{"platform_families_full_profiles": [{"board_ids_full_profiles": [
  {"board_id": "ranked", "full_profiles": [{
    "profile": {"board_id": "ranked", "season_id": 38, "rank": 27, "rank_points": 4123},
    "season_statistics": {"kills": 40, "deaths": 20, "match_outcomes": {"wins": 6, "losses": 4, "abandons": 1}}
  }]}
]}]}`

const seasonalPayload = `{"data": {"history": {"data": [
  [1, {"metadata": {"rank": "GOLD II", "imageUrl": "https://img/gold2.png", "color": "#ffd700"}}]
]}}}`

type fakeResponse struct {
	body string
	err  error
}

// fakeSource answers per player name; names without an entry get errUnexpected.
type fakeSource struct {
	stats    map[string]fakeResponse
	seasonal map[string]fakeResponse

	mu            sync.Mutex
	statsCalls    []string
	seasonalCalls []string
	platformsSeen []domain.ResolvedPlatform
	inFlight      atomic.Int32
	maxInFlight   atomic.Int32
	block         chan struct{}
	panicOnName   string
}

var errUnexpected = errors.New("unexpected call")

func (f *fakeSource) respond(r fakeResponse, ok bool) (payload.Node, error) {
	if !ok {
		return payload.Node{}, errUnexpected
	}
	if r.err != nil {
		return payload.Node{}, r.err
	}
	return payload.Decode([]byte(r.body))
}

func (f *fakeSource) GetStats(ctx context.Context, name string, platform domain.ResolvedPlatform) (payload.Node, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxInFlight.Load()
		if n <= m || f.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}

	f.mu.Lock()
	f.statsCalls = append(f.statsCalls, name)
	f.platformsSeen = append(f.platformsSeen, platform)
	f.mu.Unlock()

	if name == f.panicOnName && name != "" {
		panic("boom")
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return payload.Node{}, domain.Upstream(0, ctx.Err())
		}
	}

	r, ok := f.stats[name]
	return f.respond(r, ok)
}

func (f *fakeSource) GetSeasonalStats(ctx context.Context, name string, platform domain.ResolvedPlatform) (payload.Node, error) {
	f.mu.Lock()
	f.seasonalCalls = append(f.seasonalCalls, name)
	f.mu.Unlock()

	r, ok := f.seasonal[name]
	return f.respond(r, ok)
}

func (f *fakeSource) calls() (stats, seasonal int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.statsCalls), len(f.seasonalCalls)
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []string
}

func (r *fakeRecorder) RecordLookup(_ context.Context, name, platform string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, platform+"/"+name)
}

func newTestPlayerService(t *testing.T, source *fakeSource, recorder LookupRecorder) *PlayerService {
	t.Helper()
	return NewPlayerService(source, recorder, zerolog.New(io.Discard))
}
