package service

import (
	"context"
	"io"
	"testing"
	"time"

	"siege-tracker/internal/domain"

	"github.com/rs/zerolog"
)

func newTestMatchService(t *testing.T, source *fakeSource) *MatchService {
	t.Helper()
	return NewMatchService(newTestPlayerService(t, source, nil), zerolog.New(io.Discard))
}

func team(s string) *string { return &s }

func TestResolve_IsolatesPerPlayerFailures(t *testing.T) {
	source := &fakeSource{
		stats: map[string]fakeResponse{
			"alpha": {body: rankedPayload},
			"gamma": {body: rankedPayload},
		},
		seasonal: map[string]fakeResponse{
			"alpha": {body: seasonalPayload},
			"gamma": {err: domain.Upstream(500, nil)},
		},
	}
	svc := newTestMatchService(t, source)

	res, err := svc.Resolve(context.Background(), []domain.PlayerRequest{
		{Name: "alpha", Platform: "pc", Team: team("blue")},
		{Name: "beta", Platform: "nintendo", Team: team("blue")},
		{Name: "gamma", Platform: "pc", Team: team("orange")},
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(res.Players) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(res.Players))
	}

	for i, want := range []string{"alpha", "beta", "gamma"} {
		if res.Players[i].Name != want {
			t.Errorf("row %d: got %s, want %s", i, res.Players[i].Name, want)
		}
	}

	alpha, beta, gamma := res.Players[0], res.Players[1], res.Players[2]
	if alpha.Error != nil || alpha.Ranked == nil || alpha.Ranked.RankName == nil {
		t.Errorf("alpha: expected enriched stats, got %+v", alpha)
	}
	if gamma.Error != nil || gamma.Ranked == nil || gamma.Ranked.Enrichment != nil {
		t.Errorf("gamma: expected plain stats, got %+v", gamma)
	}
	if beta.Ranked != nil || beta.Error == nil || *beta.Error != "Unsupported platform" {
		t.Errorf("beta: expected unsupported platform error, got %+v", beta)
	}
	if beta.Team == nil || *beta.Team != "blue" {
		t.Errorf("beta: team should survive failure, got %v", beta.Team)
	}
}

func TestResolve_RejectsBatchSize(t *testing.T) {
	source := &fakeSource{}
	svc := newTestMatchService(t, source)

	eleven := make([]domain.PlayerRequest, 11)
	for i := range eleven {
		eleven[i] = domain.PlayerRequest{Name: "p"}
	}

	for _, players := range [][]domain.PlayerRequest{nil, {}, eleven} {
		res, err := svc.Resolve(context.Background(), players)
		if domain.KindOf(err) != domain.KindInvalidInput {
			t.Errorf("%d players: expected InvalidInput, got %v", len(players), err)
		}
		if res != nil {
			t.Errorf("%d players: expected no result, got %+v", len(players), res)
		}
	}

	if s, seasonal := source.calls(); s != 0 || seasonal != 0 {
		t.Errorf("expected no upstream calls, got %d/%d", s, seasonal)
	}
}

func TestResolve_AcceptsTenPlayers(t *testing.T) {
	source := &fakeSource{
		stats:    map[string]fakeResponse{"p": {body: rankedPayload}},
		seasonal: map[string]fakeResponse{"p": {body: seasonalPayload}},
	}
	svc := newTestMatchService(t, source)

	ten := make([]domain.PlayerRequest, 10)
	for i := range ten {
		ten[i] = domain.PlayerRequest{Name: "p"}
	}

	res, err := svc.Resolve(context.Background(), ten)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(res.Players) != 10 {
		t.Errorf("expected 10 rows, got %d", len(res.Players))
	}
}

func TestResolve_Defaults(t *testing.T) {
	source := &fakeSource{
		stats:    map[string]fakeResponse{"p": {body: rankedPayload}},
		seasonal: map[string]fakeResponse{"p": {body: seasonalPayload}},
	}
	svc := newTestMatchService(t, source)

	res, err := svc.Resolve(context.Background(), []domain.PlayerRequest{
		{Name: "p"},
		{Name: "p", Platform: "", Team: team("")},
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	for i, row := range res.Players {
		if row.Platform != "pc" {
			t.Errorf("row %d: platform got %q, want pc", i, row.Platform)
		}
		if row.Team != nil {
			t.Errorf("row %d: team got %q, want nil", i, *row.Team)
		}
		if row.Error != nil {
			t.Errorf("row %d: unexpected error %s", i, *row.Error)
		}
	}
}

func TestResolve_ErrorMessages(t *testing.T) {
	source := &fakeSource{
		stats: map[string]fakeResponse{
			"down": {err: domain.Upstream(502, nil)},
		},
		panicOnName: "crash",
	}
	svc := newTestMatchService(t, source)

	res, err := svc.Resolve(context.Background(), []domain.PlayerRequest{
		{Name: "down"},
		{Name: ""},
		{Name: "crash"},
		{Name: "down", Platform: "stadia"},
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	want := []string{"Upstream API error", "Unknown error", "Unknown error", "Unsupported platform"}
	for i, w := range want {
		row := res.Players[i]
		if row.Error == nil || *row.Error != w {
			t.Errorf("row %d: got %v, want %q", i, row.Error, w)
		}
		if row.Ranked != nil {
			t.Errorf("row %d: expected nil ranked", i)
		}
	}
}

func TestResolve_RunsConcurrently(t *testing.T) {
	source := &fakeSource{
		stats: map[string]fakeResponse{
			"a": {body: rankedPayload},
			"b": {body: rankedPayload},
			"c": {body: rankedPayload},
		},
		seasonal: map[string]fakeResponse{},
		block:    make(chan struct{}),
	}
	svc := newTestMatchService(t, source)

	done := make(chan *domain.MatchResult, 1)
	go func() {
		res, _ := svc.Resolve(context.Background(), []domain.PlayerRequest{{Name: "a"}, {Name: "b"}, {Name: "c"}})
		done <- res
	}()

	deadline := time.Now().Add(2 * time.Second)
	for source.inFlight.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	reached := source.maxInFlight.Load()
	close(source.block)

	if reached < 3 {
		t.Fatalf("expected all 3 lookups in flight at once, max was %d", reached)
	}

	select {
	case res := <-done:
		if len(res.Players) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(res.Players))
		}
		for _, row := range res.Players {
			if row.Error != nil || row.Ranked == nil {
				t.Errorf("%s: expected stats, got %+v", row.Name, row)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Resolve did not finish")
	}
}
