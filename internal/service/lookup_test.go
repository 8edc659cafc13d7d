package service

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"siege-tracker/internal/database"
	"siege-tracker/internal/repository"

	"github.com/rs/zerolog"
)

func newTestLookupService(t *testing.T) (*LookupService, func() error) {
	t.Helper()
	logger := zerolog.New(io.Discard)

	db, err := database.Open(filepath.Join(t.TempDir(), "lookups.db"), logger)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewLookupService(repository.NewLookupRepository(db, logger), logger), db.Close
}

func TestLookupService_RecordAndSearch(t *testing.T) {
	svc, _ := newTestLookupService(t)

	// a request that already finished must still be recorded
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.RecordLookup(ctx, "Rook_Main", "PC")
	svc.RecordLookup(context.Background(), "Valk99", "psn")

	got, err := svc.SearchSuggestions(context.Background(), "  rook ")
	if err != nil {
		t.Fatalf("SearchSuggestions failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Rook_Main" || got[0].Platform != "pc" {
		t.Errorf("unexpected suggestions %+v", got)
	}

	empty, err := svc.SearchSuggestions(context.Background(), "   ")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("blank query: got %v, %v; want empty slice", empty, err)
	}
}

func TestLookupService_RecordIgnoresStoreFailure(t *testing.T) {
	svc, closeDB := newTestLookupService(t)
	if err := closeDB(); err != nil {
		t.Fatalf("close: %v", err)
	}

	svc.RecordLookup(context.Background(), "Rook_Main", "pc")

	if _, err := svc.SearchSuggestions(context.Background(), "rook"); err == nil {
		t.Error("expected search on a closed store to fail")
	}
}

func TestGetPlayer_RecordsLookupInStore(t *testing.T) {
	lookups, _ := newTestLookupService(t)
	source := &fakeSource{
		stats:    map[string]fakeResponse{"Rook_Main": {body: rankedPayload}},
		seasonal: map[string]fakeResponse{},
	}
	svc := NewPlayerService(source, lookups, zerolog.New(io.Discard))

	if _, err := svc.GetPlayer(context.Background(), "pc", "Rook_Main"); err != nil {
		t.Fatalf("GetPlayer failed: %v", err)
	}

	got, err := lookups.SearchSuggestions(context.Background(), "main")
	if err != nil {
		t.Fatalf("SearchSuggestions failed: %v", err)
	}
	if len(got) != 1 || got[0].Lookups != 1 {
		t.Errorf("unexpected suggestions %+v", got)
	}
}
