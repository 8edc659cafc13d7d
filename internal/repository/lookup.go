package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"siege-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type LookupRepository struct {
	db     *sql.DB
	logger zerolog.Logger
	now    func() time.Time
}

func NewLookupRepository(sqlDB *sql.DB, logger zerolog.Logger) *LookupRepository {
	return &LookupRepository{
		db:     sqlDB,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

const upsertLookup = `
INSERT INTO lookups (id, name, platform, lookups, last_lookup_at, created_at)
VALUES (?, ?, ?, 1, ?, ?)
ON CONFLICT (name, platform) DO UPDATE SET
    lookups = lookups + 1,
    last_lookup_at = excluded.last_lookup_at`

// Upsert records one lookup of name on platform, bumping the counter of a known identity.
func (r *LookupRepository) Upsert(ctx context.Context, name, platform string) error {
	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate nanoid: %w", err)
	}

	now := r.now()
	if _, err := r.db.ExecContext(ctx, upsertLookup, id, name, platform, now, now); err != nil {
		return fmt.Errorf("failed to upsert lookup: %w", err)
	}

	r.logger.Debug().Str("name", name).Str("platform", platform).Msg("lookup recorded")
	return nil
}

const searchLookups = `
SELECT id, name, platform, lookups, last_lookup_at, created_at
FROM lookups
WHERE name LIKE ? ESCAPE '\'
ORDER BY last_lookup_at DESC, name ASC
LIMIT ?`

// Search returns identities whose name contains query, case-insensitively for ASCII,
// most recently looked up first.
func (r *LookupRepository) Search(ctx context.Context, query string, limit int) ([]domain.Lookup, error) {
	pattern := "%" + escapeLike(query) + "%"

	rows, err := r.db.QueryContext(ctx, searchLookups, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search lookups: %w", err)
	}
	defer rows.Close()

	result := []domain.Lookup{}
	for rows.Next() {
		var l domain.Lookup
		if err := rows.Scan(&l.ID, &l.Name, &l.Platform, &l.Lookups, &l.LastLookupAt, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lookup: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lookups: %w", err)
	}
	return result, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// player names routinely contain "_", which LIKE would otherwise treat as a wildcard
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
