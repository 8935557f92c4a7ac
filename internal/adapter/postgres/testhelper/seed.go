package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

// UniqueWord returns a letters-only word no other test uses.
func UniqueWord(prefix string) string {
	id := uuid.New()
	b := make([]byte, 10)
	for i := range b {
		b[i] = 'a' + id[i]%26
	}
	return prefix + string(b)
}

// SeedLookup inserts a lookup record directly and returns it.
func SeedLookup(t *testing.T, pool *pgxpool.Pool, word string, outcome domain.LookupOutcome, createdAt time.Time) domain.LookupRecord {
	t.Helper()

	rec := domain.LookupRecord{
		ID:        uuid.New(),
		Word:      word,
		Outcome:   outcome,
		Duration:  42 * time.Millisecond,
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO lookup_history (id, word, outcome, message, duration_ms, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.Word, string(rec.Outcome), rec.Message, rec.Duration.Milliseconds(), rec.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed lookup %q: %v", word, err)
	}
	return rec
}
