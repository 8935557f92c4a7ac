package history_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordlookup/internal/adapter/postgres/history"
	"github.com/heartmarshall/wordlookup/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/wordlookup/internal/domain"
)

func TestRepo_RecordAndList(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := history.New(pool)
	ctx := context.Background()

	word := testhelper.UniqueWord("rec")
	rec := domain.LookupRecord{
		ID:        uuid.New(),
		Word:      word,
		Outcome:   domain.LookupOutcomeError,
		Message:   "No Definitions Found",
		Duration:  320 * time.Millisecond,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.Record(ctx, rec))

	got, err := repo.List(ctx, history.Filter{Word: word})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, rec.ID, got[0].ID)
	assert.Equal(t, word, got[0].Word)
	assert.Equal(t, domain.LookupOutcomeError, got[0].Outcome)
	assert.Equal(t, "No Definitions Found", got[0].Message)
	assert.Equal(t, 320*time.Millisecond, got[0].Duration)
	assert.True(t, rec.CreatedAt.Equal(got[0].CreatedAt))
}

func TestRepo_Record_DefaultsIDAndTime(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := history.New(pool)
	ctx := context.Background()

	word := testhelper.UniqueWord("def")
	require.NoError(t, repo.Record(ctx, domain.LookupRecord{Word: word, Outcome: domain.LookupOutcomeResult}))

	got, err := repo.List(ctx, history.Filter{Word: word})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEqual(t, uuid.Nil, got[0].ID)
	assert.WithinDuration(t, time.Now(), got[0].CreatedAt, time.Minute)
}

func TestRepo_Record_InvalidOutcome(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := history.New(pool)

	err := repo.Record(context.Background(), domain.LookupRecord{Word: "x", Outcome: "BOGUS"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestRepo_Record_DuplicateID(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := history.New(pool)
	ctx := context.Background()

	rec := domain.LookupRecord{ID: uuid.New(), Word: testhelper.UniqueWord("dup"), Outcome: domain.LookupOutcomeResult}
	require.NoError(t, repo.Record(ctx, rec))

	err := repo.Record(ctx, rec)
	assert.True(t, errors.Is(err, domain.ErrAlreadyExists), "got %v", err)
}

func TestRepo_List_OrderAndFilters(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := history.New(pool)
	ctx := context.Background()

	word := testhelper.UniqueWord("ord")
	base := time.Now().Add(-time.Hour)
	oldest := testhelper.SeedLookup(t, pool, word, domain.LookupOutcomeResult, base)
	middle := testhelper.SeedLookup(t, pool, word, domain.LookupOutcomeError, base.Add(time.Minute))
	newest := testhelper.SeedLookup(t, pool, word, domain.LookupOutcomeResult, base.Add(2*time.Minute))

	all, err := repo.List(ctx, history.Filter{Word: word})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{newest.ID, middle.ID, oldest.ID}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})

	upper, err := repo.List(ctx, history.Filter{Word: "  " + strings.ToUpper(word)})
	require.NoError(t, err)
	assert.Len(t, upper, 3, "word match is case-insensitive")

	results, err := repo.List(ctx, history.Filter{Word: word, Outcome: domain.LookupOutcomeResult})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	recent, err := repo.List(ctx, history.Filter{Word: word, Since: base.Add(30 * time.Second)})
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	limited, err := repo.List(ctx, history.Filter{Word: word, Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, newest.ID, limited[0].ID)
}

func TestRepo_CountByOutcome(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := history.New(pool)

	word := testhelper.UniqueWord("cnt")
	now := time.Now()
	testhelper.SeedLookup(t, pool, word, domain.LookupOutcomeResult, now)
	testhelper.SeedLookup(t, pool, word, domain.LookupOutcomeResult, now)
	testhelper.SeedLookup(t, pool, word, domain.LookupOutcomeValidation, now)

	counts, err := repo.CountByOutcome(context.Background(), history.Filter{Word: word})
	require.NoError(t, err)
	assert.Equal(t, map[domain.LookupOutcome]int{
		domain.LookupOutcomeResult:     2,
		domain.LookupOutcomeValidation: 1,
	}, counts)
}

func TestRepo_Prune(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := history.New(pool)
	ctx := context.Background()

	word := testhelper.UniqueWord("prn")
	ancient := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	testhelper.SeedLookup(t, pool, word, domain.LookupOutcomeResult, ancient)
	kept := testhelper.SeedLookup(t, pool, word, domain.LookupOutcomeResult, time.Now())

	deleted, err := repo.Prune(ctx, ancient.Add(time.Hour))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(1))

	left, err := repo.List(ctx, history.Filter{Word: word})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, kept.ID, left[0].ID)
}
