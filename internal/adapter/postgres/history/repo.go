// Package history persists the lookup history in PostgreSQL. The log is
// append-only: records are written once and removed only by Prune.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/wordlookup/internal/adapter/postgres"
	"github.com/heartmarshall/wordlookup/internal/domain"
)

const (
	table = "lookup_history"

	// DefaultLimit applies when a Filter carries no limit.
	DefaultLimit = 20
	// MaxLimit caps a single listing.
	MaxLimit = 1000
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var columns = []string{"id", "word", "outcome", "message", "duration_ms", "created_at"}

// Filter narrows a history listing.
type Filter struct {
	Word    string               // case-insensitive exact match
	Outcome domain.LookupOutcome // empty means any
	Since   time.Time            // zero means unbounded
	Limit   int
}

// Repo provides lookup history persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new history repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Record appends one completed search.
func (r *Repo) Record(ctx context.Context, rec domain.LookupRecord) error {
	if !rec.Outcome.IsValid() {
		return domain.NewValidationError("outcome", fmt.Sprintf("unknown outcome %q", rec.Outcome))
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(rec.ID, rec.Word, rec.Outcome.String(), rec.Message, rec.Duration.Milliseconds(), rec.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert lookup_record: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "lookup_record", rec.ID)
	}
	return nil
}

// Prune deletes records created before cutoff and returns how many went.
func (r *Repo) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psql.Delete(table).
		Where(squirrel.Lt{"created_at": cutoff.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete lookup_history: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "lookup_history", cutoff.Format(time.RFC3339))
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns records matching f, newest first.
func (r *Repo) List(ctx context.Context, f Filter) ([]domain.LookupRecord, error) {
	limit := f.Limit
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	q := applyFilter(psql.Select(columns...).From(table), f).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select lookup_history: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "lookup_history", "list")
	}
	defer rows.Close()

	var records []domain.LookupRecord
	for rows.Next() {
		var (
			rec        domain.LookupRecord
			outcome    string
			durationMs int64
		)
		if err := rows.Scan(&rec.ID, &rec.Word, &outcome, &rec.Message, &durationMs, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lookup_record: %w", err)
		}
		rec.Outcome = domain.LookupOutcome(outcome)
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "lookup_history", "list")
	}

	return records, nil
}

// CountByOutcome returns how many records match f per outcome. f.Limit is ignored.
func (r *Repo) CountByOutcome(ctx context.Context, f Filter) (map[domain.LookupOutcome]int, error) {
	q := applyFilter(psql.Select("outcome", "count(*)").From(table), f).
		GroupBy("outcome")

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count lookup_history: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "lookup_history", "count")
	}
	defer rows.Close()

	counts := make(map[domain.LookupOutcome]int)
	for rows.Next() {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scan outcome count: %w", err)
		}
		counts[domain.LookupOutcome(outcome)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "lookup_history", "count")
	}

	return counts, nil
}

func applyFilter(q squirrel.SelectBuilder, f Filter) squirrel.SelectBuilder {
	if w := strings.TrimSpace(f.Word); w != "" {
		q = q.Where(squirrel.Eq{"lower(word)": strings.ToLower(w)})
	}
	if f.Outcome != "" {
		q = q.Where(squirrel.Eq{"outcome": f.Outcome.String()})
	}
	if !f.Since.IsZero() {
		q = q.Where(squirrel.GtOrEq{"created_at": f.Since.UTC()})
	}
	return q
}
