package app

import (
	"context"
	"time"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

type historyWriter interface {
	Record(ctx context.Context, rec domain.LookupRecord) error
}

// timedRecorder bounds each history write so that a slow database cannot
// hold a controller's busy flag.
type timedRecorder struct {
	next    historyWriter
	timeout time.Duration
}

func newTimedRecorder(next historyWriter, timeout time.Duration) *timedRecorder {
	return &timedRecorder{next: next, timeout: timeout}
}

func (r *timedRecorder) Record(ctx context.Context, rec domain.LookupRecord) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.Record(ctx, rec)
}
