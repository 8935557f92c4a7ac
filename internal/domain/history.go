package domain

import (
	"time"

	"github.com/google/uuid"
)

// LookupOutcome is how a completed search ended.
type LookupOutcome string

const (
	LookupOutcomeResult     LookupOutcome = "RESULT"
	LookupOutcomeError      LookupOutcome = "ERROR"
	LookupOutcomeValidation LookupOutcome = "VALIDATION"
)

func (o LookupOutcome) String() string { return string(o) }

func (o LookupOutcome) IsValid() bool {
	switch o {
	case LookupOutcomeResult, LookupOutcomeError, LookupOutcomeValidation:
		return true
	}
	return false
}

// LookupRecord is one line of the lookup history. It stores what was asked
// and how it ended, never the dictionary content itself.
type LookupRecord struct {
	ID        uuid.UUID
	Word      string
	Outcome   LookupOutcome
	Message   string
	Duration  time.Duration
	CreatedAt time.Time
}
