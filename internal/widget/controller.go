package widget

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

const (
	// DefaultDelay smooths the loading indicator for fast responses.
	DefaultDelay = 300 * time.Millisecond

	// KeyEnter triggers a search while the input has focus.
	KeyEnter = "Enter"
)

type lookuper interface {
	Lookup(ctx context.Context, word string) (*domain.LookupResult, error)
}

type recorder interface {
	Record(ctx context.Context, rec domain.LookupRecord) error
}

// Controller is the search controller of one widget instance. It owns the
// busy flag, the current State and the input field, and drives a Surface.
type Controller struct {
	log      *slog.Logger
	lookup   lookuper
	surface  Surface
	recorder recorder
	delay    time.Duration
	fallback string
	now      func() time.Time

	input Field
	busy  atomic.Bool

	mu    sync.RWMutex
	state State
}

// Option configures a Controller.
type Option func(*Controller)

// WithDelay sets the artificial delay before each lookup.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithFallbackMessage sets the message shown for errors carrying none.
func WithFallbackMessage(msg string) Option {
	return func(c *Controller) {
		if msg != "" {
			c.fallback = msg
		}
	}
}

// WithRecorder records every completed search.
func WithRecorder(r recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// NewController creates an idle controller.
func NewController(logger *slog.Logger, lookup lookuper, surface Surface, opts ...Option) *Controller {
	c := &Controller{
		log:      logger.With("component", "widget"),
		lookup:   lookup,
		surface:  surface,
		delay:    DefaultDelay,
		fallback: domain.MsgLookupFailed,
		now:      time.Now,
		state:    Idle(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Input returns the search field.
func (c *Controller) Input() *Field { return &c.input }

// State returns the current state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Busy reports whether a lookup is in flight.
func (c *Controller) Busy() bool { return c.busy.Load() }

// KeyPress handles a key signal from the focused input. Enter searches;
// any other key is ignored here. Reports whether a search ran.
func (c *Controller) KeyPress(ctx context.Context, key string) bool {
	if key != KeyEnter {
		return false
	}
	return c.Activate(ctx)
}

// Activate searches for the current field value (button click).
func (c *Controller) Activate(ctx context.Context) bool {
	return c.Search(ctx, c.input.Value())
}

// Search runs one search for raw. It returns false when the call was dropped
// because another search is in flight; the displayed state is then untouched.
func (c *Controller) Search(ctx context.Context, raw string) bool {
	_, ran := c.Run(ctx, raw)
	return ran
}

// Run is Search that also returns the state the search ended in, which may
// differ from State() once another search has started. History is written
// after the busy flag is cleared.
func (c *Controller) Run(ctx context.Context, raw string) (State, bool) {
	if !c.acquire(ctx, raw) {
		return State{}, false
	}
	return c.complete(ctx, raw), true
}

// Submit fills the field with value and searches for its filtered form. A
// dropped call leaves the field untouched.
func (c *Controller) Submit(ctx context.Context, value string) (State, bool) {
	if !c.acquire(ctx, value) {
		return State{}, false
	}
	return c.complete(ctx, c.input.Set(value)), true
}

func (c *Controller) acquire(ctx context.Context, raw string) bool {
	if c.busy.CompareAndSwap(false, true) {
		return true
	}
	c.log.DebugContext(ctx, "search dropped, lookup in flight", slog.String("word", raw))
	return false
}

func (c *Controller) complete(ctx context.Context, raw string) State {
	start := c.now()
	final, o := c.run(ctx, raw, start)
	c.record(ctx, o, start)
	return final
}

// outcome is what one search leaves for the history log.
type outcome struct {
	word    string
	kind    domain.LookupOutcome
	message string
}

// run holds the busy flag for the visible part of a search and releases it
// once the result surface is revealed.
func (c *Controller) run(ctx context.Context, raw string, start time.Time) (State, outcome) {
	defer c.busy.Store(false)

	word, err := domain.PrepareWord(raw)
	if err != nil {
		msg := domain.DisplayMessage(err, c.fallback)
		final := c.setState(DisplayError(msg))
		c.surface.SetResultVisible(true)
		return final, outcome{kind: domain.LookupOutcomeValidation, message: msg}
	}

	c.surface.SetResultVisible(false)
	c.setState(Loading())
	c.surface.SetLoadingVisible(true)
	defer func() {
		c.surface.SetLoadingVisible(false)
		c.surface.SetResultVisible(true)
	}()

	result, err := c.fetch(ctx, word)
	if err != nil {
		msg := domain.DisplayMessage(err, c.fallback)
		c.log.WarnContext(ctx, "lookup failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return c.setState(DisplayError(msg)), outcome{word: word, kind: domain.LookupOutcomeError, message: msg}
	}

	c.log.InfoContext(ctx, "lookup succeeded",
		slog.String("word", word),
		slog.Int("meanings", len(result.Meanings)),
		slog.Duration("duration", c.now().Sub(start)),
	)
	return c.setState(DisplayResult(result)), outcome{word: word, kind: domain.LookupOutcomeResult}
}

// fetch waits out the artificial delay and performs the lookup.
func (c *Controller) fetch(ctx context.Context, word string) (*domain.LookupResult, error) {
	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}

	result, err := c.lookup.Lookup(ctx, word)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errors.New("lookup returned no result")
	}
	return result, nil
}

func (c *Controller) setState(s State) State {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	c.surface.SetContent(Render(s))
	return s
}

func (c *Controller) record(ctx context.Context, o outcome, start time.Time) {
	if c.recorder == nil {
		return
	}
	now := c.now()
	rec := domain.LookupRecord{
		ID:        uuid.New(),
		Word:      o.word,
		Outcome:   o.kind,
		Message:   o.message,
		Duration:  now.Sub(start),
		CreatedAt: now,
	}
	if err := c.recorder.Record(ctx, rec); err != nil {
		c.log.WarnContext(ctx, "record lookup history",
			slog.String("word", o.word),
			slog.String("error", err.Error()),
		)
	}
}
