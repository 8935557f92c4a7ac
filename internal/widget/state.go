package widget

import "github.com/heartmarshall/wordlookup/internal/domain"

// Phase is the visual phase of the widget.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseDisplayed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseDisplayed:
		return "displayed"
	}
	return "unknown"
}

// State is exactly one of Idle, Loading, Displayed(result) or Displayed(error).
// Use the constructors; a zero State is Idle.
type State struct {
	phase   Phase
	result  *domain.LookupResult
	message string
}

// Idle is the state before the first search.
func Idle() State { return State{phase: PhaseIdle} }

// Loading is the state while a lookup is in flight.
func Loading() State { return State{phase: PhaseLoading} }

// DisplayResult shows a successful lookup.
func DisplayResult(r *domain.LookupResult) State {
	return State{phase: PhaseDisplayed, result: r}
}

// DisplayError shows an error message. The message is escaped on render.
func DisplayError(msg string) State {
	return State{phase: PhaseDisplayed, message: msg}
}

func (s State) Phase() Phase { return s.phase }

// Result returns the displayed lookup result, or nil.
func (s State) Result() *domain.LookupResult { return s.result }

// Message returns the displayed error message, or "".
func (s State) Message() string { return s.message }

// IsResult reports whether a lookup result is displayed.
func (s State) IsResult() bool { return s.phase == PhaseDisplayed && s.result != nil }

// IsError reports whether an error message is displayed.
func (s State) IsError() bool { return s.phase == PhaseDisplayed && s.result == nil }

// Kind names the state: idle, loading, result or error.
func (s State) Kind() string {
	switch {
	case s.IsResult():
		return "result"
	case s.IsError():
		return "error"
	}
	return s.phase.String()
}
