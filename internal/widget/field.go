package widget

import (
	"sync"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

// Field is the search input. Whatever is typed lands first and is then
// filtered, so the live value only ever holds letters, whitespace and hyphens.
type Field struct {
	mu    sync.Mutex
	value string
}

// Type appends keystrokes to the field and returns the filtered value.
func (f *Field) Type(text string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = domain.FilterInput(f.value + text)
	return f.value
}

// Set replaces the field value (paste, programmatic fill) and returns the
// filtered value.
func (f *Field) Set(value string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = domain.FilterInput(value)
	return f.value
}

// Backspace removes the last character.
func (f *Field) Backspace() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.value != "" {
		r := []rune(f.value)
		f.value = string(r[:len(r)-1])
	}
	return f.value
}

func (f *Field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}
