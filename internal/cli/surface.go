package cli

import (
	"fmt"
	"io"
	"sync"
)

// terminalSurface renders the widget to a terminal: the loading indicator
// goes to status, revealed content to out.
type terminalSurface struct {
	mu      sync.Mutex
	out     io.Writer
	status  io.Writer
	content string
}

func newTerminalSurface(out, status io.Writer) *terminalSurface {
	return &terminalSurface{out: out, status: status}
}

func (s *terminalSurface) SetLoadingVisible(visible bool) {
	if visible {
		fmt.Fprintln(s.status, "Loading...")
	}
}

func (s *terminalSurface) SetResultVisible(visible bool) {
	if !visible {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.out, s.content)
}

func (s *terminalSurface) SetContent(html string) {
	s.mu.Lock()
	s.content = html
	s.mu.Unlock()
}
