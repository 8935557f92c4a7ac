package widget

import "sync"

// Surface is the presentation collaborator the controller drives: a loading
// indicator and a result container whose content is replaced wholesale.
type Surface interface {
	SetLoadingVisible(visible bool)
	SetResultVisible(visible bool)
	SetContent(html string)
}

// Snapshot is a point-in-time copy of a MemorySurface.
type Snapshot struct {
	Loading bool   `json:"loading"`
	Visible bool   `json:"visible"`
	HTML    string `json:"html"`
}

// MemorySurface keeps the surface in memory. The HTTP transport serves its
// snapshot to the browser; tests inspect it directly.
type MemorySurface struct {
	mu      sync.RWMutex
	loading bool
	visible bool
	html    string
	writes  int
}

// NewMemorySurface returns an empty, hidden surface.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{}
}

func (s *MemorySurface) SetLoadingVisible(visible bool) {
	s.mu.Lock()
	s.loading = visible
	s.mu.Unlock()
}

func (s *MemorySurface) SetResultVisible(visible bool) {
	s.mu.Lock()
	s.visible = visible
	s.mu.Unlock()
}

func (s *MemorySurface) SetContent(html string) {
	s.mu.Lock()
	s.html = html
	s.writes++
	s.mu.Unlock()
}

// Snapshot returns the current surface.
func (s *MemorySurface) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Loading: s.loading, Visible: s.visible, HTML: s.html}
}

// Writes counts SetContent calls.
func (s *MemorySurface) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
