package rest

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/heartmarshall/wordlookup/internal/transport/middleware"
	"github.com/heartmarshall/wordlookup/internal/widget"
)

// ControllerFactory builds the controller of a new session around its surface.
type ControllerFactory func(surface widget.Surface) *widget.Controller

// Session is one browser's widget: a controller and the surface it drives.
type Session struct {
	ID         uuid.UUID
	Controller *widget.Controller
	Surface    *widget.MemorySurface
}

// SessionStore keeps sessions in a size-bounded LRU whose entries expire
// after ttl without use.
type SessionStore struct {
	cache      *expirable.LRU[uuid.UUID, *Session]
	factory    ControllerFactory
	cookieName string
	ttl        time.Duration
}

// NewSessionStore creates a SessionStore holding at most size sessions.
func NewSessionStore(factory ControllerFactory, cookieName string, size int, ttl time.Duration) *SessionStore {
	return &SessionStore{
		cache:      expirable.NewLRU[uuid.UUID, *Session](size, nil, ttl),
		factory:    factory,
		cookieName: cookieName,
		ttl:        ttl,
	}
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int { return s.cache.Len() }

// Get returns a live session by ID.
func (s *SessionStore) Get(id uuid.UUID) (*Session, bool) {
	return s.cache.Get(id)
}

// Resolve returns the caller's session, creating one (and setting the
// cookie) when the cookie is missing, malformed or expired. Every hit
// extends the session's lifetime.
func (s *SessionStore) Resolve(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(s.cookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			if sess, ok := s.cache.Get(id); ok {
				s.cache.Add(id, sess)
				s.touch(w, r, id)
				return sess
			}
		}
	}

	surface := widget.NewMemorySurface()
	sess := &Session{
		ID:         uuid.New(),
		Controller: s.factory(surface),
		Surface:    surface,
	}
	s.cache.Add(sess.ID, sess)
	s.touch(w, r, sess.ID)
	return sess
}

func (s *SessionStore) touch(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id.String(),
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set(middleware.SessionHeader, id.String())
}
