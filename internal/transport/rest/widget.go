package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordlookup/internal/widget"
	"github.com/heartmarshall/wordlookup/pkg/ctxutil"
)

// SearchStateHeader tells the page script which state a fragment renders.
const SearchStateHeader = "X-Search-State"

const maxFormBytes = 4 << 10

// WidgetHandler serves the search API of the widget.
type WidgetHandler struct {
	sessions *SessionStore
	log      *slog.Logger
}

// NewWidgetHandler creates a WidgetHandler.
func NewWidgetHandler(logger *slog.Logger, sessions *SessionStore) *WidgetHandler {
	return &WidgetHandler{sessions: sessions, log: logger.With("handler", "widget")}
}

// StateResponse is the JSON body of /api/state.
type StateResponse struct {
	widget.Snapshot
	State string `json:"state"`
	Input string `json:"input"`
	Busy  bool   `json:"busy"`
}

// Search runs a search for the "word" parameter in the caller's session.
// It answers 200 with the rendered fragment, or 204 when the session is
// already searching and the request was dropped.
func (h *WidgetHandler) Search(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	sess := h.sessions.Resolve(w, r)

	// A client that goes away does not abort the search.
	ctx := ctxutil.WithSessionID(context.WithoutCancel(r.Context()), sess.ID)

	st, ran := sess.Controller.Submit(ctx, r.Form.Get("word"))
	if !ran {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set(SearchStateHeader, st.Kind())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, widget.Render(st)); err != nil {
		h.log.DebugContext(r.Context(), "write fragment", slog.String("error", err.Error()))
	}
}

// State returns the caller's surface snapshot.
func (h *WidgetHandler) State(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Resolve(w, r)
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, StateResponse{
		Snapshot: sess.Surface.Snapshot(),
		State:    sess.Controller.State().Kind(),
		Input:    sess.Controller.Input().Value(),
		Busy:     sess.Controller.Busy(),
	})
}
