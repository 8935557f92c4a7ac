package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordlookup/internal/config"
	"github.com/heartmarshall/wordlookup/internal/transport/middleware"
)

// RouterDeps are the handlers and settings the router is built from.
type RouterDeps struct {
	Logger          *slog.Logger
	Widget          *WidgetHandler
	Health          *HealthHandler
	Limiter         *middleware.RateLimiter
	SearchPerMinute int
	CORS            config.CORSConfig
}

// NewRouter assembles the widget server's routes and middleware chain.
func NewRouter(d RouterDeps) http.Handler {
	var limit middleware.Middleware
	if d.Limiter != nil {
		limit = d.Limiter.Limit(d.SearchPerMinute)
	}
	search := middleware.Chain(limit)(http.HandlerFunc(d.Widget.Search))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", Page)
	mux.Handle("GET /api/search", search)
	mux.Handle("POST /api/search", search)
	mux.HandleFunc("GET /api/state", d.Widget.State)
	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)

	return middleware.Chain(
		middleware.RequestID,
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.CORS(d.CORS),
	)(mux)
}
