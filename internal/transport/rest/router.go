package rest

import (
	"net/http"

	"github.com/heartmarshall/wordpath/internal/transport/middleware"
)

// Routes bundles the handlers and middleware the router needs.
type Routes struct {
	Health   *HealthHandler
	Sessions *SessionHandler
	Items    *ItemHandler

	// Global wraps every route, outermost first.
	Global []middleware.Middleware
	// StartLimit guards session creation, which reads from storage. Optional.
	StartLimit middleware.Middleware
}

// NewRouter registers every endpoint on a new ServeMux.
func NewRouter(rt Routes) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", rt.Health.Live)
	mux.HandleFunc("GET /ready", rt.Health.Ready)
	mux.HandleFunc("GET /health", rt.Health.Health)

	var start http.Handler = http.HandlerFunc(rt.Sessions.Start)
	if rt.StartLimit != nil {
		start = rt.StartLimit(start)
	}
	mux.Handle("POST /sessions", start)
	mux.HandleFunc("GET /sessions/{id}", rt.Sessions.Get)
	mux.HandleFunc("GET /sessions/{id}/stats", rt.Sessions.Stats)
	mux.HandleFunc("POST /sessions/{id}/grades", rt.Sessions.Submit)
	mux.HandleFunc("DELETE /sessions/{id}", rt.Sessions.Discard)

	mux.HandleFunc("GET /items", rt.Items.List)
	mux.HandleFunc("GET /items/{id}", rt.Items.Get)

	return middleware.Chain(rt.Global...)(mux)
}
