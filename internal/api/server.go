package api

import (
	"log"
	"net/http"

	"chipsim/internal/replay"
)

// Server bundles the HTTP router and session hub. Grounded on
// fight-club/internal/api/server.go: the network listener opens only in
// Start(), so NewServer's result stays safe to drive with
// httptest.NewServer in tests. The constructor does start the IP rate
// limiter's cleanup goroutine, which Stop() ends.
type Server struct {
	mux         http.Handler
	rateLimiter *IPRateLimiter
}

// NewServer builds a Server wiring a level store, session hub, and replay
// store into the HTTP router described in SPEC_FULL.md §3.
func NewServer(levels *LevelStore, hub *Hub, replays *replay.Store, ticksPerSecond int) *Server {
	rateLimiter := NewIPRateLimiter(DefaultRateLimitConfig)

	router := NewRouter(RouterConfig{
		Levels:      levels,
		Hub:         hub,
		Replays:     replays,
		TicksPerSec: ticksPerSecond,
		RateLimiter: rateLimiter,
	})

	return &Server{mux: router, rateLimiter: rateLimiter}
}

// Start begins serving HTTP on addr. This is the only method that opens a
// network listener.
func (s *Server) Start(addr string) error {
	log.Printf("🌐 HTTP server starting on %s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// Router returns the HTTP handler for use with httptest.
func (s *Server) Router() http.Handler {
	return s.mux
}

// Stop releases background resources held by the server.
func (s *Server) Stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}
