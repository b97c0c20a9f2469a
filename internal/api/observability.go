package api

import (
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics with bounded cardinality (no per-session labels to prevent DoS).
var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chipsim_tick_duration_seconds",
		Help:    "Time spent in one GameState.Tick call",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025},
	})

	entitiesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chipsim_entities_active",
		Help: "Current number of entities in the active session",
	})

	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chipsim_sessions_active",
		Help: "Currently active play sessions",
	})

	eventsEmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chipsim_events_emitted_total",
		Help: "Total GameEvents emitted across all sessions",
	})

	eventLogDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chipsim_events_dropped_total",
		Help: "Events dropped because a session's event log was full",
	})

	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chipsim_connection_rejected_total",
		Help: "Connections rejected by rate limiter or origin check",
	}, []string{"reason"}) // bounded: "rate_limit", "origin", "invalid", "ws_total_limit", "ws_ip_limit"

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chipsim_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	requestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chipsim_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chipsim_websocket_connections_active",
		Help: "Currently active WebSocket connections",
	})

	wsMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chipsim_websocket_messages_total",
		Help: "Total WebSocket messages sent",
	})
)

// ObservabilityConfig configures the debug server.
type ObservabilityConfig struct {
	Enabled       bool
	ListenAddr    string // MUST be "127.0.0.1:<port>" in production
	BasicAuthUser string
	BasicAuthPass string
}

// DefaultObservabilityConfig returns safe defaults.
func DefaultObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		Enabled:    true,
		ListenAddr: "127.0.0.1:9100",
	}
}

// StartDebugServer starts the internal observability server.
// CRITICAL: this MUST bind to localhost only to prevent pprof-based DoS.
func StartDebugServer(cfg ObservabilityConfig) error {
	if !cfg.Enabled {
		log.Println("📊 Debug server disabled")
		return nil
	}

	if os.Getenv("ALLOW_DEBUG_EXTERNAL") != "true" {
		host, _, err := splitHostPort(cfg.ListenAddr)
		if err != nil || (host != "127.0.0.1" && host != "localhost") {
			log.Println("⚠️ Debug server forced to localhost for security")
			cfg.ListenAddr = "127.0.0.1:9100"
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	var handler http.Handler = mux
	if cfg.BasicAuthUser != "" {
		handler = basicAuthMiddleware(cfg.BasicAuthUser, cfg.BasicAuthPass, mux)
	}

	go func() {
		log.Printf("📊 Debug server starting on %s", cfg.ListenAddr)
		log.Printf("   - pprof:   http://%s/debug/pprof/", cfg.ListenAddr)
		log.Printf("   - metrics: http://%s/metrics", cfg.ListenAddr)

		if err := http.ListenAndServe(cfg.ListenAddr, handler); err != nil {
			log.Printf("⚠️ Debug server error: %v", err)
		}
	}()

	return nil
}

func splitHostPort(addr string) (string, string, error) {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i], addr[i+1:], nil
		}
	}
	return "", "", http.ErrNotSupported
}

func basicAuthMiddleware(user, pass string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || u != user || p != pass {
			w.Header().Set("WWW-Authenticate", `Basic realm="debug"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RecordTick records one tick's execution time.
func RecordTick(duration time.Duration) { tickDuration.Observe(duration.Seconds()) }

// UpdateEntitiesActive updates the active-entity gauge.
func UpdateEntitiesActive(count int) { entitiesActive.Set(float64(count)) }

// UpdateSessionsActive updates the active-session gauge.
func UpdateSessionsActive(count int) { sessionsActive.Set(float64(count)) }

// RecordEventsEmitted adds n to the emitted-events counter.
func RecordEventsEmitted(n int) { eventsEmittedTotal.Add(float64(n)) }

// RecordEventsDropped adds n to the dropped-events counter.
func RecordEventsDropped(n int) { eventLogDropped.Add(float64(n)) }

// RecordConnectionRejected increments the rejection counter.
// reason must be one of: "rate_limit", "origin", "invalid", "ws_total_limit",
// "ws_ip_limit".
func RecordConnectionRejected(reason string) {
	connectionRejected.WithLabelValues(reason).Inc()
}

// RecordRequest records HTTP request metrics.
func RecordRequest(method, endpoint string, status int, duration time.Duration) {
	requestLatency.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	requestTotal.WithLabelValues(method, endpoint, http.StatusText(status)).Inc()
}

// UpdateWSConnections updates WebSocket connection count.
func UpdateWSConnections(count int) { wsConnectionsActive.Set(float64(count)) }

// IncrementWSMessages increments the WebSocket message counter.
func IncrementWSMessages() { wsMessagesTotal.Inc() }
