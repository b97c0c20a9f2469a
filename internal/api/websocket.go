package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"chipsim/internal/chipcore"
	"chipsim/internal/sessionpool"

	"github.com/gorilla/websocket"
)

const (
	// MaxWSConnectionsTotal bounds concurrent play sessions server-wide.
	MaxWSConnectionsTotal = 500

	// MaxWSConnectionsPerIP bounds concurrent sessions from one address.
	MaxWSConnectionsPerIP = 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if IsAllowedOrigin(origin) {
			return true
		}
		log.Printf("⚠️ WebSocket connection rejected from origin: %s", origin)
		RecordConnectionRejected("origin")
		return false
	},
}

// clientInput is the JSON shape a connected client sends once per desired
// tick; Drop mirrors chipcore.Input's block-drop action.
type clientInput struct {
	Up    bool `json:"up"`
	Left  bool `json:"left"`
	Down  bool `json:"down"`
	Right bool `json:"right"`
	Drop  bool `json:"drop"`
}

func (c clientInput) toChipInput() chipcore.Input {
	return chipcore.Input{Up: c.Up, Left: c.Left, Down: c.Down, Right: c.Right, Drop: c.Drop}
}

// outSnapshot is the JSON shape streamed back to the client after each tick.
type outSnapshot struct {
	Tick     uint32                        `json:"tick"`
	Steps    int32                         `json:"steps"`
	Bonks    int32                         `json:"bonks"`
	Activity chipcore.PlayerActivity       `json:"activity"`
	Entities []sessionpool.EntitySnapshot  `json:"entities"`
	Events   []chipcore.GameEvent          `json:"events"`
}

// Session drives one player's GameState independently: spec.md's open
// question on multiplayer decides the HTTP layer serves exactly one
// GameState per connection, not a shared arena across many sessions.
// Adapted from fight-club/internal/api/websocket.go's wsClient, replacing
// the fan-out broadcast hub with a single-consumer tick loop per socket.
type Session struct {
	ID      string
	conn    *websocket.Conn
	ip      string
	state   *chipcore.GameState
	pool    *sessionpool.Pool
	limiter *SessionInputLimiter

	mu sync.Mutex // guards writes to conn, gorilla requires one writer at a time
}

// Hub tracks active sessions for connection-count limiting and metrics.
// Grounded on fight-club/internal/api/websocket.go's WebSocketHub, stripped
// of the broadcast channel since chipsim has no shared state to fan out.
type Hub struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	wsLimiter *WebSocketRateLimiter
}

// NewHub creates a Hub with the default per-IP connection limit.
func NewHub() *Hub {
	return &Hub{
		sessions:  make(map[string]*Session),
		wsLimiter: NewWebSocketRateLimiter(MaxWSConnectionsPerIP),
	}
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) add(s *Session) {
	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()
	UpdateSessionsActive(h.Count())
}

func (h *Hub) remove(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s.ID)
	h.mu.Unlock()
	h.wsLimiter.Release(s.ip)
	UpdateSessionsActive(h.Count())
}

// HandlePlay upgrades the connection and drives newState's GameState until
// the client disconnects or the game ends. newState is called once per
// connection so each session gets its own level instance and PRNG.
func (h *Hub) HandlePlay(ticksPerSecond int, newState func() (*chipcore.GameState, string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := GetClientIP(r)

		if h.Count() >= MaxWSConnectionsTotal {
			log.Printf("⚠️ WebSocket connection rejected: total limit reached")
			RecordConnectionRejected("ws_total_limit")
			http.Error(w, "Too many connections", http.StatusServiceUnavailable)
			return
		}
		if !h.wsLimiter.Allow(ip) {
			log.Printf("⚠️ WebSocket connection rejected from %s: per-IP limit reached", ip)
			RecordConnectionRejected("ws_ip_limit")
			http.Error(w, "Too many connections from your IP", http.StatusTooManyRequests)
			return
		}

		state, sessionID, err := newState()
		if err != nil {
			h.wsLimiter.Release(ip)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.wsLimiter.Release(ip)
			log.Printf("WebSocket upgrade error: %v", err)
			return
		}

		session := &Session{
			ID:      sessionID,
			conn:    conn,
			ip:      ip,
			state:   state,
			pool:    sessionpool.NewPool(state.Entities.Len() + 16),
			limiter: NewSessionInputLimiter(ticksPerSecond),
		}
		h.add(session)
		log.Printf("📱 Session %s started from %s (%d active)", sessionID, ip, h.Count())

		session.run(h)
	}
}

// run consumes Input messages from the client and drives ticks until the
// connection closes or the game reaches a terminal PlayerActivity.
func (s *Session) run(h *Hub) {
	defer func() {
		s.conn.Close()
		h.remove(s)
		log.Printf("📱 Session %s ended", s.ID)
	}()

	for {
		var in clientInput
		if err := s.conn.ReadJSON(&in); err != nil {
			return
		}
		if !s.limiter.Allow() {
			continue // silently drop ticks submitted faster than the tick rate
		}

		start := time.Now()
		s.state.Tick(in.toChipInput())
		RecordTick(time.Since(start))

		events := s.state.Events.Drain()
		RecordEventsEmitted(len(events))
		UpdateEntitiesActive(s.state.Entities.Len())

		snap := s.pool.AcquireWrite()
		sessionpool.Fill(snap, s.state, events)
		s.pool.PublishWrite()

		if err := s.writeSnapshot(snap); err != nil {
			return
		}

		if s.state.Player.PsActivity().IsGameOver() {
			return
		}
	}
}

func (s *Session) writeSnapshot(snap *sessionpool.StateSnapshot) error {
	out := outSnapshot{
		Tick:     snap.Tick,
		Steps:    snap.Steps,
		Bonks:    snap.Bonks,
		Activity: snap.Activity,
		Entities: snap.Entities,
		Events:   snap.Events,
	}
	data, err := json.Marshal(out)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	IncrementWSMessages()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}
