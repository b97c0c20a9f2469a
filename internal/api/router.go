package api

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"chipsim/internal/chipcore"
	"chipsim/internal/leaderboard"
	"chipsim/internal/replay"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// boardRegistry lazily creates one leaderboard.Board per level name.
// Grounded on internal/game/leaderboard.go's single shared Leaderboard,
// generalized to one board per level since chipsim ranks per-level runs
// rather than a single arena's kill counts.
type boardRegistry struct {
	mu     sync.Mutex
	boards map[string]*leaderboard.Board
}

func newBoardRegistry() *boardRegistry {
	return &boardRegistry{boards: make(map[string]*leaderboard.Board)}
}

func (r *boardRegistry) get(level string) *leaderboard.Board {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.boards[level]
	if !ok {
		b = leaderboard.NewBoard()
		r.boards[level] = b
	}
	return b
}

// RouterConfig contains all dependencies needed to construct the HTTP
// router, mirroring the teacher's dependency-injected, side-effect-free
// NewRouter(cfg) shape so the router stays httptest-friendly.
type RouterConfig struct {
	Levels        *LevelStore
	Hub           *Hub
	Replays       *replay.Store
	TicksPerSec   int

	RateLimiter     *IPRateLimiter
	RateLimitConfig *RateLimitConfig
	CORSOrigins     []string
	DisableLogging  bool
}

type routerHandlers struct {
	levels  *LevelStore
	hub     *Hub
	replays *replay.Store
	boards  *boardRegistry
	ticks   int
}

// NewRouter constructs the HTTP router with all middleware and routes.
// Opens no listeners and is safe for httptest; when cfg.RateLimiter is nil
// it creates an IPRateLimiter, which starts that limiter's cleanup goroutine.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := &routerHandlers{
		levels:  cfg.Levels,
		hub:     cfg.Hub,
		replays: cfg.Replays,
		boards:  newBoardRegistry(),
		ticks:   cfg.TicksPerSec,
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/levels", h.handleUploadLevel)
		r.Get("/levels", h.handleListLevels)
		r.Get("/levels/{name}", h.handleGetLevel)

		r.Get("/leaderboard/{name}", h.handleGetLeaderboard)
		r.Post("/leaderboard/{name}", h.handleSubmitScore)

		r.Post("/replays/{name}", h.handleSaveReplay)
		r.Get("/replays/{name}", h.handleListReplays)
	})

	r.Get("/ws/play/{name}", h.handlePlay)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

func (h *routerHandlers) handleUploadLevel(w http.ResponseWriter, r *http.Request) {
	var dto chipcore.LevelDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid level JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := chipcore.ParseLevel(dto); err != nil {
		http.Error(w, "invalid level: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.levels.Put(dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"name": dto.Name})
}

func (h *routerHandlers) handleListLevels(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.levels.Names())
}

func (h *routerHandlers) handleGetLevel(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	dto, ok := h.levels.Get(name)
	if !ok {
		http.Error(w, "level not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto)
}

func (h *routerHandlers) handlePlay(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	h.hub.HandlePlay(h.ticks, func() (*chipcore.GameState, string, error) {
		state, err := h.levels.NewGameState(name)
		if err != nil {
			return nil, "", err
		}
		return state, randomSessionID(), nil
	})(w, r)
}

type leaderboardEntryDto struct {
	PlayerID string `json:"playerId"`
	Ticks    uint32 `json:"ticks"`
	Steps    int32  `json:"steps"`
	Rank     int    `json:"rank"`
}

func (h *routerHandlers) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	board := h.boards.get(name)
	top := board.Top(25)
	out := make([]leaderboardEntryDto, len(top))
	for i, e := range top {
		out[i] = leaderboardEntryDto{PlayerID: e.PlayerID, Ticks: e.Ticks, Steps: e.Steps, Rank: e.Rank}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

type submitScoreRequest struct {
	PlayerID string `json:"playerId"`
	Ticks    uint32 `json:"ticks"`
	Steps    int32  `json:"steps"`
}

func (h *routerHandlers) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req submitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		http.Error(w, "invalid score submission", http.StatusBadRequest)
		return
	}
	h.boards.get(name).Submit(req.PlayerID, req.Ticks, req.Steps)
	w.WriteHeader(http.StatusNoContent)
}

func (h *routerHandlers) handleSaveReplay(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var dto chipcore.ReplayDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid replay JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	path, err := h.replays.Save(name, dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"path": path})
}

func (h *routerHandlers) handleListReplays(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	paths, err := h.replays.List(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(paths)
}

func randomSessionID() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return time.Now().Format("20060102150405.000000000")
	}
	return hex.EncodeToString(buf[:])
}
