// internal/httpserver/server.go
//
// HTTP server wiring for the solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Solver sessions: POST /session, POST /session/feedback, GET /session/{id}
//     (bearer token required after creation).
//   - Playable game: POST /game/new, POST /game/guess (random or daily secret).
//   - Admin: POST /admin/reload swaps in a freshly loaded outcome table.
//
// Notes:
//   - Sessions and games live in memory and expire after Options.SessionTTL.
//   - A reload only affects sessions created afterwards; running sessions
//     keep the table they started from.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Options configures a Server.
type Options struct {
	Table *table.Table
	Lists *words.Lists

	JWTSecret    string
	AdminKeyHash string // bcrypt hash; empty disables /admin
	ClientOrigin string
	DailySalt    string
	MaxGuesses   int
	SessionTTL   time.Duration

	// Reload produces the table served after POST /admin/reload.
	Reload func(ctx context.Context) (*table.Table, error)
	// Now is the clock used for daily secrets and token expiry.
	Now func() time.Time
}

// Server bundles the router, in-memory stores and the current table.
type Server struct {
	r    *chi.Mux
	opts Options

	mu      sync.RWMutex
	tbl     *table.Table
	opening []solver.Scored
	entropy *solver.MaxEntropy

	sessions *store.Memory[*sessionEntry]
	games    *store.Memory[*gameEntry]
	metrics  *metrics.Metrics
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxGuesses <= 0 {
		opts.MaxGuesses = game.DefaultRows
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.JWTSecret == "" {
		opts.JWTSecret = "dev_secret_change_me"
	}

	s := &Server{
		r:        chi.NewRouter(),
		opts:     opts,
		sessions: store.NewMemory[*sessionEntry](opts.SessionTTL),
		games:    store.NewMemory[*gameEntry](opts.SessionTTL),
	}
	s.metrics = metrics.New(func() float64 { return float64(s.sessions.Len()) })
	s.setTable(opts.Table)

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordle-solver",
			"endpoints": []string{"/health", "/metrics", "POST /session", "POST /session/feedback",
				"GET /session/{id}", "POST /game/new", "POST /game/guess", "POST /admin/reload"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		t := s.table()
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "guesses": t.NumGuesses(), "secrets": t.NumSecrets()})
	})
	s.r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.mountSessionRoutes()
	s.mountGameRoutes()
	s.r.Post("/admin/reload", s.handleReload)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Run serves HTTP on addr until ctx is cancelled, sweeping expired sessions
// and games once a minute.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		tick := time.NewTicker(time.Minute)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				shut, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				if err := srv.Shutdown(shut); err != nil {
					log.Warn().Err(err).Msg("shutdown")
				}
				cancel()
				return
			case <-tick.C:
				if n := s.sessions.Sweep() + s.games.Sweep(); n > 0 {
					log.Debug().Int("expired", n).Msg("swept idle entries")
				}
			}
		}
	}()

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Metrics exposes the collectors, mostly for tests.
func (s *Server) Metrics() *metrics.Metrics { return s.metrics }

func (s *Server) table() *table.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tbl
}

func (s *Server) entropyStrategy() *solver.MaxEntropy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entropy
}

func (s *Server) openingRank() []solver.Scored {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opening
}

// setTable installs t and precomputes the opening alternatives, which are
// the same for every new session. The entropy strategy is replaced too, so
// nothing cached by the old one keeps the previous table alive.
func (s *Server) setTable(t *table.Table) {
	rank := solver.Rank(t, alternatives)
	s.mu.Lock()
	s.tbl = t
	s.opening = rank
	s.entropy = solver.NewEntropy()
	s.mu.Unlock()
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Key")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	body := map[string]string{"error": code}
	if err != nil {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}

// errorStatus maps domain errors to an HTTP status and a stable error code.
func errorStatus(err error) (int, string) {
	var (
		iw *game.InvalidWordError
		mf *game.MalformedFeedbackError
		ug *solver.UnknownGuessError
		nc *solver.NoCandidatesError
	)
	switch {
	case errors.As(err, &iw):
		return http.StatusBadRequest, "invalid_word"
	case errors.As(err, &mf):
		return http.StatusBadRequest, "malformed_feedback"
	case errors.As(err, &ug):
		return http.StatusBadRequest, "unknown_guess"
	case errors.Is(err, game.ErrNotAllowed):
		return http.StatusBadRequest, "not_allowed"
	case errors.As(err, &nc):
		return http.StatusConflict, "no_candidates"
	case errors.Is(err, solver.ErrNotInProgress), errors.Is(err, game.ErrGameFinished):
		return http.StatusConflict, "finished"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	}
	return http.StatusInternalServerError, "internal"
}
