package scoreboard

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/mageise/gtd-any/kv"
)

// DefaultTokenTTL is how long issued upload tokens stay valid.
const DefaultTokenTTL = 24 * time.Hour

// ServerOptions configures a Server.
type ServerOptions struct {
	Store kv.Store

	// APIKeyHash is the bcrypt hash of the key clients exchange for an
	// upload token. Empty disables uploads.
	APIKeyHash string
	JWTSecret  []byte
	TokenTTL   time.Duration

	Logger zerolog.Logger
	Now    func() time.Time
}

// Server serves a leaderboard kept in a kv store.
type Server struct {
	r    *chi.Mux
	opts ServerOptions
	log  zerolog.Logger

	// mu serializes read-modify-write of the stored leaderboard.
	mu sync.Mutex
}

// NewServer installs middleware and registers routes.
func NewServer(opts ServerOptions) *Server {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = DefaultTokenTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		r:    chi.NewRouter(),
		opts: opts,
		log:  opts.Logger.With().Str("component", "scoreboard").Logger(),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/scores", s.handleList)
	s.r.Post("/token", s.handleToken)
	s.r.With(s.requireToken).Post("/scores", s.handleSubmit)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.r }

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := MaxEntries
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, MaxEntries)
	}

	entries, err := Load(r.Context(), s.opts.Store)
	if err != nil {
		s.log.Error().Err(err).Msg("list scores")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if err := entry.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":  "invalid_entry",
			"detail": err.Error(),
		})
		return
	}

	s.mu.Lock()
	entries, err := Record(r.Context(), s.opts.Store, entry)
	s.mu.Unlock()
	if err != nil {
		s.log.Error().Err(err).Msg("record score")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	s.log.Info().Str("name", entry.Name).Int("score", entry.Score).Msg("score submitted")
	writeJSON(w, http.StatusCreated, entries)
}
