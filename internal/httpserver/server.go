// internal/httpserver/server.go
//
// HTTP server wiring for the solver.
// Responsibilities:
//   - Router + middleware (request IDs, logging, panic recovery, timeouts,
//     JSON, CORS, rate limiting).
//   - Public endpoints: "/", "/health", "/dictionary".
//   - Stateless solving: POST /solve with the full accumulated feedback.
//   - Sessions: mounted under /sessions (see routes_sessions.go).
//   - Admin: POST /admin/reload re-reads the dictionary (see auth.go).
//
// Notes:
//   - Validation errors from the solver map to 400 with {"error": "..."}.
//   - Candidate lists can be truncated with "limit"; "count" is always the
//     full number of candidates.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Server bundles router, dictionary, session store and settings.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	dict     *words.Dictionary
	source   words.Source
	sessions store.Store
	limiter  *rate.Limiter
}

// New constructs a Server, installs middleware, and registers routes.
// src is where POST /admin/reload reads the dictionary from.
func New(cfg config.Config, dict *words.Dictionary, src words.Source, st store.Store) *Server {
	s := &Server{r: chi.NewRouter(), cfg: cfg, dict: dict, source: src, sessions: st}
	if cfg.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)        // add X-Request-ID
	s.r.Use(chimw.RealIP)           // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)          // one zerolog line per request
	s.r.Use(chimw.Recoverer)        // recover from panics
	s.r.Use(chimw.Timeout(timeout)) // bound handler time
	s.r.Use(jsonContentType)        // default JSON responses
	s.r.Use(s.cors)                 // credentials-friendly CORS
	s.r.Use(s.rateLimit)            // global request budget

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","/dictionary","POST /solve","POST /sessions","/sessions/*","POST /admin/reload"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/dictionary", s.handleDictionary)

	s.r.Post("/solve", s.handleSolve)
	s.mountSessions()
	s.mountAdmin()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ SOLVE --------------------------------------

// solveReq is the body of POST /solve: the accumulated feedback plus an
// optional cap on the number of candidates returned.
type solveReq struct {
	solver.Feedback
	Limit int `json:"limit"`
}

// candidatesRes is returned by every endpoint that lists candidates.
type candidatesRes struct {
	Count      int              `json:"count"`
	Candidates []string         `json:"candidates"`
	Feedback   *solver.Feedback `json:"feedback,omitempty"`
	Guesses    []feedback.Guess `json:"guesses,omitempty"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	res, err := s.candidates(r.Context(), req.Feedback, req.Limit)
	if err != nil {
		s.writeSolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDictionary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"words":      s.dict.Len(),
		"wordLength": s.dict.WordLength(),
		"source":     s.source.Describe(),
	})
}

// candidates validates fb and filters the current dictionary with it.
func (s *Server) candidates(ctx context.Context, fb solver.Feedback, limit int) (candidatesRes, error) {
	fb = solver.Normalize(fb)
	if err := solver.Validate(fb, s.dict.WordLength()); err != nil {
		return candidatesRes{}, err
	}
	list, err := solver.FilterParallel(ctx, s.dict.Words(), fb, s.cfg.FilterWorkers)
	if err != nil {
		return candidatesRes{}, err
	}
	res := candidatesRes{Count: len(list), Candidates: list}
	if limit > 0 && limit < len(list) {
		res.Candidates = list[:limit]
	}
	return res, nil
}

// writeSolveError maps solver and collector errors to status codes.
func (s *Server) writeSolveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, solver.ErrInvalidLetter),
		errors.Is(err, solver.ErrInvalidPosition),
		errors.Is(err, solver.ErrInconsistentFeedback),
		errors.Is(err, feedback.ErrInvalidMarks),
		errors.Is(err, feedback.ErrGuessLength),
		errors.Is(err, feedback.ErrGuessLetters),
		errors.Is(err, feedback.ErrMarksLength):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "timeout")
	default:
		log.Error().Err(err).Msg("solve")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

// queryLimit reads ?limit=N; anything unparsable means no limit.
func queryLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ----------------------------- helpers -------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
