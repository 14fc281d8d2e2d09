// internal/httpserver/routes_sessions.go
//
// HTTP routes for solving sessions.
//   - POST   /sessions            → create a session, returns a bearer token
//   - POST   /sessions/guess      → record a guess + marks, returns candidates
//   - GET    /sessions/candidates → candidates for the feedback so far
//   - POST   /sessions/reset      → forget every guess
//   - DELETE /sessions            → end the session
//
// A session only accumulates feedback; candidates are always recomputed from
// the current dictionary.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/feedback"
	"github.com/robalobadob/wordle-solver/internal/store"
)

const defaultSessionTTL = 24 * time.Hour

// mountSessions registers every /sessions route.
func (s *Server) mountSessions() {
	s.r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleNewSession)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession())
			r.Post("/guess", s.handleSessionGuess)
			r.Get("/candidates", s.handleSessionCandidates)
			r.Post("/reset", s.handleSessionReset)
			r.Delete("/", s.handleSessionDelete)
		})
	})
}

type newSessionRes struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	ttl := s.cfg.Session.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	sess := store.NewSession(s.dict.WordLength(), ttl)
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, err := s.signSessionToken(sess)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	log.Debug().Str("sessionId", sess.ID).Msg("session created")
	writeJSON(w, http.StatusCreated, newSessionRes{SessionID: sess.ID, Token: tok, ExpiresAt: sess.ExpiresAt})
}

// guessReq is the body of POST /sessions/guess. Marks use ParseMarks syntax,
// e.g. "gybbg" or "hit,present,miss,miss,hit".
type guessReq struct {
	Guess string `json:"guess"`
	Marks string `json:"marks"`
	Limit int    `json:"limit"`
}

func (s *Server) handleSessionGuess(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	marks, err := feedback.ParseMarks(req.Marks)
	if err != nil {
		s.writeSolveError(w, err)
		return
	}
	fb, err := sess.Add(req.Guess, marks)
	if err != nil {
		s.writeSolveError(w, err)
		return
	}
	res, err := s.candidates(r.Context(), fb, req.Limit)
	if err != nil {
		s.writeSolveError(w, err)
		return
	}
	res.Feedback = &fb
	res.Guesses = sess.Guesses()
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSessionCandidates(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	fb := sess.Feedback()
	res, err := s.candidates(r.Context(), fb, queryLimit(r))
	if err != nil {
		s.writeSolveError(w, err)
		return
	}
	res.Feedback = &fb
	res.Guesses = sess.Guesses()
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).Reset()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := s.sessions.Delete(r.Context(), sess.ID); err != nil {
		log.Error().Err(err).Str("sessionId", sess.ID).Msg("delete session")
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
