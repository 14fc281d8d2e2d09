// internal/httpserver/auth.go
//
// Session tokens and admin authentication.
//   - Session tokens are HS256 JWTs whose subject is the session ID; the
//     session itself lives in the store, the token only proves ownership.
//   - The admin reload endpoint uses HTTP basic auth checked against a bcrypt
//     hash from config. Without a configured hash the endpoint is disabled.

package httpserver

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

type ctxSessionKey struct{}

func (s *Server) secret() []byte {
	if s.cfg.Session.Secret == "" {
		return []byte("dev_secret_change_me")
	}
	return []byte(s.cfg.Session.Secret)
}

// signSessionToken issues a token for sess that expires with it.
func (s *Server) signSessionToken(sess *store.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sess.ID,
		IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	})
	return token.SignedString(s.secret())
}

// parseSessionToken verifies tok and returns the session ID it carries.
func (s *Server) parseSessionToken(tok string) (string, error) {
	var claims jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !t.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

// bearerToken extracts "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// requireSession loads the session named by the bearer token into the request
// context; 401 for a missing or bad token, 404 for an unknown session.
func (s *Server) requireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearerToken(r)
			if tok == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			id, err := s.parseSessionToken(tok)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			sess, err := s.sessions.Get(r.Context(), id)
			if err != nil {
				writeError(w, http.StatusNotFound, "session_not_found")
				return
			}
			ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFrom(r *http.Request) *store.Session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*store.Session)
	return sess
}

// ------------------------------- ADMIN -------------------------------------

// mountAdmin registers the gated dictionary reload.
func (s *Server) mountAdmin() {
	s.r.Route("/admin", func(r chi.Router) {
		r.Use(s.requireAdmin())
		r.Post("/reload", s.handleReload)
	})
}

// requireAdmin checks basic auth against the configured bcrypt hash.
func (s *Server) requireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.cfg.Admin.PasswordHash == "" {
				writeError(w, http.StatusForbidden, "admin_disabled")
				return
			}
			user, pw, ok := r.BasicAuth()
			if !ok || !s.checkAdmin(user, pw) {
				w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) checkAdmin(user, pw string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.cfg.Admin.User)) == 1
	pwOK := bcrypt.CompareHashAndPassword([]byte(s.cfg.Admin.PasswordHash), []byte(pw)) == nil
	return userOK && pwOK
}

// handleReload re-reads the dictionary from its source and swaps it in.
// On failure the current dictionary stays in place.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	list, err := words.Load(r.Context(), s.source)
	if err != nil {
		log.Error().Err(err).Str("source", s.source.Describe()).Msg("reload dictionary")
		writeError(w, http.StatusInternalServerError, "reload_failed")
		return
	}
	s.dict.Replace(list)
	log.Info().
		Str("source", s.source.Describe()).
		Int("words", len(list)).
		Dur("elapsed", time.Since(start)).
		Msg("dictionary reloaded")
	writeJSON(w, http.StatusOK, map[string]any{"words": len(list), "source": s.source.Describe()})
}
