package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// sessionClaims ties a bearer token to one solver session.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

var errNoToken = errors.New("missing bearer token")

// signSession creates an HS256 token for sid that lives as long as the
// session would when idle.
func (s *Server) signSession(sid string) (string, time.Time, error) {
	now := s.opts.Now()
	ttl := s.opts.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	exp := now.Add(ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// parseSession validates tok and returns its session id.
func (s *Server) parseSession(tok string) (string, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.opts.Now))
	if err != nil {
		return "", err
	}
	if claims.SessionID == "" {
		return "", errors.New("token has no session id")
	}
	return claims.SessionID, nil
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// ctxSessionKey is the context key type for the authenticated session entry.
type ctxSessionKey struct{}

// requireSession enforces a valid token and injects the session it names
// into the request context.
func (s *Server) requireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearer(r)
			if tok == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", errNoToken)
				return
			}
			sid, err := s.parseSession(tok)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_token", nil)
				return
			}
			e, err := s.sessions.Get(r.Context(), sid)
			if err != nil {
				writeError(w, http.StatusNotFound, "session_not_found", nil)
				return
			}
			ctx := context.WithValue(r.Context(), ctxSessionKey{}, e)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFrom(ctx context.Context) *sessionEntry {
	e, _ := ctx.Value(ctxSessionKey{}).(*sessionEntry)
	return e
}

// checkAdminKey is a bcrypt verifier for the X-Admin-Key header.
func (s *Server) checkAdminKey(key string) bool {
	if s.opts.AdminKeyHash == "" || key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s.opts.AdminKeyHash), []byte(key)) == nil
}
