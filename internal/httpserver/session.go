package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionCookieName = "wordle_session"
	sessionTTL        = 24 * time.Hour
)

// ctxPlayerKey is the context key type for the session's player id.
type ctxPlayerKey struct{}

// setSessionCookie signs an HS256 JWT carrying the player id and sets it as cookie.
func (s *Server) setSessionCookie(w http.ResponseWriter, playerID string) error {
	now := s.opts.Now()
	exp := now.Add(sessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  playerID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.opts.SessionSecret))
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    ss,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
	return nil
}

// withSession decorates requests with the player id of a valid session cookie.
// It never rejects; callers without a cookie identify themselves by body id only.
// An invalid or expired cookie is ignored.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
			claims := jwt.MapClaims{}
			t, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(s.opts.SessionSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.opts.Now))
			if err == nil && t.Valid {
				if id, _ := claims["id"].(string); id != "" {
					r = r.WithContext(context.WithValue(r.Context(), ctxPlayerKey{}, id))
				}
			} else {
				s.log.Debug().Err(err).Msg("ignoring invalid session cookie")
			}
		}
		next.ServeHTTP(w, r)
	})
}

// sessionPlayer returns the player id placed in ctx by withSession.
func sessionPlayer(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxPlayerKey{}).(string)
	return id, ok && id != ""
}
