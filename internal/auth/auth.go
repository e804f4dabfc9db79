package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/kidandcat/diametrics/internal/db"
)

const sessionCookie = "diametrics_session"

type contextKey string

const sessionKey contextKey = "session"

// CookieToken returns the raw session token the request carries, if any.
func CookieToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SessionFromCookie resolves the request's session cookie to a live session.
func SessionFromCookie(r *http.Request) *db.Session {
	token := CookieToken(r)
	if token == "" {
		return nil
	}
	s, err := db.GetSession(token)
	if err != nil {
		return nil
	}
	return s
}

// WithSession stores s in ctx for downstream handlers.
func WithSession(ctx context.Context, s *db.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// CurrentSession returns the session placed in the request context by the
// auth middleware, or nil.
func CurrentSession(r *http.Request) *db.Session {
	if s, ok := r.Context().Value(sessionKey).(*db.Session); ok {
		return s
	}
	return nil
}

func SetSessionCookie(w http.ResponseWriter, s *db.Session, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.Token,
		Path:     "/",
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   sessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

// Logout deletes the request's session and clears its cookie. It returns the
// removed session, or nil when there was none.
func Logout(w http.ResponseWriter, r *http.Request) *db.Session {
	s := CurrentSession(r)
	if s == nil {
		s = SessionFromCookie(r)
	}
	if s != nil {
		db.DeleteSession(s.Token)
	}
	ClearSessionCookie(w)
	return s
}
