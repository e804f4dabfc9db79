package handlers

import (
	"context"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/auth"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestID returns the id assigned to the request by Middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

// Middleware tags every request with an id, logs it when done and turns
// panics into 500s.
func Middleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-Id"))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey, id))

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered",
					zap.String("request_id", id),
					zap.Any("panic", rec),
					zap.String("stack", string(debug.Stack())),
				)
				http.Error(sw, "Internal error", http.StatusInternalServerError)
			}
			logger.Info("http request",
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", sw.status),
				zap.Int("bytes", sw.bytes),
				zap.Duration("duration", time.Since(start)),
			)
		}()
		next.ServeHTTP(sw, r)
	})
}

type dashboardHandler func(w http.ResponseWriter, r *http.Request, d *dashboard)

// withDashboard requires a live session and hands the session's store and
// API client to next. Requests without one are sent to the login page.
func (h *Handler) withDashboard(next dashboardHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := auth.SessionFromCookie(r)
		if s == nil {
			if token := auth.CookieToken(r); token != "" {
				h.sessions.Drop(token)
			}
			auth.ClearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		d := &dashboard{
			session: s,
			store:   h.sessions.Get(s.Token, s.Username, h.today()),
			api:     h.api.Session(s.APIToken),
		}
		next(w, r.WithContext(auth.WithSession(r.Context(), s)), d)
	}
}
