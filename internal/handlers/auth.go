package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/api"
	"github.com/kidandcat/diametrics/internal/auth"
	"github.com/kidandcat/diametrics/internal/db"
	"github.com/kidandcat/diametrics/internal/remote"
	"github.com/kidandcat/diametrics/internal/view"
)

func (h *Handler) renderAuth(w http.ResponseWriter, status int, page view.AuthPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.view.RenderAuth(w, page); err != nil {
		h.logger.Error("render auth page", zap.Error(err))
	}
}

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if auth.SessionFromCookie(r) != nil {
		home(w, r)
		return
	}
	h.renderAuth(w, http.StatusOK, view.AuthPage{})
}

func (h *Handler) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	h.renderAuth(w, http.StatusOK, view.AuthPage{Signup: true})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		h.renderAuth(w, http.StatusBadRequest, view.AuthPage{Username: username, Error: "Please enter username and password"})
		return
	}
	h.startSession(w, r, username, password, false)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	page := view.AuthPage{Signup: true, Username: username}
	switch {
	case username == "" || password == "":
		page.Error = "Please enter username and password"
	case len(password) < 6:
		page.Error = "Password must be at least 6 characters"
	}
	if page.Error != "" {
		h.renderAuth(w, http.StatusBadRequest, page)
		return
	}

	if err := h.api.Signup(r.Context(), username, password); err != nil {
		page.Error = remote.Message(err)
		h.renderAuth(w, http.StatusBadRequest, page)
		return
	}
	h.logger.Info("account created", zap.String("user", username))
	h.startSession(w, r, username, password, true)
}

// startSession logs in against the API and binds the credentials to a new
// cookie session.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, username, password string, signup bool) {
	creds, err := h.api.Login(r.Context(), username, password)
	if err != nil {
		page := view.AuthPage{Signup: signup, Username: username, Error: remote.Message(err)}
		if errors.Is(err, api.ErrUnauthenticated) {
			page.Error = "Invalid username or password"
		}
		h.renderAuth(w, http.StatusUnauthorized, page)
		return
	}

	s, err := db.CreateSession(creds.Username, creds.Token, h.cfg.SessionTTL)
	if err != nil {
		h.logger.Error("create session", zap.Error(err))
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	auth.SetSessionCookie(w, s, h.cfg.CookieSecure)
	h.logger.Info("user logged in", zap.String("user", s.Username))
	home(w, r)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if s := auth.Logout(w, r); s != nil {
		if err := h.api.Logout(r.Context(), s.APIToken); err != nil {
			h.logger.Warn("api logout", zap.String("user", s.Username), zap.Error(err))
		}
		h.sessions.Drop(s.Token)
		h.logger.Info("user logged out", zap.String("user", s.Username))
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
