// Package handlers serves the dashboard. Every page is rendered on the server
// from the session's state store; forms post a change and redirect back.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/api"
	"github.com/kidandcat/diametrics/internal/auth"
	"github.com/kidandcat/diametrics/internal/config"
	"github.com/kidandcat/diametrics/internal/db"
	"github.com/kidandcat/diametrics/internal/inference"
	"github.com/kidandcat/diametrics/internal/loader"
	"github.com/kidandcat/diametrics/internal/model"
	"github.com/kidandcat/diametrics/internal/openfoodfacts"
	"github.com/kidandcat/diametrics/internal/remote"
	"github.com/kidandcat/diametrics/internal/state"
	"github.com/kidandcat/diametrics/internal/view"
)

// Deps are the collaborators a Handler works with.
type Deps struct {
	Config    config.Config
	Logger    *zap.Logger
	API       *api.Client
	Inference *inference.Client
	Products  *openfoodfacts.Client
	Renderer  *view.Renderer
	Sessions  *state.Sessions
	// Now defaults to time.Now.
	Now func() time.Time
}

type Handler struct {
	cfg       config.Config
	logger    *zap.Logger
	api       *api.Client
	inference *inference.Client
	products  *openfoodfacts.Client
	view      *view.Renderer
	sessions  *state.Sessions
	loader    *loader.Loader
	now       func() time.Time
}

func New(d Deps) *Handler {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		cfg:       d.Config,
		logger:    d.Logger,
		api:       d.API,
		inference: d.Inference,
		products:  d.Products,
		view:      d.Renderer,
		sessions:  d.Sessions,
		loader:    loader.New(d.Logger),
		now:       now,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /static/", view.StaticHandler())
	mux.HandleFunc("GET /healthz", h.handleHealth)

	mux.HandleFunc("GET /login", h.handleLoginPage)
	mux.HandleFunc("POST /login", h.handleLogin)
	mux.HandleFunc("GET /signup", h.handleSignupPage)
	mux.HandleFunc("POST /signup", h.handleSignup)
	mux.HandleFunc("POST /logout", h.handleLogout)

	mux.HandleFunc("GET /{$}", h.withDashboard(h.handleDashboard))
	mux.HandleFunc("POST /ui/tab", h.withDashboard(h.handleTab))
	mux.HandleFunc("POST /ui/view", h.withDashboard(h.handleView))
	mux.HandleFunc("POST /ui/chart", h.withDashboard(h.handleChart))
	mux.HandleFunc("POST /ui/date", h.withDashboard(h.handleDate))

	mux.HandleFunc("POST /glucose", h.withDashboard(h.handleAddGlucose))
	mux.HandleFunc("POST /nutrition", h.withDashboard(h.handleAddFood))
	mux.HandleFunc("POST /nutrition/ai", h.withDashboard(h.handleAnalyzeFood))
	mux.HandleFunc("POST /nutrition/barcode", h.withDashboard(h.handleBarcode))
	mux.HandleFunc("POST /nutrition/photo", h.withDashboard(h.handlePhoto))
	mux.HandleFunc("POST /nutrition/preview/add", h.withDashboard(h.handleAddPreview))
	mux.HandleFunc("POST /nutrition/preview/clear", h.withDashboard(h.handleClearPreview))
	mux.HandleFunc("POST /activity", h.withDashboard(h.handleAddActivity))
	mux.HandleFunc("POST /activity/ai", h.withDashboard(h.handleAnalyzeActivity))
	mux.HandleFunc("POST /weight", h.withDashboard(h.handleAddWeight))
	for kind := range deleters {
		mux.HandleFunc("POST /"+kind+"/{id}/delete", h.withDashboard(h.handleDelete(kind)))
	}

	mux.HandleFunc("POST /goals/analyze", h.withDashboard(h.handleAnalyzeGoals))
	mux.HandleFunc("POST /goals/{category}", h.withDashboard(h.handleSaveGoals))
	mux.HandleFunc("POST /risk", h.withDashboard(h.handleRisk))

	mux.HandleFunc("GET /export/csv", h.withDashboard(h.handleExportCSV))
	mux.HandleFunc("GET /export/xlsx", h.withDashboard(h.handleExportXLSX))
	mux.HandleFunc("GET /export/report", h.withDashboard(h.handleExportReport))
}

func (h *Handler) today() model.Day {
	return model.Today(h.now())
}

// dashboard is the per-request view of a logged-in user.
type dashboard struct {
	session *db.Session
	store   *state.Store
	api     *api.Session
}

func home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// refresh reloads every collection into the store. It reports false when the
// API rejected the credentials, in which case the user has been logged out
// and redirected. Other failures keep the cached data and alert the user.
func (h *Handler) refresh(ctx context.Context, w http.ResponseWriter, r *http.Request, d *dashboard) bool {
	err := h.loader.LoadAll(ctx, d.api, d.store)
	switch {
	case errors.Is(err, api.ErrUnauthenticated):
		h.expire(w, r, d)
		return false
	case err != nil:
		d.store.SetAlert("Error loading data: " + remote.Message(err))
	}
	return true
}

// expire logs the user out after the API rejected their token.
func (h *Handler) expire(w http.ResponseWriter, r *http.Request, d *dashboard) {
	h.logger.Info("api token rejected, logging out", zap.String("user", d.session.Username))
	db.DeleteSession(d.session.Token)
	h.sessions.Drop(d.session.Token)
	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// finish ends a mutation. On failure the user sees prefix and the
// collaborator's message and nothing is reloaded; on success every
// collection is reloaded.
func (h *Handler) finish(w http.ResponseWriter, r *http.Request, d *dashboard, prefix string, err error) {
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			h.expire(w, r, d)
			return
		}
		h.logger.Warn("mutation failed", zap.String("user", d.session.Username), zap.String("path", r.URL.Path), zap.Error(err))
		d.store.SetAlert(prefix + remote.Message(err))
		home(w, r)
		return
	}
	if h.refresh(r.Context(), w, r, d) {
		home(w, r)
	}
}

// reject shows a validation problem without touching any collaborator.
func reject(w http.ResponseWriter, r *http.Request, d *dashboard, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		d.store.SetAlert(verr.Message)
	} else {
		d.store.SetAlert(err.Error())
	}
	home(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := db.DB.PingContext(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": h.sessions.Len()})
}
