package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/model"
	"github.com/kidandcat/diametrics/internal/state"
)

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request, d *dashboard) {
	if !d.store.Loaded() && !h.refresh(r.Context(), w, r, d) {
		return
	}

	snap := d.store.Snapshot()
	snap.Alert = d.store.TakeAlert()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.view.Render(w, snap, d.store.Widgets(), h.now()); err != nil {
		h.logger.Error("render dashboard", zap.String("user", d.session.Username), zap.Error(err))
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) handleTab(w http.ResponseWriter, r *http.Request, d *dashboard) {
	tab, err := state.ParseTab(r.FormValue("tab"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	d.store.SetTab(tab)
	home(w, r)
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request, d *dashboard) {
	f := state.Feature(r.FormValue("feature"))
	if err := d.store.SetView(f, state.ViewMode(r.FormValue("mode"))); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	home(w, r)
}

func (h *Handler) handleChart(w http.ResponseWriter, r *http.Request, d *dashboard) {
	f := state.Feature(r.FormValue("feature"))
	if err := d.store.SetChart(f, state.ChartMode(r.FormValue("mode"))); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	home(w, r)
}

func (h *Handler) handleDate(w http.ResponseWriter, r *http.Request, d *dashboard) {
	day, err := model.ParseDay(r.FormValue("date"))
	if err != nil {
		d.store.SetAlert("Please select a valid date")
		home(w, r)
		return
	}
	if err := d.store.SetDate(state.Feature(r.FormValue("feature")), day); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	home(w, r)
}
