package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/kidandcat/diametrics/internal/api"
	"github.com/kidandcat/diametrics/internal/foods"
	"github.com/kidandcat/diametrics/internal/model"
	"github.com/kidandcat/diametrics/internal/state"
)

// formFloat reads a number field. Missing or malformed values read as zero,
// which every range check rejects.
func formFloat(r *http.Request, key string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue(key)), 64)
	if err != nil {
		return 0
	}
	return v
}

// formOptional reads a number field that may be left empty.
func formOptional(r *http.Request, key string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue(key)), 64)
	if err != nil {
		return nil
	}
	return &v
}

func formDay(r *http.Request, key string, fallback model.Day) model.Day {
	if v := strings.TrimSpace(r.FormValue(key)); v != "" {
		return model.Day(v)
	}
	return fallback
}

func (h *Handler) handleAddGlucose(w http.ResponseWriter, r *http.Request, d *dashboard) {
	reading := model.GlucoseReading{
		Date:  model.Day(strings.TrimSpace(r.FormValue("date"))),
		Value: formFloat(r, "value"),
	}
	if err := reading.Validate(); err != nil {
		reject(w, r, d, err)
		return
	}
	h.finish(w, r, d, "Error saving glucose data: ", d.api.AddGlucose(r.Context(), reading))
}

func (h *Handler) handleAddFood(w http.ResponseWriter, r *http.Request, d *dashboard) {
	food, ok := foods.Lookup(r.FormValue("food"))
	servings := formFloat(r, "servings")
	if !ok || servings <= 0 {
		d.store.SetAlert("Please select a food and enter valid servings")
		home(w, r)
		return
	}
	entry := model.NewNutritionEntry(d.store.Date(state.Nutrition), food.Name, servings, food.PerServing)
	if err := entry.Validate(); err != nil {
		reject(w, r, d, err)
		return
	}
	h.finish(w, r, d, "Error saving nutrition data: ", d.api.AddNutrition(r.Context(), entry))
}

func (h *Handler) handleAddActivity(w http.ResponseWriter, r *http.Request, d *dashboard) {
	entry := model.ActivityEntry{
		Date:    formDay(r, "date", d.store.Date(state.Activity)),
		Type:    r.FormValue("type"),
		Minutes: formFloat(r, "minutes"),
	}
	if err := entry.Validate(); err != nil {
		reject(w, r, d, err)
		return
	}
	h.finish(w, r, d, "Error saving activity data: ", d.api.AddActivity(r.Context(), entry))
}

func (h *Handler) handleAddWeight(w http.ResponseWriter, r *http.Request, d *dashboard) {
	entry := model.WeightEntry{
		Date:   formDay(r, "date", d.store.Date(state.Weight)),
		Weight: formFloat(r, "weight"),
	}
	if err := entry.Validate(); err != nil {
		reject(w, r, d, err)
		return
	}
	h.finish(w, r, d, "Error saving weight data: ", d.api.AddWeight(r.Context(), entry))
}

type deleter struct {
	del    func(*api.Session, context.Context, int64) error
	prefix string
}

// deleters maps the kind in a delete route to its collaborator call.
var deleters = map[string]deleter{
	"glucose":   {(*api.Session).DeleteGlucose, "Error deleting glucose reading: "},
	"nutrition": {(*api.Session).DeleteNutrition, "Error deleting food: "},
	"activity":  {(*api.Session).DeleteActivity, "Error deleting activity: "},
	"weight":    {(*api.Session).DeleteWeight, "Error deleting weight entry: "},
}

// handleDelete removes one entry by its id. The id comes from the row the
// user clicked, never from its position in a list.
func (h *Handler) handleDelete(kind string) dashboardHandler {
	del := deleters[kind]
	return func(w http.ResponseWriter, r *http.Request, d *dashboard) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		h.finish(w, r, d, del.prefix, del.del(d.api, r.Context(), id))
	}
}
