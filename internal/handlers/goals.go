package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/api"
	"github.com/kidandcat/diametrics/internal/model"
	"github.com/kidandcat/diametrics/internal/state"
	"github.com/kidandcat/diametrics/internal/view"
)

// goalPatch reads the goal fields one category's form submits.
func goalPatch(r *http.Request, category string) (model.Goals, string, bool) {
	positive := func(v *float64) bool { return v != nil && *v > 0 }
	switch category {
	case "glucose":
		lo, hi := formOptional(r, "min"), formOptional(r, "max")
		if !positive(lo) || !positive(hi) || *lo >= *hi {
			return model.Goals{}, "Please enter a valid glucose range", false
		}
		return model.Goals{GlucoseMin: lo, GlucoseMax: hi}, "", true
	case "nutrition":
		cal, carbs := formOptional(r, "calories"), formOptional(r, "carbs")
		if !positive(cal) && !positive(carbs) {
			return model.Goals{}, "Please enter a calorie or carb target", false
		}
		var g model.Goals
		if positive(cal) {
			g.CalorieTarget = cal
		}
		if positive(carbs) {
			g.CarbTarget = carbs
		}
		return g, "", true
	case "activity":
		m := formOptional(r, "minutes")
		if !positive(m) {
			return model.Goals{}, "Please enter your weekly activity minutes", false
		}
		return model.Goals{ActivityWeeklyMinutes: m}, "", true
	case "weight":
		t := formOptional(r, "target")
		if !positive(t) {
			return model.Goals{}, "Please enter a target weight", false
		}
		return model.Goals{WeightTarget: t}, "", true
	}
	return model.Goals{}, "Unknown goal category", false
}

// handleSaveGoals merges one category's goals into the current set, so the
// other categories keep their saved values.
func (h *Handler) handleSaveGoals(w http.ResponseWriter, r *http.Request, d *dashboard) {
	patch, msg, ok := goalPatch(r, r.PathValue("category"))
	if !ok {
		d.store.SetAlert(msg)
		home(w, r)
		return
	}
	merged := d.store.Goals().Merge(patch)
	h.finish(w, r, d, "Error saving goal: ", d.api.SaveGoals(r.Context(), merged))
}

// handleAnalyzeGoals asks for an assessment of the last seven days against
// the current goals.
func (h *Handler) handleAnalyzeGoals(w http.ResponseWriter, r *http.Request, d *dashboard) {
	goals := d.store.Goals()
	if goals.IsZero() {
		d.store.SetAlert("Please set at least one goal first")
		home(w, r)
		return
	}
	defer d.store.Begin(view.ControlAnalyzeGoals)()

	recent := d.store.Data().Recent(h.today().AddDays(-7))
	analysis, err := d.api.AnalyzeGoals(r.Context(), goals, recent)
	if err != nil {
		h.finish(w, r, d, "Error analyzing goals: ", err)
		return
	}
	d.store.SetAnalysis(analysis)
	home(w, r)
}

func (h *Handler) handleRisk(w http.ResponseWriter, r *http.Request, d *dashboard) {
	in := model.RiskInput{
		Gender:    int(formFloat(r, "gender")),
		Age:       formFloat(r, "age"),
		Ethnicity: int(formFloat(r, "race")),
		WeightKg:  formFloat(r, "weight"),
		HeightCm:  formFloat(r, "height"),
		WaistCm:   formOptional(r, "waist"),
		HipCm:     formOptional(r, "hip"),
	}
	if err := in.Validate(); err != nil {
		reject(w, r, d, err)
		return
	}
	defer d.store.Begin(view.ControlRisk)()

	pred, err := h.inference.Predict(r.Context(), in)
	if err != nil {
		h.finish(w, r, d, "Error calculating risk: ", err)
		return
	}
	d.store.SetPrediction(&state.Prediction{Probability: pred.Probability, RiskLevel: pred.RiskLevel, BMI: in.BMI()})

	// The prediction is shown even when recording it fails.
	record := model.RiskAssessment{Probability: pred.Probability, RiskLevel: pred.RiskLevel}
	if err := d.api.RecordRisk(r.Context(), record); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			h.expire(w, r, d)
			return
		}
		h.logger.Warn("record risk assessment", zap.String("user", d.session.Username), zap.Error(err))
		home(w, r)
		return
	}
	h.finish(w, r, d, "", nil)
}
