package model

import "strconv"

// Goals holds the user's targets. Every field is optional; nil means unset.
type Goals struct {
	GlucoseMin            *float64 `json:"glucose_min,omitempty"`
	GlucoseMax            *float64 `json:"glucose_max,omitempty"`
	CalorieTarget         *float64 `json:"calorie_target,omitempty"`
	CarbTarget            *float64 `json:"carb_target,omitempty"`
	ActivityWeeklyMinutes *float64 `json:"activity_weekly_minutes,omitempty"`
	WeightTarget          *float64 `json:"weight_target,omitempty"`
}

// Merge overlays the set fields of patch onto g. Fields unset in patch keep
// their current value.
func (g Goals) Merge(patch Goals) Goals {
	out := g
	if patch.GlucoseMin != nil {
		out.GlucoseMin = patch.GlucoseMin
	}
	if patch.GlucoseMax != nil {
		out.GlucoseMax = patch.GlucoseMax
	}
	if patch.CalorieTarget != nil {
		out.CalorieTarget = patch.CalorieTarget
	}
	if patch.CarbTarget != nil {
		out.CarbTarget = patch.CarbTarget
	}
	if patch.ActivityWeeklyMinutes != nil {
		out.ActivityWeeklyMinutes = patch.ActivityWeeklyMinutes
	}
	if patch.WeightTarget != nil {
		out.WeightTarget = patch.WeightTarget
	}
	return out
}

func (g Goals) IsZero() bool {
	return g.GlucoseMin == nil && g.GlucoseMax == nil && g.CalorieTarget == nil &&
		g.CarbTarget == nil && g.ActivityWeeklyMinutes == nil && g.WeightTarget == nil
}

// GlucoseRange returns the configured target range, falling back to 80-130
// mg/dL for the bounds that are unset.
func (g Goals) GlucoseRange() (lo, hi float64) {
	lo, hi = 80, 130
	if g.GlucoseMin != nil {
		lo = *g.GlucoseMin
	}
	if g.GlucoseMax != nil {
		hi = *g.GlucoseMax
	}
	return lo, hi
}

// Float returns a pointer to v, for building goal patches.
func Float(v float64) *float64 { return &v }

// GoalLine is one set goal in display form.
type GoalLine struct {
	Icon  string
	Name  string
	Value string
}

// Lines lists the goals that are set, in display order.
func (g Goals) Lines() []GoalLine {
	var out []GoalLine
	if g.GlucoseMin != nil && g.GlucoseMax != nil {
		out = append(out, GoalLine{"📊", "Glucose Range", Num(*g.GlucoseMin) + "-" + Num(*g.GlucoseMax) + " mg/dL"})
	}
	if g.CalorieTarget != nil {
		out = append(out, GoalLine{"🍎", "Daily Calories", Num(*g.CalorieTarget) + " kcal"})
	}
	if g.CarbTarget != nil {
		out = append(out, GoalLine{"🍎", "Daily Carbs", Num(*g.CarbTarget) + "g"})
	}
	if g.ActivityWeeklyMinutes != nil {
		out = append(out, GoalLine{"🏃", "Weekly Activity", Num(*g.ActivityWeeklyMinutes) + " min"})
	}
	if g.WeightTarget != nil {
		out = append(out, GoalLine{"⚖️", "Target Weight", Num(*g.WeightTarget) + " lbs"})
	}
	return out
}

// Num formats v with as many decimals as it needs.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
