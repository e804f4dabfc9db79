// Package charts turns entry collections into chart-ready series: filtered to
// a window of days, grouped per day and sorted ascending, with labels aligned
// one-to-one with the data.
package charts

import (
	"math"
	"sort"

	"github.com/kidandcat/diametrics/internal/model"
)

const (
	dayLabel     = "Jan 2"
	yearDayLabel = "Jan 2 '06"
)

// Series is a labelled sequence of values. Labels and Data always have the
// same length.
type Series struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

func (s Series) Empty() bool { return len(s.Data) == 0 }

// Window is an inclusive range of days. An empty To leaves the range open
// towards the future.
type Window struct {
	From model.Day
	To   model.Day
	// Long windows carry the year in their labels.
	Long bool
}

// LastDays covers the n days before anchor plus anchor itself, open towards
// the future.
func LastDays(anchor model.Day, n int) Window {
	return Window{From: anchor.AddDays(-n), Long: n > 31}
}

// Ending covers the n days before anchor plus anchor itself, closed at anchor.
func Ending(anchor model.Day, n int) Window {
	return Window{From: anchor.AddDays(-n), To: anchor, Long: n > 31}
}

// On covers exactly one day.
func On(d model.Day) Window {
	return Window{From: d, To: d}
}

func (w Window) Contains(d model.Day) bool {
	if w.From != "" && d.Before(w.From) {
		return false
	}
	if w.To != "" && d.After(w.To) {
		return false
	}
	return true
}

func (w Window) label(d model.Day) string {
	if w.Long {
		return d.Format(yearDayLabel)
	}
	return d.Format(dayLabel)
}

// combine folds a new value into a day's accumulated value.
type combine func(acc, v float64) float64

func sum(acc, v float64) float64 { return acc + v }

func last(_, v float64) float64 { return v }

type dayValue struct {
	day model.Day
	v   float64
}

// byDay filters points to w and groups them by day. Points must be given in
// write order so that last-write grouping picks the latest entry.
func byDay(points []dayValue, w Window, fold combine) Series {
	acc := map[model.Day]float64{}
	var days []model.Day
	for _, p := range points {
		if !w.Contains(p.day) {
			continue
		}
		prev, seen := acc[p.day]
		if !seen {
			days = append(days, p.day)
			acc[p.day] = p.v
			continue
		}
		acc[p.day] = fold(prev, p.v)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	s := Series{Labels: make([]string, 0, len(days)), Data: make([]float64, 0, len(days))}
	for _, d := range days {
		s.Labels = append(s.Labels, w.label(d))
		s.Data = append(s.Data, round1(acc[d]))
	}
	return s
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// Glucose plots every reading in w as its own point, ascending by day.
// Readings of the same day keep their logged order.
func Glucose(readings []model.GlucoseReading, w Window) Series {
	in := GlucoseIn(readings, w)
	sort.SliceStable(in, func(i, j int) bool { return in[i].Date.Before(in[j].Date) })

	s := Series{Labels: make([]string, 0, len(in)), Data: make([]float64, 0, len(in))}
	for _, r := range in {
		s.Labels = append(s.Labels, w.label(r.Date))
		s.Data = append(s.Data, r.Value)
	}
	return s
}

// GlucoseIn returns the readings that fall in w.
func GlucoseIn(readings []model.GlucoseReading, w Window) []model.GlucoseReading {
	var out []model.GlucoseReading
	for _, r := range readings {
		if w.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

// Average is the mean of the readings' values, 0 for none.
func Average(readings []model.GlucoseReading) float64 {
	if len(readings) == 0 {
		return 0
	}
	var total float64
	for _, r := range readings {
		total += r.Value
	}
	return total / float64(len(readings))
}

// Weight plots one value per day, the latest entry logged for that day.
func Weight(entries []model.WeightEntry, w Window) Series {
	points := make([]dayValue, 0, len(entries))
	for _, e := range entries {
		points = append(points, dayValue{e.Date, e.Weight})
	}
	return byDay(points, w, last)
}

type ActivityMetric string

const (
	Minutes  ActivityMetric = "minutes"
	Calories ActivityMetric = "calories"
)

// Activity sums minutes or burned calories per day. Entries without recorded
// calories count minutes x 5.
func Activity(entries []model.ActivityEntry, w Window, metric ActivityMetric) Series {
	points := make([]dayValue, 0, len(entries))
	for _, e := range entries {
		v := e.Minutes
		if metric == Calories {
			v = e.BurnedCalories()
		}
		points = append(points, dayValue{e.Date, v})
	}
	return byDay(points, w, sum)
}

// NutritionHistory holds per-day calorie and carb totals on shared labels.
type NutritionHistory struct {
	Labels   []string  `json:"labels"`
	Calories []float64 `json:"calories"`
	Carbs    []float64 `json:"carbs"`
}

func (h NutritionHistory) Empty() bool { return len(h.Labels) == 0 }

func Nutrition(entries []model.NutritionEntry, w Window) NutritionHistory {
	cal := make([]dayValue, 0, len(entries))
	carbs := make([]dayValue, 0, len(entries))
	for _, e := range entries {
		cal = append(cal, dayValue{e.Date, e.Calories})
		carbs = append(carbs, dayValue{e.Date, e.Carbs})
	}
	c := byDay(cal, w, sum)
	return NutritionHistory{Labels: c.Labels, Calories: c.Data, Carbs: byDay(carbs, w, sum).Data}
}

// MacroTotals sums nutrients of the entries in w.
func MacroTotals(entries []model.NutritionEntry, w Window) model.Macros {
	var total model.Macros
	for _, e := range entries {
		if w.Contains(e.Date) {
			total = total.Add(e.Macros())
		}
	}
	return total
}

// MacroSplit is the pie breakdown of one day's macronutrients in grams.
// It is empty when nothing was logged in w.
func MacroSplit(entries []model.NutritionEntry, w Window) Series {
	logged := false
	for _, e := range entries {
		if w.Contains(e.Date) {
			logged = true
			break
		}
	}
	if !logged {
		return Series{Labels: []string{}, Data: []float64{}}
	}
	t := MacroTotals(entries, w).Round1()
	return Series{
		Labels: []string{"Carbs", "Protein", "Fat", "Fiber"},
		Data:   []float64{t.Carbs, t.Protein, t.Fat, t.Fiber},
	}
}
