// Package state holds the per-session State Store: the single source of
// truth the dashboard renders from.
package state

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/kidandcat/diametrics/internal/charts"
	"github.com/kidandcat/diametrics/internal/model"
)

// Data is every collection fetched from the API. It is always replaced as a
// whole.
type Data struct {
	Glucose    []model.GlucoseReading
	Nutrition  []model.NutritionEntry
	Activity   []model.ActivityEntry
	Weight     []model.WeightEntry
	Risk       *model.RiskAssessment
	Goals      *model.Goals
	Streak     *model.Streak
	Milestones []model.Milestone
}

func (d Data) clone() Data {
	out := Data{
		Glucose:    append([]model.GlucoseReading(nil), d.Glucose...),
		Nutrition:  append([]model.NutritionEntry(nil), d.Nutrition...),
		Activity:   append([]model.ActivityEntry(nil), d.Activity...),
		Weight:     append([]model.WeightEntry(nil), d.Weight...),
		Milestones: append([]model.Milestone(nil), d.Milestones...),
	}
	if d.Risk != nil {
		r := *d.Risk
		out.Risk = &r
	}
	if d.Goals != nil {
		g := *d.Goals
		out.Goals = &g
	}
	if d.Streak != nil {
		s := *d.Streak
		out.Streak = &s
	}
	return out
}

// Recent returns the entries dated on or after since.
func (d Data) Recent(since model.Day) model.RecentData {
	w := charts.Window{From: since}
	var out model.RecentData
	for _, r := range d.Glucose {
		if w.Contains(r.Date) {
			out.Glucose = append(out.Glucose, r)
		}
	}
	for _, e := range d.Nutrition {
		if w.Contains(e.Date) {
			out.Nutrition = append(out.Nutrition, e)
		}
	}
	for _, e := range d.Activity {
		if w.Contains(e.Date) {
			out.Activity = append(out.Activity, e)
		}
	}
	for _, e := range d.Weight {
		if w.Contains(e.Date) {
			out.Weight = append(out.Weight, e)
		}
	}
	return out
}

// ProductPreview is a looked-up or photographed product waiting for the user
// to confirm adding it to the log.
type ProductPreview struct {
	Source     string // "barcode" or "photo"
	Barcode    string
	Name       string
	Brand      string
	ImageURL   string
	Serving    string
	Servings   float64
	PerServing model.Macros
	Confidence string
	// NotFound is set when the lookup found nothing; the preview then only
	// carries Barcode.
	NotFound bool
}

// Total is the preview's nutrients for the chosen number of servings.
func (p ProductPreview) Total() model.Macros {
	return p.PerServing.Scale(p.Servings)
}

// Prediction is the result of the last risk calculation.
type Prediction struct {
	Probability float64
	RiskLevel   int
	BMI         float64
}

// Store is one session's dashboard state. All methods are safe for
// concurrent use; readers take a Snapshot.
type Store struct {
	mu sync.RWMutex

	username string
	tab      Tab
	views    map[Feature]ViewMode
	charts   map[Feature]ChartMode
	dates    map[Feature]model.Day

	data   Data
	loaded bool

	alert      string
	busy       map[string]bool
	preview    *ProductPreview
	prediction *Prediction
	analysis   *model.GoalAnalysis

	widgets *charts.Registry
}

// New returns a store with the default tab, view modes and selected dates
// set to today.
func New(username string, today model.Day) *Store {
	return &Store{
		username: username,
		tab:      TabGoals,
		views: map[Feature]ViewMode{
			Glucose:   ViewWeek,
			Nutrition: ViewToday,
			Activity:  ViewMonth,
			Weight:    ViewMonth,
		},
		charts: map[Feature]ChartMode{
			Nutrition: ChartPie,
			Activity:  ChartMinutes,
		},
		dates: map[Feature]model.Day{
			Nutrition: today,
			Activity:  today,
			Weight:    today,
		},
		busy:    map[string]bool{},
		widgets: charts.NewRegistry(),
	}
}

func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Widgets is the chart registry of this session's render passes.
func (s *Store) Widgets() *charts.Registry { return s.widgets }

// Replace swaps in a complete, freshly fetched data set.
func (s *Store) Replace(d Data) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = d.clone()
	s.loaded = true
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Data returns a copy of the cached collections.
func (s *Store) Data() Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.clone()
}

// Goals returns the cached goals, or zero goals when none are set.
func (s *Store) Goals() model.Goals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.Goals == nil {
		return model.Goals{}
	}
	return *s.data.Goals
}

func (s *Store) SetTab(t Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tab = t
}

func (s *Store) SetView(f Feature, m ViewMode) error {
	if !slices.Contains(viewModes[f], m) {
		return fmt.Errorf("view mode %q not available for %s", m, f)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views[f] = m
	return nil
}

func (s *Store) SetChart(f Feature, m ChartMode) error {
	if !slices.Contains(chartModes[f], m) {
		return fmt.Errorf("chart mode %q not available for %s", m, f)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charts[f] = m
	return nil
}

func (s *Store) SetDate(f Feature, d model.Day) error {
	if !d.Valid() {
		return fmt.Errorf("invalid date %q", d)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dates[f]; !ok {
		return fmt.Errorf("%s has no selected date", f)
	}
	s.dates[f] = d
	return nil
}

func (s *Store) Date(f Feature) model.Day {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dates[f]
}

// SetAlert queues a message shown once on the next render.
func (s *Store) SetAlert(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alert = msg
}

// TakeAlert returns the pending alert and clears it.
func (s *Store) TakeAlert() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.alert
	s.alert = ""
	return msg
}

// Begin marks control as busy and returns the function that clears it.
// Callers defer the returned function so every exit path clears the flag.
func (s *Store) Begin(control string) (end func()) {
	s.mu.Lock()
	s.busy[control] = true
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.busy, control)
		s.mu.Unlock()
	}
}

func (s *Store) Busy(control string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy[control]
}

func (s *Store) SetPreview(p *ProductPreview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = p
}

func (s *Store) Preview() *ProductPreview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.preview == nil {
		return nil
	}
	p := *s.preview
	return &p
}

func (s *Store) SetPrediction(p *Prediction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prediction = p
}

func (s *Store) SetAnalysis(a *model.GoalAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysis = a
}

// Snapshot is an immutable copy of the store for one render.
type Snapshot struct {
	Username   string
	Tab        Tab
	Views      map[Feature]ViewMode
	Charts     map[Feature]ChartMode
	Dates      map[Feature]model.Day
	Data       Data
	Loaded     bool
	Alert      string
	Busy       map[string]bool
	Preview    *ProductPreview
	Prediction *Prediction
	Analysis   *model.GoalAnalysis
}

// Snapshot copies the store. The pending alert is not included; callers take
// it with TakeAlert so that rendering stays free of side effects.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Username: s.username,
		Tab:      s.tab,
		Views:    maps.Clone(s.views),
		Charts:   maps.Clone(s.charts),
		Dates:    maps.Clone(s.dates),
		Data:     s.data.clone(),
		Loaded:   s.loaded,
		Busy:     maps.Clone(s.busy),
	}
	if s.preview != nil {
		p := *s.preview
		snap.Preview = &p
	}
	if s.prediction != nil {
		p := *s.prediction
		snap.Prediction = &p
	}
	if s.analysis != nil {
		a := *s.analysis
		a.Insights = append([]model.GoalInsight(nil), s.analysis.Insights...)
		a.Recommendations = append([]string(nil), s.analysis.Recommendations...)
		snap.Analysis = &a
	}
	return snap
}
