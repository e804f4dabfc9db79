package view

import (
	"math"
	"time"

	"github.com/kidandcat/diametrics/internal/charts"
	"github.com/kidandcat/diametrics/internal/model"
	"github.com/kidandcat/diametrics/internal/state"
)

// Busy control names shared by handlers and templates.
const (
	ControlAIFood       = "ai-food"
	ControlAIActivity   = "ai-activity"
	ControlPhotoScan    = "photo-scan"
	ControlBarcode      = "barcode-lookup"
	ControlAnalyzeGoals = "analyze-goals"
	ControlRisk         = "risk-calc"
)

type TabLink struct {
	ID     state.Tab
	Label  string
	Icon   string
	Active bool
}

var tabMeta = map[state.Tab]struct{ label, icon string }{
	state.TabGoals:     {"Dashboard", "🎯"},
	state.TabGlucose:   {"Glucose", "📊"},
	state.TabNutrition: {"Nutrition", "🍎"},
	state.TabActivity:  {"Activity", "🏃"},
	state.TabWeight:    {"Weight", "⚖️"},
	state.TabRisk:      {"Risk", "⚠️"},
}

// Option is one button of a mode selector.
type Option struct {
	Feature state.Feature
	Value   string
	Label   string
	Active  bool
}

// Page is everything the dashboard template needs for one render.
type Page struct {
	Username string
	Today    model.Day
	Tab      state.Tab
	Tabs     []TabLink
	Alert    string
	Loaded   bool

	Goals     *GoalsTab
	Glucose   *GlucoseTab
	Nutrition *NutritionTab
	Activity  *ActivityTab
	Weight    *WeightTab
	Risk      *RiskTab

	// Widgets are the charts of the active tab, in mount order.
	Widgets []charts.Widget
}

// BuildPage derives the page model from a snapshot. It has no side effects:
// the same snapshot and time always give the same page.
func BuildPage(snap state.Snapshot, now time.Time) Page {
	today := model.Today(now)
	p := Page{
		Username: snap.Username,
		Today:    today,
		Tab:      snap.Tab,
		Alert:    snap.Alert,
		Loaded:   snap.Loaded,
		Widgets:  []charts.Widget{},
	}
	for _, t := range state.Tabs {
		meta := tabMeta[t]
		p.Tabs = append(p.Tabs, TabLink{ID: t, Label: meta.label, Icon: meta.icon, Active: t == snap.Tab})
	}

	switch snap.Tab {
	case state.TabGlucose:
		p.Glucose, p.Widgets = buildGlucose(snap, today)
	case state.TabNutrition:
		p.Nutrition, p.Widgets = buildNutrition(snap, today)
	case state.TabActivity:
		p.Activity, p.Widgets = buildActivity(snap, today)
	case state.TabWeight:
		p.Weight, p.Widgets = buildWeight(snap, today)
	case state.TabRisk:
		p.Risk = buildRisk(snap)
	default:
		p.Goals = buildGoals(snap)
	}
	return p
}

func viewOptions(snap state.Snapshot, f state.Feature) []Option {
	var out []Option
	for _, m := range state.ViewModes(f) {
		out = append(out, Option{Feature: f, Value: string(m), Label: modeLabel(string(m)), Active: snap.Views[f] == m})
	}
	return out
}

func chartOptions(snap state.Snapshot, f state.Feature) []Option {
	var out []Option
	for _, m := range state.ChartModes(f) {
		out = append(out, Option{Feature: f, Value: string(m), Label: modeLabel(string(m)), Active: snap.Charts[f] == m})
	}
	return out
}

func modeLabel(m string) string {
	switch m {
	case "pie":
		return "Daily Breakdown"
	case "line":
		return "History"
	case "":
		return ""
	default:
		return string(m[0]-'a'+'A') + m[1:]
	}
}

// window is the chart range of a view mode. Modes anchored at now stay open
// towards the future; modes anchored at a selected date end there.
func window(mode state.ViewMode, anchor model.Day, closed bool) charts.Window {
	if closed {
		return charts.Ending(anchor, mode.Days())
	}
	return charts.LastDays(anchor, mode.Days())
}

// dateLabel is "Today" for today and "Mon, Jan 2" otherwise.
func dateLabel(d, today model.Day) string {
	if d == today {
		return "Today"
	}
	return d.Format("Mon, Jan 2")
}

func round(v float64) float64 { return math.Round(v) }
