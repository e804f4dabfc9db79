package view

import (
	"fmt"
	"math"
	"sort"

	"github.com/kidandcat/diametrics/internal/charts"
	"github.com/kidandcat/diametrics/internal/foods"
	"github.com/kidandcat/diametrics/internal/model"
	"github.com/kidandcat/diametrics/internal/state"
)

const maxMilestones = 6

type RiskSummary struct {
	Probability string
	Level       int
	BarWidth    string
	Color       string
}

type MilestoneView struct {
	Icon       string
	Name       string
	AchievedAt string
}

type GoalForm struct {
	GlucoseMin, GlucoseMax string
	Calories, Carbs        string
	WeeklyMinutes          string
	WeightTarget           string
}

type GoalsTab struct {
	Risk        *RiskSummary
	Goals       []model.GoalLine
	HasGoals    bool
	Form        GoalForm
	Streak      *model.Streak
	StreakMsg   string
	Milestones  []MilestoneView
	Analysis    *model.GoalAnalysis
	AnalyzeBusy bool
}

func riskSummary(r *model.RiskAssessment) *RiskSummary {
	if r == nil {
		return nil
	}
	return &RiskSummary{
		Probability: fmt.Sprintf("%.1f%%", r.Probability*100),
		Level:       r.RiskLevel,
		BarWidth:    fmt.Sprintf("%.1f%%", r.Probability*100),
		Color:       model.BandFor(r.RiskLevel).Color(),
	}
}

func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return model.Num(*v)
}

func buildGoals(snap state.Snapshot) *GoalsTab {
	t := &GoalsTab{
		Risk:        riskSummary(snap.Data.Risk),
		Analysis:    snap.Analysis,
		AnalyzeBusy: snap.Busy[ControlAnalyzeGoals],
	}
	if g := snap.Data.Goals; g != nil {
		t.Goals = g.Lines()
		t.HasGoals = len(t.Goals) > 0
		t.Form = GoalForm{
			GlucoseMin:    optional(g.GlucoseMin),
			GlucoseMax:    optional(g.GlucoseMax),
			Calories:      optional(g.CalorieTarget),
			Carbs:         optional(g.CarbTarget),
			WeeklyMinutes: optional(g.ActivityWeeklyMinutes),
			WeightTarget:  optional(g.WeightTarget),
		}
	}
	if s := snap.Data.Streak; s != nil {
		t.Streak = s
		t.StreakMsg = model.StreakMessage(s.CurrentStreak)
	}
	for i, m := range snap.Data.Milestones {
		if i == maxMilestones {
			break
		}
		t.Milestones = append(t.Milestones, MilestoneView{Icon: m.Icon(), Name: m.DisplayName(), AchievedAt: m.AchievedAt})
	}
	return t
}

type GlucoseRow struct {
	ID    int64
	Date  model.Day
	Value float64
}

type GlucoseTab struct {
	Views       []Option
	Average     float64
	TargetRange string
	Total       int
	Readings    []GlucoseRow
	HasChart    bool
}

func buildGlucose(snap state.Snapshot, today model.Day) (*GlucoseTab, []charts.Widget) {
	w := window(snap.Views[state.Glucose], today, false)
	in := charts.GlucoseIn(snap.Data.Glucose, w)
	series := charts.Glucose(snap.Data.Glucose, w)

	var goals model.Goals
	if snap.Data.Goals != nil {
		goals = *snap.Data.Goals
	}
	lo, hi := goals.GlucoseRange()

	t := &GlucoseTab{
		Views:       viewOptions(snap, state.Glucose),
		Average:     round(charts.Average(in)),
		TargetRange: model.Num(lo) + "-" + model.Num(hi) + " mg/dL",
		Total:       len(snap.Data.Glucose),
		HasChart:    !series.Empty(),
	}
	rows := make([]GlucoseRow, 0, len(in))
	for _, r := range in {
		rows = append(rows, GlucoseRow{ID: r.ID, Date: r.Date, Value: r.Value})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	t.Readings = rows

	widget := charts.Widget{
		Canvas: "glucose-chart",
		Kind:   "line",
		Labels: series.Labels,
		Datasets: []charts.Dataset{
			{Label: "Blood Glucose (mg/dL)", Data: series.Data, Color: "#4299e1"},
		},
	}
	return t, []charts.Widget{widget}
}

type FoodRow struct {
	ID       int64
	Name     string
	Servings float64
	Calories float64
}

type FoodOption struct {
	Name     string
	Calories float64
}

type NutritionTab struct {
	Date          model.Day
	DateLabel     string
	Foods         []FoodOption
	Charts        []Option
	Views         []Option
	Pie           bool
	Totals        model.Macros
	CarbsPercent  int
	CalorieTarget string
	CarbGoal      string
	Entries       []FoodRow
	EntriesTotal  float64
	Preview       *state.ProductPreview
	PreviewTotal  model.Macros
	AIBusy        bool
	PhotoBusy     bool
	BarcodeBusy   bool
	HasChart      bool
}

var pieColors = []string{"#4299e1", "#48bb78", "#ed8936", "#9f7aea"}

func buildNutrition(snap state.Snapshot, today model.Day) (*NutritionTab, []charts.Widget) {
	date := snap.Dates[state.Nutrition]
	day := charts.On(date)
	totals := charts.MacroTotals(snap.Data.Nutrition, day)

	t := &NutritionTab{
		Date:          date,
		DateLabel:     dateLabel(date, today),
		Charts:        chartOptions(snap, state.Nutrition),
		Views:         viewOptions(snap, state.Nutrition),
		Pie:           snap.Charts[state.Nutrition] != state.ChartLine,
		Totals:        totals.Round1(),
		CalorieTarget: "1,800-2,200 kcal",
		CarbGoal:      "45-60% of calories",
		Preview:       snap.Preview,
		AIBusy:        snap.Busy[ControlAIFood],
		PhotoBusy:     snap.Busy[ControlPhotoScan],
		BarcodeBusy:   snap.Busy[ControlBarcode],
	}
	if macros := totals.Carbs + totals.Protein + totals.Fat; macros > 0 {
		t.CarbsPercent = int(math.Round(totals.Carbs / macros * 100))
	}
	if g := snap.Data.Goals; g != nil {
		if g.CalorieTarget != nil {
			t.CalorieTarget = model.Num(*g.CalorieTarget) + " kcal"
		}
		if g.CarbTarget != nil {
			t.CarbGoal = model.Num(*g.CarbTarget) + "g"
		}
	}
	if t.Preview != nil {
		t.PreviewTotal = t.Preview.Total().Round1()
	}
	for _, f := range foods.All() {
		t.Foods = append(t.Foods, FoodOption{Name: f.Name, Calories: f.PerServing.Calories})
	}
	for _, e := range snap.Data.Nutrition {
		if e.Date == date {
			t.Entries = append(t.Entries, FoodRow{ID: e.ID, Name: e.Name, Servings: e.Servings, Calories: e.Calories})
			t.EntriesTotal += e.Calories
		}
	}

	if t.Pie {
		split := charts.MacroSplit(snap.Data.Nutrition, day)
		t.HasChart = !split.Empty()
		return t, []charts.Widget{{
			Canvas:   "nutrition-chart",
			Kind:     "doughnut",
			Labels:   split.Labels,
			Datasets: []charts.Dataset{{Label: "Macros (g)", Data: split.Data, Colors: pieColors}},
		}}
	}

	hist := charts.Nutrition(snap.Data.Nutrition, window(snap.Views[state.Nutrition], date, true))
	t.HasChart = !hist.Empty()
	return t, []charts.Widget{{
		Canvas: "nutrition-history-chart",
		Kind:   "line",
		Labels: hist.Labels,
		Datasets: []charts.Dataset{
			{Label: "Calories", Data: hist.Calories, Color: "#ed8936", Axis: "y"},
			{Label: "Carbs (g)", Data: hist.Carbs, Color: "#4299e1", Axis: "y1"},
		},
	}}
}

type ActivityRow struct {
	ID       int64
	Icon     string
	Type     string
	Minutes  float64
	Calories float64
}

type ActivityTab struct {
	Date         model.Day
	DateLabel    string
	Types        []string
	Charts       []Option
	Views        []Option
	CaloriesMode bool
	AverageDaily float64
	WeeklyGoal   float64
	Unit         string
	Total        int
	Entries      []ActivityRow
	DayMinutes   float64
	DayCalories  float64
	AIBusy       bool
	HasChart     bool
}

func buildActivity(snap state.Snapshot, today model.Day) (*ActivityTab, []charts.Widget) {
	date := snap.Dates[state.Activity]
	caloriesMode := snap.Charts[state.Activity] == state.ChartCalories
	metric, unit, color, label := charts.Minutes, "min", "#48bb78", "Minutes of Activity"
	if caloriesMode {
		metric, unit, color, label = charts.Calories, "cal", "#ed8936", "Calories Burned"
	}

	t := &ActivityTab{
		Date:         date,
		DateLabel:    dateLabel(date, today),
		Types:        model.ActivityTypes,
		Charts:       chartOptions(snap, state.Activity),
		Views:        viewOptions(snap, state.Activity),
		CaloriesMode: caloriesMode,
		Unit:         unit,
		Total:        len(snap.Data.Activity),
		AIBusy:       snap.Busy[ControlAIActivity],
	}

	days := map[model.Day]bool{}
	var total float64
	for _, e := range snap.Data.Activity {
		days[e.Date] = true
		if caloriesMode {
			total += e.BurnedCalories()
		} else {
			total += e.Minutes
		}
		if e.Date == date {
			t.Entries = append(t.Entries, ActivityRow{
				ID:       e.ID,
				Icon:     model.ActivityIcon(e.Type),
				Type:     e.Type,
				Minutes:  e.Minutes,
				Calories: round(e.BurnedCalories()),
			})
			t.DayMinutes += e.Minutes
			t.DayCalories += e.BurnedCalories()
		}
	}
	t.DayCalories = round(t.DayCalories)
	if len(days) > 0 {
		t.AverageDaily = round(total / float64(len(days)))
	}
	t.WeeklyGoal = 150
	if g := snap.Data.Goals; g != nil && g.ActivityWeeklyMinutes != nil {
		t.WeeklyGoal = *g.ActivityWeeklyMinutes
	}
	if caloriesMode {
		t.WeeklyGoal *= model.CaloriesPerMinute
	}

	series := charts.Activity(snap.Data.Activity, window(snap.Views[state.Activity], today, false), metric)
	t.HasChart = !series.Empty()
	return t, []charts.Widget{{
		Canvas:   "activity-chart",
		Kind:     "bar",
		Labels:   series.Labels,
		Datasets: []charts.Dataset{{Label: label, Data: series.Data, Color: color}},
	}}
}

type WeightRow struct {
	ID     int64
	Weight float64
}

type WeightTab struct {
	Date      model.Day
	DateLabel string
	Views     []Option
	Latest    float64
	Average   float64
	Change    float64
	Target    *float64
	Total     int
	Entries   []WeightRow
	HasChart  bool
}

func buildWeight(snap state.Snapshot, today model.Day) (*WeightTab, []charts.Widget) {
	date := snap.Dates[state.Weight]
	entries := append([]model.WeightEntry(nil), snap.Data.Weight...)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })

	t := &WeightTab{
		Date:      date,
		DateLabel: dateLabel(date, today),
		Views:     viewOptions(snap, state.Weight),
		Total:     len(entries),
	}
	if n := len(entries); n > 0 {
		var sum float64
		for _, e := range entries {
			sum += e.Weight
		}
		t.Latest = entries[n-1].Weight
		t.Average = model.RoundTo(sum/float64(n), 1)
		t.Change = model.RoundTo(entries[n-1].Weight-entries[0].Weight, 1)
	}
	if g := snap.Data.Goals; g != nil {
		t.Target = g.WeightTarget
	}
	for _, e := range snap.Data.Weight {
		if e.Date == date {
			t.Entries = append(t.Entries, WeightRow{ID: e.ID, Weight: e.Weight})
		}
	}

	series := charts.Weight(snap.Data.Weight, window(snap.Views[state.Weight], today, false))
	t.HasChart = !series.Empty()
	return t, []charts.Widget{{
		Canvas:   "weight-chart",
		Kind:     "line",
		Labels:   series.Labels,
		Datasets: []charts.Dataset{{Label: "Weight (lbs)", Data: series.Data, Color: "#805ad5"}},
	}}
}

type RiskResult struct {
	Probability string
	Level       int
	BMI         float64
	BarWidth    string
	Band        model.RiskBand
	Advice      model.Advice
}

type RiskTab struct {
	Result *RiskResult
	Busy   bool
}

func buildRisk(snap state.Snapshot) *RiskTab {
	t := &RiskTab{Busy: snap.Busy[ControlRisk]}
	if p := snap.Prediction; p != nil {
		band := model.BandFor(p.RiskLevel)
		t.Result = &RiskResult{
			Probability: fmt.Sprintf("%.1f%%", p.Probability*100),
			Level:       p.RiskLevel,
			BMI:         p.BMI,
			BarWidth:    fmt.Sprintf("%.1f%%", p.Probability*100),
			Band:        band,
			Advice:      band.Advice(),
		}
	}
	return t
}
