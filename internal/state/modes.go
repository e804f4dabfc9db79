package state

import (
	"fmt"
	"slices"
)

type Tab string

const (
	TabGoals     Tab = "goals"
	TabGlucose   Tab = "glucose"
	TabNutrition Tab = "nutrition"
	TabActivity  Tab = "activity"
	TabWeight    Tab = "weight"
	TabRisk      Tab = "risk"
)

// Tabs lists every tab in navigation order.
var Tabs = []Tab{TabGoals, TabGlucose, TabNutrition, TabActivity, TabWeight, TabRisk}

func ParseTab(s string) (Tab, error) {
	if !slices.Contains(Tabs, Tab(s)) {
		return "", fmt.Errorf("unknown tab %q", s)
	}
	return Tab(s), nil
}

// Feature names a tab that has its own view mode and selected date.
type Feature string

const (
	Glucose   Feature = "glucose"
	Nutrition Feature = "nutrition"
	Activity  Feature = "activity"
	Weight    Feature = "weight"
)

type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewToday ViewMode = "today"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
	ViewYear  ViewMode = "year"
)

// Days is the length of the window a view mode looks back over. Day and
// today both look back one day.
func (m ViewMode) Days() int {
	switch m {
	case ViewWeek:
		return 7
	case ViewMonth:
		return 30
	case ViewYear:
		return 365
	default:
		return 1
	}
}

var viewModes = map[Feature][]ViewMode{
	Glucose:   {ViewDay, ViewWeek, ViewMonth, ViewYear},
	Nutrition: {ViewToday, ViewWeek, ViewMonth, ViewYear},
	Activity:  {ViewWeek, ViewMonth, ViewYear},
	Weight:    {ViewWeek, ViewMonth, ViewYear},
}

// ViewModes returns the modes a feature offers, in display order.
func ViewModes(f Feature) []ViewMode {
	return viewModes[f]
}

type ChartMode string

const (
	ChartPie      ChartMode = "pie"
	ChartLine     ChartMode = "line"
	ChartMinutes  ChartMode = "minutes"
	ChartCalories ChartMode = "calories"
)

var chartModes = map[Feature][]ChartMode{
	Nutrition: {ChartPie, ChartLine},
	Activity:  {ChartMinutes, ChartCalories},
}

func ChartModes(f Feature) []ChartMode {
	return chartModes[f]
}
