package model

import (
	"fmt"
	"strings"
)

// ActivityTypes lists the selectable activity labels in display order.
var ActivityTypes = []string{
	"Walking", "Running", "Cycling", "Swimming", "Strength Training", "Yoga", "Sports", "Other",
}

var activityIcons = map[string]string{
	"Walking":           "🚶",
	"Running":           "🏃",
	"Cycling":           "🚴",
	"Swimming":          "🏊",
	"Strength Training": "💪",
	"Yoga":              "🧘",
	"Sports":            "⚽",
	"Other":             "🏋️",
}

func ActivityIcon(activityType string) string {
	if icon, ok := activityIcons[activityType]; ok {
		return icon
	}
	return activityIcons["Other"]
}

// IsActivityType reports whether t is one of ActivityTypes.
func IsActivityType(t string) bool {
	_, ok := activityIcons[t]
	return ok
}

type Milestone struct {
	Type       string `json:"type"`
	Name       string `json:"name"`
	AchievedAt string `json:"achieved_at"`
}

var milestoneIcons = map[string]string{
	"3_day_streak":   "🥉",
	"7_day_streak":   "🥈",
	"14_day_streak":  "🥇",
	"30_day_streak":  "🌟",
	"60_day_streak":  "💎",
	"100_day_streak": "👑",
}

func (m Milestone) Icon() string {
	if icon, ok := milestoneIcons[m.Name]; ok {
		return icon
	}
	return "🏆"
}

// DisplayName turns a milestone token such as "7_day_streak" into "7 day streak".
func (m Milestone) DisplayName() string {
	return strings.ReplaceAll(m.Name, "_", " ")
}

// StreakMessage is the encouragement shown under the streak counters.
func StreakMessage(current int) string {
	if current > 0 {
		return fmt.Sprintf("Keep it up! You're on a %d-day streak 🎉", current)
	}
	return "Start tracking today to begin your streak!"
}

var statusColors = map[string]string{
	"on_track":          "#48bb78",
	"needs_attention":   "#ed8936",
	"excellent":         "#4299e1",
	"needs_improvement": "#f56565",
}

// StatusColor returns the accent colour of an analysis status.
func StatusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return "#a0aec0"
}

var categoryIcons = map[string]string{
	"glucose":   "📊",
	"nutrition": "🍎",
	"activity":  "🏃",
	"weight":    "⚖️",
}

func (i GoalInsight) Icon() string {
	if icon, ok := categoryIcons[strings.ToLower(i.Category)]; ok {
		return icon
	}
	return "📈"
}

// RecentData is the last-week slice of every collection sent for goal
// analysis.
type RecentData struct {
	Glucose   []GlucoseReading `json:"glucose"`
	Nutrition []NutritionEntry `json:"nutrition"`
	Activity  []ActivityEntry  `json:"activity"`
	Weight    []WeightEntry    `json:"weight"`
}
