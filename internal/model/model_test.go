package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalsMergeKeepsUnsetFields(t *testing.T) {
	current := Goals{GlucoseMin: Float(80), GlucoseMax: Float(130), WeightTarget: Float(170)}

	merged := current.Merge(Goals{CalorieTarget: Float(2000)})

	require.NotNil(t, merged.GlucoseMin)
	assert.Equal(t, 80.0, *merged.GlucoseMin)
	assert.Equal(t, 130.0, *merged.GlucoseMax)
	assert.Equal(t, 170.0, *merged.WeightTarget)
	assert.Equal(t, 2000.0, *merged.CalorieTarget)
	assert.Nil(t, merged.CarbTarget)
	assert.Nil(t, merged.ActivityWeeklyMinutes)
}

func TestGoalsMergeOverwritesSetFields(t *testing.T) {
	current := Goals{GlucoseMin: Float(80), GlucoseMax: Float(130)}

	merged := current.Merge(Goals{GlucoseMin: Float(90), GlucoseMax: Float(140)})

	assert.Equal(t, 90.0, *merged.GlucoseMin)
	assert.Equal(t, 140.0, *merged.GlucoseMax)
	assert.Equal(t, 80.0, *current.GlucoseMin, "receiver must not change")
}

func TestGlucoseRangeDefaults(t *testing.T) {
	lo, hi := Goals{}.GlucoseRange()
	assert.Equal(t, 80.0, lo)
	assert.Equal(t, 130.0, hi)

	lo, hi = Goals{GlucoseMax: Float(150)}.GlucoseRange()
	assert.Equal(t, 80.0, lo)
	assert.Equal(t, 150.0, hi)
}

func TestDayUsesLocalCalendar(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	late := time.Date(2024, 3, 9, 23, 30, 0, 0, loc)

	assert.Equal(t, Day("2024-03-09"), Today(late))
}

func TestDayArithmetic(t *testing.T) {
	d := Day("2024-03-01")
	assert.Equal(t, Day("2024-02-29"), d.AddDays(-1))
	assert.Equal(t, Day("2024-03-08"), d.AddDays(7))
	assert.True(t, d.Before("2024-03-02"))
	assert.Equal(t, "Mar 1", d.Format("Jan 2"))

	_, err := ParseDay("2024-13-01")
	assert.Error(t, err)
}

func TestBandFor(t *testing.T) {
	cases := map[int]RiskBand{1: RiskLow, 3: RiskLow, 4: RiskModerate, 6: RiskModerate, 7: RiskHigh, 10: RiskHigh}
	for level, want := range cases {
		assert.Equal(t, want, BandFor(level), "level %d", level)
	}
	assert.Equal(t, "#48bb78", RiskLow.Color())
	assert.Equal(t, "#ed8936", RiskModerate.Color())
	assert.Equal(t, "#f56565", RiskHigh.Color())
}

func TestBMI(t *testing.T) {
	in := RiskInput{WeightKg: 80, HeightCm: 180}
	assert.Equal(t, 24.7, in.BMI())
	assert.Zero(t, BMI(80, 0))
}

func TestBurnedCaloriesImputesFromMinutes(t *testing.T) {
	assert.Equal(t, 150.0, ActivityEntry{Minutes: 30}.BurnedCalories())
	assert.Equal(t, 220.0, ActivityEntry{Minutes: 30, Calories: Float(220)}.BurnedCalories())
}

func TestValidation(t *testing.T) {
	var verr *ValidationError

	err := GlucoseReading{Date: "2024-01-01", Value: 19}.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "20-600")
	assert.NoError(t, GlucoseReading{Date: "2024-01-01", Value: 600}.Validate())

	assert.Error(t, WeightEntry{Date: "2024-01-01", Weight: 501}.Validate())
	assert.NoError(t, WeightEntry{Date: "2024-01-01", Weight: 50}.Validate())

	assert.Error(t, ActivityEntry{Date: "2024-01-01", Type: "Walking", Minutes: 0}.Validate())
	assert.Error(t, ActivityEntry{Date: "2024-01-01", Type: "Parkour", Minutes: 10}.Validate())
	assert.NoError(t, ActivityEntry{Date: "2024-01-01", Type: "Yoga", Minutes: 10}.Validate())

	assert.Error(t, NutritionEntry{Date: "2024-01-01", Name: "Apple", Servings: 0}.Validate())
}

func TestNewNutritionEntryScalesPerServing(t *testing.T) {
	e := NewNutritionEntry("2024-01-01", "Apple (medium)", 2, Macros{Carbs: 25, Fiber: 4, Calories: 95})

	assert.Equal(t, 50.0, e.Carbs)
	assert.Equal(t, 8.0, e.Fiber)
	assert.Equal(t, 190.0, e.Calories)
	assert.Equal(t, 2.0, e.Servings)
}

func TestMilestoneDisplay(t *testing.T) {
	m := Milestone{Name: "7_day_streak"}
	assert.Equal(t, "7 day streak", m.DisplayName())
	assert.Equal(t, "🥈", m.Icon())
	assert.Equal(t, "🏆", Milestone{Name: "first_log"}.Icon())
}

func TestStreakMessage(t *testing.T) {
	assert.Equal(t, "Start tracking today to begin your streak!", StreakMessage(0))
	assert.Contains(t, StreakMessage(4), "4-day streak")
}

func TestGoalLinesListOnlySetGoals(t *testing.T) {
	lines := Goals{GlucoseMin: Float(80), CalorieTarget: Float(1800), WeightTarget: Float(165.5)}.Lines()

	require.Len(t, lines, 2, "glucose range needs both bounds")
	assert.Equal(t, GoalLine{"🍎", "Daily Calories", "1800 kcal"}, lines[0])
	assert.Equal(t, GoalLine{"⚖️", "Target Weight", "165.5 lbs"}, lines[1])
	assert.Empty(t, Goals{}.Lines())
}
