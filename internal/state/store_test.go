package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kidandcat/diametrics/internal/model"
)

func TestNewStoreDefaults(t *testing.T) {
	s := New("alice", "2024-01-08")
	snap := s.Snapshot()

	assert.Equal(t, TabGoals, snap.Tab)
	assert.Equal(t, ViewWeek, snap.Views[Glucose])
	assert.Equal(t, ViewToday, snap.Views[Nutrition])
	assert.Equal(t, ChartPie, snap.Charts[Nutrition])
	assert.Equal(t, ViewMonth, snap.Views[Activity])
	assert.Equal(t, ChartMinutes, snap.Charts[Activity])
	assert.Equal(t, ViewMonth, snap.Views[Weight])
	assert.Equal(t, model.Day("2024-01-08"), snap.Dates[Weight])
	assert.False(t, snap.Loaded)
}

func TestSetViewRejectsUnknownModes(t *testing.T) {
	s := New("alice", "2024-01-08")

	assert.Error(t, s.SetView(Activity, ViewDay))
	assert.Error(t, s.SetChart(Nutrition, ChartMinutes))
	assert.Error(t, s.SetDate(Glucose, "2024-01-01"))
	assert.Error(t, s.SetDate(Weight, "yesterday"))

	require.NoError(t, s.SetView(Glucose, ViewYear))
	require.NoError(t, s.SetChart(Activity, ChartCalories))
	require.NoError(t, s.SetDate(Nutrition, "2024-01-02"))

	snap := s.Snapshot()
	assert.Equal(t, ViewYear, snap.Views[Glucose])
	assert.Equal(t, ChartCalories, snap.Charts[Activity])
	assert.Equal(t, model.Day("2024-01-02"), snap.Dates[Nutrition])
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := New("alice", "2024-01-08")
	s.Replace(Data{
		Glucose: []model.GlucoseReading{{ID: 1, Date: "2024-01-08", Value: 100}},
		Goals:   &model.Goals{CalorieTarget: model.Float(1800)},
	})

	snap := s.Snapshot()
	snap.Data.Glucose[0].Value = 999
	snap.Views[Glucose] = ViewYear
	*snap.Data.Goals.CalorieTarget = 1

	again := s.Snapshot()
	assert.Equal(t, 100.0, again.Data.Glucose[0].Value)
	assert.Equal(t, ViewWeek, again.Views[Glucose])
	assert.True(t, again.Loaded)
}

func TestReplaceIsWholesale(t *testing.T) {
	s := New("alice", "2024-01-08")
	s.Replace(Data{Weight: []model.WeightEntry{{ID: 1, Date: "2024-01-01", Weight: 180}}})
	s.Replace(Data{Glucose: []model.GlucoseReading{{ID: 2, Date: "2024-01-01", Value: 90}}})

	d := s.Data()
	assert.Empty(t, d.Weight)
	assert.Len(t, d.Glucose, 1)
}

func TestAlertIsTakenOnce(t *testing.T) {
	s := New("alice", "2024-01-08")
	s.SetAlert("Please enter a valid weight (50-500 lbs)")

	assert.Empty(t, s.Snapshot().Alert)
	assert.Equal(t, "Please enter a valid weight (50-500 lbs)", s.TakeAlert())
	assert.Empty(t, s.TakeAlert())
}

func TestBusyClearedByEnd(t *testing.T) {
	s := New("alice", "2024-01-08")

	func() {
		defer s.Begin("ai-food")()
		assert.True(t, s.Busy("ai-food"))
		assert.True(t, s.Snapshot().Busy["ai-food"])
	}()

	assert.False(t, s.Busy("ai-food"))
}

func TestRecentFiltersBySinceDay(t *testing.T) {
	d := Data{
		Glucose: []model.GlucoseReading{{Date: "2024-01-01", Value: 1}, {Date: "2024-01-05", Value: 2}},
		Weight:  []model.WeightEntry{{Date: "2023-12-31", Weight: 180}},
	}

	recent := d.Recent("2024-01-01")

	assert.Len(t, recent.Glucose, 2)
	assert.Empty(t, recent.Weight)
}

func TestSessionsGetAndDrop(t *testing.T) {
	reg := NewSessions()
	a := reg.Get("tok", "alice", "2024-01-08")
	a.SetTab(TabRisk)

	assert.Same(t, a, reg.Get("tok", "alice", "2024-01-08"))

	reg.Drop("tok")
	fresh := reg.Get("tok", "alice", "2024-01-08")
	assert.NotSame(t, a, fresh)
	assert.Equal(t, TabGoals, fresh.Snapshot().Tab)
}

func TestSessionsRetain(t *testing.T) {
	reg := NewSessions()
	reg.Get("keep", "alice", "2024-01-08")
	reg.Get("gone-1", "bob", "2024-01-08")
	reg.Get("gone-2", "carol", "2024-01-08")

	dropped := reg.Retain(func(token string) bool { return token == "keep" })
	assert.Equal(t, 2, dropped)
	assert.Equal(t, 1, reg.Len())
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := New("alice", "2024-01-08")
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Replace(Data{Glucose: []model.GlucoseReading{{Date: "2024-01-08", Value: 100}}})
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()
	assert.Len(t, s.Data().Glucose, 1)
}
