package loader

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/api"
	"github.com/kidandcat/diametrics/internal/api/apitest"
	"github.com/kidandcat/diametrics/internal/model"
	"github.com/kidandcat/diametrics/internal/state"
)

type fakeSource struct {
	glucose []model.GlucoseReading
	failOn  string
	err     error
}

func (f *fakeSource) fail(name string) error {
	if f.failOn == name {
		return f.err
	}
	return nil
}

func (f *fakeSource) Glucose(context.Context) ([]model.GlucoseReading, error) {
	return f.glucose, f.fail("glucose")
}
func (f *fakeSource) Nutrition(context.Context) ([]model.NutritionEntry, error) {
	return nil, f.fail("nutrition")
}
func (f *fakeSource) Activity(context.Context) ([]model.ActivityEntry, error) {
	return nil, f.fail("activity")
}
func (f *fakeSource) Weight(context.Context) ([]model.WeightEntry, error) {
	return []model.WeightEntry{{Date: "2024-01-01", Weight: 180}}, f.fail("weight")
}
func (f *fakeSource) Risk(context.Context) (*model.RiskAssessment, error) {
	return nil, f.fail("risk")
}
func (f *fakeSource) Goals(context.Context) (*model.Goals, error) {
	return &model.Goals{CalorieTarget: model.Float(2000)}, f.fail("goals")
}
func (f *fakeSource) Streaks(context.Context) (*model.Streak, error) {
	return &model.Streak{CurrentStreak: 3}, f.fail("streaks")
}
func (f *fakeSource) Milestones(context.Context) ([]model.Milestone, error) {
	return nil, f.fail("milestones")
}

func TestLoadAllReplacesStore(t *testing.T) {
	store := state.New("alice", "2024-01-08")
	src := &fakeSource{glucose: []model.GlucoseReading{{ID: 1, Date: "2024-01-08", Value: 120}}}

	require.NoError(t, New(zap.NewNop()).LoadAll(context.Background(), src, store))

	d := store.Data()
	assert.Len(t, d.Glucose, 1)
	assert.Len(t, d.Weight, 1)
	assert.Equal(t, 3, d.Streak.CurrentStreak)
	assert.True(t, store.Loaded())
}

func TestLoadAllKeepsStaleDataOnFailure(t *testing.T) {
	store := state.New("alice", "2024-01-08")
	store.Replace(state.Data{Glucose: []model.GlucoseReading{{ID: 9, Date: "2024-01-01", Value: 95}}})
	src := &fakeSource{
		glucose: []model.GlucoseReading{{ID: 1, Date: "2024-01-08", Value: 120}},
		failOn:  "milestones",
		err:     fmt.Errorf("list milestones: %w", &api.Error{Status: 500, Message: "boom"}),
	}

	err := New(zap.NewNop()).LoadAll(context.Background(), src, store)

	require.Error(t, err)
	assert.False(t, errors.Is(err, api.ErrUnauthenticated))
	d := store.Data()
	require.Len(t, d.Glucose, 1)
	assert.Equal(t, int64(9), d.Glucose[0].ID, "no partial overwrite")
	assert.Empty(t, d.Weight)
}

func TestLoadAllSurfacesUnauthenticated(t *testing.T) {
	store := state.New("alice", "2024-01-08")
	src := &fakeSource{failOn: "goals", err: fmt.Errorf("get goals: %w", api.ErrUnauthenticated)}

	err := New(zap.NewNop()).LoadAll(context.Background(), src, store)

	assert.True(t, errors.Is(err, api.ErrUnauthenticated))
	assert.False(t, store.Loaded())
}

func TestLoadAllWithoutSourceIsNoop(t *testing.T) {
	store := state.New("alice", "2024-01-08")

	require.NoError(t, New(zap.NewNop()).LoadAll(context.Background(), nil, store))
	assert.False(t, store.Loaded())
}

func TestLoadAllAgainstAPI(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedActivity(
		model.ActivityEntry{Date: "2024-01-01", Type: "Walking", Minutes: 30},
		model.ActivityEntry{Date: "2024-01-02", Type: "Running", Minutes: 20},
	)
	srv.SetMilestones([]model.Milestone{{Type: "streak", Name: "3_day_streak", AchievedAt: "2024-01-03"}})
	client := api.New(srv.URL, 5*time.Second, zap.NewNop())
	store := state.New("alice", "2024-01-08")

	require.NoError(t, New(zap.NewNop()).LoadAll(context.Background(), client.Session(srv.Token), store))

	d := store.Data()
	assert.Len(t, d.Activity, 2)
	assert.Len(t, d.Milestones, 1)
	assert.Nil(t, d.Goals)

	err := New(zap.NewNop()).LoadAll(context.Background(), client.Session("revoked"), store)
	assert.True(t, errors.Is(err, api.ErrUnauthenticated))
	assert.Len(t, store.Data().Activity, 2)
}
