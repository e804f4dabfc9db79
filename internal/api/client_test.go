package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/api/apitest"
	"github.com/kidandcat/diametrics/internal/model"
)

func setup(t *testing.T) (*apitest.Server, *Client) {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	return srv, New(srv.URL, 5*time.Second, zap.NewNop())
}

func TestLoginAndSignup(t *testing.T) {
	srv, c := setup(t)
	ctx := context.Background()

	creds, err := c.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, srv.Token, creds.Token)
	assert.Equal(t, "alice", creds.Username)

	_, err = c.Login(ctx, "alice", "wrong")
	assert.True(t, errors.Is(err, ErrUnauthenticated))

	err = c.Signup(ctx, "bob", "123")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Password must be at least 6 characters", apiErr.Message)

	require.NoError(t, c.Signup(ctx, "bob", "123456"))
}

func TestLogoutIgnoresStaleToken(t *testing.T) {
	_, c := setup(t)
	assert.NoError(t, c.Logout(context.Background(), "stale"))
}

func TestCollectionsRoundTrip(t *testing.T) {
	srv, c := setup(t)
	ctx := context.Background()
	s := c.Session(srv.Token)

	require.NoError(t, s.AddGlucose(ctx, model.GlucoseReading{Date: "2024-01-02", Value: 140}))
	require.NoError(t, s.AddGlucose(ctx, model.GlucoseReading{Date: "2024-01-01", Value: 100}))

	readings, err := s.Glucose(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, model.Day("2024-01-01"), readings[0].Date)

	require.NoError(t, s.DeleteGlucose(ctx, readings[0].ID))
	readings, err = s.Glucose(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 140.0, readings[0].Value)
}

func TestActivityNullCaloriesSurvives(t *testing.T) {
	srv, c := setup(t)
	ctx := context.Background()
	s := c.Session(srv.Token)

	require.NoError(t, s.AddActivity(ctx, model.ActivityEntry{Date: "2024-01-01", Type: "Yoga", Minutes: 40}))

	entries, err := s.Activity(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Calories)
	assert.Equal(t, 200.0, entries[0].BurnedCalories())
}

func TestGoalsAndRiskMayBeNull(t *testing.T) {
	srv, c := setup(t)
	ctx := context.Background()
	s := c.Session(srv.Token)

	goals, err := s.Goals(ctx)
	require.NoError(t, err)
	assert.Nil(t, goals)

	risk, err := s.Risk(ctx)
	require.NoError(t, err)
	assert.Nil(t, risk)

	require.NoError(t, s.SaveGoals(ctx, model.Goals{CalorieTarget: model.Float(2000)}))
	require.NoError(t, s.RecordRisk(ctx, model.RiskAssessment{Probability: 0.42, RiskLevel: 5}))

	goals, err = s.Goals(ctx)
	require.NoError(t, err)
	require.NotNil(t, goals)
	assert.Equal(t, 2000.0, *goals.CalorieTarget)
	assert.Nil(t, goals.GlucoseMin)

	risk, err = s.Risk(ctx)
	require.NoError(t, err)
	require.NotNil(t, risk)
	assert.Equal(t, 5, risk.RiskLevel)
}

func TestUnauthenticatedSession(t *testing.T) {
	_, c := setup(t)

	_, err := c.Session("expired").Weight(context.Background())

	assert.True(t, errors.Is(err, ErrUnauthenticated))
}

func TestAnalyzeGoals(t *testing.T) {
	srv, c := setup(t)

	analysis, err := c.Session(srv.Token).AnalyzeGoals(context.Background(), model.Goals{}, model.RecentData{})

	require.NoError(t, err)
	assert.Equal(t, "on_track", analysis.OverallStatus)
	require.Len(t, analysis.Insights, 1)
}
