// Package api is the client of the health-data API: authentication, the four
// entry collections, goals, risk, streaks, milestones and goal analysis.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kidandcat/diametrics/internal/model"
	"github.com/kidandcat/diametrics/internal/remote"
)

// ErrUnauthenticated is returned by any call the API rejects with 401.
var ErrUnauthenticated = remote.ErrUnauthenticated

// Error carries the API's own error message for a failed call.
type Error = remote.Error

type Client struct {
	remote *remote.Client
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{remote: remote.New("api", baseURL, timeout, logger)}
}

// Session binds the client to one bearer token.
func (c *Client) Session(token string) *Session {
	return &Session{c: c, token: token}
}

type Session struct {
	c     *Client
	token string
}

func (s *Session) Token() string { return s.token }

func (s *Session) call(ctx context.Context, method, path string, body, result any) error {
	return s.c.remote.Call(ctx, method, path, s.token, body, result)
}

func isUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

type deleteRequest struct {
	ID int64 `json:"id"`
}

func (s *Session) Glucose(ctx context.Context) ([]model.GlucoseReading, error) {
	var out []model.GlucoseReading
	if err := s.call(ctx, http.MethodGet, "/data/glucose", nil, &out); err != nil {
		return nil, fmt.Errorf("list glucose: %w", err)
	}
	return out, nil
}

func (s *Session) AddGlucose(ctx context.Context, r model.GlucoseReading) error {
	if err := s.call(ctx, http.MethodPost, "/data/glucose", r, nil); err != nil {
		return fmt.Errorf("add glucose: %w", err)
	}
	return nil
}

func (s *Session) DeleteGlucose(ctx context.Context, id int64) error {
	if err := s.call(ctx, http.MethodDelete, "/data/glucose", deleteRequest{id}, nil); err != nil {
		return fmt.Errorf("delete glucose: %w", err)
	}
	return nil
}

func (s *Session) Nutrition(ctx context.Context) ([]model.NutritionEntry, error) {
	var out []model.NutritionEntry
	if err := s.call(ctx, http.MethodGet, "/data/nutrition", nil, &out); err != nil {
		return nil, fmt.Errorf("list nutrition: %w", err)
	}
	return out, nil
}

func (s *Session) AddNutrition(ctx context.Context, e model.NutritionEntry) error {
	if err := s.call(ctx, http.MethodPost, "/data/nutrition", e, nil); err != nil {
		return fmt.Errorf("add nutrition: %w", err)
	}
	return nil
}

func (s *Session) DeleteNutrition(ctx context.Context, id int64) error {
	if err := s.call(ctx, http.MethodDelete, "/data/nutrition", deleteRequest{id}, nil); err != nil {
		return fmt.Errorf("delete nutrition: %w", err)
	}
	return nil
}

func (s *Session) Activity(ctx context.Context) ([]model.ActivityEntry, error) {
	var out []model.ActivityEntry
	if err := s.call(ctx, http.MethodGet, "/data/activity", nil, &out); err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return out, nil
}

func (s *Session) AddActivity(ctx context.Context, e model.ActivityEntry) error {
	if err := s.call(ctx, http.MethodPost, "/data/activity", e, nil); err != nil {
		return fmt.Errorf("add activity: %w", err)
	}
	return nil
}

func (s *Session) DeleteActivity(ctx context.Context, id int64) error {
	if err := s.call(ctx, http.MethodDelete, "/data/activity", deleteRequest{id}, nil); err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	return nil
}

func (s *Session) Weight(ctx context.Context) ([]model.WeightEntry, error) {
	var out []model.WeightEntry
	if err := s.call(ctx, http.MethodGet, "/data/weight", nil, &out); err != nil {
		return nil, fmt.Errorf("list weight: %w", err)
	}
	return out, nil
}

func (s *Session) AddWeight(ctx context.Context, e model.WeightEntry) error {
	if err := s.call(ctx, http.MethodPost, "/data/weight", e, nil); err != nil {
		return fmt.Errorf("add weight: %w", err)
	}
	return nil
}

func (s *Session) DeleteWeight(ctx context.Context, id int64) error {
	if err := s.call(ctx, http.MethodDelete, "/data/weight", deleteRequest{id}, nil); err != nil {
		return fmt.Errorf("delete weight: %w", err)
	}
	return nil
}

// Risk returns the most recent assessment, or nil when none was recorded.
func (s *Session) Risk(ctx context.Context) (*model.RiskAssessment, error) {
	var out *model.RiskAssessment
	if err := s.call(ctx, http.MethodGet, "/data/risk", nil, &out); err != nil {
		return nil, fmt.Errorf("get risk: %w", err)
	}
	return out, nil
}

func (s *Session) RecordRisk(ctx context.Context, r model.RiskAssessment) error {
	body := model.RiskAssessment{Probability: r.Probability, RiskLevel: r.RiskLevel}
	if err := s.call(ctx, http.MethodPost, "/data/risk", body, nil); err != nil {
		return fmt.Errorf("record risk: %w", err)
	}
	return nil
}

// Goals returns the stored goals, or nil when the user never saved any.
func (s *Session) Goals(ctx context.Context) (*model.Goals, error) {
	var out *model.Goals
	if err := s.call(ctx, http.MethodGet, "/data/goals", nil, &out); err != nil {
		return nil, fmt.Errorf("get goals: %w", err)
	}
	return out, nil
}

// SaveGoals replaces the stored goals with g. Callers merge partial edits
// into the current goals first.
func (s *Session) SaveGoals(ctx context.Context, g model.Goals) error {
	if err := s.call(ctx, http.MethodPost, "/data/goals", g, nil); err != nil {
		return fmt.Errorf("save goals: %w", err)
	}
	return nil
}

func (s *Session) Streaks(ctx context.Context) (*model.Streak, error) {
	var out *model.Streak
	if err := s.call(ctx, http.MethodGet, "/data/streaks", nil, &out); err != nil {
		return nil, fmt.Errorf("get streaks: %w", err)
	}
	return out, nil
}

func (s *Session) Milestones(ctx context.Context) ([]model.Milestone, error) {
	var out []model.Milestone
	if err := s.call(ctx, http.MethodGet, "/data/milestones", nil, &out); err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	return out, nil
}

type analyzeGoalsRequest struct {
	Goals      model.Goals      `json:"goals"`
	RecentData model.RecentData `json:"recent_data"`
}

func (s *Session) AnalyzeGoals(ctx context.Context, goals model.Goals, recent model.RecentData) (*model.GoalAnalysis, error) {
	var out model.GoalAnalysis
	if err := s.call(ctx, http.MethodPost, "/analyze-goals", analyzeGoalsRequest{goals, recent}, &out); err != nil {
		return nil, fmt.Errorf("analyze goals: %w", err)
	}
	return &out, nil
}
