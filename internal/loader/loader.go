// Package loader refreshes a session's State Store from the API.
package loader

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kidandcat/diametrics/internal/api"
	"github.com/kidandcat/diametrics/internal/model"
	"github.com/kidandcat/diametrics/internal/observability"
	"github.com/kidandcat/diametrics/internal/state"
)

// Source fetches every collection of one user. *api.Session implements it.
type Source interface {
	Glucose(ctx context.Context) ([]model.GlucoseReading, error)
	Nutrition(ctx context.Context) ([]model.NutritionEntry, error)
	Activity(ctx context.Context) ([]model.ActivityEntry, error)
	Weight(ctx context.Context) ([]model.WeightEntry, error)
	Risk(ctx context.Context) (*model.RiskAssessment, error)
	Goals(ctx context.Context) (*model.Goals, error)
	Streaks(ctx context.Context) (*model.Streak, error)
	Milestones(ctx context.Context) ([]model.Milestone, error)
}

type Loader struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Loader {
	return &Loader{logger: logger}
}

// LoadAll fetches every collection concurrently and replaces the store's data
// only when all fetches succeed. A nil source means no one is logged in and
// nothing happens.
//
// When the API rejects the credentials the returned error wraps
// api.ErrUnauthenticated and the caller must log the user out. Any other
// failure is logged and returned with the store left untouched.
func (l *Loader) LoadAll(ctx context.Context, src Source, store *state.Store) error {
	if src == nil {
		return nil
	}

	var d state.Data
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { d.Glucose, err = src.Glucose(gctx); return })
	g.Go(func() (err error) { d.Nutrition, err = src.Nutrition(gctx); return })
	g.Go(func() (err error) { d.Activity, err = src.Activity(gctx); return })
	g.Go(func() (err error) { d.Weight, err = src.Weight(gctx); return })
	g.Go(func() (err error) { d.Risk, err = src.Risk(gctx); return })
	g.Go(func() (err error) { d.Goals, err = src.Goals(gctx); return })
	g.Go(func() (err error) { d.Streak, err = src.Streaks(gctx); return })
	g.Go(func() (err error) { d.Milestones, err = src.Milestones(gctx); return })

	if err := g.Wait(); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			observability.RecordRefresh("unauthenticated")
			return err
		}
		observability.RecordRefresh("error")
		l.logger.Error("load dashboard data", zap.String("user", store.Username()), zap.Error(err))
		return fmt.Errorf("load all: %w", err)
	}

	store.Replace(d)
	observability.RecordRefresh("ok")
	l.logger.Debug("dashboard data loaded",
		zap.String("user", store.Username()),
		zap.Int("glucose", len(d.Glucose)),
		zap.Int("nutrition", len(d.Nutrition)),
		zap.Int("activity", len(d.Activity)),
		zap.Int("weight", len(d.Weight)),
	)
	return nil
}
