// Package dashboard assembles the per-household report behind the dashboard
// and details pages: statistics, freshly written charts, and a notification
// to connected viewers.
package dashboard

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukerupert/energydash/internal/chart"
	"github.com/dukerupert/energydash/internal/energy"
	"github.com/dukerupert/energydash/internal/metrics"
	"github.com/dukerupert/energydash/internal/model"
	"github.com/dukerupert/energydash/internal/store"
	"github.com/dukerupert/energydash/internal/websocket"
)

var ErrHouseholdNotFound = errors.New("household not found")

// Report is everything a household page renders.
type Report struct {
	Household *model.Household
	Stats     *model.Stats
	ChartURLs map[chart.Kind]string
}

// ChartURL returns the served path of one chart, for templates.
func (r *Report) ChartURL(kind string) string {
	return r.ChartURLs[chart.Kind(kind)]
}

// Broadcaster delivers notifications to connected dashboards.
type Broadcaster interface {
	Broadcast(msg websocket.Message)
}

type Service struct {
	households *store.HouseholdStore
	readings   *store.ReadingStore
	renderer   *chart.Renderer
	hub        Broadcaster
	logger     *slog.Logger
}

// NewService wires the report pipeline. hub may be nil.
func NewService(hs *store.HouseholdStore, rs *store.ReadingStore, renderer *chart.Renderer, hub Broadcaster, logger *slog.Logger) *Service {
	return &Service{
		households: hs,
		readings:   rs,
		renderer:   renderer,
		hub:        hub,
		logger:     logger,
	}
}

func (s *Service) Households() ([]model.Household, error) {
	households, err := s.households.List()
	if err != nil {
		return nil, err
	}
	if households == nil {
		households = []model.Household{}
	}
	return households, nil
}

// Stats computes the statistics for a household without touching charts.
func (s *Service) Stats(id int64) (*model.Household, *model.Stats, error) {
	home, err := s.households.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if home == nil {
		return nil, nil, ErrHouseholdNotFound
	}

	production, consumption, err := s.readings.Series(id)
	if err != nil {
		return nil, nil, err
	}
	stats, err := energy.Compute(production, consumption)
	if err != nil {
		return nil, nil, fmt.Errorf("compute stats for household %d: %w", id, err)
	}
	return home, stats, nil
}

// Report computes the household's statistics and regenerates its charts.
func (s *Service) Report(id int64) (*Report, error) {
	start := time.Now()

	home, stats, err := s.Stats(id)
	if err != nil {
		return nil, err
	}

	if _, err := s.renderer.Generate(id, stats); err != nil {
		return nil, fmt.Errorf("generate charts for household %d: %w", id, err)
	}

	urls := make(map[chart.Kind]string, len(chart.Kinds))
	extra := make(map[string]any, len(chart.Kinds))
	for _, kind := range chart.Kinds {
		urls[kind] = chart.URL(kind, id)
		extra[string(kind)] = urls[kind]
	}

	if s.hub != nil {
		s.hub.Broadcast(websocket.NewMessage("charts", "updated", id, extra))
	}

	metrics.ObserveReport(time.Since(start))
	s.logger.Debug("report built", "household_id", id, "duration", time.Since(start))

	return &Report{Household: home, Stats: stats, ChartURLs: urls}, nil
}
