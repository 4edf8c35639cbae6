package service

import (
	"context"

	"donorly/internal/domain"
)

// Stats reads the public landing page counters.
type Stats struct {
	repo domain.StatsRepository
}

func NewStats(repo domain.StatsRepository) *Stats {
	return &Stats{repo: repo}
}

func (s *Stats) Summary(ctx context.Context) (*domain.Stats, error) {
	return s.repo.Summary(ctx)
}
