package repo

import (
	"context"

	"donorly/internal/domain"
	"donorly/internal/infra"
	"donorly/internal/sqlinline"
)

// StatsRepositoryPG reads landing page counters.
type StatsRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewStatsRepository(sql infra.SQLExecutor) *StatsRepositoryPG {
	return &StatsRepositoryPG{sql: sql}
}

func (r *StatsRepositoryPG) Summary(ctx context.Context) (*domain.Stats, error) {
	var s domain.Stats
	row := r.sql.QueryRow(ctx, sqlinline.QStatsSummary)
	if err := row.Scan(&s.Donors, &s.NGOs, &s.Donations, &s.Campaigns); err != nil {
		return nil, err
	}
	return &s, nil
}

var _ domain.StatsRepository = (*StatsRepositoryPG)(nil)
