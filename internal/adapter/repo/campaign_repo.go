package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"donorly/internal/domain"
	"donorly/internal/infra"
	"donorly/internal/sqlinline"
)

// CampaignRepositoryPG implements domain.CampaignRepository.
type CampaignRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewCampaignRepository(sql infra.SQLExecutor) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{sql: sql}
}

func (r *CampaignRepositoryPG) Create(ctx context.Context, c *domain.Campaign) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertCampaign, c.AuthorID, c.Title, c.Cause, c.Description, c.TargetAmount, c.ImageURL)
	return row.Scan(&c.ID, &c.CreatedAt)
}

// ListAll returns every campaign, newest first.
func (r *CampaignRepositoryPG) ListAll(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListCampaigns)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

func (r *CampaignRepositoryPG) ListByAuthor(ctx context.Context, authorID string) ([]domain.Campaign, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListCampaignsByAuthor, authorID)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

func collectCampaigns(rows pgx.Rows) ([]domain.Campaign, error) {
	defer rows.Close()

	var items []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(&c.ID, &c.AuthorID, &c.Title, &c.Cause, &c.Description, &c.TargetAmount, &c.ImageURL, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.CampaignRepository = (*CampaignRepositoryPG)(nil)
