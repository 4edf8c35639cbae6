package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"donorly/internal/domain"
	"donorly/internal/infra"
	"donorly/internal/sqlinline"
)

// NGORepositoryPG implements domain.NGORepository.
type NGORepositoryPG struct {
	sql infra.SQLExecutor
}

func NewNGORepository(sql infra.SQLExecutor) *NGORepositoryPG {
	return &NGORepositoryPG{sql: sql}
}

// Upsert creates or updates the organization profile keyed by user id.
func (r *NGORepositoryPG) Upsert(ctx context.Context, n *domain.NGOProfile) (bool, error) {
	var inserted bool
	row := r.sql.QueryRow(ctx, sqlinline.QUpsertNGO, n.UserID, n.Name, n.RegistrationID, n.LogoURL, n.Description, n.Location)
	if err := row.Scan(&n.CreatedAt, &n.UpdatedAt, &inserted); err != nil {
		return false, err
	}
	return inserted, nil
}

func (r *NGORepositoryPG) GetByUserID(ctx context.Context, userID string) (*domain.NGOProfile, error) {
	n, err := scanNGO(r.sql.QueryRow(ctx, sqlinline.QSelectNGOByUser, userID))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

// ListByLocation returns NGOs registered at exactly location.
func (r *NGORepositoryPG) ListByLocation(ctx context.Context, location string) ([]domain.NGOProfile, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListNGOsByLocation, location)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.NGOProfile
	for rows.Next() {
		n, err := scanNGO(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanNGO(row pgx.Row) (*domain.NGOProfile, error) {
	var n domain.NGOProfile
	if err := row.Scan(&n.UserID, &n.Name, &n.RegistrationID, &n.LogoURL, &n.Description, &n.Location, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

var _ domain.NGORepository = (*NGORepositoryPG)(nil)
