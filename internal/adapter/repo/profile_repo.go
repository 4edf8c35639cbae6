package repo

import (
	"context"

	"donorly/internal/domain"
	"donorly/internal/infra"
	"donorly/internal/sqlinline"
)

// ProfileRepositoryPG implements domain.ProfileRepository.
type ProfileRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewProfileRepository(sql infra.SQLExecutor) *ProfileRepositoryPG {
	return &ProfileRepositoryPG{sql: sql}
}

// Insert creates the profile for an account.
func (r *ProfileRepositoryPG) Insert(ctx context.Context, p *domain.Profile) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertProfile, p.ID, p.FullName, p.Email, p.Phone, p.Location)
	return row.Scan(&p.CreatedAt)
}

// GetByID fetches a profile by account id.
func (r *ProfileRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var p domain.Profile
	row := r.sql.QueryRow(ctx, sqlinline.QSelectProfileByID, id)
	if err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.Location, &p.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepositoryPG) Delete(ctx context.Context, id string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QDeleteProfile, id)
	return err
}

var _ domain.ProfileRepository = (*ProfileRepositoryPG)(nil)
