package repo

import (
	"context"
	"fmt"

	"donorly/internal/domain"
	"donorly/internal/infra"
	"donorly/internal/sqlinline"
)

// RoleRepositoryPG implements domain.RoleRepository.
type RoleRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewRoleRepository(sql infra.SQLExecutor) *RoleRepositoryPG {
	return &RoleRepositoryPG{sql: sql}
}

func (r *RoleRepositoryPG) Insert(ctx context.Context, a *domain.RoleAssignment) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertUserRole, a.UserID, string(a.Role))
	return row.Scan(&a.CreatedAt)
}

func (r *RoleRepositoryPG) GetByUserID(ctx context.Context, userID string) (*domain.RoleAssignment, error) {
	var (
		a    domain.RoleAssignment
		role string
	)
	row := r.sql.QueryRow(ctx, sqlinline.QSelectUserRole, userID)
	if err := row.Scan(&a.UserID, &role, &a.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", userID, err)
	}
	a.Role = parsed
	return &a, nil
}

func (r *RoleRepositoryPG) Delete(ctx context.Context, userID string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QDeleteUserRole, userID)
	return err
}

var _ domain.RoleRepository = (*RoleRepositoryPG)(nil)
