package repo

import (
	"context"
	"fmt"

	"donorly/internal/domain"
	"donorly/internal/infra"
	"donorly/internal/sqlinline"
)

// AccountRepositoryPG implements domain.AccountRepository backed by PostgreSQL.
type AccountRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewAccountRepository creates a new AccountRepositoryPG.
func NewAccountRepository(sql infra.SQLExecutor) *AccountRepositoryPG {
	return &AccountRepositoryPG{sql: sql}
}

// Create inserts the account. A taken email yields domain.ErrDuplicateAccount.
func (r *AccountRepositoryPG) Create(ctx context.Context, account *domain.Account) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertAccount, account.ID, account.Email, account.PasswordHash)
	if err := row.Scan(&account.CreatedAt); err != nil {
		if infra.IsUniqueViolation(err) {
			return domain.ErrDuplicateAccount
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByEmail fetches an account by its normalised email.
func (r *AccountRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var a domain.Account
	row := r.sql.QueryRow(ctx, sqlinline.QSelectAccountByEmail, email)
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Delete removes an account.
func (r *AccountRepositoryPG) Delete(ctx context.Context, id string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QDeleteAccount, id)
	return err
}

var _ domain.AccountRepository = (*AccountRepositoryPG)(nil)
