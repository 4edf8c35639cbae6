package repo

import (
	"context"
	"time"

	"donorly/internal/domain"
	"donorly/internal/infra"
	"donorly/internal/sqlinline"
)

// SessionRevocationRepositoryPG stores revoked session token ids.
type SessionRevocationRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewSessionRevocationRepository(sql infra.SQLExecutor) *SessionRevocationRepositoryPG {
	return &SessionRevocationRepositoryPG{sql: sql}
}

func (r *SessionRevocationRepositoryPG) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	_, err := r.sql.Exec(ctx, sqlinline.QRevokeSession, tokenID, expiresAt)
	return err
}

func (r *SessionRevocationRepositoryPG) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var revoked bool
	if err := r.sql.QueryRow(ctx, sqlinline.QSelectSessionRevoked, tokenID).Scan(&revoked); err != nil {
		return false, err
	}
	return revoked, nil
}

// PurgeExpired deletes revocations whose token has expired anyway.
func (r *SessionRevocationRepositoryPG) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.sql.Exec(ctx, sqlinline.QPurgeRevokedSessions, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ domain.SessionRevocationRepository = (*SessionRevocationRepositoryPG)(nil)
