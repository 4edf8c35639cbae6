// Package identity is Donorly's own identity provider: password accounts
// and signed session tokens with server-side revocation.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"donorly/internal/domain"
	"donorly/internal/infra"
)

const issuer = "donorly"

// Options configures token signing and password hashing.
type Options struct {
	Secret     string
	TTL        time.Duration
	BcryptCost int
}

// Provider implements domain.IdentityProvider.
type Provider struct {
	accounts    domain.AccountRepository
	revocations domain.SessionRevocationRepository
	secret      []byte
	ttl         time.Duration
	cost        int
	logger      infra.Logger
	now         func() time.Time
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewProvider wires a Provider. A zero TTL falls back to 24h and an invalid
// bcrypt cost to bcrypt.DefaultCost.
func NewProvider(accounts domain.AccountRepository, revocations domain.SessionRevocationRepository, opts Options, logger infra.Logger) (*Provider, error) {
	if strings.TrimSpace(opts.Secret) == "" {
		return nil, errors.New("identity: signing secret is required")
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.BcryptCost < bcrypt.MinCost || opts.BcryptCost > bcrypt.MaxCost {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &Provider{
		accounts:    accounts,
		revocations: revocations,
		secret:      []byte(opts.Secret),
		ttl:         opts.TTL,
		cost:        opts.BcryptCost,
		logger:      logger,
		now:         time.Now,
	}, nil
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateAccount registers a new email/password account. Duplicate emails
// return domain.ErrDuplicateAccount.
func (p *Provider) CreateAccount(ctx context.Context, email, password string) (*domain.Account, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	account := &domain.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := p.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// SignIn checks the credentials and issues a session. Unknown email and wrong
// password both yield domain.ErrInvalidCredentials.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	account, err := p.accounts.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return p.Issue(ctx, account)
}

// Issue signs a new session token for account.
func (p *Provider) Issue(_ context.Context, account *domain.Account) (*domain.Session, error) {
	now := p.now().UTC().Truncate(time.Second)
	claims := sessionClaims{
		Email: account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   account.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	return &domain.Session{
		Token:     token,
		TokenID:   claims.ID,
		UserID:    account.ID,
		Email:     account.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(p.ttl),
	}, nil
}

// CurrentUser decodes and validates a session token.
func (p *Provider) CurrentUser(ctx context.Context, token string) (*domain.Session, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}
	if claims.Issuer != issuer || claims.Subject == "" || claims.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	revoked, err := p.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, domain.ErrSessionRevoked
	}
	s := &domain.Session{
		Token:   token,
		TokenID: claims.ID,
		UserID:  claims.Subject,
		Email:   claims.Email,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// SignOut revokes the session until its natural expiry.
func (p *Provider) SignOut(ctx context.Context, session *domain.Session) error {
	if session == nil || session.TokenID == "" {
		return domain.ErrUnauthorized
	}
	expires := session.ExpiresAt
	if expires.IsZero() {
		expires = p.now().Add(p.ttl)
	}
	return p.revocations.Revoke(ctx, session.TokenID, expires)
}

// DeleteAccount removes an account. Registration uses it to compensate a
// failed sign-up.
func (p *Provider) DeleteAccount(ctx context.Context, id string) error {
	return p.accounts.Delete(ctx, id)
}

// StartRevocationCleanup purges expired revocations every interval until ctx
// is cancelled.
func (p *Provider) StartRevocationCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := p.revocations.PurgeExpired(ctx, p.now())
				if err != nil {
					p.logger.Error().Err(err).Msg("purge revoked sessions failed")
					continue
				}
				if n > 0 {
					p.logger.Info().Int64("purged", n).Msg("purged expired session revocations")
				}
			}
		}
	}()
}

var _ domain.IdentityProvider = (*Provider)(nil)
