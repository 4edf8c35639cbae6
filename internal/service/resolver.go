package service

import (
	"context"
	"errors"

	"donorly/internal/domain"
)

// Resolver maps an authenticated account to its landing page.
type Resolver struct {
	roles domain.RoleRepository
	ngos  domain.NGORepository
}

func NewResolver(roles domain.RoleRepository, ngos domain.NGORepository) *Resolver {
	return &Resolver{roles: roles, ngos: ngos}
}

// Resolve returns the destination for session. A nil session resolves to the
// sign-in page. Store failures come back as *ResolveError and are not
// retried. Resolve performs no writes.
func (r *Resolver) Resolve(ctx context.Context, session *domain.Session) (domain.Destination, error) {
	if session == nil {
		return domain.DestinationSignIn, nil
	}
	role, err := r.Role(ctx, session)
	if err != nil {
		return "", err
	}
	return r.destinationFor(ctx, session.UserID, role)
}

// Role loads the role assigned to the session's account.
func (r *Resolver) Role(ctx context.Context, session *domain.Session) (domain.Role, error) {
	if session == nil {
		return "", domain.ErrUnauthorized
	}
	assignment, err := r.roles.GetByUserID(ctx, session.UserID)
	if err != nil {
		return "", &ResolveError{Err: err}
	}
	return assignment.Role, nil
}

func (r *Resolver) destinationFor(ctx context.Context, userID string, role domain.Role) (domain.Destination, error) {
	switch role {
	case domain.RoleDonor:
		return domain.DestinationDonorDashboard, nil
	case domain.RoleNGO:
		_, err := r.ngos.GetByUserID(ctx, userID)
		switch {
		case err == nil:
			return domain.DestinationNGODashboard, nil
		case errors.Is(err, domain.ErrNotFound):
			return domain.DestinationNGOProfileSetup, nil
		default:
			return "", &ResolveError{Err: err}
		}
	default:
		return "", &ResolveError{Err: domain.ErrInvalidRole}
	}
}

// RequireRole guards an operation reserved for one role. Anonymous callers
// get a *RedirectError to the sign-in page wrapping domain.ErrUnauthorized;
// callers with another role get one to their own landing page wrapping
// domain.ErrForbidden.
func (r *Resolver) RequireRole(ctx context.Context, session *domain.Session, want domain.Role) error {
	if session == nil {
		return &RedirectError{Destination: domain.DestinationSignIn, Err: domain.ErrUnauthorized}
	}
	role, err := r.Role(ctx, session)
	if err != nil {
		return err
	}
	if role == want {
		return nil
	}
	dest, err := r.destinationFor(ctx, session.UserID, role)
	if err != nil {
		return err
	}
	return &RedirectError{Destination: dest, Err: domain.ErrForbidden}
}

// Guard decides whether the visitor may open page. It returns the resolved
// destination and whether page is allowed. The NGO profile page stays open to
// every NGO so an existing profile can be edited; the campaign list is public.
func (r *Resolver) Guard(ctx context.Context, session *domain.Session, page domain.Destination) (domain.Destination, bool, error) {
	dest, err := r.Resolve(ctx, session)
	if err != nil {
		return "", false, err
	}
	switch page {
	case domain.DestinationCampaigns, domain.DestinationSignIn:
		return dest, true, nil
	case domain.DestinationNGOProfileSetup:
		ngo := dest == domain.DestinationNGODashboard || dest == domain.DestinationNGOProfileSetup
		return dest, ngo, nil
	default:
		return dest, dest == page, nil
	}
}
