package service

import (
	"context"
	"errors"
	"strings"

	"donorly/internal/domain"
	"donorly/internal/infra"
)

// SignUpInput is the registration form.
type SignUpInput struct {
	Role     string `json:"role" validate:"required,oneof=donor ngo"`
	FullName string `json:"full_name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"required,max=32"`
	Location string `json:"location" validate:"required,min=3"`
}

func (in *SignUpInput) normalize() {
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Location = strings.TrimSpace(in.Location)
}

// SignInInput is the sign-in form.
type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is a signed-in session and where the client goes next.
type AuthResult struct {
	Session     *domain.Session
	Role        domain.Role
	Destination domain.Destination
}

// Registrar runs sign-up, sign-in and sign-out.
type Registrar struct {
	identity domain.IdentityProvider
	profiles domain.ProfileRepository
	roles    domain.RoleRepository
	resolver *Resolver
	logger   infra.Logger
}

func NewRegistrar(identity domain.IdentityProvider, profiles domain.ProfileRepository, roles domain.RoleRepository, resolver *Resolver, logger infra.Logger) *Registrar {
	return &Registrar{identity: identity, profiles: profiles, roles: roles, resolver: resolver, logger: logger}
}

// SignUp creates the account, its profile and its role assignment in that
// order. When a later write fails the earlier ones are deleted again and a
// *StepError names the failed step. Donors land on their dashboard, NGOs on
// the profile setup page.
func (s *Registrar) SignUp(ctx context.Context, in SignUpInput) (*AuthResult, error) {
	in.normalize()
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, fieldError("role", "must be one of: donor, ngo")
	}

	account, err := s.identity.CreateAccount(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			return nil, err
		}
		return nil, &StepError{Step: StepAccount, Err: err}
	}

	profile := &domain.Profile{
		ID:       account.ID,
		FullName: in.FullName,
		Email:    account.Email,
		Phone:    in.Phone,
		Location: in.Location,
	}
	if err := s.profiles.Insert(ctx, profile); err != nil {
		s.compensate(ctx, account.ID, false)
		return nil, &StepError{Step: StepProfile, Err: err}
	}

	if err := s.roles.Insert(ctx, &domain.RoleAssignment{UserID: account.ID, Role: role}); err != nil {
		s.compensate(ctx, account.ID, true)
		return nil, &StepError{Step: StepRole, Err: err}
	}

	session, err := s.identity.Issue(ctx, account)
	if err != nil {
		return nil, err
	}

	dest := domain.DestinationDonorDashboard
	if role == domain.RoleNGO {
		dest = domain.DestinationNGOProfileSetup
	}
	s.logger.Info().Str("user_id", account.ID).Str("role", string(role)).Msg("account registered")
	return &AuthResult{Session: session, Role: role, Destination: dest}, nil
}

// compensate deletes what sign-up wrote so far, newest first. Failures are
// logged and do not replace the original error.
func (s *Registrar) compensate(ctx context.Context, userID string, withProfile bool) {
	// The request may already be cancelled; the cleanup still has to run.
	ctx = context.WithoutCancel(ctx)
	if withProfile {
		if err := s.profiles.Delete(ctx, userID); err != nil {
			s.logger.Error().Err(err).Str("user_id", userID).Msg("compensate sign-up: delete profile failed")
		}
	}
	if err := s.identity.DeleteAccount(ctx, userID); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("compensate sign-up: delete account failed")
	}
}

// SignIn authenticates and resolves the landing page. If resolution fails
// after a successful sign-in the session is still returned alongside the
// error.
func (s *Registrar) SignIn(ctx context.Context, in SignInInput) (*AuthResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	session, err := s.identity.SignIn(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	result := &AuthResult{Session: session}
	role, err := s.resolver.Role(ctx, session)
	if err != nil {
		return result, err
	}
	result.Role = role
	dest, err := s.resolver.destinationFor(ctx, session.UserID, role)
	if err != nil {
		return result, err
	}
	result.Destination = dest
	return result, nil
}

// SignOut revokes the session.
func (s *Registrar) SignOut(ctx context.Context, session *domain.Session) error {
	return s.identity.SignOut(ctx, session)
}

// Me is the signed-in account as shown on dashboards.
type Me struct {
	Profile     *domain.Profile
	Role        domain.Role
	Destination domain.Destination
}

// Me loads the caller's profile, role and landing page.
func (s *Registrar) Me(ctx context.Context, session *domain.Session) (*Me, error) {
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	profile, err := s.profiles.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	role, err := s.resolver.Role(ctx, session)
	if err != nil {
		return nil, err
	}
	dest, err := s.resolver.destinationFor(ctx, session.UserID, role)
	if err != nil {
		return nil, err
	}
	return &Me{Profile: profile, Role: role, Destination: dest}, nil
}
