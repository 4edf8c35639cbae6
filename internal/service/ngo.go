package service

import (
	"context"
	"strings"

	"donorly/internal/domain"
	"donorly/internal/infra"
)

// NGOProfileInput is the organization profile form.
type NGOProfileInput struct {
	Name           string `json:"name" validate:"required,max=160"`
	RegistrationID string `json:"registration_id" validate:"required,max=64"`
	LogoURL        string `json:"logo_url" validate:"omitempty,url"`
	Description    string `json:"description" validate:"required,min=10"`
	Location       string `json:"location" validate:"required,min=3"`
}

func (in *NGOProfileInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.RegistrationID = strings.TrimSpace(in.RegistrationID)
	in.LogoURL = strings.TrimSpace(in.LogoURL)
	in.Description = strings.TrimSpace(in.Description)
}

// SaveResult reports the stored profile and whether it was newly created.
type SaveResult struct {
	Profile     *domain.NGOProfile
	Created     bool
	Destination domain.Destination
}

// NGOProfiles manages the organization profile of NGO accounts.
type NGOProfiles struct {
	ngos     domain.NGORepository
	resolver *Resolver
	logger   infra.Logger
}

func NewNGOProfiles(ngos domain.NGORepository, resolver *Resolver, logger infra.Logger) *NGOProfiles {
	return &NGOProfiles{ngos: ngos, resolver: resolver, logger: logger}
}

// Save creates or updates the caller's profile. Only NGO accounts may call it.
func (s *NGOProfiles) Save(ctx context.Context, session *domain.Session, in NGOProfileInput) (*SaveResult, error) {
	if err := s.resolver.RequireRole(ctx, session, domain.RoleNGO); err != nil {
		return nil, err
	}
	in.normalize()
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	profile := &domain.NGOProfile{
		UserID:         session.UserID,
		Name:           in.Name,
		RegistrationID: in.RegistrationID,
		LogoURL:        in.LogoURL,
		Description:    in.Description,
		Location:       in.Location,
	}
	created, err := s.ngos.Upsert(ctx, profile)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", session.UserID).Bool("created", created).Msg("ngo profile saved")
	return &SaveResult{Profile: profile, Created: created, Destination: domain.DestinationNGODashboard}, nil
}

// Get returns the caller's profile or domain.ErrNotFound when none exists yet.
func (s *NGOProfiles) Get(ctx context.Context, session *domain.Session) (*domain.NGOProfile, error) {
	if err := s.resolver.RequireRole(ctx, session, domain.RoleNGO); err != nil {
		return nil, err
	}
	return s.ngos.GetByUserID(ctx, session.UserID)
}
