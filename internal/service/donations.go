package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"donorly/internal/domain"
	"donorly/internal/events"
	"donorly/internal/geo"
	"donorly/internal/infra"
)

// DonationConfirmDelay is how long the client shows the confirmation before
// navigating to the donor dashboard.
const DonationConfirmDelay = 2000 * time.Millisecond

// CoordinatesInput is an optional device position. When present both parts
// must be reported.
type CoordinatesInput struct {
	Lat *float64 `json:"lat" validate:"required"`
	Lng *float64 `json:"lng" validate:"required"`
}

// DonationInput is the donation form.
type DonationInput struct {
	Type        string            `json:"type" validate:"required,oneof=clothes food medicine others"`
	Description string            `json:"description" validate:"required,min=10"`
	Location    string            `json:"location" validate:"required,min=3"`
	Quantity    string            `json:"quantity" validate:"max=120"`
	Coordinates *CoordinatesInput `json:"coordinates,omitempty"`
}

func (in *DonationInput) normalize() {
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.Description = strings.TrimSpace(in.Description)
	in.Quantity = strings.TrimSpace(in.Quantity)
}

// SubmitResult is a stored donation and the follow-up navigation.
type SubmitResult struct {
	Donation     *domain.Donation
	Destination  domain.Destination
	ConfirmDelay time.Duration
}

// DonorContact is the donor information an NGO sees for a matching donation.
type DonorContact struct {
	DonationID string
	FullName   string
	Email      string
	Phone      string
	Location   string
}

// Donations handles donation submission and NGO-side matching.
type Donations struct {
	donations domain.DonationRepository
	ngos      domain.NGORepository
	profiles  domain.ProfileRepository
	resolver  *Resolver
	events    events.Publisher
	logger    infra.Logger
}

func NewDonations(donations domain.DonationRepository, ngos domain.NGORepository, profiles domain.ProfileRepository, resolver *Resolver, publisher events.Publisher, logger infra.Logger) *Donations {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Donations{
		donations: donations,
		ngos:      ngos,
		profiles:  profiles,
		resolver:  resolver,
		events:    publisher,
		logger:    logger,
	}
}

// Submit stores one donation for the calling donor. The location is kept
// exactly as typed. Coordinates, when given, are kept next to it and rounded
// to six decimals.
func (s *Donations) Submit(ctx context.Context, session *domain.Session, in DonationInput) (*SubmitResult, error) {
	if err := s.resolver.RequireRole(ctx, session, domain.RoleDonor); err != nil {
		return nil, err
	}
	in.normalize()
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	donation := &domain.Donation{
		DonorID:     session.UserID,
		Type:        domain.DonationType(in.Type),
		Description: in.Description,
		Location:    in.Location,
		Quantity:    in.Quantity,
	}
	if in.Coordinates != nil {
		c := domain.Coordinates{Lat: *in.Coordinates.Lat, Lng: *in.Coordinates.Lng}
		if err := geo.Validate(c); err != nil {
			return nil, fieldError("coordinates", err.Error())
		}
		rounded := geo.Round6(c)
		donation.Coordinates = &rounded
	}

	if err := s.donations.Create(ctx, donation); err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("donation_id", donation.ID).
		Str("donor_id", donation.DonorID).
		Str("type", string(donation.Type)).
		Msg("donation submitted")

	if err := s.events.Publish(ctx, events.SubjectDonationCreated, events.NewDonationCreated(donation)); err != nil {
		s.logger.Warn().Err(err).Str("donation_id", donation.ID).Msg("publish donation event failed")
	}

	return &SubmitResult{
		Donation:     donation,
		Destination:  domain.DestinationDonorDashboard,
		ConfirmDelay: DonationConfirmDelay,
	}, nil
}

// ListMine returns the calling donor's donations, newest first.
func (s *Donations) ListMine(ctx context.Context, session *domain.Session) ([]domain.Donation, error) {
	if err := s.resolver.RequireRole(ctx, session, domain.RoleDonor); err != nil {
		return nil, err
	}
	list, err := s.donations.ListByDonor(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Donation{}
	}
	sortDonations(list)
	return list, nil
}

// Matching returns the donations whose location equals the calling NGO's
// location exactly, newest first. A missing profile, an empty location or a
// failed query yields an empty list.
func (s *Donations) Matching(ctx context.Context, session *domain.Session) ([]domain.Donation, error) {
	if err := s.resolver.RequireRole(ctx, session, domain.RoleNGO); err != nil {
		return nil, err
	}
	ngo, err := s.ngos.GetByUserID(ctx, session.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn().Err(err).Str("user_id", session.UserID).Msg("load ngo profile for matching failed")
		}
		return []domain.Donation{}, nil
	}
	if ngo.Location == "" {
		return []domain.Donation{}, nil
	}
	list, err := s.donations.ListByLocation(ctx, ngo.Location)
	if err != nil {
		s.logger.Warn().Err(err).Str("location", ngo.Location).Msg("list matching donations failed")
		return []domain.Donation{}, nil
	}
	matched := slices.DeleteFunc(list, func(d domain.Donation) bool {
		return d.Location != ngo.Location
	})
	if matched == nil {
		matched = []domain.Donation{}
	}
	sortDonations(matched)
	return matched, nil
}

// DonorDetails fetches the contact details of the donor behind donationID.
// It reads the profile on every call. Only an NGO whose location equals the
// donation's location may look it up.
func (s *Donations) DonorDetails(ctx context.Context, session *domain.Session, donationID string) (*DonorContact, error) {
	if err := s.resolver.RequireRole(ctx, session, domain.RoleNGO); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(donationID); err != nil {
		return nil, domain.ErrNotFound
	}
	ngo, err := s.ngos.GetByUserID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &RedirectError{Destination: domain.DestinationNGOProfileSetup, Err: domain.ErrForbidden}
		}
		return nil, err
	}
	donation, err := s.donations.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if ngo.Location == "" || donation.Location != ngo.Location {
		return nil, domain.ErrForbidden
	}
	profile, err := s.profiles.GetByID(ctx, donation.DonorID)
	if err != nil {
		return nil, err
	}
	return &DonorContact{
		DonationID: donation.ID,
		FullName:   profile.FullName,
		Email:      profile.Email,
		Phone:      profile.Phone,
		Location:   profile.Location,
	}, nil
}

func sortDonations(list []domain.Donation) {
	slices.SortStableFunc(list, func(a, b domain.Donation) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
}
