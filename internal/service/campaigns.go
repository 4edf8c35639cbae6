package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"donorly/internal/domain"
	"donorly/internal/events"
	"donorly/internal/infra"
)

// CampaignConfirmDelay is how long the client shows the confirmation before
// navigating to the campaign list.
const CampaignConfirmDelay = 1500 * time.Millisecond

// CampaignInput is the campaign form. TargetAmount stays a string so that
// non-numeric input is reported as a field error.
type CampaignInput struct {
	Title        string `json:"title" validate:"required,min=5,max=160"`
	Cause        string `json:"cause" validate:"required,min=5,max=160"`
	Description  string `json:"description" validate:"required,min=20"`
	TargetAmount string `json:"target_amount" validate:"required,positive_amount"`
	ImageURL     string `json:"image_url" validate:"omitempty,url"`
}

func (in *CampaignInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Cause = strings.TrimSpace(in.Cause)
	in.Description = strings.TrimSpace(in.Description)
	in.TargetAmount = strings.TrimSpace(in.TargetAmount)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}

// PublishResult is a stored campaign and the follow-up navigation.
type PublishResult struct {
	Campaign     *domain.Campaign
	Destination  domain.Destination
	ConfirmDelay time.Duration
}

// Campaigns publishes and lists fundraising campaigns.
type Campaigns struct {
	campaigns domain.CampaignRepository
	resolver  *Resolver
	events    events.Publisher
	logger    infra.Logger
}

func NewCampaigns(campaigns domain.CampaignRepository, resolver *Resolver, publisher events.Publisher, logger infra.Logger) *Campaigns {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Campaigns{campaigns: campaigns, resolver: resolver, events: publisher, logger: logger}
}

// Publish stores a campaign authored by the calling NGO.
func (s *Campaigns) Publish(ctx context.Context, session *domain.Session, in CampaignInput) (*PublishResult, error) {
	if err := s.resolver.RequireRole(ctx, session, domain.RoleNGO); err != nil {
		return nil, err
	}
	in.normalize()
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	amount, err := ParseAmount(in.TargetAmount)
	if err != nil {
		return nil, fieldError("target_amount", err.Error())
	}

	campaign := &domain.Campaign{
		AuthorID:     session.UserID,
		Title:        in.Title,
		Cause:        in.Cause,
		Description:  in.Description,
		TargetAmount: amount,
		ImageURL:     in.ImageURL,
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, err
	}
	s.logger.Info().Str("campaign_id", campaign.ID).Str("author_id", campaign.AuthorID).Msg("campaign published")

	if err := s.events.Publish(ctx, events.SubjectCampaignPublished, events.NewCampaignPublished(campaign)); err != nil {
		s.logger.Warn().Err(err).Str("campaign_id", campaign.ID).Msg("publish campaign event failed")
	}

	return &PublishResult{
		Campaign:     campaign,
		Destination:  domain.DestinationCampaigns,
		ConfirmDelay: CampaignConfirmDelay,
	}, nil
}

// List returns every campaign, newest first. No authentication is needed.
func (s *Campaigns) List(ctx context.Context) ([]domain.Campaign, error) {
	list, err := s.campaigns.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return sortCampaigns(list), nil
}

// ListMine returns the campaigns published by the calling NGO.
func (s *Campaigns) ListMine(ctx context.Context, session *domain.Session) ([]domain.Campaign, error) {
	if err := s.resolver.RequireRole(ctx, session, domain.RoleNGO); err != nil {
		return nil, err
	}
	list, err := s.campaigns.ListByAuthor(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return sortCampaigns(list), nil
}

func sortCampaigns(list []domain.Campaign) []domain.Campaign {
	if list == nil {
		return []domain.Campaign{}
	}
	slices.SortStableFunc(list, func(a, b domain.Campaign) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return list
}
