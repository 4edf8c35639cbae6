package handlers

import (
	"time"

	"github.com/samber/lo"

	"donorly/internal/domain"
	"donorly/internal/geo"
	"donorly/internal/locale"
)

type sessionDTO struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toSessionDTO(s *domain.Session) sessionDTO {
	return sessionDTO{Token: s.Token, UserID: s.UserID, Email: s.Email, ExpiresAt: s.ExpiresAt}
}

type navigation struct {
	Destination    domain.Destination `json:"destination"`
	Path           string             `json:"path"`
	ConfirmDelayMS int64              `json:"confirm_delay_ms,omitempty"`
}

func navigate(d domain.Destination, delay time.Duration) navigation {
	return navigation{Destination: d, Path: d.Path(), ConfirmDelayMS: delay.Milliseconds()}
}

type profileDTO struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

func toProfileDTO(p *domain.Profile) profileDTO {
	return profileDTO{ID: p.ID, FullName: p.FullName, Email: p.Email, Phone: p.Phone, Location: p.Location}
}

type ngoDTO struct {
	Name           string    `json:"name"`
	RegistrationID string    `json:"registration_id"`
	LogoURL        string    `json:"logo_url,omitempty"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toNGODTO(n *domain.NGOProfile) ngoDTO {
	return ngoDTO{
		Name:           n.Name,
		RegistrationID: n.RegistrationID,
		LogoURL:        n.LogoURL,
		Description:    n.Description,
		Location:       n.Location,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}

type coordinatesDTO struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Display string  `json:"display"`
}

type donationDTO struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	TypeLabel   string          `json:"type_label"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Quantity    string          `json:"quantity,omitempty"`
	Coordinates *coordinatesDTO `json:"coordinates,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toDonationDTOs(list []domain.Donation, f *locale.Formatter) []donationDTO {
	return lo.Map(list, func(d domain.Donation, _ int) donationDTO {
		return toDonationDTO(&d, f)
	})
}

func toDonationDTO(d *domain.Donation, f *locale.Formatter) donationDTO {
	dto := donationDTO{
		ID:          d.ID,
		Type:        string(d.Type),
		TypeLabel:   f.Label(string(d.Type)),
		Description: d.Description,
		Location:    d.Location,
		Quantity:    d.Quantity,
		CreatedAt:   d.CreatedAt,
	}
	if d.Coordinates != nil {
		dto.Coordinates = &coordinatesDTO{Lat: d.Coordinates.Lat, Lng: d.Coordinates.Lng, Display: geo.FormatDisplay(*d.Coordinates)}
	}
	return dto
}

type campaignDTO struct {
	ID              string    `json:"id"`
	AuthorID        string    `json:"author_id"`
	Title           string    `json:"title"`
	Cause           string    `json:"cause"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"image_url,omitempty"`
	TargetAmount    float64   `json:"target_amount"`
	Raised          float64   `json:"raised"`
	PercentFunded   float64   `json:"percent_funded"`
	TargetDisplay   string    `json:"target_display"`
	RaisedDisplay   string    `json:"raised_display"`
	ProgressDisplay string    `json:"progress_display"`
	CreatedAt       time.Time `json:"created_at"`
}

func toCampaignDTOs(list []domain.Campaign, f *locale.Formatter) []campaignDTO {
	return lo.Map(list, func(c domain.Campaign, _ int) campaignDTO {
		return toCampaignDTO(&c, f)
	})
}

func toCampaignDTO(c *domain.Campaign, f *locale.Formatter) campaignDTO {
	return campaignDTO{
		ID:              c.ID,
		AuthorID:        c.AuthorID,
		Title:           c.Title,
		Cause:           c.Cause,
		Description:     c.Description,
		ImageURL:        c.ImageURL,
		TargetAmount:    c.TargetAmount,
		Raised:          c.Raised(),
		PercentFunded:   c.PercentFunded(),
		TargetDisplay:   f.Rupees(c.TargetAmount),
		RaisedDisplay:   f.Rupees(c.Raised()),
		ProgressDisplay: f.Percent(c.PercentFunded()),
		CreatedAt:       c.CreatedAt,
	}
}
