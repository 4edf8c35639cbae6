// Package events publishes Donorly domain events over NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"donorly/internal/domain"
)

const (
	SubjectDonationCreated   = "donorly.donation.created"
	SubjectCampaignPublished = "donorly.campaign.published"
)

// Publisher emits domain events. Implementations must be safe for concurrent
// use.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// DonationCreated is sent after a donation has been stored.
type DonationCreated struct {
	ID        string    `json:"id"`
	DonorID   string    `json:"donor_id"`
	Type      string    `json:"type"`
	Location  string    `json:"location"`
	Quantity  string    `json:"quantity,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDonationCreated builds the event payload for d.
func NewDonationCreated(d *domain.Donation) DonationCreated {
	return DonationCreated{
		ID:        d.ID,
		DonorID:   d.DonorID,
		Type:      string(d.Type),
		Location:  d.Location,
		Quantity:  d.Quantity,
		CreatedAt: d.CreatedAt,
	}
}

// CampaignPublished is sent after a campaign has been stored.
type CampaignPublished struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"author_id"`
	Title        string    `json:"title"`
	Cause        string    `json:"cause"`
	TargetAmount float64   `json:"target_amount"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCampaignPublished builds the event payload for c.
func NewCampaignPublished(c *domain.Campaign) CampaignPublished {
	return CampaignPublished{
		ID:           c.ID,
		AuthorID:     c.AuthorID,
		Title:        c.Title,
		Cause:        c.Cause,
		TargetAmount: c.TargetAmount,
		CreatedAt:    c.CreatedAt,
	}
}

// Encode marshals an event payload.
func Encode(payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return data, nil
}

// DecodeDonationCreated parses a donation.created message body.
func DecodeDonationCreated(data []byte) (*DonationCreated, error) {
	var evt DonationCreated
	if err := json.Unmarshal(data, &evt); err != nil {
		return nil, fmt.Errorf("decode donation event: %w", err)
	}
	if evt.ID == "" || evt.Location == "" {
		return nil, fmt.Errorf("decode donation event: missing id or location")
	}
	return &evt, nil
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

var _ Publisher = Nop{}
