package events

import (
	"context"
	"strings"
	"testing"
	"time"

	"donorly/internal/domain"
)

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	if err := p.Publish(context.Background(), SubjectDonationCreated, struct{}{}); err != nil {
		t.Fatalf("Nop.Publish error: %v", err)
	}
}

func TestDonationCreatedRoundTrip(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	evt := NewDonationCreated(&domain.Donation{
		ID:        "d-1",
		DonorID:   "u-1",
		Type:      domain.DonationTypeFood,
		Location:  "Pune",
		Quantity:  "10 kg",
		CreatedAt: created,
	})
	data, err := Encode(evt)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if !strings.Contains(string(data), `"location":"Pune"`) || !strings.Contains(string(data), `"type":"food"`) {
		t.Fatalf("unexpected payload %s", data)
	}

	got, err := DecodeDonationCreated(data)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got.ID != "d-1" || !got.CreatedAt.Equal(created) {
		t.Fatalf("decoded = %+v", got)
	}
}

func TestDecodeDonationCreatedRejectsIncomplete(t *testing.T) {
	if _, err := DecodeDonationCreated([]byte(`{"id":"d-1"}`)); err == nil {
		t.Fatalf("expected error for missing location")
	}
	if _, err := DecodeDonationCreated([]byte(`not json`)); err == nil {
		t.Fatalf("expected error for invalid json")
	}
}

func TestCampaignPublishedPayload(t *testing.T) {
	evt := NewCampaignPublished(&domain.Campaign{ID: "c-1", AuthorID: "n-1", Title: "Warm winter", Cause: "Blankets", TargetAmount: 100000})
	data, err := Encode(evt)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if !strings.Contains(string(data), `"target_amount":100000`) {
		t.Fatalf("unexpected payload %s", data)
	}
}
