package domain

import "time"

// Campaign is an immutable fundraising request published by an NGO.
type Campaign struct {
	ID           string
	AuthorID     string
	Title        string
	Cause        string
	Description  string
	TargetAmount float64
	ImageURL     string
	CreatedAt    time.Time
}

// Raised is always zero: no pledge or payment is ever linked to a campaign.
func (c Campaign) Raised() float64 {
	return 0
}

// PercentFunded returns the progress bar value, clamped to [0, 100].
func (c Campaign) PercentFunded() float64 {
	if c.TargetAmount <= 0 {
		return 0
	}
	pct := c.Raised() / c.TargetAmount * 100
	if pct > 100 {
		return 100
	}
	return pct
}
