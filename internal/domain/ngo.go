package domain

import "time"

// NGOProfile describes the organization behind an NGO account. It is created
// lazily after sign-up; its absence marks an incomplete onboarding.
type NGOProfile struct {
	UserID         string
	Name           string
	RegistrationID string
	LogoURL        string
	Description    string
	Location       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
