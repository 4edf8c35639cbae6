package domain

import (
	"context"
	"time"
)

// IdentityProvider creates accounts and manages sessions.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password string) (*Account, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	Issue(ctx context.Context, account *Account) (*Session, error)
	SignOut(ctx context.Context, session *Session) error
	CurrentUser(ctx context.Context, token string) (*Session, error)
	DeleteAccount(ctx context.Context, id string) error
}

// AccountRepository persists identity provider accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Delete(ctx context.Context, id string) error
}

// SessionRevocationRepository tracks signed-out session tokens until they expire.
type SessionRevocationRepository interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// ProfileRepository handles user profiles.
type ProfileRepository interface {
	Insert(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	Delete(ctx context.Context, id string) error
}

// RoleRepository handles user role assignments.
type RoleRepository interface {
	Insert(ctx context.Context, assignment *RoleAssignment) error
	GetByUserID(ctx context.Context, userID string) (*RoleAssignment, error)
	Delete(ctx context.Context, userID string) error
}

// NGORepository handles NGO organization profiles.
type NGORepository interface {
	Upsert(ctx context.Context, ngo *NGOProfile) (created bool, err error)
	GetByUserID(ctx context.Context, userID string) (*NGOProfile, error)
	ListByLocation(ctx context.Context, location string) ([]NGOProfile, error)
}

// DonationRepository handles donation persistence.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	GetByID(ctx context.Context, id string) (*Donation, error)
	ListByLocation(ctx context.Context, location string) ([]Donation, error)
	ListByDonor(ctx context.Context, donorID string) ([]Donation, error)
}

// CampaignRepository handles campaign persistence.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *Campaign) error
	ListAll(ctx context.Context) ([]Campaign, error)
	ListByAuthor(ctx context.Context, authorID string) ([]Campaign, error)
}

// StatsRepository reads landing page counters.
type StatsRepository interface {
	Summary(ctx context.Context) (*Stats, error)
}
