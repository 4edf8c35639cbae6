package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role enumerates the account roles chosen at sign-up.
type Role string

const (
	RoleDonor Role = "donor"
	RoleNGO   Role = "ngo"
)

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	return r == RoleDonor || r == RoleNGO
}

// ParseRole converts user input into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// Account is the identity held by the identity provider. The ID is assigned
// at sign-up and never changes.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile carries the contact details captured at sign-up. Its ID equals the
// owning Account ID.
type Profile struct {
	ID        string
	FullName  string
	Email     string
	Phone     string
	Location  string
	CreatedAt time.Time
}

// RoleAssignment links an account to its role. Written once at sign-up.
type RoleAssignment struct {
	UserID    string
	Role      Role
	CreatedAt time.Time
}

// Session is an authenticated identity decoded from a session token.
type Session struct {
	Token     string
	TokenID   string
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
