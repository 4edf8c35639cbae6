package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"donorly/internal/domain"
)

type fakeIdentity struct {
	mu        sync.Mutex
	accounts  map[string]*domain.Account
	createErr error
	signInErr error
	deleted   []string
	revoked   []string
	seq       int
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{accounts: make(map[string]*domain.Account)}
}

func (f *fakeIdentity) CreateAccount(_ context.Context, email, password string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.accounts[email]; ok {
		return nil, domain.ErrDuplicateAccount
	}
	f.seq++
	acc := &domain.Account{ID: fmt.Sprintf("00000000-0000-0000-0000-%012d", f.seq), Email: email, PasswordHash: password}
	f.accounts[email] = acc
	return acc, nil
}

func (f *fakeIdentity) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	f.mu.Lock()
	if f.signInErr != nil {
		f.mu.Unlock()
		return nil, f.signInErr
	}
	acc, ok := f.accounts[email]
	f.mu.Unlock()
	if !ok || acc.PasswordHash != password {
		return nil, domain.ErrInvalidCredentials
	}
	return f.Issue(ctx, acc)
}

func (f *fakeIdentity) Issue(_ context.Context, acc *domain.Account) (*domain.Session, error) {
	return &domain.Session{Token: "token-" + acc.ID, TokenID: "jti-" + acc.ID, UserID: acc.ID, Email: acc.Email}, nil
}

func (f *fakeIdentity) SignOut(_ context.Context, s *domain.Session) error {
	if s == nil {
		return domain.ErrUnauthorized
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked = append(f.revoked, s.TokenID)
	return nil
}

func (f *fakeIdentity) CurrentUser(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrUnauthorized
}

func (f *fakeIdentity) DeleteAccount(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	for email, acc := range f.accounts {
		if acc.ID == id {
			delete(f.accounts, email)
		}
	}
	return nil
}

type fakeProfiles struct {
	mu        sync.Mutex
	rows      map[string]*domain.Profile
	insertErr error
	gets      int
	deleted   []string
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{rows: make(map[string]*domain.Profile)}
}

func (f *fakeProfiles) Insert(_ context.Context, p *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	p, ok := f.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	delete(f.rows, id)
	return nil
}

type fakeRoles struct {
	mu        sync.Mutex
	rows      map[string]domain.Role
	insertErr error
	getErr    error
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{rows: make(map[string]domain.Role)}
}

func (f *fakeRoles) Insert(_ context.Context, a *domain.RoleAssignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.rows[a.UserID] = a.Role
	return nil
}

func (f *fakeRoles) GetByUserID(_ context.Context, userID string) (*domain.RoleAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	role, ok := f.rows[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.RoleAssignment{UserID: userID, Role: role}, nil
}

func (f *fakeRoles) Delete(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, userID)
	return nil
}

type fakeNGOs struct {
	mu     sync.Mutex
	rows   map[string]*domain.NGOProfile
	getErr error
}

func newFakeNGOs() *fakeNGOs {
	return &fakeNGOs{rows: make(map[string]*domain.NGOProfile)}
}

func (f *fakeNGOs) Upsert(_ context.Context, n *domain.NGOProfile) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, exists := f.rows[n.UserID]
	cp := *n
	f.rows[n.UserID] = &cp
	return !exists, nil
}

func (f *fakeNGOs) GetByUserID(_ context.Context, userID string) (*domain.NGOProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	n, ok := f.rows[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNGOs) ListByLocation(_ context.Context, location string) ([]domain.NGOProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.NGOProfile
	for _, n := range f.rows {
		if n.Location == location {
			out = append(out, *n)
		}
	}
	return out, nil
}

type fakeDonations struct {
	mu        sync.Mutex
	rows      []domain.Donation
	createErr error
	listErr   error
	seq       int
}

func (f *fakeDonations) Create(_ context.Context, d *domain.Donation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	d.ID = fmt.Sprintf("10000000-0000-0000-0000-%012d", f.seq)
	d.CreatedAt = time.Date(2024, 1, 1, 0, 0, f.seq, 0, time.UTC)
	f.rows = append(f.rows, *d)
	return nil
}

func (f *fakeDonations) GetByID(_ context.Context, id string) (*domain.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.rows {
		if d.ID == id {
			cp := d
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDonations) ListByLocation(_ context.Context, location string) ([]domain.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Donation
	for _, d := range f.rows {
		if d.Location == location {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDonations) ListByDonor(_ context.Context, donorID string) ([]domain.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Donation
	for _, d := range f.rows {
		if d.DonorID == donorID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeCampaigns struct {
	mu   sync.Mutex
	rows []domain.Campaign
	seq  int
}

func (f *fakeCampaigns) Create(_ context.Context, c *domain.Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	c.ID = fmt.Sprintf("20000000-0000-0000-0000-%012d", f.seq)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Date(2024, 1, 1, 0, 0, f.seq, 0, time.UTC)
	}
	f.rows = append(f.rows, *c)
	return nil
}

func (f *fakeCampaigns) ListAll(context.Context) ([]domain.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Campaign(nil), f.rows...), nil
}

func (f *fakeCampaigns) ListByAuthor(_ context.Context, authorID string) ([]domain.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Campaign
	for _, c := range f.rows {
		if c.AuthorID == authorID {
			out = append(out, c)
		}
	}
	return out, nil
}

type published struct {
	subject string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, published{subject: subject, payload: payload})
	return nil
}

// world bundles the fakes behind every service.
type world struct {
	identity  *fakeIdentity
	profiles  *fakeProfiles
	roles     *fakeRoles
	ngos      *fakeNGOs
	donations *fakeDonations
	campaigns *fakeCampaigns
	publisher *recordingPublisher
	resolver  *Resolver
}

func newWorld() *world {
	w := &world{
		identity:  newFakeIdentity(),
		profiles:  newFakeProfiles(),
		roles:     newFakeRoles(),
		ngos:      newFakeNGOs(),
		donations: &fakeDonations{},
		campaigns: &fakeCampaigns{},
		publisher: &recordingPublisher{},
	}
	w.resolver = NewResolver(w.roles, w.ngos)
	return w
}

// account seeds a user with a role and profile and returns its session.
func (w *world) account(id string, role domain.Role, location string) *domain.Session {
	w.roles.rows[id] = role
	w.profiles.rows[id] = &domain.Profile{ID: id, FullName: "User " + id, Email: id + "@example.com", Phone: "+91 98765 43210", Location: location}
	return &domain.Session{UserID: id, TokenID: "jti-" + id, Email: id + "@example.com"}
}

func (w *world) ngo(id, location string) *domain.Session {
	s := w.account(id, domain.RoleNGO, location)
	w.ngos.rows[id] = &domain.NGOProfile{UserID: id, Name: "NGO " + id, RegistrationID: "REG-" + id, Description: "Helping people in need", Location: location}
	return s
}
