package httpapi

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"donorly/internal/domain"
)

// memoryStore backs every repository interface with maps for router tests.
type memoryStore struct {
	mu        sync.Mutex
	accounts  map[string]*domain.Account
	revoked   map[string]time.Time
	profiles  map[string]domain.Profile
	roles     map[string]domain.Role
	ngos      map[string]domain.NGOProfile
	donations []domain.Donation
	campaigns []domain.Campaign
	clock     time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		accounts: make(map[string]*domain.Account),
		revoked:  make(map[string]time.Time),
		profiles: make(map[string]domain.Profile),
		roles:    make(map[string]domain.Role),
		ngos:     make(map[string]domain.NGOProfile),
		clock:    time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (m *memoryStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

type accountRepo struct{ *memoryStore }

func (r accountRepo) Create(_ context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.Email]; ok {
		return domain.ErrDuplicateAccount
	}
	a.CreatedAt = r.tick()
	cp := *a
	r.accounts[a.Email] = &cp
	return nil
}

func (r accountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r accountRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for email, a := range r.accounts {
		if a.ID == id {
			delete(r.accounts, email)
		}
	}
	return nil
}

type revocationRepo struct{ *memoryStore }

func (r revocationRepo) Revoke(_ context.Context, id string, exp time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[id] = exp
	return nil
}

func (r revocationRepo) IsRevoked(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[id]
	return ok, nil
}

func (r revocationRepo) PurgeExpired(context.Context, time.Time) (int64, error) { return 0, nil }

type profileRepo struct{ *memoryStore }

func (r profileRepo) Insert(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.CreatedAt = r.tick()
	r.profiles[p.ID] = *p
	return nil
}

func (r profileRepo) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r profileRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, id)
	return nil
}

type roleRepo struct{ *memoryStore }

func (r roleRepo) Insert(_ context.Context, a *domain.RoleAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[a.UserID] = a.Role
	return nil
}

func (r roleRepo) GetByUserID(_ context.Context, id string) (*domain.RoleAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.RoleAssignment{UserID: id, Role: role}, nil
}

func (r roleRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.roles, id)
	return nil
}

type ngoRepo struct{ *memoryStore }

func (r ngoRepo) Upsert(_ context.Context, n *domain.NGOProfile) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, exists := r.ngos[n.UserID]
	now := r.tick()
	n.CreatedAt, n.UpdatedAt = now, now
	if exists {
		n.CreatedAt = prev.CreatedAt
	}
	r.ngos[n.UserID] = *n
	return !exists, nil
}

func (r ngoRepo) GetByUserID(_ context.Context, id string) (*domain.NGOProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.ngos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &n, nil
}

func (r ngoRepo) ListByLocation(_ context.Context, location string) ([]domain.NGOProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.NGOProfile
	for _, n := range r.ngos {
		if n.Location == location {
			out = append(out, n)
		}
	}
	return out, nil
}

type donationRepo struct{ *memoryStore }

func (r donationRepo) Create(_ context.Context, d *domain.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.ID = uuid.NewString()
	d.CreatedAt = r.tick()
	r.donations = append(r.donations, *d)
	return nil
}

func (r donationRepo) GetByID(_ context.Context, id string) (*domain.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.donations {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r donationRepo) ListByLocation(_ context.Context, location string) ([]domain.Donation, error) {
	return r.filter(func(d domain.Donation) bool { return d.Location == location }), nil
}

func (r donationRepo) ListByDonor(_ context.Context, donorID string) ([]domain.Donation, error) {
	return r.filter(func(d domain.Donation) bool { return d.DonorID == donorID }), nil
}

func (r donationRepo) filter(keep func(domain.Donation) bool) []domain.Donation {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Donation
	for _, d := range r.donations {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

type campaignRepo struct{ *memoryStore }

func (r campaignRepo) Create(_ context.Context, c *domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.NewString()
	c.CreatedAt = r.tick()
	r.campaigns = append(r.campaigns, *c)
	return nil
}

func (r campaignRepo) ListAll(context.Context) ([]domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Campaign(nil), r.campaigns...), nil
}

func (r campaignRepo) ListByAuthor(_ context.Context, authorID string) ([]domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Campaign
	for _, c := range r.campaigns {
		if c.AuthorID == authorID {
			out = append(out, c)
		}
	}
	return out, nil
}

type statsRepo struct{ *memoryStore }

func (r statsRepo) Summary(context.Context) (*domain.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &domain.Stats{Donations: int64(len(r.donations)), Campaigns: int64(len(r.campaigns))}
	for _, role := range r.roles {
		if role == domain.RoleDonor {
			s.Donors++
		} else {
			s.NGOs++
		}
	}
	return s, nil
}
