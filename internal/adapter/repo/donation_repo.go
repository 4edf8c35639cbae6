package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"donorly/internal/domain"
	"donorly/internal/infra"
	"donorly/internal/sqlinline"
)

// DonationRepositoryPG implements domain.DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(sql infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{sql: sql}
}

// Create inserts a new donation record and fills in its id and timestamp.
func (r *DonationRepositoryPG) Create(ctx context.Context, d *domain.Donation) error {
	var lat, lng *float64
	if d.Coordinates != nil {
		lat, lng = &d.Coordinates.Lat, &d.Coordinates.Lng
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertDonation, d.DonorID, string(d.Type), d.Description, d.Location, d.Quantity, lat, lng)
	return row.Scan(&d.ID, &d.CreatedAt)
}

func (r *DonationRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	d, err := scanDonation(r.sql.QueryRow(ctx, sqlinline.QSelectDonationByID, id))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// ListByLocation returns donations whose location equals location exactly, newest first.
func (r *DonationRepositoryPG) ListByLocation(ctx context.Context, location string) ([]domain.Donation, error) {
	return r.list(ctx, sqlinline.QListDonationsByLocation, location)
}

// ListByDonor returns a donor's own donations, newest first.
func (r *DonationRepositoryPG) ListByDonor(ctx context.Context, donorID string) ([]domain.Donation, error) {
	return r.list(ctx, sqlinline.QListDonationsByDonor, donorID)
}

func (r *DonationRepositoryPG) list(ctx context.Context, query string, arg string) ([]domain.Donation, error) {
	rows, err := r.sql.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanDonation(row pgx.Row) (*domain.Donation, error) {
	var (
		d        domain.Donation
		kind     string
		lat, lng *float64
	)
	if err := row.Scan(&d.ID, &d.DonorID, &kind, &d.Description, &d.Location, &d.Quantity, &lat, &lng, &d.CreatedAt); err != nil {
		return nil, err
	}
	d.Type = domain.DonationType(kind)
	if lat != nil && lng != nil {
		d.Coordinates = &domain.Coordinates{Lat: *lat, Lng: *lng}
	}
	return &d, nil
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
