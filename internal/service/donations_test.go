package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"donorly/internal/domain"
	"donorly/internal/events"
	"donorly/internal/infra"
)

func newDonations(w *world) *Donations {
	return NewDonations(w.donations, w.ngos, w.profiles, w.resolver, w.publisher, infra.NopLogger())
}

func TestSubmitDonation(t *testing.T) {
	w := newWorld()
	donor := w.account("donor-1", domain.RoleDonor, "Pune")

	res, err := newDonations(w).Submit(context.Background(), donor, DonationInput{
		Type:        "clothes",
		Description: "Five winter coats, good condition",
		Location:    "Pune",
		Quantity:    "5",
		Coordinates: coords(18.52043219, 73.85674449),
	})
	require.NoError(t, err)
	require.Equal(t, domain.DestinationDonorDashboard, res.Destination)
	require.Equal(t, 2*time.Second, res.ConfirmDelay)
	require.Equal(t, "donor-1", res.Donation.DonorID)
	require.Equal(t, "Pune", res.Donation.Location, "coordinates never replace the location text")
	require.Equal(t, &domain.Coordinates{Lat: 18.520432, Lng: 73.856744}, res.Donation.Coordinates)

	require.Len(t, w.donations.rows, 1)
	require.Len(t, w.publisher.events, 1)
	require.Equal(t, events.SubjectDonationCreated, w.publisher.events[0].subject)
}

func TestSubmitDonationRejectsShortDescription(t *testing.T) {
	w := newWorld()
	donor := w.account("donor-1", domain.RoleDonor, "Pune")

	_, err := newDonations(w).Submit(context.Background(), donor, DonationInput{
		Type:        "food",
		Description: "short",
		Location:    "Pune",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Description must be at least 10 characters", verr.Fields["description"])
	require.Empty(t, w.donations.rows)
}

func TestSubmitDonationValidation(t *testing.T) {
	w := newWorld()
	donor := w.account("donor-1", domain.RoleDonor, "Pune")
	svc := newDonations(w)

	_, err := svc.Submit(context.Background(), donor, DonationInput{Type: "furniture", Description: "A sturdy wooden table", Location: "Pu"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Please select a donation type", verr.Fields["type"])
	require.Equal(t, "Please provide a location", verr.Fields["location"])

	_, err = svc.Submit(context.Background(), donor, DonationInput{
		Type:        "food",
		Description: "Rice and lentils, 10 kg",
		Location:    "Pune",
		Coordinates: coords(123, 0),
	})
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "coordinates")
}

func coords(lat, lng float64) *CoordinatesInput {
	return &CoordinatesInput{Lat: &lat, Lng: &lng}
}

func TestSubmitDonationRejectsPartialCoordinates(t *testing.T) {
	for name, body := range map[string]string{
		"latitude only": `{"type":"food","description":"Rice and lentils, 10 kg","location":"Pune","coordinates":{"lat":18.52}}`,
		"empty object":  `{"type":"food","description":"Rice and lentils, 10 kg","location":"Pune","coordinates":{}}`,
		"null parts":    `{"type":"food","description":"Rice and lentils, 10 kg","location":"Pune","coordinates":{"lat":null,"lng":73.85}}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := newWorld()
			donor := w.account("donor-1", domain.RoleDonor, "Pune")

			var in DonationInput
			require.NoError(t, json.Unmarshal([]byte(body), &in))

			_, err := newDonations(w).Submit(context.Background(), donor, in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, "Location coordinates need both latitude and longitude", verr.Fields["coordinates"])
			require.Len(t, verr.Fields, 1)
			require.Empty(t, w.donations.rows)
		})
	}
}

func TestSubmitDonationAcceptsZeroCoordinates(t *testing.T) {
	w := newWorld()
	donor := w.account("donor-1", domain.RoleDonor, "Pune")

	var in DonationInput
	require.NoError(t, json.Unmarshal([]byte(`{"type":"food","description":"Rice and lentils, 10 kg","location":"Pune","coordinates":{"lat":0,"lng":0}}`), &in))

	res, err := newDonations(w).Submit(context.Background(), donor, in)
	require.NoError(t, err)
	require.Equal(t, &domain.Coordinates{Lat: 0, Lng: 0}, res.Donation.Coordinates)
}

func TestSubmitDonationKeepsLocationAsTyped(t *testing.T) {
	w := newWorld()
	donor := w.account("donor-1", domain.RoleDonor, "Pune")
	ngo := w.ngo("ngo-1", "Pune")
	svc := newDonations(w)

	res, err := svc.Submit(context.Background(), donor, DonationInput{Type: "food", Description: "Rice and lentils, 10 kg", Location: "Pune "})
	require.NoError(t, err)
	require.Equal(t, "Pune ", res.Donation.Location)

	list, err := svc.Matching(context.Background(), ngo)
	require.NoError(t, err)
	require.Empty(t, list, "a trailing space is a different location")
}

func TestSubmitDonationRequiresDonor(t *testing.T) {
	w := newWorld()
	ngo := w.ngo("ngo-1", "Pune")
	_, err := newDonations(w).Submit(context.Background(), ngo, DonationInput{Type: "food", Description: "Rice and lentils, 10 kg", Location: "Pune"})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSubmitDonationSurfacesStoreError(t *testing.T) {
	w := newWorld()
	donor := w.account("donor-1", domain.RoleDonor, "Pune")
	w.donations.createErr = errors.New("new row violates row-level security policy")

	_, err := newDonations(w).Submit(context.Background(), donor, DonationInput{Type: "food", Description: "Rice and lentils, 10 kg", Location: "Pune"})
	require.EqualError(t, err, "new row violates row-level security policy")
	require.Empty(t, w.publisher.events)
}

func TestSubmitDonationIgnoresPublishFailure(t *testing.T) {
	w := newWorld()
	donor := w.account("donor-1", domain.RoleDonor, "Pune")
	w.publisher.err = errors.New("nats: connection closed")

	_, err := newDonations(w).Submit(context.Background(), donor, DonationInput{Type: "medicine", Description: "Unopened paracetamol strips", Location: "Pune"})
	require.NoError(t, err)
	require.Len(t, w.donations.rows, 1)
}

func TestMatchingIsExactAndCaseSensitive(t *testing.T) {
	w := newWorld()
	ngo := w.ngo("ngo-1", "Pune")
	w.donations.rows = []domain.Donation{
		{ID: "d-1", DonorID: "donor-1", Location: "Pune", CreatedAt: time.Unix(100, 0)},
		{ID: "d-2", DonorID: "donor-2", Location: "pune", CreatedAt: time.Unix(200, 0)},
		{ID: "d-3", DonorID: "donor-3", Location: "Pune ", CreatedAt: time.Unix(300, 0)},
	}

	list, err := newDonations(w).Matching(context.Background(), ngo)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "d-1", list[0].ID)
}

func TestMatchingNewestFirst(t *testing.T) {
	w := newWorld()
	ngo := w.ngo("ngo-1", "Pune")
	w.donations.rows = []domain.Donation{
		{ID: "d-1", Location: "Pune", CreatedAt: time.Unix(100, 0)},
		{ID: "d-3", Location: "Pune", CreatedAt: time.Unix(300, 0)},
		{ID: "d-2", Location: "Pune", CreatedAt: time.Unix(200, 0)},
	}

	list, err := newDonations(w).Matching(context.Background(), ngo)
	require.NoError(t, err)
	require.Equal(t, []string{"d-3", "d-2", "d-1"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestMatchingDowngradesToEmpty(t *testing.T) {
	ctx := context.Background()

	t.Run("no profile", func(t *testing.T) {
		w := newWorld()
		s := w.account("ngo-1", domain.RoleNGO, "Pune")
		w.donations.rows = []domain.Donation{{ID: "d-1", Location: "Pune"}}
		list, err := newDonations(w).Matching(ctx, s)
		require.NoError(t, err)
		require.NotNil(t, list)
		require.Empty(t, list)
	})

	t.Run("empty location", func(t *testing.T) {
		w := newWorld()
		s := w.ngo("ngo-1", "")
		w.donations.rows = []domain.Donation{{ID: "d-1", Location: ""}}
		list, err := newDonations(w).Matching(ctx, s)
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run("profile lookup fails", func(t *testing.T) {
		w := newWorld()
		s := w.ngo("ngo-1", "Pune")
		w.ngos.getErr = errors.New("connection refused")
		list, err := newDonations(w).Matching(ctx, s)
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run("list query fails", func(t *testing.T) {
		w := newWorld()
		s := w.ngo("ngo-1", "Pune")
		w.donations.listErr = errors.New("statement timeout")
		list, err := newDonations(w).Matching(ctx, s)
		require.NoError(t, err)
		require.Empty(t, list)
	})
}

func TestListMine(t *testing.T) {
	w := newWorld()
	donor := w.account("donor-1", domain.RoleDonor, "Pune")
	w.donations.rows = []domain.Donation{
		{ID: "d-1", DonorID: "donor-1", Location: "Pune", CreatedAt: time.Unix(100, 0)},
		{ID: "d-2", DonorID: "donor-2", Location: "Pune", CreatedAt: time.Unix(150, 0)},
		{ID: "d-3", DonorID: "donor-1", Location: "Mumbai", CreatedAt: time.Unix(200, 0)},
	}
	list, err := newDonations(w).ListMine(context.Background(), donor)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "d-3", list[0].ID)
}

func TestDonorDetailsFetchesFreshProfile(t *testing.T) {
	w := newWorld()
	donor := w.account("donor-1", domain.RoleDonor, "Pune")
	ngo := w.ngo("ngo-1", "Pune")
	svc := newDonations(w)
	res, err := svc.Submit(context.Background(), donor, DonationInput{Type: "food", Description: "Rice and lentils, 10 kg", Location: "Pune"})
	require.NoError(t, err)

	contact, err := svc.DonorDetails(context.Background(), ngo, res.Donation.ID)
	require.NoError(t, err)
	require.Equal(t, "User donor-1", contact.FullName)
	require.Equal(t, "+91 98765 43210", contact.Phone)

	w.profiles.rows["donor-1"].Phone = "+91 90000 00000"
	contact, err = svc.DonorDetails(context.Background(), ngo, res.Donation.ID)
	require.NoError(t, err)
	require.Equal(t, "+91 90000 00000", contact.Phone)
	require.Equal(t, 2, w.profiles.gets)
}

func TestDonorDetailsAccess(t *testing.T) {
	w := newWorld()
	donor := w.account("donor-1", domain.RoleDonor, "Pune")
	elsewhere := w.ngo("ngo-2", "Mumbai")
	svc := newDonations(w)
	res, err := svc.Submit(context.Background(), donor, DonationInput{Type: "food", Description: "Rice and lentils, 10 kg", Location: "Pune"})
	require.NoError(t, err)

	_, err = svc.DonorDetails(context.Background(), elsewhere, res.Donation.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.DonorDetails(context.Background(), donor, res.Donation.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	local := w.ngo("ngo-1", "Pune")
	_, err = svc.DonorDetails(context.Background(), local, "not-a-uuid")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.DonorDetails(context.Background(), local, "30000000-0000-0000-0000-000000000001")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
