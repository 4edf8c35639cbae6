package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"donorly/internal/locale"
	"donorly/internal/middleware"
	"donorly/internal/service"
)

func (a *App) formatter(r *http.Request) *locale.Formatter {
	return locale.NewFormatter(middleware.LocaleFromContext(r.Context()))
}

func (a *App) SubmitDonation(w http.ResponseWriter, r *http.Request) {
	var in service.DonationInput
	if !a.decode(w, r, &in) {
		return
	}
	res, err := a.Donations.Submit(r.Context(), a.session(r), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"donation":   toDonationDTO(res.Donation, a.formatter(r)),
		"navigation": navigate(res.Destination, res.ConfirmDelay),
	})
}

func (a *App) MyDonations(w http.ResponseWriter, r *http.Request) {
	list, err := a.Donations.ListMine(r.Context(), a.session(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": toDonationDTOs(list, a.formatter(r))})
}

func (a *App) MatchingDonations(w http.ResponseWriter, r *http.Request) {
	list, err := a.Donations.Matching(r.Context(), a.session(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": toDonationDTOs(list, a.formatter(r))})
}

// DonorDetails is fetched when an NGO opens a donation card. Responses are
// never cached.
func (a *App) DonorDetails(w http.ResponseWriter, r *http.Request) {
	contact, err := a.Donations.DonorDetails(r.Context(), a.session(r), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	a.json(w, http.StatusOK, map[string]any{
		"donation_id": contact.DonationID,
		"donor": map[string]string{
			"full_name": contact.FullName,
			"email":     contact.Email,
			"phone":     contact.Phone,
			"location":  contact.Location,
		},
	})
}
