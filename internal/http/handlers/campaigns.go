package handlers

import (
	"net/http"

	"donorly/internal/service"
)

func (a *App) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	list, err := a.Campaigns.List(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	f := a.formatter(r)
	a.json(w, http.StatusOK, map[string]any{"items": toCampaignDTOs(list, f), "locale": f.Tag().String()})
}

func (a *App) MyCampaigns(w http.ResponseWriter, r *http.Request) {
	list, err := a.Campaigns.ListMine(r.Context(), a.session(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": toCampaignDTOs(list, a.formatter(r))})
}

func (a *App) PublishCampaign(w http.ResponseWriter, r *http.Request) {
	var in service.CampaignInput
	if !a.decode(w, r, &in) {
		return
	}
	res, err := a.Campaigns.Publish(r.Context(), a.session(r), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"campaign":   toCampaignDTO(res.Campaign, a.formatter(r)),
		"navigation": navigate(res.Destination, res.ConfirmDelay),
	})
}
