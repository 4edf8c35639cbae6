package handlers

import (
	"net/http"

	"donorly/internal/service"
)

func (a *App) GetNGOProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := a.NGOProfiles.Get(r.Context(), a.session(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"profile": toNGODTO(profile)})
}

func (a *App) SaveNGOProfile(w http.ResponseWriter, r *http.Request) {
	var in service.NGOProfileInput
	if !a.decode(w, r, &in) {
		return
	}
	res, err := a.NGOProfiles.Save(r.Context(), a.session(r), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	a.json(w, status, map[string]any{
		"profile":    toNGODTO(res.Profile),
		"created":    res.Created,
		"navigation": navigate(res.Destination, 0),
	})
}
