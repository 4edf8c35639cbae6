package handlers

import (
	"errors"
	"net/http"

	"donorly/internal/geo"
	"donorly/internal/infra/geoip"
	"donorly/internal/middleware"
)

// GeoHint suggests a location from the caller's IP. It never changes stored
// data; the client decides whether to use the suggestion.
func (a *App) GeoHint(w http.ResponseWriter, r *http.Request) {
	hint, err := geo.HintFor(a.Geo, middleware.ClientIP(r))
	if err != nil {
		if errors.Is(err, geoip.ErrUnavailable) {
			a.fail(w, r, err)
			return
		}
		a.Logger.Debug().Err(err).Msg("geo hint lookup failed")
		a.error(w, http.StatusNotFound, "location_unknown", "could not determine your location, type it instead")
		return
	}
	a.json(w, http.StatusOK, hint)
}
