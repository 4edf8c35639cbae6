package handlers

import (
	"context"
	"net/http"
	"time"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	if a.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("health check ping failed")
			a.json(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Stats.Summary(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]int64{
		"donors":    stats.Donors,
		"ngos":      stats.NGOs,
		"donations": stats.Donations,
		"campaigns": stats.Campaigns,
	})
}
