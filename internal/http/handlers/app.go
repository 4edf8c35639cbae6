package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"donorly/internal/domain"
	"donorly/internal/infra"
	"donorly/internal/infra/geoip"
	"donorly/internal/middleware"
	"donorly/internal/service"
	"donorly/internal/storage"
)

// Pinger reports database reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds the services behind the HTTP API.
type App struct {
	Logger      infra.Logger
	DB          Pinger
	Registrar   *service.Registrar
	Resolver    *service.Resolver
	NGOProfiles *service.NGOProfiles
	Donations   *service.Donations
	Campaigns   *service.Campaigns
	Stats       *service.Stats
	Files       *storage.FileStore
	Geo         geoip.Locator
}

type errorPayload struct {
	Code        string            `json:"code"`
	Message     string            `json:"message"`
	Fields      map[string]string `json:"fields,omitempty"`
	Destination string            `json:"destination,omitempty"`
	Step        string            `json:"step,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.writeError(w, status, errorPayload{Code: code, Message: message})
}

func (a *App) writeError(w http.ResponseWriter, status int, p errorPayload) {
	a.json(w, status, map[string]errorPayload{"error": p})
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

func (a *App) session(r *http.Request) *domain.Session {
	return middleware.SessionFromContext(r.Context())
}

// fail maps a service error onto the error envelope. Store errors keep their
// original message.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr     *service.ValidationError
		redirect *service.RedirectError
		step     *service.StepError
		resolve  *service.ResolveError
	)
	switch {
	case errors.As(err, &verr):
		a.writeError(w, http.StatusUnprocessableEntity, errorPayload{Code: "validation_failed", Message: "please correct the highlighted fields", Fields: verr.Fields})
	case errors.As(err, &redirect):
		status, code := http.StatusForbidden, "forbidden"
		if errors.Is(redirect.Err, domain.ErrUnauthorized) {
			status, code = http.StatusUnauthorized, "unauthorized"
		}
		a.writeError(w, status, errorPayload{Code: code, Message: redirect.Err.Error(), Destination: string(redirect.Destination)})
	case errors.As(err, &step):
		a.logFailure(r, err)
		a.writeError(w, http.StatusInternalServerError, errorPayload{Code: "signup_incomplete", Message: err.Error(), Step: string(step.Step)})
	case errors.As(err, &resolve):
		a.logFailure(r, err)
		a.error(w, http.StatusServiceUnavailable, "resolve_failed", err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		a.error(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrSessionRevoked):
		a.writeError(w, http.StatusUnauthorized, errorPayload{Code: "unauthorized", Message: err.Error(), Destination: string(domain.DestinationSignIn)})
	case errors.Is(err, domain.ErrDuplicateAccount):
		a.error(w, http.StatusConflict, "duplicate_account", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, geoip.ErrUnavailable):
		a.error(w, http.StatusServiceUnavailable, "geo_unavailable", "location lookup is unavailable, type your location instead")
	case errors.Is(err, storage.ErrTooLarge):
		a.error(w, http.StatusRequestEntityTooLarge, "file_too_large", err.Error())
	case errors.Is(err, storage.ErrUnsupportedType), errors.Is(err, storage.ErrEmpty):
		a.error(w, http.StatusUnsupportedMediaType, "unsupported_file", err.Error())
	case errors.Is(err, context.Canceled):
		// client went away; nothing useful to send
	default:
		a.logFailure(r, err)
		a.error(w, http.StatusInternalServerError, "store_error", err.Error())
	}
}

func (a *App) logFailure(r *http.Request, err error) {
	a.Logger.Error().
		Err(err).
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Str("path", r.URL.Path).
		Msg("request failed")
}
