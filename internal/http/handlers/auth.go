package handlers

import (
	"net/http"

	"donorly/internal/domain"
	"donorly/internal/service"
)

type authResponse struct {
	Session      sessionDTO  `json:"session"`
	Role         domain.Role `json:"role,omitempty"`
	Navigation   *navigation `json:"navigation,omitempty"`
	ResolveError string      `json:"resolve_error,omitempty"`
}

func (a *App) SignUp(w http.ResponseWriter, r *http.Request) {
	var in service.SignUpInput
	if !a.decode(w, r, &in) {
		return
	}
	res, err := a.Registrar.SignUp(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	nav := navigate(res.Destination, 0)
	a.json(w, http.StatusCreated, authResponse{Session: toSessionDTO(res.Session), Role: res.Role, Navigation: &nav})
}

// SignIn answers 200 even when the landing page could not be resolved; the
// session is valid and the client retries GET /v1/auth/resolve.
func (a *App) SignIn(w http.ResponseWriter, r *http.Request) {
	var in service.SignInInput
	if !a.decode(w, r, &in) {
		return
	}
	res, err := a.Registrar.SignIn(r.Context(), in)
	if err != nil && (res == nil || res.Session == nil) {
		a.fail(w, r, err)
		return
	}
	out := authResponse{Session: toSessionDTO(res.Session), Role: res.Role}
	if err != nil {
		a.Logger.Warn().Err(err).Str("user_id", res.Session.UserID).Msg("resolve after sign-in failed")
		out.ResolveError = err.Error()
	} else {
		nav := navigate(res.Destination, 0)
		out.Navigation = &nav
	}
	a.json(w, http.StatusOK, out)
}

func (a *App) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := a.Registrar.SignOut(r.Context(), a.session(r)); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Resolve returns the caller's landing page. With ?page= it also reports
// whether that page may be shown.
func (a *App) Resolve(w http.ResponseWriter, r *http.Request) {
	session := a.session(r)
	page := domain.Destination(r.URL.Query().Get("page"))
	if page == "" {
		dest, err := a.Resolver.Resolve(r.Context(), session)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		a.json(w, http.StatusOK, map[string]any{"navigation": navigate(dest, 0)})
		return
	}
	dest, allowed, err := a.Resolver.Guard(r.Context(), session, page)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"navigation": navigate(dest, 0),
		"page":       page,
		"allowed":    allowed,
	})
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	me, err := a.Registrar.Me(r.Context(), a.session(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"profile":    toProfileDTO(me.Profile),
		"role":       me.Role,
		"navigation": navigate(me.Destination, 0),
	})
}
