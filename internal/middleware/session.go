package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"donorly/internal/domain"
)

// SessionDecoder turns a bearer token into a session.
type SessionDecoder interface {
	CurrentUser(ctx context.Context, token string) (*domain.Session, error)
}

type sessionKey struct{}

// Session decodes the bearer token, when present, and stores the session in
// the request context. Requests without a valid token continue anonymously;
// RequireSession rejects them where a session is mandatory.
func Session(decoder SessionDecoder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			session, err := decoder.CurrentUser(r.Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) && !errors.Is(err, domain.ErrSessionRevoked) {
					zerolog.Ctx(r.Context()).Error().Err(err).Msg("decode session failed")
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), session)))
		})
	}
}

// RequireSession answers 401 with the sign-in destination when the request
// carries no valid session.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromContext(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "sign in to continue", string(domain.DestinationSignIn))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// SessionFromContext returns the session stored by Session, or nil.
func SessionFromContext(ctx context.Context) *domain.Session {
	if v, ok := ctx.Value(sessionKey{}).(*domain.Session); ok {
		return v
	}
	return nil
}

func ContextWithSession(ctx context.Context, s *domain.Session) context.Context {
	if s == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, s)
}
