package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"donorly/internal/http/handlers"
	"donorly/internal/infra"
	"donorly/internal/locale"
	"donorly/internal/middleware"
)

// Options carries the cross-cutting pieces the router wires in.
type Options struct {
	Logger         infra.Logger
	Sessions       middleware.SessionDecoder
	Negotiator     *locale.Negotiator
	CountryLookup  middleware.CountryLookup
	AllowedOrigins []string
	TrustedProxies *middleware.TrustedProxies
	AuthRatePerMin int
	StaticFiles    http.Handler
	RequestTimeout time.Duration
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	if opts.Negotiator == nil {
		opts.Negotiator = locale.NewNegotiator("")
	}
	authLimit := middleware.RateLimit(opts.AuthRatePerMin, time.Minute)

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP(opts.TrustedProxies),
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.Negotiator, opts.CountryLookup),
		middleware.Session(opts.Sessions),
	)
	if opts.RequestTimeout > 0 {
		r.Use(chimw.Timeout(opts.RequestTimeout))
	}

	if opts.StaticFiles != nil {
		r.Handle("/static/*", http.StripPrefix("/static", opts.StaticFiles))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/stats", app.StatsSummary)
		r.Get("/campaigns", app.ListCampaigns)
		r.Get("/geo/hint", app.GeoHint)

		r.Route("/auth", func(r chi.Router) {
			r.With(authLimit).Post("/signup", app.SignUp)
			r.With(authLimit).Post("/signin", app.SignIn)
			r.With(middleware.RequireSession).Post("/signout", app.SignOut)
			r.Get("/resolve", app.Resolve)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession)

			r.Get("/me", app.Me)
			r.Post("/uploads", app.Upload)

			r.Post("/donations", app.SubmitDonation)
			r.Get("/donor/donations", app.MyDonations)

			r.Post("/campaigns", app.PublishCampaign)

			r.Route("/ngo", func(r chi.Router) {
				r.Get("/profile", app.GetNGOProfile)
				r.Put("/profile", app.SaveNGOProfile)
				r.Get("/donations", app.MatchingDonations)
				r.Get("/donations/{id}/donor", app.DonorDetails)
				r.Get("/campaigns", app.MyCampaigns)
			})
		})
	})

	return r
}
