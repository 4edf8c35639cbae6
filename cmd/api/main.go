package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"donorly/internal/adapter/repo"
	"donorly/internal/events"
	"donorly/internal/http/handlers"
	httpapi "donorly/internal/http/httpapi"
	"donorly/internal/identity"
	"donorly/internal/infra"
	"donorly/internal/infra/geoip"
	"donorly/internal/locale"
	"donorly/internal/middleware"
	"donorly/internal/service"
	"donorly/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)

	accounts := repo.NewAccountRepository(runner)
	revocations := repo.NewSessionRevocationRepository(runner)
	profiles := repo.NewProfileRepository(runner)
	roles := repo.NewRoleRepository(runner)
	ngos := repo.NewNGORepository(runner)
	donations := repo.NewDonationRepository(runner)
	campaigns := repo.NewCampaignRepository(runner)
	stats := repo.NewStatsRepository(runner)

	provider, err := identity.NewProvider(accounts, revocations, identity.Options{
		Secret:     cfg.JWTSecret,
		TTL:        cfg.SessionTTL,
		BcryptCost: cfg.BcryptCost,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure identity provider")
	}
	provider.StartRevocationCleanup(ctx, time.Hour)

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()
	var countryLookup middleware.CountryLookup
	if resolver != nil {
		countryLookup = resolver.CountryCode
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.NATSURL != "" {
		conn, err := events.Connect(cfg.NATSURL, "donorly-api", logger)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, events disabled")
		} else {
			natsPublisher := events.NewNATSPublisher(conn, logger)
			defer natsPublisher.Close()
			publisher = natsPublisher
		}
	}

	fileStore, err := storage.NewFileStore(cfg.StoragePath, cfg.StorageBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure storage")
	}

	trustedProxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid TRUSTED_PROXIES")
	}

	destinations := service.NewResolver(roles, ngos)
	app := &handlers.App{
		Logger:      logger,
		DB:          runner,
		Registrar:   service.NewRegistrar(provider, profiles, roles, destinations, logger),
		Resolver:    destinations,
		NGOProfiles: service.NewNGOProfiles(ngos, destinations, logger),
		Donations:   service.NewDonations(donations, ngos, profiles, destinations, publisher, logger),
		Campaigns:   service.NewCampaigns(campaigns, destinations, publisher, logger),
		Stats:       service.NewStats(stats),
		Files:       fileStore,
		Geo:         resolver,
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:         logger,
		Sessions:       provider,
		Negotiator:     locale.NewNegotiator(cfg.DefaultLocale),
		CountryLookup:  countryLookup,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		TrustedProxies: trustedProxies,
		AuthRatePerMin: cfg.RateLimitPerMin,
		StaticFiles:    fileStore.Handler(),
		RequestTimeout: cfg.HTTPWriteTimeout,
	})

	server := infra.NewHTTPServer(cfg, router, logger)

	go func() {
		logger.Info().Str("addr", server.Addr()).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("http server failed")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
