package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"donorly/internal/adapter/repo"
	"donorly/internal/domain"
	"donorly/internal/events"
	"donorly/internal/infra"
)

const (
	maxInFlight    = 8
	handlerTimeout = 10 * time.Second
)

type notifier struct {
	ngos   domain.NGORepository
	logger infra.Logger
}

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogLevel).With().Str("cmd", "notifier").Logger()

	if cfg.NATSURL == "" {
		logger.Fatal().Msg("notifier: NATS_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("notifier: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)

	conn, err := events.Connect(cfg.NATSURL, "donorly-notifier", logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("notifier: nats connection failed")
	}
	defer conn.Close()

	n := &notifier{ngos: repo.NewNGORepository(runner), logger: logger}
	sub, err := events.Subscribe(conn, events.SubjectDonationCreated, n.handleDonation, maxInFlight, handlerTimeout, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("notifier: subscribe failed")
	}

	logger.Info().Str("subject", events.SubjectDonationCreated).Msg("notifier: started")
	<-ctx.Done()

	sub.Stop()
	logger.Info().Msg("notifier: stopped")
}

// handleDonation logs one line per NGO whose location matches the donation.
func (n *notifier) handleDonation(ctx context.Context, msg *nats.Msg) error {
	evt, err := events.DecodeDonationCreated(msg.Data)
	if err != nil {
		return err
	}
	matches, err := n.ngos.ListByLocation(ctx, evt.Location)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			n.logger.Warn().Str("donation_id", evt.ID).Msg("notifier: lookup timed out")
		}
		return err
	}
	if len(matches) == 0 {
		n.logger.Debug().Str("donation_id", evt.ID).Str("location", evt.Location).Msg("notifier: no ngo in location")
		return nil
	}
	for _, ngo := range matches {
		n.logger.Info().
			Str("donation_id", evt.ID).
			Str("donation_type", evt.Type).
			Str("ngo_user_id", ngo.UserID).
			Str("ngo_name", ngo.Name).
			Str("location", evt.Location).
			Msg("notifier: match")
	}
	return nil
}
