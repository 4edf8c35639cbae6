package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"donorly/internal/adapter/repo"
	"donorly/internal/domain"
	"donorly/internal/identity"
	"donorly/internal/infra"
	"donorly/internal/service"
)

type inspector struct {
	accounts domain.AccountRepository
	profiles domain.ProfileRepository
	ngos     domain.NGORepository
	resolver *service.Resolver
}

func main() {
	var emailFlag string
	flag.StringVar(&emailFlag, "email", "", "account email to inspect")
	flag.Parse()

	email := identity.NormalizeEmail(emailFlag)
	if email == "" {
		exitWithError(errors.New("-email is required"))
	}

	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli", cfg.LogLevel).With().Str("cmd", "accounts").Logger()
	runner := infra.NewSQLRunner(pool, logger)

	roles := repo.NewRoleRepository(runner)
	ngos := repo.NewNGORepository(runner)
	in := &inspector{
		accounts: repo.NewAccountRepository(runner),
		profiles: repo.NewProfileRepository(runner),
		ngos:     ngos,
		resolver: service.NewResolver(roles, ngos),
	}
	if err := in.report(ctx, os.Stdout, email); err != nil {
		exitWithError(err)
	}
}

// report prints the role, profile state and landing destination of an account.
func (in *inspector) report(ctx context.Context, w io.Writer, email string) error {
	account, err := in.accounts.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}
	fmt.Fprintf(w, "Account %s (%s) created %s\n", account.ID, account.Email, account.CreatedAt.UTC().Format(time.RFC3339))

	if profile, err := in.profiles.GetByID(ctx, account.ID); err == nil {
		fmt.Fprintf(w, "profile=%s phone=%s location=%s\n", profile.FullName, profile.Phone, profile.Location)
	} else if errors.Is(err, domain.ErrNotFound) {
		fmt.Fprintln(w, "profile=missing")
	} else {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	session := &domain.Session{UserID: account.ID, Email: account.Email}
	role, err := in.resolver.Role(ctx, session)
	if err != nil {
		fmt.Fprintf(w, "role=unresolved (%v)\n", err)
		return nil
	}
	fmt.Fprintf(w, "role=%s\n", role)

	if role == domain.RoleNGO {
		ngo, err := in.ngos.GetByUserID(ctx, account.ID)
		switch {
		case err == nil:
			fmt.Fprintf(w, "ngo=%s registration=%s location=%s\n", ngo.Name, ngo.RegistrationID, ngo.Location)
		case errors.Is(err, domain.ErrNotFound):
			fmt.Fprintln(w, "ngo=missing")
		default:
			return fmt.Errorf("failed to load ngo profile: %w", err)
		}
	}

	dest, err := in.resolver.Resolve(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to resolve destination: %w", err)
	}
	fmt.Fprintf(w, "destination=%s (%s)\n", dest, dest.Path())
	return nil
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, strings.TrimSpace(err.Error()))
	os.Exit(1)
}
