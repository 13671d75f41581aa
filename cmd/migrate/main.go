// Command migrate applies the database schema and can seed the profile owner.
// It is safe to run repeatedly.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/hongminglow/linkinbio-be/internal/auth"
	"github.com/hongminglow/linkinbio-be/internal/config"
	"github.com/hongminglow/linkinbio-be/internal/service"
	"github.com/hongminglow/linkinbio-be/internal/storage/backend"
)

type seedFlags struct {
	email    string
	password string
	name     string
	bio      string
	avatar   string
}

func main() {
	loadLocalEnv()

	var seed seedFlags
	flag.StringVar(&seed.email, "seed-email", "", "email of the profile owner to create")
	flag.StringVar(&seed.password, "seed-password", os.Getenv("SEED_PASSWORD"), "password of the profile owner (or SEED_PASSWORD)")
	flag.StringVar(&seed.name, "seed-name", "", "display name of the profile owner")
	flag.StringVar(&seed.bio, "seed-bio", "", "bio of the profile owner")
	flag.StringVar(&seed.avatar, "seed-avatar", "", "profile picture URL of the profile owner")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	if err := run(context.Background(), seed); err != nil {
		slog.Error("migrate failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, seed seedFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := backend.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("schema up to date", "driver", cfg.DatabaseDriver)

	if seed.email == "" {
		return nil
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer)
	authenticator := service.NewAuthenticator(store.Users(), tokens, auth.DefaultBcryptCost)
	id, err := authenticator.Register(ctx, service.RegisterInput{
		Email:             seed.email,
		Password:          seed.password,
		Name:              seed.name,
		Bio:               seed.bio,
		ProfilePictureURL: seed.avatar,
	})
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		slog.Info("profile owner already seeded", "email", seed.email)
		return nil
	case err != nil:
		return err
	}
	slog.Info("profile owner seeded", "email", seed.email, "user_id", id)
	return nil
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found; relying on existing environment")
	}
}
