package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/armonia-app/armonia-core/internal/accounts"
	"github.com/armonia-app/armonia-core/internal/appstate"
	"github.com/armonia-app/armonia-core/internal/auth"
	"github.com/armonia-app/armonia-core/internal/cli"
	"github.com/armonia-app/armonia-core/internal/session"
	"github.com/armonia-app/armonia-core/pkg/config"
	"github.com/armonia-app/armonia-core/pkg/logger"
	"github.com/armonia-app/armonia-core/pkg/storage"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "armonia"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "armonia",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, cleanup, err := buildBackend(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap storage", err)
		os.Exit(1)
	}
	defer cleanup()

	authService, err := auth.NewService(auth.ServiceParams{
		Store:          accounts.NewStore(backend, logg),
		SessionBackend: backend,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	store, err := appstate.NewStore(ctx, appstate.StoreParams{Backend: backend, Logger: logg})
	if err != nil {
		logg.Error(ctx, "failed to create app state store", err)
		os.Exit(1)
	}

	sessions, err := session.NewManager(ctx, session.ManagerParams{
		Auth:   authService,
		App:    store,
		Config: cfg.Auth,
		Logger: logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	app, err := cli.NewApp(cli.AppParams{
		Sessions: sessions,
		Store:    store,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create cli app", err)
		os.Exit(1)
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"backend": cfg.Storage.Backend,
	}), "starting armonia")

	app.Run(ctx)
}

// buildBackend selects the key-value backend from configuration. The cleanup
// func closes backends that hold connections.
func buildBackend(ctx context.Context, cfg *config.Config, logg *logger.Logger) (storage.Backend, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		return storage.NewMemory(), func() {}, nil

	case config.StorageBackendRedis:
		client, err := storage.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logg.Error(ctx, "error closing redis", err)
			}
		}
		return client, cleanup, nil

	default:
		backend, err := storage.NewFile(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return backend, func() {}, nil
	}
}
