package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/techsaavy8784/face-recognization-wallet/internal/api"
	"github.com/techsaavy8784/face-recognization-wallet/internal/app"
	"github.com/techsaavy8784/face-recognization-wallet/internal/config"
	"github.com/techsaavy8784/face-recognization-wallet/internal/gateway"
	"github.com/techsaavy8784/face-recognization-wallet/internal/logger"
	"github.com/techsaavy8784/face-recognization-wallet/internal/middleware"
	"github.com/techsaavy8784/face-recognization-wallet/internal/storage"
	"github.com/techsaavy8784/face-recognization-wallet/internal/token"
	"github.com/techsaavy8784/face-recognization-wallet/internal/wallet"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.LogFormat, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	store, err := storage.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	slog.Info("connected to database")

	issuer, err := token.NewIssuer([]byte(cfg.JWTSecret), cfg.JWTExpiration, cfg.JWTNotBefore)
	if err != nil {
		slog.Error("failed to initialize token issuer", "error", err)
		os.Exit(1)
	}

	accounts := storage.NewAccountRepository(store)
	provisioner := wallet.NewProvisioner()
	walletService := app.NewWalletService(accounts, provisioner, issuer)

	if cfg.DeossURL != "" {
		archive := gateway.NewFeatureStore(gateway.New(cfg.DeossURL, cfg.DeossAccount), "wallet-features")
		walletService.SetFeatureArchiver(archive)
		slog.Info("feature archiving enabled", "gateway", cfg.DeossURL)
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.RateLimitEnabled)
	server := api.NewServer(cfg, walletService, rateLimiter)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		slog.Error("server error", "error", err)
		os.Exit(1)

	case sig := <-shutdown:
		slog.Info("received shutdown signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("error during shutdown", "error", err)
		}

		slog.Info("server stopped")
	}
}
