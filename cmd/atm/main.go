package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet-atm/config"
	"wallet-atm/internal/adapter/ethereum"
	httpHandler "wallet-atm/internal/adapter/http/handler"
	"wallet-atm/internal/adapter/http/middleware"
	"wallet-atm/internal/adapter/storage/memory"
	redisStorage "wallet-atm/internal/adapter/storage/redis"
	"wallet-atm/internal/core/ports"
	"wallet-atm/internal/service"
	"wallet-atm/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Wallet ATM")

	ctx := context.Background()
	var checkers []ports.HealthChecker

	// Redis only backs rate limiting; the ATM keeps working without it.
	var rateLimitStore *redisStorage.RateLimitStore
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("Redis unavailable, rate limiting disabled")
	case rdb != nil:
		defer rdb.Close()
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		checkers = append(checkers, redisStorage.NewHealthCheck(rdb))
		log.Info().Msg("Redis connected")
	}

	provider, binder, rpcProvider, err := openWallet(ctx, cfg.Chain, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load ATM contract")
	}
	if rpcProvider != nil {
		defer rpcProvider.Close()
		checkers = append(checkers, ethereum.NewHealthCheck(rpcProvider))
	}

	sessions := service.NewSessionController(memory.NewSessionStore(), provider, binder, log)
	tokenSvc := service.NewJWTTokenService(cfg.Session.Secret, cfg.Session.Expiry, cfg.Session.Issuer)

	janitor, err := service.NewSessionJanitor(sessions, cfg.Session.SweepSpec, cfg.Session.IdleTTL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule session sweep")
	}
	janitor.Start()
	defer janitor.Stop()

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Sessions:       sessions,
		Tokens:         tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: checkers,
		Cookie: middleware.CookieConfig{
			Name:       cfg.Session.CookieName,
			SecureOnly: cfg.Session.SecureOnly,
		},
		Owner:  cfg.Owner,
		Logger: log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	// Pending transactions keep running detached; shutdown only waits for
	// in-flight HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// openWallet connects to the wallet provider. An unset or unreachable
// endpoint means no wallet is available, and nil interfaces are returned so
// the controller reports the wallet as absent. A reachable endpoint with a
// bad contract artifact is a startup error.
func openWallet(ctx context.Context, cfg config.ChainConfig, log zerolog.Logger) (ports.WalletProvider, ports.ContractBinder, *ethereum.RPCProvider, error) {
	if cfg.RPCURL == "" {
		log.Warn().Msg("No wallet provider configured")
		return nil, nil, nil, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	provider, err := ethereum.Dial(dialCtx, cfg.RPCURL, cfg.PollInterval, log)
	if err != nil {
		log.Warn().Err(err).Str("rpc_url", cfg.RPCURL).Msg("Wallet provider unreachable")
		return nil, nil, nil, nil
	}

	parsed, err := ethereum.LoadABI(cfg.ArtifactPath)
	if err != nil {
		provider.Close()
		return nil, nil, nil, err
	}
	binder, err := ethereum.NewBinder(provider, cfg.ContractAddress, parsed)
	if err != nil {
		provider.Close()
		return nil, nil, nil, err
	}

	log.Info().
		Str("contract", cfg.ContractAddress).
		Str("artifact", cfg.ArtifactPath).
		Msg("ATM contract bound")
	return provider, binder, provider, nil
}
