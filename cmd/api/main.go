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

	"escrow-relay/config"
	"escrow-relay/internal/adapter/chain/evm"
	"escrow-relay/internal/adapter/custodial"
	httpHandler "escrow-relay/internal/adapter/http/handler"
	"escrow-relay/internal/adapter/metrics"
	"escrow-relay/internal/adapter/signer"
	pgStorage "escrow-relay/internal/adapter/storage/postgres"
	redisStorage "escrow-relay/internal/adapter/storage/redis"
	"escrow-relay/internal/contracts"
	"escrow-relay/internal/core/ports"
	"escrow-relay/internal/service"
	"escrow-relay/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load(os.Getenv("RELAY_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("environment", cfg.App.Environment).
		Str("relayer_mode", cfg.Relayer.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Escrow Relay")

	ctx := context.Background()

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	chainClients := evm.NewClients(cfg.Chain, nil)
	defer chainClients.Close()

	registry := metrics.NewRegistry()
	codec := contracts.MustEscrowCodec()

	// Secret store
	secretRepo, err := pgStorage.NewSecretRepo(cfg.SecretStore.Table)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid secret store table")
	}
	transactor := pgStorage.NewTransactor(pool, pgStorage.SecretTxOptions)
	envelope := service.NewEnvelopeCrypto(cfg.Encryption)
	secretStore := service.NewSecretStore(secretRepo, transactor, envelope, cfg.SecretStore, registry, log.With().Str("component", "secret_store").Logger())

	// Escrow verification and claims
	verifier := service.NewEscrowLockVerifier(chainClients, codec, cfg, registry, log.With().Str("component", "verifier").Logger())
	confirmer := service.NewReceiptConfirmer(chainClients, cfg.Relayer, log.With().Str("component", "confirmer").Logger())
	backend := newSignerBackend(cfg, chainClients, log.With().Str("component", "signer").Logger())
	dispatcher := service.NewRelayerDispatcher(backend, confirmer, codec, cfg, registry, log.With().Str("component", "relayer").Logger())
	claims := service.NewClaimService(
		dispatcher,
		redisStorage.NewClaimGuard(rdb),
		redisStorage.NewClaimResultCache(rdb),
		cfg.Claims,
		log.With().Str("component", "claims").Logger(),
	)

	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Verifier:       verifier,
		Relayer:        claims,
		SecretStore:    secretStore,
		SigSvc:         service.NewHMACSignatureService(),
		NonceStore:     redisStorage.NewNonceStore(rdb),
		HMACSecret:     cfg.API.HMACSecret,
		RateLimitStore: redisStorage.NewRateLimitStore(rdb),
		HealthCheckers: []ports.HealthChecker{
			pgStorage.NewHealthCheck(pool),
			redisStorage.NewHealthCheck(rdb),
			evm.NewHealthCheck(chainClients),
		},
		Metrics: registry.Handler(),
		Logger:  log,
	})

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

	// Claims may be waiting on a signer and then a receipt.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Relayer.Webhook.Timeout+cfg.Relayer.ConfirmTimeout+10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// newSignerBackend returns nil when relayer.mode is unset. The result must stay
// an untyped nil in that case so the dispatcher sees no backend.
func newSignerBackend(cfg *config.Config, clients *evm.Clients, log zerolog.Logger) ports.SignerBackend {
	switch cfg.Relayer.Mode {
	case config.RelayerModeLocalKey:
		return signer.NewLocalKeySigner(cfg.Relayer, clients, log)
	case config.RelayerModeManagedWebhook:
		return signer.NewWebhookSigner(cfg.Relayer, cfg.Chain, &http.Client{}, log)
	case config.RelayerModeCDPServerWallet:
		api := custodial.NewClient(cfg.Relayer.CDP, &http.Client{Timeout: 30 * time.Second}, log)
		return signer.NewCustodialSigner(api, cfg.Relayer.CDP, log)
	default:
		log.Warn().Msg("relayer.mode is empty, claims will be simulated or rejected")
		return nil
	}
}
