package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ignite/eligibility-signpost/internal/api"
	"github.com/ignite/eligibility-signpost/internal/config"
	"github.com/ignite/eligibility-signpost/internal/eligibility"
	"github.com/ignite/eligibility-signpost/internal/operators"
	"github.com/ignite/eligibility-signpost/internal/rules"
	"github.com/ignite/eligibility-signpost/internal/storage"
	"github.com/ignite/eligibility-signpost/internal/tokens"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	logger.Info().Str("config", configPath).Msg("starting eligibility signpost server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clients, err := storage.NewClients(ctx, storage.ClientOptions{
		Region:   cfg.Storage.AWSRegion,
		Profile:  cfg.Storage.GetAWSProfile(),
		Endpoint: cfg.Storage.AWSEndpoint,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize AWS clients")
	}

	var campaignSource eligibility.CampaignSource = storage.NewCampaignStore(
		clients.S3, cfg.Storage.CampaignBucket, cfg.Storage.CampaignPrefix)

	// Redis is optional: if it is unreachable at startup the server runs
	// without the campaign cache rather than refusing to start.
	if cfg.Cache.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		pingCancel()
		if err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("redis unreachable, campaign cache disabled")
			redisClient.Close()
		} else {
			logger.Info().Str("addr", cfg.Cache.RedisAddr).Msg("redis connected, campaign cache enabled")
			campaignSource = storage.NewCachedCampaignSource(campaignSource, redisClient, cfg.Cache.TTL(), logger)
			defer redisClient.Close()
		}
	}

	calc := rules.NewCalculator(operators.NewRegistry())
	evaluator := eligibility.NewCalculator(
		rules.NewProcessor(calc),
		eligibility.NewActionHandler(calc),
		tokens.NewProcessor(),
		logger,
	)
	service := eligibility.NewService(
		campaignSource,
		storage.NewPersonStore(clients.DynamoDB, cfg.Storage.PersonTable),
		evaluator,
		storage.NewAuditStore(clients.DynamoDB, cfg.Storage.AuditTable),
		logger,
	)

	handlers := api.NewHandlers(service, logger)
	var apiKeys []string
	if cfg.Auth.Enabled {
		apiKeys = cfg.Auth.APIKeys
	}
	router := api.SetupRoutes(handlers, apiKeys, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout(),
		WriteTimeout: cfg.Server.Timeout(),
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info().Str("addr", addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-done
	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
