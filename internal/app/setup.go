package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/internal/gateway"
	"github.com/sagardabas0007/private-markets/internal/indexer"
	"github.com/sagardabas0007/private-markets/internal/ledger"
	"github.com/sagardabas0007/private-markets/internal/reconcile"
	"github.com/sagardabas0007/private-markets/internal/register"
	"github.com/sagardabas0007/private-markets/internal/storage"
	"github.com/sagardabas0007/private-markets/internal/stream"
	"github.com/sagardabas0007/private-markets/pkg/cache"
	"github.com/sagardabas0007/private-markets/pkg/config"
	"github.com/sagardabas0007/private-markets/pkg/healthprobe"
	"github.com/sagardabas0007/private-markets/pkg/httpserver"
)

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	healthChecker := healthprobe.New(componentHTTPServer, componentIndexer, componentStream)

	marketCache, err := setupCache(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	journal, err := setupJournal(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup journal: %w", err)
	}

	streamHub := stream.New(&stream.Config{Logger: logger})

	positionLedger := ledger.New(&ledger.Config{
		Logger:   logger,
		Journal:  journal,
		Notifier: streamHub,
	})

	marketRegister := register.New(&register.Config{Logger: logger})

	merger := reconcile.New(&reconcile.Config{
		Tracked: marketRegister,
		Logger:  logger,
	})

	indexerService := setupIndexerService(cfg, logger, marketCache)

	verifier := setupVerifier(cfg, logger)

	httpServer := httpserver.New(&httpserver.Config{
		Port:          cfg.HTTPPort,
		Logger:        logger,
		HealthChecker: healthChecker,
		Ledger:        positionLedger,
		Register:      marketRegister,
		Merger:        merger,
		Indexer:       indexerService,
		Stream:        streamHub,
		Verifier:      verifier,
		AdminToken:    cfg.AdminToken,
	})

	return &App{
		cfg:            cfg,
		logger:         logger,
		healthChecker:  healthChecker,
		httpServer:     httpServer,
		ledger:         positionLedger,
		register:       marketRegister,
		merger:         merger,
		indexerService: indexerService,
		streamHub:      streamHub,
		verifier:       verifier,
		journal:        journal,
		marketCache:    marketCache,
		ctx:            ctx,
		cancel:         cancel,
	}, nil
}

func setupCache(cfg *config.Config, logger *zap.Logger) (cache.Cache, error) {
	return cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: cfg.CacheNumCounters,
		MaxCost:     cfg.CacheMaxCost,
		BufferItems: 64,
		Logger:      logger,
	})
}

func setupJournal(cfg *config.Config, logger *zap.Logger) (storage.Journal, error) {
	if cfg.StorageMode == "postgres" {
		journal, err := storage.NewPostgresJournal(&storage.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres journal: %w", err)
		}
		return journal, nil
	}

	return storage.NewConsoleJournal(logger), nil
}

func setupIndexerService(cfg *config.Config, logger *zap.Logger, marketCache cache.Cache) *indexer.Service {
	client := indexer.NewClient(cfg.IndexerBaseURL, logger)
	return indexer.New(&indexer.Config{
		Client:       client,
		Cache:        marketCache,
		PollInterval: cfg.IndexerPollInterval,
		SnapshotTTL:  cfg.IndexerSnapshotTTL,
		Logger:       logger,
	})
}

func setupVerifier(cfg *config.Config, logger *zap.Logger) *gateway.Verifier {
	if cfg.GatewaySigningAddress == "" {
		logger.Warn("gateway-verifier-disabled",
			zap.String("note", "GATEWAY_SIGNING_ADDRESS not set, settlement records cannot be filled"))
		return nil
	}

	return gateway.NewVerifier(&gateway.Config{
		GatewayAddress: cfg.GatewaySigningAddress,
		Logger:         logger,
	})
}

