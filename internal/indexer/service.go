package indexer

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/pkg/cache"
	"github.com/sagardabas0007/private-markets/pkg/types"
)

const snapshotKey = "indexer:markets"

// Service polls the external indexer and keeps the last good market
// snapshot in a TTL cache. Listing requests read the cache rather than
// hitting the indexer inline; the service refreshes it in the background.
type Service struct {
	client       *Client
	cache        cache.Cache
	pollInterval time.Duration
	snapshotTTL  time.Duration
	logger       *zap.Logger
}

// Config holds indexer service configuration.
type Config struct {
	Client       *Client
	Cache        cache.Cache
	PollInterval time.Duration
	SnapshotTTL  time.Duration
	Logger       *zap.Logger
}

// New creates a new indexer polling service.
func New(cfg *Config) *Service {
	return &Service{
		client:       cfg.Client,
		cache:        cfg.Cache,
		pollInterval: cfg.PollInterval,
		snapshotTTL:  cfg.SnapshotTTL,
		logger:       cfg.Logger,
	}
}

// Run starts the polling loop and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("indexer-service-starting",
		zap.Duration("poll-interval", s.pollInterval))

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	// Initial poll so the first listing request has a snapshot.
	err := s.poll(ctx)
	if err != nil {
		s.logger.Error("initial-poll-failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("indexer-service-stopping")
			return ctx.Err()
		case <-ticker.C:
			err := s.poll(ctx)
			if err != nil {
				s.logger.Error("poll-failed", zap.Error(err))
			}
		}
	}
}

// poll fetches the indexed market list and refreshes the cached snapshot.
func (s *Service) poll(ctx context.Context) error {
	timer := prometheus.NewTimer(PollDurationSeconds)
	defer timer.ObserveDuration()

	markets, err := s.client.FetchMarkets(ctx)
	if err != nil {
		// Keep serving the previous snapshot on poll failure.
		return err
	}

	if s.cache != nil {
		s.cache.Set(snapshotKey, markets, s.snapshotTTL)
	}

	s.logger.Debug("poll-complete", zap.Int("markets", len(markets)))

	return nil
}

// Markets returns the indexed market list, preferring the cached
// snapshot and falling back to a direct fetch when the cache is cold.
// Returns an empty list when both are unavailable so the merged view
// degrades to locally tracked markets only.
func (s *Service) Markets(ctx context.Context) []types.Market {
	if s.cache != nil {
		if value, found := s.cache.Get(snapshotKey); found {
			if markets, ok := value.([]types.Market); ok {
				return markets
			}
		}
	}

	markets, err := s.client.FetchMarkets(ctx)
	if err != nil {
		s.logger.Warn("indexer-unavailable-serving-local-only", zap.Error(err))
		return nil
	}

	if s.cache != nil {
		s.cache.Set(snapshotKey, markets, s.snapshotTTL)
	}

	return markets
}
