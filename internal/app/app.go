// Package app wires the ledger, register, indexer, stream hub, and
// HTTP surface together and manages their lifecycle.
package app

import (
	"context"
	"sync"

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

// Component names reported by the readiness probe.
const (
	componentHTTPServer = "http-server"
	componentIndexer    = "indexer"
	componentStream     = "stream"
)

// App is the main application orchestrator.
type App struct {
	cfg            *config.Config
	logger         *zap.Logger
	healthChecker  *healthprobe.HealthChecker
	httpServer     *httpserver.Server
	ledger         *ledger.Ledger
	register       *register.Register
	merger         *reconcile.Merger
	indexerService *indexer.Service
	streamHub      *stream.Hub
	verifier       *gateway.Verifier
	journal        storage.Journal
	marketCache    cache.Cache
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
}
