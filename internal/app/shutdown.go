package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown() error {
	a.logger.Info("application-shutting-down")

	a.healthChecker.SetReady(componentHTTPServer, false)
	a.healthChecker.SetReady(componentIndexer, false)
	a.healthChecker.SetReady(componentStream, false)

	// Cancel context to signal the indexer and stream hub
	a.cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Stop accepting requests before closing what the handlers depend on
	err := a.httpServer.Shutdown(shutdownCtx)
	if err != nil {
		a.logger.Error("http-server-shutdown-error", zap.Error(err))
	}

	err = a.journal.Close()
	if err != nil {
		a.logger.Error("journal-close-error", zap.Error(err))
	}

	a.marketCache.Close()

	// Wait for all goroutines
	a.wg.Wait()

	a.logger.Info("application-shutdown-complete")

	return nil
}
