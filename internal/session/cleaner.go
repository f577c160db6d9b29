// ABOUTME: Background loop that prunes expired sessions from the store
// ABOUTME: Runs until its context is cancelled

package session

import (
	"context"
	"log/slog"
	"time"
)

// CleanerInterval is how often expired sessions are swept.
const CleanerInterval = 10 * time.Minute

// RunCleaner sweeps expired sessions on a ticker until ctx is cancelled.
// Call it in its own goroutine.
func RunCleaner(ctx context.Context, store Store) {
	logger := slog.Default().With("component", "session-cleaner")
	ticker := time.NewTicker(CleanerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("session cleaner stopped")
			return
		case <-ticker.C:
			n, err := store.DeleteExpired(ctx)
			if err != nil {
				logger.Warn("session sweep failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("swept expired sessions", "count", n)
			}
		}
	}
}
