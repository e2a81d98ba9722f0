package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tweetbook/internal/identity/store"
)

// HousekeepingService periodically flags expired refresh tokens as
// invalidated. Rows are kept; they are the replay trail.
type HousekeepingService struct {
	Ledger   store.RefreshTokens
	Logger   *slog.Logger
	Interval time.Duration
	Clock    func() time.Time

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(ledger store.RefreshTokens, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Ledger:   ledger,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. It is non-blocking; call Stop to shut
// it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), s.Interval)
	defer cancel()

	if _, err := s.RunOnce(ctx); err != nil {
		s.Logger.Error("failed to invalidate expired refresh tokens", "error", err)
	}
}

// RunOnce performs a single sweep and returns how many rows were flagged.
func (s *HousekeepingService) RunOnce(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock().UTC()
	}

	n, err := s.Ledger.InvalidateExpiredRefreshTokens(ctx, now)
	if err != nil {
		return n, err
	}
	s.Logger.Info("housekeeping cleanup completed", "invalidated_refresh_tokens", n)
	return n, nil
}
