package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibritu/hirehub/internal/auth/store"
)

// DefaultPendingRetention is how long an expired code or reset token is
// kept before housekeeping drops it.
const DefaultPendingRetention = 24 * time.Hour

// HousekeepingService periodically clears verification codes and reset
// tokens that expired more than Retention ago.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration
	Clock     Clock

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to one hour, a non-positive retention to a day.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = DefaultPendingRetention
	}

	return &HousekeepingService{
		Store:     store,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "retention", s.Retention)
}

// Stop blocks until the worker has finished any in-progress cleanup.
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
	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup runs one pass.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	cutoff := s.Clock.now().Add(-s.Retention)

	otps, resets, err := s.Store.Identities().ClearExpiredPending(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to clear expired pending secrets", "error", err)
		return
	}
	s.Logger.Info("housekeeping cleanup completed",
		"cleared_otps", otps,
		"cleared_resets", resets,
	)
}
