package reporting

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Refresher rebuilds the report snapshot on a fixed interval and publishes
// it for concurrent readers.
type Refresher struct {
	service  *Service
	interval time.Duration
	logger   *slog.Logger

	mu       sync.RWMutex
	snapshot *Snapshot

	runMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefresher constructs the snapshot refresher.
func NewRefresher(service *Service, interval time.Duration, logger *slog.Logger) *Refresher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Refresher{service: service, interval: interval, logger: logger}
}

// Start builds the first snapshot and launches the background refresh loop.
func (r *Refresher) Start(ctx context.Context) {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.loop(runCtx)
}

// Stop halts the refresh loop and waits for it to exit.
func (r *Refresher) Stop() {
	r.runMu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.runMu.Unlock()

	r.wg.Wait()
}

// Snapshot returns the latest published report, nil before the first refresh.
func (r *Refresher) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

func (r *Refresher) loop(ctx context.Context) {
	defer r.wg.Done()

	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	snapshot := r.service.BuildSnapshot(ctx)

	r.mu.Lock()
	r.snapshot = snapshot
	r.mu.Unlock()

	r.logger.Info("report snapshot refreshed",
		slog.Int("top_sellers", len(snapshot.TopSellers)),
		slog.Int("top_buyers", len(snapshot.TopBuyers)),
		slog.Int("best_selling", len(snapshot.BestSelling)),
		slog.Int("categories", len(snapshot.Categories)),
	)
}
