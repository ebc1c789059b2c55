package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// PaymentSweeper exposes the subset of application functionality required by the reaper.
type PaymentSweeper interface {
	ExpirePayments(ctx context.Context, cutoff time.Time, limit int) ([]string, error)
	DiscardSnapshot(ctx context.Context, checkoutRequestID string) error
}

// PaymentReaper periodically fails pending payment attempts whose provider
// callback never arrived, and cleans up their checkout snapshots. It closes
// the gap left by customers who abandon the push prompt without polling.
type PaymentReaper struct {
	sweeper       PaymentSweeper
	sweepInterval time.Duration
	ttl           time.Duration
	batchSize     int
	workers       int
	logger        *slog.Logger

	jobs   chan string
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
	now    func() time.Time
}

// NewPaymentReaper constructs the reaper worker pool.
func NewPaymentReaper(sweeper PaymentSweeper, sweepInterval, ttl time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentReaper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentReaper{
		sweeper:       sweeper,
		sweepInterval: sweepInterval,
		ttl:           ttl,
		batchSize:     batchSize,
		workers:       workers,
		logger:        logger,
		jobs:          make(chan string, batchSize*workers),
		now:           time.Now,
	}
}

// Start launches background sweeping.
func (r *PaymentReaper) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *PaymentReaper) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *PaymentReaper) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *PaymentReaper) sweep(ctx context.Context) {
	cutoff := r.now().Add(-r.ttl)
	reaped, err := r.sweeper.ExpirePayments(ctx, cutoff, r.batchSize)
	if err != nil {
		r.logger.Error("expire payments failed", slog.String("error", err.Error()))
		return
	}
	if len(reaped) > 0 {
		r.logger.Info("expired stale payment attempts", slog.Int("count", len(reaped)))
	}
	for _, checkoutRequestID := range reaped {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- checkoutRequestID:
		}
	}
}

func (r *PaymentReaper) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case checkoutRequestID, ok := <-r.jobs:
			if !ok {
				return
			}
			r.cleanup(ctx, checkoutRequestID)
		}
	}
}

func (r *PaymentReaper) cleanup(ctx context.Context, checkoutRequestID string) {
	if err := r.sweeper.DiscardSnapshot(ctx, checkoutRequestID); err != nil {
		r.logger.Error("discard checkout snapshot failed",
			slog.String("checkout_request_id", checkoutRequestID),
			slog.String("error", err.Error()))
		return
	}
	r.logger.Info("payment attempt reaped", slog.String("checkout_request_id", checkoutRequestID))
}
