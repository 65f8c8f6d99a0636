// AngelaMos | 2026
// recheck.go

package payment

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ozgesarac/ceyizdiz/internal/config"
	"github.com/ozgesarac/ceyizdiz/internal/core"
)

const (
	recheckLockKey = "payment:recheck:lock"

	defaultRecheckInterval = time.Hour
	defaultBatchSize       = 100
	defaultRowDelay        = 500 * time.Millisecond
	maxBatchSize           = 100
)

// Rechecker periodically re-validates active purchases against the
// billing backend and reverts entitlements for purchases that were
// canceled or refunded after the fact. A Redis lock keeps concurrent
// instances from rechecking the same batch.
type Rechecker struct {
	service  *Service
	redis    *core.Redis
	logger   *slog.Logger
	interval time.Duration
	batch    int
	rowDelay time.Duration

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func NewRechecker(
	service *Service,
	redis *core.Redis,
	cfg config.RecheckConfig,
	logger *slog.Logger,
) *Rechecker {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultRecheckInterval
	}

	batch := cfg.BatchSize
	if batch <= 0 || batch > maxBatchSize {
		batch = defaultBatchSize
	}

	rowDelay := cfg.RowDelay
	if rowDelay <= 0 {
		rowDelay = defaultRowDelay
	}

	return &Rechecker{
		service:  service,
		redis:    redis,
		logger:   logger,
		interval: interval,
		batch:    batch,
		rowDelay: rowDelay,
		done:     make(chan struct{}),
	}
}

func (r *Rechecker) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)

	go func() {
		defer close(r.done)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		r.logger.Info("purchase recheck loop started",
			"interval", r.interval,
			"batch_size", r.batch,
		)

		for {
			select {
			case <-ctx.Done():
				r.logger.Info("purchase recheck loop stopped")
				return
			case <-ticker.C:
				r.runOnce(ctx)
			}
		}
	}()
}

func (r *Rechecker) Stop() {
	r.once.Do(func() {
		if r.cancel != nil {
			r.cancel()
		}
		<-r.done
	})
}

func (r *Rechecker) runOnce(ctx context.Context) {
	acquired, err := r.redis.Client.SetNX(
		ctx,
		recheckLockKey,
		"1",
		r.interval,
	).Result()
	if err != nil {
		r.logger.Error("acquire recheck lock", "error", err)
		return
	}
	if !acquired {
		return
	}

	if err := r.RecheckBatch(ctx); err != nil {
		r.logger.Error("purchase recheck batch", "error", err)
	}
}

// RecheckBatch re-verifies up to one batch of active purchases,
// pausing between rows so the billing backend is never hammered.
// Per-row failures are logged and skipped; the batch keeps going.
func (r *Rechecker) RecheckBatch(ctx context.Context) error {
	purchases, err := r.service.repo.ListActive(ctx, r.batch)
	if err != nil {
		return err
	}

	if len(purchases) == 0 {
		return nil
	}

	reverted := 0
	for i := range purchases {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.rowDelay):
			}
		}

		if r.recheckOne(ctx, &purchases[i]) {
			reverted++
		}
	}

	r.logger.Info("purchase recheck batch done",
		"checked", len(purchases),
		"reverted", reverted,
	)

	return nil
}

func (r *Rechecker) recheckOne(ctx context.Context, p *Purchase) bool {
	state, err := r.service.verifier.Verify(ctx, p.ProductID, p.PurchaseToken)
	if err != nil {
		r.logger.Warn("recheck purchase",
			"purchase_id", p.ID,
			"error", err,
		)
		return false
	}

	if state == StateActive {
		return false
	}

	if err := r.service.repo.UpdateState(ctx, p.ID, state); err != nil {
		r.logger.Error("mark purchase state",
			"purchase_id", p.ID,
			"state", state,
			"error", err,
		)
		return false
	}

	if err := r.service.revertEffect(ctx, p.UserID, p.ProductID); err != nil {
		r.logger.Error("revert purchase effect",
			"purchase_id", p.ID,
			"user_id", p.UserID,
			"error", err,
		)
		return false
	}

	r.logger.Info("purchase entitlement reverted",
		"purchase_id", p.ID,
		"user_id", p.UserID,
		"product_id", p.ProductID,
		"state", state,
	)

	return true
}
