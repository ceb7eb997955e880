package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"clinic-room-allocation/internal/allocation"
)

// SyncWorker keeps the live status of rooms aligned with the weekly plan. It
// projects the plan at startup and again whenever the current weekday/shift
// changes. Manual check-ins and check-outs made inside a period are left
// alone until the next boundary.
type SyncWorker struct {
	occupancy *OccupancyService
	interval  time.Duration
	logger    *zap.Logger
	now       func() time.Time

	last    allocation.Period
	started bool
}

func NewSyncWorker(occupancy *OccupancyService, interval time.Duration, logger *zap.Logger) *SyncWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SyncWorker{
		occupancy: occupancy,
		interval:  interval,
		logger:    logger,
		now:       time.Now,
	}
}

// Start runs the worker until ctx is cancelled
func (w *SyncWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Sync worker started", zap.Duration("interval", w.interval))
	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Sync worker stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// tick projects the plan when the period differs from the last successful
// projection. It reports whether a projection ran.
func (w *SyncWorker) tick(ctx context.Context) bool {
	period := allocation.CurrentPeriod(w.now())
	if w.started && period == w.last {
		return false
	}

	result, err := w.occupancy.Sync(ctx, period.Weekday, period.Shift)
	if err != nil {
		// retried on the next tick
		w.logger.Error("Scheduled live status sync failed",
			zap.String("weekday", period.Weekday),
			zap.String("shift", period.Shift),
			zap.Error(err),
		)
		return false
	}

	w.last = period
	w.started = true
	w.logger.Info("Period changed, plan projected",
		zap.String("weekday", result.Weekday),
		zap.String("shift", result.Shift),
		zap.Int("occupied", result.Occupied),
	)
	return true
}
