package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Daily invokes a job once per calendar day at a fixed local hour.
// The job is fire-and-forget: its outcome is logged, never returned.
type Daily struct {
	hour   int
	logger *slog.Logger
	job    func(ctx context.Context, now time.Time) error
}

func NewDaily(hour int, logger *slog.Logger, job func(ctx context.Context, now time.Time) error) *Daily {
	return &Daily{hour: hour, logger: logger, job: job}
}

// Run blocks until ctx is cancelled, firing the job at each daily trigger.
func (d *Daily) Run(ctx context.Context) {
	for {
		now := time.Now()
		next := NextRun(now, d.hour)
		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		d.logger.Info("daily job triggered", "hour", d.hour)
		if err := d.job(ctx, time.Now()); err != nil {
			d.logger.Error("daily job failed", "err", err)
		}
	}
}

// NextRun returns the next occurrence of hour o'clock local time strictly
// after now.
func NextRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
