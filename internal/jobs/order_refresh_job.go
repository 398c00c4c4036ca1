package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// OrderRefresher re-synchronizes a cache against its backing store.
type OrderRefresher interface {
	Refresh(ctx context.Context) error
}

// OrderRefreshJob periodically refreshes the order cache so changes
// made by other terminals become visible.
type OrderRefreshJob struct {
	store  OrderRefresher
	cron   *cron.Cron
	logger *slog.Logger
}

// NewOrderRefreshJob creates the refresh job over the order store.
func NewOrderRefreshJob(store OrderRefresher, logger *slog.Logger) *OrderRefreshJob {
	return &OrderRefreshJob{
		store:  store,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "order_refresh_job"),
	}
}

// Start begins refreshing every 30 seconds.
func (j *OrderRefreshJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		if err := j.store.Refresh(ctx); err != nil {
			j.logger.ErrorContext(ctx, "order refresh failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "order refresh job started (every 30 seconds)")
	return nil
}

// Stop stops the refresh job.
func (j *OrderRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "order refresh job stopped")
}
