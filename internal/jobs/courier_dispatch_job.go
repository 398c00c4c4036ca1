package jobs

import (
	"context"
	"errors"
	"log/slog"

	"restaurant/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CourierDispatchJob periodically matches waiting delivery orders with
// available couriers.
type CourierDispatchJob struct {
	handler commands.DispatchCourierCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCourierDispatchJob creates the dispatch job over the command handler.
func NewCourierDispatchJob(handler commands.DispatchCourierCommandHandler, logger *slog.Logger) *CourierDispatchJob {
	return &CourierDispatchJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "courier_dispatch_job"),
	}
}

// Start begins dispatching every 5 seconds.
func (j *CourierDispatchJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()
		command := commands.NewDispatchCourierCommand()

		if err := j.handler.Handle(ctx, command); err != nil {
			// An empty queue or a fully busy fleet is the normal idle state.
			if !errors.Is(err, commands.ErrNoOrderFound) && !errors.Is(err, commands.ErrNoFreeCouriersFound) {
				j.logger.ErrorContext(ctx, "courier dispatch failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "courier dispatch job started (every 5 seconds)")
	return nil
}

// Stop stops the dispatch job.
func (j *CourierDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "courier dispatch job stopped")
}
