package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	refreshJob  *OrderRefreshJob
	dispatchJob *CourierDispatchJob
}

// NewJobManager creates a manager over the given jobs.
func NewJobManager(refreshJob *OrderRefreshJob, dispatchJob *CourierDispatchJob) *JobManager {
	return &JobManager{
		refreshJob:  refreshJob,
		dispatchJob: dispatchJob,
	}
}

// StartAll starts every scheduled job. A failed start stops the jobs
// already running.
func (jm *JobManager) StartAll() error {
	if err := jm.refreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start order refresh job: %w", err)
	}

	if err := jm.dispatchJob.Start(); err != nil {
		jm.refreshJob.Stop()
		return fmt.Errorf("failed to start courier dispatch job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dispatchJob.Stop()
	jm.refreshJob.Stop()
}
