// Package jobs provides the scheduled background tasks of the POS.
//
// Jobs run on github.com/robfig/cron/v3 schedules with second
// resolution:
//
// 1. OrderRefreshJob - re-fetches the order cache from the database
// every 30 seconds so remote changes become visible.
// 2. CourierDispatchJob - every 5 seconds tries to match the oldest
// waiting delivery order with an available courier.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(refreshJob, dispatchJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// The dispatch job treats "no waiting order" and "no free courier" as
// normal idle conditions and logs nothing for them. A failed job start
// stops any already running jobs.
package jobs
