// Package jobs provides scheduled background tasks for the food delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. AvailableOrdersDigestJob - broadcasts the list of claimable orders to
// the RIDERS_ONLINE channel (default "@every 30s")
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	digest := jobs.NewAvailableOrdersDigestJob(orderQueries, broadcaster, "@every 30s", logger)
//	jobManager := jobs.NewJobManager(digest)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failures are logged and the next run proceeds as scheduled. Nothing is retried.
package jobs
