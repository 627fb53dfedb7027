// Package jobs provides scheduled background tasks for the delivery service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field in their schedule.
//
// # Available Jobs
//
// ActiveOrdersReportJob runs every five minutes by default. It lists the
// pending, assigned and in-progress orders and logs how many there are per
// status, how many items are still to be delivered and how much COD has been
// collected against what is expected.
//
// # Usage
//
//	report := jobs.NewActiveOrdersReportJob(listHandler, cfg.Jobs.ActiveOrdersReport, logger)
//	jobManager := jobs.NewJobManager(logger, report)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// A failed run is logged and retried on the next tick.
package jobs
