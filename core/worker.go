package core

import "time"

// Worker is a unit of background work run by the Orchestrator on a cron schedule.
type Worker interface {
	Name() string
	Schedule() string
	Ready(now time.Time) bool
	Execute()
}
