package core

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Orchestrator struct {
	logger  *zap.Logger
	workers []Worker
}

func NewOrchestrator(logger *zap.Logger, workers []Worker) *Orchestrator {
	return &Orchestrator{logger: logger, workers: workers}
}

// Start registers every worker with a fresh cron scheduler and starts it.
// Callers own the returned scheduler and must Stop it on shutdown.
func (o *Orchestrator) Start() (*cron.Cron, error) {
	c := cron.New()

	for _, worker := range o.workers {
		w := worker
		_, err := c.AddFunc(w.Schedule(), func() {
			if w.Ready(time.Now()) {
				go w.Execute()
				return
			}
			o.logger.Info("Worker still busy, skipping tick", zap.String("worker", w.Name()))
		})

		if err != nil {
			return nil, fmt.Errorf("schedule worker %s: %w", w.Name(), err)
		}
		o.logger.Info("Worker scheduled", zap.String("worker", w.Name()), zap.String("schedule", w.Schedule()))
	}

	c.Start()
	return c, nil
}
