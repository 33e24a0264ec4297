package shipments

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"packtrack-service/config"
	"packtrack-service/core"
	"packtrack-service/workers/shipments/models"
	"packtrack-service/workers/shipments/processors"
	"packtrack-service/workers/shipments/processors/dhl"
	"packtrack-service/workers/shipments/processors/mondialrelay"
	"packtrack-service/workers/shipments/processors/simulated"
	"packtrack-service/workers/shipments/processors/unsupported"
	"packtrack-service/workers/shipments/repositories"
	"packtrack-service/workers/shipments/state"
)

const refreshTimeout = 5 * time.Minute

// Worker refreshes the tracking status of every active shipment on a cron
// schedule. Updates go through the registry so signed-in owners see them.
type Worker struct {
	logger     *zap.Logger
	repo       repositories.Store
	registry   *state.Registry
	metrics    *core.Metrics
	cfg        config.TrackingConfig
	processors map[models.ShipmentCarrier]processors.CarrierTrackingProcessor
	mu         sync.Mutex
	busy       atomic.Bool
}

func NewWorker(logger *zap.Logger, repo repositories.Store, registry *state.Registry, metrics *core.Metrics, cfg config.TrackingConfig) *Worker {
	return &Worker{
		logger:     logger,
		repo:       repo,
		registry:   registry,
		metrics:    metrics,
		cfg:        cfg,
		processors: make(map[models.ShipmentCarrier]processors.CarrierTrackingProcessor),
	}
}

func (w *Worker) Name() string {
	return "shipment-tracking"
}

func (w *Worker) Schedule() string {
	if w.cfg.Schedule == "" {
		return "*/30 * * * *"
	}
	return w.cfg.Schedule
}

func (w *Worker) Ready(time.Time) bool {
	return !w.busy.Load()
}

func (w *Worker) Execute() {
	if !w.busy.CompareAndSwap(false, true) {
		return
	}
	defer w.busy.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	w.logger.Info("Starting shipment tracking refresh.")

	shipments, err := w.repo.ListRefreshable(ctx)
	if err != nil {
		w.logger.Error("Failed to list refreshable shipments", zap.Error(err))
		return
	}

	if len(shipments) == 0 {
		w.logger.Info("No active shipments found. Tracking refresh completed")
		return
	}

	updated := w.process(ctx, shipments, func(ctx context.Context, sh models.Shipment, patch models.Patch) error {
		return w.registry.UpdateOwned(ctx, sh.UserID, sh.ID, patch)
	})
	w.logger.Info("Tracking refresh completed", zap.Int("shipments", len(shipments)), zap.Int("updated", updated))
}

// RefreshOwner refreshes the owner's cached active shipments right away and
// returns how many were updated.
func (w *Worker) RefreshOwner(ctx context.Context, c *state.Controller) int {
	var active []models.Shipment
	for _, sh := range c.Shipments() {
		if !sh.Archived && sh.Status.IsTrackable() {
			active = append(active, sh)
		}
	}
	if len(active) == 0 {
		return 0
	}

	return w.process(ctx, active, func(ctx context.Context, sh models.Shipment, patch models.Patch) error {
		return c.Update(ctx, sh.ID, patch)
	})
}

type applyFunc func(ctx context.Context, sh models.Shipment, patch models.Patch) error

func (w *Worker) process(ctx context.Context, shipments []models.Shipment, apply applyFunc) int {
	var (
		wg      sync.WaitGroup
		updated atomic.Int64
	)
	for _, shipment := range shipments {
		wg.Add(1)
		go func(sh models.Shipment) {
			defer wg.Done()
			if w.processShipment(ctx, sh, apply) {
				updated.Add(1)
			}
		}(shipment)
	}

	wg.Wait()
	return int(updated.Load())
}

func (w *Worker) processShipment(ctx context.Context, sh models.Shipment, apply applyFunc) bool {
	processor := w.getProcessor(sh.Carrier)

	result, err := processor.Process(ctx, sh)
	if err != nil {
		w.record("error")
		w.logger.Error("Failed to process shipment",
			zap.String("tracking_code", sh.TrackingCode),
			zap.String("carrier", string(sh.Carrier)),
			zap.Error(err),
		)
		return false
	}

	if err := apply(ctx, sh, result.Patch()); err != nil {
		w.record("error")
		w.logger.Error("Failed to save shipment",
			zap.String("tracking_code", sh.TrackingCode),
			zap.Error(err),
		)
		return false
	}

	w.record("updated")
	w.logger.Debug("Shipment successfully processed",
		zap.String("tracking_code", sh.TrackingCode),
		zap.String("status", string(result.Status)),
	)
	return true
}

func (w *Worker) record(result string) {
	if w.metrics != nil {
		w.metrics.TrackingRuns.WithLabelValues(result).Inc()
	}
}

func (w *Worker) getProcessor(carrier models.ShipmentCarrier) processors.CarrierTrackingProcessor {
	w.mu.Lock()
	defer w.mu.Unlock()

	if processor, exists := w.processors[carrier]; exists {
		return processor
	}

	var processor processors.CarrierTrackingProcessor

	switch {
	case carrier == models.CarrierMondialRelay && w.cfg.MondialRelayTrackingUri != "":
		processor = mondialrelay.NewTrackingProcessor(w.logger, w.cfg.MondialRelayTrackingUri)
	case carrier == models.CarrierDHL && w.cfg.DHLApiKey != "":
		processor = dhl.NewTrackingProcessor(w.logger, w.cfg.DHLApiBaseUri, w.cfg.DHLApiKey)
	case w.cfg.Simulate && carrier.Valid():
		processor = simulated.NewTrackingProcessor(w.logger, w.cfg.SimulatedLatency())
	default:
		processor = unsupported.NewTrackingProcessor(w.logger)
	}

	w.processors[carrier] = processor
	return processor
}
