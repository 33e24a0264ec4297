package simulated

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"packtrack-service/workers/shipments/models"
	"packtrack-service/workers/shipments/processors"
)

// statusCycle is weighted towards in-transit so most checks report movement.
var statusCycle = []models.ShipmentStatus{
	models.StatusProcessing,
	models.StatusInTransit,
	models.StatusInTransit,
	models.StatusInTransit,
	models.StatusReadyForPickup,
	models.StatusDelivered,
}

// TrackingProcessor stands in for carriers without a real integration. The
// reported status is stable within a minute for a given tracking code.
// Outgoing parcels keep their current status.
type TrackingProcessor struct {
	logger  *zap.Logger
	latency time.Duration
	now     func() time.Time
}

func NewTrackingProcessor(logger *zap.Logger, latency time.Duration) *TrackingProcessor {
	return &TrackingProcessor{logger: logger, latency: latency, now: time.Now}
}

func (p *TrackingProcessor) Process(ctx context.Context, shipment models.Shipment) (*processors.CarrierTrackingResults, error) {
	if p.latency > 0 {
		delay := p.latency + time.Duration(rand.Int63n(int64(2*p.latency)))
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	now := p.now()
	status := shipment.Status
	if shipment.Direction != models.DirectionOutgoing {
		status = StatusAt(shipment.TrackingCode, now)
	}
	return &processors.CarrierTrackingResults{
		TrackingCode:  shipment.TrackingCode,
		Status:        status,
		LastCheckedAt: now,
	}, nil
}

// StatusAt picks the simulated status from the code's character sum and the
// minutes since the epoch.
func StatusAt(trackingCode string, at time.Time) models.ShipmentStatus {
	seed := at.Unix() / 60
	for _, r := range trackingCode {
		seed += int64(r)
	}
	return statusCycle[seed%int64(len(statusCycle))]
}
