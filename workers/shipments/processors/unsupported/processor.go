package unsupported

import (
	"context"
	"time"

	"go.uber.org/zap"
	"packtrack-service/workers/shipments/models"
	"packtrack-service/workers/shipments/processors"
)

// TrackingProcessor keeps the current status and only records the check.
type TrackingProcessor struct {
	logger *zap.Logger
}

func NewTrackingProcessor(logger *zap.Logger) *TrackingProcessor {
	return &TrackingProcessor{logger}
}

func (p *TrackingProcessor) Process(_ context.Context, shipment models.Shipment) (*processors.CarrierTrackingResults, error) {
	p.logger.Debug("No tracking source for carrier", zap.String("carrier", string(shipment.Carrier)))

	return &processors.CarrierTrackingResults{
		TrackingCode:  shipment.TrackingCode,
		Status:        shipment.Status,
		LastCheckedAt: time.Now(),
	}, nil
}
