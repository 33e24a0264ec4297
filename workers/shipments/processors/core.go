package processors

import (
	"context"

	"packtrack-service/workers/shipments/models"
)

type CarrierTrackingProcessor interface {
	Process(ctx context.Context, shipment models.Shipment) (*CarrierTrackingResults, error)
}
