package processors

import (
	"time"

	"packtrack-service/workers/shipments/models"
)

type CarrierTrackingResults struct {
	TrackingCode  string
	Status        models.ShipmentStatus
	LastLocation  string
	LastCheckedAt time.Time
}

// LastUpdate is the label shown on the shipment card, e.g. "Updated 14:05".
func (r CarrierTrackingResults) LastUpdate() string {
	return "Updated " + r.LastCheckedAt.Format("15:04")
}

// Patch converts the results into the update written back to the shipment.
func (r CarrierTrackingResults) Patch() models.Patch {
	status := r.Status
	lastUpdate := r.LastUpdate()
	if r.LastLocation != "" {
		lastUpdate += ", " + r.LastLocation
	}
	return models.Patch{Status: &status, LastUpdate: &lastUpdate}
}
