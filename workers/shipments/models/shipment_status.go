package models

// ShipmentStatus is the closed set of states a parcel moves through.
type ShipmentStatus string

const (
	StatusProcessing      ShipmentStatus = "processing"
	StatusInTransit       ShipmentStatus = "in-transit"
	StatusReadyForPickup  ShipmentStatus = "ready-for-pickup"
	StatusShipped         ShipmentStatus = "shipped"
	StatusDelivered       ShipmentStatus = "delivered"
	StatusPickedUp        ShipmentStatus = "picked-up"
	StatusException       ShipmentStatus = "exception"
	StatusAwaitingDropoff ShipmentStatus = "awaiting-dropoff"
)

var AllStatuses = []ShipmentStatus{
	StatusProcessing,
	StatusInTransit,
	StatusReadyForPickup,
	StatusShipped,
	StatusDelivered,
	StatusPickedUp,
	StatusException,
	StatusAwaitingDropoff,
}

// CompletedStatuses are the statuses eligible for bulk archival.
var CompletedStatuses = []ShipmentStatus{StatusDelivered, StatusPickedUp, StatusShipped}

var statusLabels = map[ShipmentStatus]string{
	StatusProcessing:      "Processing",
	StatusInTransit:       "In Transit",
	StatusReadyForPickup:  "Ready for Pickup",
	StatusShipped:         "Shipped",
	StatusDelivered:       "Delivered",
	StatusPickedUp:        "Picked Up",
	StatusException:       "Exception",
	StatusAwaitingDropoff: "Awaiting Drop-off",
}

func (s ShipmentStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s ShipmentStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsCompleted reports whether s is delivered, picked-up or shipped.
func (s ShipmentStatus) IsCompleted() bool {
	for _, completed := range CompletedStatuses {
		if s == completed {
			return true
		}
	}
	return false
}

// UntrackableStatuses are never touched by the tracking refresh: completed
// parcels, exceptions and outgoing parcels not yet handed to the carrier.
var UntrackableStatuses = []ShipmentStatus{StatusDelivered, StatusPickedUp, StatusShipped, StatusException, StatusAwaitingDropoff}

// IsTrackable reports whether carrier tracking may still change the status.
func (s ShipmentStatus) IsTrackable() bool {
	for _, untrackable := range UntrackableStatuses {
		if s == untrackable {
			return false
		}
	}
	return true
}

// DefaultStatus is the initial status of a newly registered parcel.
func DefaultStatus(direction ShipmentDirection) ShipmentStatus {
	if direction == DirectionOutgoing {
		return StatusAwaitingDropoff
	}
	return StatusProcessing
}
