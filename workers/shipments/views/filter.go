package views

import (
	"strings"

	"packtrack-service/workers/shipments/models"
)

// All matches every direction or status.
const All = "all"

type Criteria struct {
	Direction string `form:"direction"`
	Status    string `form:"status"`
	Query     string `form:"q"`
}

func (c Criteria) matches(s models.Shipment) bool {
	if c.Direction != "" && c.Direction != All && string(s.Direction) != c.Direction {
		return false
	}
	if c.Status != "" && c.Status != All && string(s.Status) != c.Status {
		return false
	}
	query := strings.ToLower(strings.TrimSpace(c.Query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.ItemName), query) ||
		strings.Contains(strings.ToLower(s.TrackingCode), query)
}

func IsCompleted(status models.ShipmentStatus) bool {
	return status.IsCompleted()
}

// Partition splits list into active and archived shipments, keeping order.
func Partition(list []models.Shipment) (active, archived []models.Shipment) {
	active = make([]models.Shipment, 0, len(list))
	archived = make([]models.Shipment, 0)
	for _, s := range list {
		if s.Archived {
			archived = append(archived, s)
			continue
		}
		active = append(active, s)
	}
	return active, archived
}

// Filter keeps the shipments matching direction, status and the search query.
func Filter(list []models.Shipment, criteria Criteria) []models.Shipment {
	out := make([]models.Shipment, 0, len(list))
	for _, s := range list {
		if criteria.matches(s) {
			out = append(out, s)
		}
	}
	return out
}
