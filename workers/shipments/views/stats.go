package views

import "packtrack-service/workers/shipments/models"

type Stats struct {
	Total          int `json:"total"`
	Incoming       int `json:"incoming"`
	Outgoing       int `json:"outgoing"`
	InTransit      int `json:"inTransit"`
	ReadyForPickup int `json:"readyForPickup"`
	Delivered      int `json:"delivered"`
	Archived       int `json:"archived"`
}

// Summarize counts over the displayed base (archived or active). The archived
// count always covers the whole archived partition.
func Summarize(list []models.Shipment, showArchived bool) Stats {
	active, archived := Partition(list)
	base := active
	if showArchived {
		base = archived
	}

	stats := Stats{Total: len(base), Archived: len(archived)}
	for _, s := range base {
		switch s.Direction.OrDefault() {
		case models.DirectionIncoming:
			stats.Incoming++
		case models.DirectionOutgoing:
			stats.Outgoing++
		}
		switch s.Status {
		case models.StatusInTransit:
			stats.InTransit++
		case models.StatusReadyForPickup:
			stats.ReadyForPickup++
		case models.StatusDelivered:
			stats.Delivered++
		}
	}
	return stats
}

// CleanupEligible counts active shipments that bulk archival would move.
func CleanupEligible(list []models.Shipment) int {
	n := 0
	for _, s := range list {
		if !s.Archived && s.IsCompleted() {
			n++
		}
	}
	return n
}

// Dashboard is what the overview screen renders.
type Dashboard struct {
	Shipments       []models.Shipment `json:"shipments"`
	Stats           Stats             `json:"stats"`
	CleanupEligible int               `json:"cleanupEligible"`
	ShowArchived    bool              `json:"showArchived"`
}

func View(list []models.Shipment, showArchived bool, criteria Criteria) Dashboard {
	active, archived := Partition(list)
	base := active
	if showArchived {
		base = archived
	}
	return Dashboard{
		Shipments:       Filter(base, criteria),
		Stats:           Summarize(list, showArchived),
		CleanupEligible: CleanupEligible(list),
		ShowArchived:    showArchived,
	}
}
