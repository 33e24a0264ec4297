package integrations

import (
	"context"
	"time"

	"packtrack-service/workers/shipments/models"
)

// Source fetches candidate shipments from one connected account.
type Source interface {
	ID() string
	Name() string
	Fetch(ctx context.Context) ([]models.Draft, error)
}

const syncedLabel = "Just synced"

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// VintedSource returns the owner's pending Vinted sale.
type VintedSource struct {
	Latency time.Duration
}

func NewVintedSource() *VintedSource {
	return &VintedSource{Latency: 300 * time.Millisecond}
}

func (s *VintedSource) ID() string   { return "vinted" }
func (s *VintedSource) Name() string { return "Vinted" }

func (s *VintedSource) Fetch(ctx context.Context) ([]models.Draft, error) {
	if err := wait(ctx, s.Latency); err != nil {
		return nil, err
	}
	note := "Vinted sale"
	deadline := "2026-02-10"
	return []models.Draft{{
		ItemName:         "Zara broek meisje 104",
		Image:            "/images/product-4.jpg",
		Status:           models.StatusAwaitingDropoff,
		Direction:        models.DirectionOutgoing,
		Carrier:          models.CarrierVintedGo,
		TrackingCode:     "17709876543210987",
		LastUpdate:       syncedLabel,
		PackingNote:      &note,
		ShippingDeadline: &deadline,
	}}, nil
}

// BolcomSource returns the owner's open Bol.com order.
type BolcomSource struct {
	Latency time.Duration
}

func NewBolcomSource() *BolcomSource {
	return &BolcomSource{Latency: 200 * time.Millisecond}
}

func (s *BolcomSource) ID() string   { return "bolcom" }
func (s *BolcomSource) Name() string { return "Bol.com" }

func (s *BolcomSource) Fetch(ctx context.Context) ([]models.Draft, error) {
	if err := wait(ctx, s.Latency); err != nil {
		return nil, err
	}
	return []models.Draft{{
		ItemName:     "Samsung USB-C Kabel 2m - Bol.com",
		Image:        "/images/product-5.jpg",
		Status:       models.StatusProcessing,
		Direction:    models.DirectionIncoming,
		Carrier:      models.CarrierDHL,
		TrackingCode: "DHL-5829174630",
		LastUpdate:   syncedLabel,
	}}, nil
}
