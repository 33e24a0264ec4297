package simulated

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"packtrack-service/workers/shipments/models"
)

func TestStatusAtIsStableWithinAMinute(t *testing.T) {
	at := time.Date(2026, 2, 1, 14, 5, 0, 0, time.UTC)
	first := StatusAt("3SPOST123", at)
	if got := StatusAt("3SPOST123", at.Add(59*time.Second)); got != first {
		t.Fatalf("status changed within the minute: %s -> %s", first, got)
	}
}

func TestStatusAtFollowsSeed(t *testing.T) {
	// "A" is 65, epoch minute 0: (65 + 0) % 6 = 5 -> delivered
	if got := StatusAt("A", time.Unix(0, 0)); got != models.StatusDelivered {
		t.Fatalf("expected delivered, got %s", got)
	}
	// one minute later wraps to processing
	if got := StatusAt("A", time.Unix(60, 0)); got != models.StatusProcessing {
		t.Fatalf("expected processing, got %s", got)
	}
}

func TestProcessStampsLastUpdate(t *testing.T) {
	p := NewTrackingProcessor(zap.NewNop(), 0)
	p.now = func() time.Time { return time.Date(2026, 2, 1, 9, 7, 0, 0, time.Local) }

	res, err := p.Process(context.Background(), models.Shipment{TrackingCode: "MR-123"})
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if res.LastUpdate() != "Updated 09:07" {
		t.Fatalf("unexpected label %q", res.LastUpdate())
	}
}

func TestProcessHonoursCancellation(t *testing.T) {
	p := NewTrackingProcessor(zap.NewNop(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Process(ctx, models.Shipment{TrackingCode: "X"}); err == nil {
		t.Fatalf("expected cancelled context to abort")
	}
}

func TestProcessKeepsOutgoingStatus(t *testing.T) {
	p := NewTrackingProcessor(zap.NewNop(), 0)
	// "A" at epoch minute 0 would simulate delivered
	p.now = func() time.Time { return time.Unix(0, 0) }

	res, err := p.Process(context.Background(), models.Shipment{
		TrackingCode: "A",
		Direction:    models.DirectionOutgoing,
		Status:       models.StatusInTransit,
	})
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if res.Status != models.StatusInTransit {
		t.Fatalf("expected outgoing status to stay in-transit, got %s", res.Status)
	}
}
