package mondialrelay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"packtrack-service/workers/shipments/models"
)

const trackingPage = `<html><body>
<div class="tracking-status"><h2>Uw pakket ligt klaar om op te halen</h2></div>
<ul class="tracking-steps">
  <li><span class="location">Hub Ghislenghien</span></li>
  <li class="current"><span class="location">Primera&nbsp;Centrum Utrecht</span></li>
</ul>
</body></html>`

func TestProcessParsesStatusAndLocation(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Query().Get("code")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(trackingPage))
	}))
	defer srv.Close()

	p := NewTrackingProcessor(zap.NewNop(), srv.URL+"/track?code=%s")
	res, err := p.Process(context.Background(), models.Shipment{TrackingCode: "MR-123", Status: models.StatusInTransit})
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if gotPath != "MR-123" {
		t.Fatalf("unexpected tracking code in request: %q", gotPath)
	}
	if res.Status != models.StatusReadyForPickup {
		t.Fatalf("status = %s", res.Status)
	}
	if res.LastLocation != "Primera Centrum Utrecht" {
		t.Fatalf("location = %q", res.LastLocation)
	}
}

func TestProcessKeepsStatusWhenHeadingUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><div class="tracking-status"><h2>???</h2></div></body></html>`))
	}))
	defer srv.Close()

	p := NewTrackingProcessor(zap.NewNop(), srv.URL+"/%s")
	res, err := p.Process(context.Background(), models.Shipment{TrackingCode: "X", Status: models.StatusProcessing})
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if res.Status != models.StatusProcessing {
		t.Fatalf("status should be kept, got %s", res.Status)
	}
}

func TestProcessReportsHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewTrackingProcessor(zap.NewNop(), srv.URL+"/%s")
	if _, err := p.Process(context.Background(), models.Shipment{TrackingCode: "X"}); err == nil {
		t.Fatalf("expected error for bad gateway")
	}
}

func TestStatusFromTitle(t *testing.T) {
	cases := []struct {
		title string
		want  models.ShipmentStatus
	}{
		{"Colis livré", models.StatusDelivered},
		{"Pakket opgehaald", models.StatusPickedUp},
		{"Your parcel is in transit", models.StatusInTransit},
		{"Colis disponible en Point Relais", models.StatusReadyForPickup},
	}
	for _, tc := range cases {
		got, ok := statusFromTitle(tc.title)
		if !ok || got != tc.want {
			t.Fatalf("statusFromTitle(%q) = %s, %v", tc.title, got, ok)
		}
	}
	if _, ok := statusFromTitle(""); ok {
		t.Fatalf("empty title must not match")
	}
}
