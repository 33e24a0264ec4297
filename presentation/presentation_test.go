package presentation

import (
	"strings"
	"testing"
	"time"

	"packtrack-service/workers/shipments/models"
)

func TestClassifyDeadline(t *testing.T) {
	now := time.Date(2026, 2, 5, 18, 30, 0, 0, time.UTC)
	cases := []struct {
		deadline string
		bucket   DeadlineBucket
		label    string
		urgency  Urgency
	}{
		{"2026-02-04", BucketExpired, "Expired!", UrgencyRed},
		{"2026-02-05", BucketToday, "Today!", UrgencyRed},
		{"2026-02-06", BucketOneDay, "1 day left", UrgencyOrange},
		{"2026-02-07", BucketFewDays, "2 days left", UrgencyOrange},
		{"2026-02-08", BucketFewDays, "3 days left", UrgencyOrange},
		{"2026-02-10", BucketManyDays, "5 days left", UrgencyGreen},
	}
	for _, tc := range cases {
		d := tc.deadline
		got := ClassifyDeadline(&d, now)
		if got == nil {
			t.Fatalf("%s: expected info", tc.deadline)
		}
		if got.Bucket != tc.bucket || got.Label != tc.label || got.Urgency != tc.urgency {
			t.Fatalf("%s: got %+v", tc.deadline, got)
		}
	}
}

func TestClassifyDeadlineMissingOrInvalid(t *testing.T) {
	now := time.Now()
	if ClassifyDeadline(nil, now) != nil {
		t.Fatalf("nil deadline should give nil")
	}
	bad := "10-02-2026"
	if ClassifyDeadline(&bad, now) != nil {
		t.Fatalf("malformed deadline should give nil")
	}
}

func TestPickupCodeFinderPatterns(t *testing.T) {
	g := PickupCode("4821")

	corners := [][2]int{{0, 0}, {0, 14}, {14, 0}}
	for _, corner := range corners {
		r0, c0 := corner[0], corner[1]
		for r := 0; r < 7; r++ {
			for c := 0; c < 7; c++ {
				border := r == 0 || r == 6 || c == 0 || c == 6
				inner := r >= 2 && r <= 4 && c >= 2 && c <= 4
				if g[r0+r][c0+c] != (border || inner) {
					t.Fatalf("finder cell (%d,%d) = %v", r0+r, c0+c, g[r0+r][c0+c])
				}
			}
		}
	}
	// bottom-right has no finder block
	seed := 4 + 8 + 2 + 1
	want := (20*13+20*7+seed)%3 != 0
	if g[20][20] != want {
		t.Fatalf("data cell (20,20) = %v, want %v", g[20][20], want)
	}
}

func TestPickupCodeIsDeterministic(t *testing.T) {
	if PickupCode("4821") != PickupCode("4821") {
		t.Fatalf("same pin must give the same grid")
	}
	if PickupCode("1234") == PickupCode("0000") {
		t.Fatalf("different seeds should differ")
	}
}

func TestGridSVG(t *testing.T) {
	svg := PickupCode("1234").SVG(8)
	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" width="168" height="168"`) {
		t.Fatalf("unexpected svg header: %.80s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("svg not closed")
	}
}

func TestShareURL(t *testing.T) {
	note := "Vinted sale"
	out := models.Shipment{Direction: models.DirectionOutgoing, TrackingCode: "17709876543210987", PackingNote: &note}
	want := "https://wa.me/?text=Hi!%20Could%20you%20drop%20off%20this%20parcel%20for%20me%3F%20Code%3A%2017709876543210987.%20Packing%20note%3A%20Vinted%20sale."
	if got := ShareURL(out); got != want {
		t.Fatalf("outgoing share url\n got %s\nwant %s", got, want)
	}

	in := models.Shipment{Direction: models.DirectionIncoming, TrackingCode: "MR-123", PickupLocation: &models.PickupLocation{Name: "Primera"}}
	if got := ShareMessage(in); got != "Hi! Could you pick up this parcel for me? Code: MR-123. Location: Primera." {
		t.Fatalf("incoming message = %q", got)
	}
}

func TestRouteURL(t *testing.T) {
	got := RouteURL(&models.PickupLocation{Lat: 52.0907, Lng: 5.1214})
	if got != "https://www.google.com/maps/dir/?api=1&destination=52.0907,5.1214" {
		t.Fatalf("route url = %s", got)
	}
	if RouteURL(nil) != "" {
		t.Fatalf("nil location should give empty url")
	}
}

func TestDetailsFor(t *testing.T) {
	s := models.Shipment{
		Status:         models.StatusReadyForPickup,
		Carrier:        models.CarrierMondialRelay,
		PickupLocation: &models.PickupLocation{Name: "Primera", PinCode: "4821"},
	}
	d := DetailsFor(s, time.Now())
	if d.StatusLabel != "Ready for Pickup" || d.CarrierLabel != "Mondial Relay" || !d.HasPickupCode || d.Deadline != nil {
		t.Fatalf("unexpected details: %+v", d)
	}
}
