package models

import (
	"errors"
	"testing"
)

func TestStatusIsCompleted(t *testing.T) {
	want := map[ShipmentStatus]bool{
		StatusProcessing:      false,
		StatusInTransit:       false,
		StatusReadyForPickup:  false,
		StatusShipped:         true,
		StatusDelivered:       true,
		StatusPickedUp:        true,
		StatusException:       false,
		StatusAwaitingDropoff: false,
	}
	for _, status := range AllStatuses {
		if got := status.IsCompleted(); got != want[status] {
			t.Fatalf("IsCompleted(%s) = %v, want %v", status, got, want[status])
		}
	}
}

func TestStatusIsTrackable(t *testing.T) {
	want := map[ShipmentStatus]bool{
		StatusProcessing:      true,
		StatusInTransit:       true,
		StatusReadyForPickup:  true,
		StatusShipped:         false,
		StatusDelivered:       false,
		StatusPickedUp:        false,
		StatusException:       false,
		StatusAwaitingDropoff: false,
	}
	for _, status := range AllStatuses {
		if got := status.IsTrackable(); got != want[status] {
			t.Fatalf("IsTrackable(%s) = %v, want %v", status, got, want[status])
		}
	}
}

func TestDetectCarrier(t *testing.T) {
	cases := []struct {
		code string
		want bool
	}{
		{"17709876543210987", true},
		{"1770 9876-5432", true},
		{"1770", true},
		{"177", false},
		{"1771234", false},
		{"1770ABC", false},
		{"", false},
	}
	for _, tc := range cases {
		carrier, ok := DetectCarrier(tc.code)
		if ok != tc.want {
			t.Fatalf("DetectCarrier(%q) ok = %v, want %v", tc.code, ok, tc.want)
		}
		if ok && carrier != CarrierVintedGo {
			t.Fatalf("DetectCarrier(%q) = %s", tc.code, carrier)
		}
	}
}

func TestDraftNormalizeDefaults(t *testing.T) {
	note := "  "
	d := Draft{ItemName: " Vinted jas ", TrackingCode: " 1770123456 ", Direction: DirectionOutgoing, PackingNote: &note}
	d.Normalize()

	if d.ItemName != "Vinted jas" {
		t.Fatalf("item name not trimmed: %q", d.ItemName)
	}
	if d.Carrier != CarrierVintedGo {
		t.Fatalf("expected vinted-go detection, got %q", d.Carrier)
	}
	if d.Status != StatusAwaitingDropoff {
		t.Fatalf("expected awaiting-dropoff for outgoing, got %s", d.Status)
	}
	if d.PackingNote != nil {
		t.Fatalf("blank packing note should become absent")
	}

	in := Draft{ItemName: "Boek", TrackingCode: "3sabc", Carrier: CarrierPostNL}
	in.Normalize()
	if in.Direction != DirectionIncoming || in.Status != StatusProcessing || in.TrackingCode != "3SABC" {
		t.Fatalf("unexpected incoming defaults: %+v", in)
	}
}

func TestDraftValidate(t *testing.T) {
	if err := (Draft{ItemName: "Boek", TrackingCode: "X1", Carrier: CarrierDHL}).Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}

	err := (Draft{Carrier: "ups", ShippingDeadline: strPtr("10-02-2026")}).Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"itemName", "trackingCode", "carrier", "shippingDeadline"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Fatalf("expected %s to be reported, got %v", field, verr.Fields)
		}
	}
}

func TestPatchColumnsOnlyPresentFields(t *testing.T) {
	status := StatusPickedUp
	empty := ""
	p := Patch{Status: &status, PackingNote: &empty}

	cols := p.Columns()
	if len(cols) != 2 {
		t.Fatalf("expected 2 columns, got %v", cols)
	}
	if cols["status"] != StatusPickedUp {
		t.Fatalf("status column = %v", cols["status"])
	}
	if v, ok := cols["packing_note"]; !ok || v != nil {
		t.Fatalf("empty packing note should clear the column, got %v", v)
	}
	if (Patch{}).IsEmpty() != true {
		t.Fatalf("zero patch should be empty")
	}
}

func TestPatchApplyToLeavesOtherFields(t *testing.T) {
	s := Shipment{ID: "1", ItemName: "Nike Air Max", Status: StatusReadyForPickup, PackingNote: strPtr("doos")}
	status := StatusPickedUp
	last := "just now"
	Patch{Status: &status, LastUpdate: &last}.ApplyTo(&s)

	if s.Status != StatusPickedUp || s.LastUpdate != "just now" {
		t.Fatalf("patch not applied: %+v", s)
	}
	if s.ItemName != "Nike Air Max" || s.PackingNote == nil || *s.PackingNote != "doos" {
		t.Fatalf("untouched fields changed: %+v", s)
	}
}

func TestPatchValidate(t *testing.T) {
	bad := ShipmentStatus("lost")
	if err := (Patch{Status: &bad}).Validate(); err == nil {
		t.Fatalf("expected unknown status to be rejected")
	}
	good := StatusDelivered
	if err := (Patch{Status: &good}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestShipmentCloneIsDeep(t *testing.T) {
	s := Shipment{PickupLocation: &PickupLocation{Name: "Primera"}, PackingNote: strPtr("a")}
	c := s.Clone()
	c.PickupLocation.Name = "Other"
	*c.PackingNote = "b"
	if s.PickupLocation.Name != "Primera" || *s.PackingNote != "a" {
		t.Fatalf("clone shares pointers with original")
	}
}

func strPtr(s string) *string {
	return &s
}
