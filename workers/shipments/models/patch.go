package models

import "strings"

// Patch is a partial update. Nil fields are left untouched; an empty string
// on an optional text field clears it.
type Patch struct {
	ItemName         *string            `json:"itemName,omitempty"`
	Image            *string            `json:"image,omitempty"`
	Status           *ShipmentStatus    `json:"status,omitempty"`
	Direction        *ShipmentDirection `json:"direction,omitempty"`
	Carrier          *ShipmentCarrier   `json:"carrier,omitempty"`
	TrackingCode     *string            `json:"trackingCode,omitempty"`
	LastUpdate       *string            `json:"lastUpdate,omitempty"`
	PickupLocation   *PickupLocation    `json:"pickupLocation,omitempty"`
	ReceiptImage     *string            `json:"receiptImage,omitempty"`
	PackagingPhoto   *string            `json:"packagingPhoto,omitempty"`
	PackingNote      *string            `json:"packingNote,omitempty"`
	ShippingDeadline *string            `json:"shippingDeadline,omitempty"`
	Archived         *bool              `json:"archived,omitempty"`
}

func (p Patch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

// Validate checks enum membership of the fields present in p.
func (p Patch) Validate() error {
	fields := map[string]string{}
	if p.ItemName != nil && strings.TrimSpace(*p.ItemName) == "" {
		fields["itemName"] = "failed required"
	}
	if p.Status != nil && !p.Status.Valid() {
		fields["status"] = "failed oneof"
	}
	if p.Direction != nil && !p.Direction.Valid() {
		fields["direction"] = "failed oneof"
	}
	if p.Carrier != nil && !p.Carrier.Valid() {
		fields["carrier"] = "failed oneof"
	}
	if p.TrackingCode != nil && strings.TrimSpace(*p.TrackingCode) == "" {
		fields["trackingCode"] = "failed required"
	}
	if p.ShippingDeadline != nil && *p.ShippingDeadline != "" {
		if err := validate.Var(*p.ShippingDeadline, "datetime=2006-01-02"); err != nil {
			fields["shippingDeadline"] = "failed datetime=2006-01-02"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Columns maps the present fields to their column updates.
func (p Patch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.ItemName != nil {
		cols["item_name"] = strings.TrimSpace(*p.ItemName)
	}
	if p.Image != nil {
		cols["image"] = *p.Image
	}
	if p.Status != nil {
		cols["status"] = *p.Status
	}
	if p.Direction != nil {
		cols["direction"] = *p.Direction
	}
	if p.Carrier != nil {
		cols["carrier"] = *p.Carrier
	}
	if p.TrackingCode != nil {
		cols["tracking_code"] = NormalizeTrackingCode(*p.TrackingCode)
	}
	if p.LastUpdate != nil {
		cols["last_update"] = *p.LastUpdate
	}
	if p.PickupLocation != nil {
		cols["pickup_location"] = *p.PickupLocation
	}
	if p.ReceiptImage != nil {
		cols["receipt_image"] = nullable(*p.ReceiptImage)
	}
	if p.PackagingPhoto != nil {
		cols["packaging_photo"] = nullable(*p.PackagingPhoto)
	}
	if p.PackingNote != nil {
		cols["packing_note"] = nullable(*p.PackingNote)
	}
	if p.ShippingDeadline != nil {
		cols["shipping_deadline"] = nullable(*p.ShippingDeadline)
	}
	if p.Archived != nil {
		cols["is_archived"] = *p.Archived
	}
	return cols
}

// ApplyTo shallow-merges the present fields into s, mirroring Columns.
func (p Patch) ApplyTo(s *Shipment) {
	if p.ItemName != nil {
		s.ItemName = strings.TrimSpace(*p.ItemName)
	}
	if p.Image != nil {
		s.Image = *p.Image
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.Direction != nil {
		s.Direction = *p.Direction
	}
	if p.Carrier != nil {
		s.Carrier = *p.Carrier
	}
	if p.TrackingCode != nil {
		s.TrackingCode = NormalizeTrackingCode(*p.TrackingCode)
	}
	if p.LastUpdate != nil {
		s.LastUpdate = *p.LastUpdate
	}
	if p.PickupLocation != nil {
		loc := *p.PickupLocation
		s.PickupLocation = &loc
	}
	if p.ReceiptImage != nil {
		s.ReceiptImage = optional(*p.ReceiptImage)
	}
	if p.PackagingPhoto != nil {
		s.PackagingPhoto = optional(*p.PackagingPhoto)
	}
	if p.PackingNote != nil {
		s.PackingNote = optional(*p.PackingNote)
	}
	if p.ShippingDeadline != nil {
		s.ShippingDeadline = optional(*p.ShippingDeadline)
	}
	if p.Archived != nil {
		s.Archived = *p.Archived
	}
}

func nullable(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
