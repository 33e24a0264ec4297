package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError lists the offending fields of a rejected draft or patch.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Draft is a shipment that has not been persisted yet.
type Draft struct {
	ItemName         string            `json:"itemName" validate:"required,max=200"`
	Image            string            `json:"image"`
	Status           ShipmentStatus    `json:"status" validate:"omitempty,oneof=processing in-transit ready-for-pickup shipped delivered picked-up exception awaiting-dropoff"`
	Direction        ShipmentDirection `json:"direction" validate:"omitempty,oneof=incoming outgoing"`
	Carrier          ShipmentCarrier   `json:"carrier" validate:"required,oneof=mondial-relay dhl postnl dpd vinted-go"`
	TrackingCode     string            `json:"trackingCode" validate:"required,max=100"`
	LastUpdate       string            `json:"lastUpdate"`
	PickupLocation   *PickupLocation   `json:"pickupLocation,omitempty"`
	ReceiptImage     *string           `json:"receiptImage,omitempty"`
	PackagingPhoto   *string           `json:"packagingPhoto,omitempty"`
	PackingNote      *string           `json:"packingNote,omitempty"`
	ShippingDeadline *string           `json:"shippingDeadline,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Archived         bool              `json:"archived"`
}

// NormalizeTrackingCode trims and uppercases a tracking code.
func NormalizeTrackingCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Normalize applies the entry rules of the add-parcel form: trimmed fields,
// uppercase tracking code, Vinted Go detection when no carrier was picked,
// incoming as default direction and a direction-dependent initial status.
// Empty optional fields become absent.
func (d *Draft) Normalize() {
	d.ItemName = strings.TrimSpace(d.ItemName)
	d.TrackingCode = NormalizeTrackingCode(d.TrackingCode)
	if d.Carrier == "" {
		if carrier, ok := DetectCarrier(d.TrackingCode); ok {
			d.Carrier = carrier
		}
	}
	d.Direction = d.Direction.OrDefault()
	if d.Status == "" {
		d.Status = DefaultStatus(d.Direction)
	}
	d.ReceiptImage = trimmedOrNil(d.ReceiptImage)
	d.PackagingPhoto = trimmedOrNil(d.PackagingPhoto)
	d.PackingNote = trimmedOrNil(d.PackingNote)
	d.ShippingDeadline = trimmedOrNil(d.ShippingDeadline)
}

// Validate checks the required fields (item name, tracking code, carrier) and
// enum membership.
func (d Draft) Validate() error {
	if err := validate.Struct(d); err != nil {
		return toValidationError(err)
	}
	return nil
}

// ToShipment builds the row to insert for ownerID. The id is left for the
// store to assign.
func (d Draft) ToShipment(ownerID string) *Shipment {
	return &Shipment{
		UserID:           ownerID,
		ItemName:         d.ItemName,
		Image:            d.Image,
		Status:           d.Status,
		Direction:        d.Direction,
		Carrier:          d.Carrier,
		TrackingCode:     d.TrackingCode,
		LastUpdate:       d.LastUpdate,
		PickupLocation:   d.PickupLocation,
		ReceiptImage:     d.ReceiptImage,
		PackagingPhoto:   d.PackagingPhoto,
		PackingNote:      d.PackingNote,
		ShippingDeadline: d.ShippingDeadline,
		Archived:         d.Archived,
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func toValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fieldName(fe.Field())
		if fe.Param() != "" {
			fields[name] = fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
			continue
		}
		fields[name] = "failed " + fe.Tag()
	}
	return &ValidationError{Fields: fields}
}

// fieldName lower-cases the first rune so errors use the JSON field names.
func fieldName(goName string) string {
	if goName == "" {
		return goName
	}
	return strings.ToLower(goName[:1]) + goName[1:]
}
