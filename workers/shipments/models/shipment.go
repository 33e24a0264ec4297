package models

import (
	"time"
)

const (
	DefaultImage      = "/images/placeholder.jpg"
	DefaultLastUpdate = "just now"
)

// Shipment is a tracked parcel owned by one user. JSON names follow the
// dashboard's camelCase shape; columns are snake_case.
type Shipment struct {
	ID               string            `gorm:"primaryKey;size:64" json:"id"`
	UserID           string            `gorm:"size:64;not null;index:idx_shipments_owner_code,priority:1" json:"-"`
	ItemName         string            `gorm:"not null" json:"itemName"`
	Image            string            `gorm:"type:text" json:"image"`
	Status           ShipmentStatus    `gorm:"size:32;not null;index" json:"status"`
	Direction        ShipmentDirection `gorm:"size:16;not null" json:"direction"`
	Carrier          ShipmentCarrier   `gorm:"size:32;not null" json:"carrier"`
	TrackingCode     string            `gorm:"size:100;not null;index:idx_shipments_owner_code,priority:2" json:"trackingCode"`
	LastUpdate       string            `gorm:"size:100" json:"lastUpdate"`
	PickupLocation   *PickupLocation   `gorm:"type:json" json:"pickupLocation,omitempty"`
	ReceiptImage     *string           `gorm:"type:text" json:"receiptImage,omitempty"`
	PackagingPhoto   *string           `gorm:"type:text" json:"packagingPhoto,omitempty"`
	PackingNote      *string           `gorm:"type:text" json:"packingNote,omitempty"`
	ShippingDeadline *string           `gorm:"size:10" json:"shippingDeadline,omitempty"`
	Archived         bool              `gorm:"column:is_archived;not null;index" json:"archived"`
	CreatedAt        time.Time         `gorm:"index" json:"createdAt"`
}

func (Shipment) TableName() string {
	return "shipments"
}

// IsCompleted reports whether the shipment has reached a completed status.
func (s Shipment) IsCompleted() bool {
	return s.Status.IsCompleted()
}

// Clone returns a copy that shares no pointers with s.
func (s Shipment) Clone() Shipment {
	out := s
	if s.PickupLocation != nil {
		loc := *s.PickupLocation
		out.PickupLocation = &loc
	}
	out.ReceiptImage = cloneString(s.ReceiptImage)
	out.PackagingPhoto = cloneString(s.PackagingPhoto)
	out.PackingNote = cloneString(s.PackingNote)
	out.ShippingDeadline = cloneString(s.ShippingDeadline)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
