package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PickupLocation is the collection point of a parcel waiting at a service
// point. It is persisted as a JSON document in the pickup_location column.
type PickupLocation struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	PostalCode   string  `json:"postalCode"`
	OpeningHours string  `json:"openingHours"`
	PinCode      string  `json:"pinCode"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
}

func (p PickupLocation) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PickupLocation) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported pickup_location type %T", value)
	}
	return json.Unmarshal(raw, p)
}
