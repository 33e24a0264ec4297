package models

import (
	"strings"
	"unicode"
)

type ShipmentCarrier string

const (
	CarrierMondialRelay ShipmentCarrier = "mondial-relay"
	CarrierDHL          ShipmentCarrier = "dhl"
	CarrierPostNL       ShipmentCarrier = "postnl"
	CarrierDPD          ShipmentCarrier = "dpd"
	CarrierVintedGo     ShipmentCarrier = "vinted-go"
)

var AllCarriers = []ShipmentCarrier{CarrierMondialRelay, CarrierDHL, CarrierPostNL, CarrierDPD, CarrierVintedGo}

var carrierLabels = map[ShipmentCarrier]string{
	CarrierMondialRelay: "Mondial Relay",
	CarrierDHL:          "DHL",
	CarrierPostNL:       "PostNL",
	CarrierDPD:          "DPD",
	CarrierVintedGo:     "Vinted Go",
}

func (c ShipmentCarrier) Valid() bool {
	_, ok := carrierLabels[c]
	return ok
}

func (c ShipmentCarrier) Label() string {
	if label, ok := carrierLabels[c]; ok {
		return label
	}
	return string(c)
}

const vintedGoPrefix = "1770"

// DetectCarrier recognises Vinted Go codes: digits only once spaces and dashes
// are removed, at least four long, starting with 1770.
func DetectCarrier(trackingCode string) (ShipmentCarrier, bool) {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(trackingCode)
	if len(cleaned) < 4 || !strings.HasPrefix(cleaned, vintedGoPrefix) {
		return "", false
	}
	for _, r := range cleaned {
		if !unicode.IsDigit(r) {
			return "", false
		}
	}
	return CarrierVintedGo, true
}
