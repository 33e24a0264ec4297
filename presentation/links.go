package presentation

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"packtrack-service/workers/shipments/models"
)

// uriComponent escapes s the way browsers' encodeURIComponent does.
var uriComponent = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// ShareMessage is the text sent to whoever collects or drops off the parcel.
func ShareMessage(s models.Shipment) string {
	if s.Direction == models.DirectionOutgoing {
		text := fmt.Sprintf("Hi! Could you drop off this parcel for me? Code: %s.", s.TrackingCode)
		if s.PackingNote != nil && *s.PackingNote != "" {
			text += fmt.Sprintf(" Packing note: %s.", *s.PackingNote)
		}
		return text
	}

	text := fmt.Sprintf("Hi! Could you pick up this parcel for me? Code: %s.", s.TrackingCode)
	if s.PickupLocation != nil {
		text += fmt.Sprintf(" Location: %s.", s.PickupLocation.Name)
	}
	return text
}

// ShareURL is a WhatsApp deep link carrying ShareMessage.
func ShareURL(s models.Shipment) string {
	return "https://wa.me/?text=" + uriComponent.Replace(url.QueryEscape(ShareMessage(s)))
}

// RouteURL is a Google Maps directions link to the pickup point.
func RouteURL(loc *models.PickupLocation) string {
	if loc == nil {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%v,%v", loc.Lat, loc.Lng)
}

// Details bundles everything the detail screen derives from one shipment.
type Details struct {
	Shipment      models.Shipment `json:"shipment"`
	StatusLabel   string          `json:"statusLabel"`
	CarrierLabel  string          `json:"carrierLabel"`
	Deadline      *DeadlineInfo   `json:"deadline,omitempty"`
	ShareURL      string          `json:"shareUrl"`
	RouteURL      string          `json:"routeUrl,omitempty"`
	HasPickupCode bool            `json:"hasPickupCode"`
}

func DetailsFor(s models.Shipment, now time.Time) Details {
	return Details{
		Shipment:      s,
		StatusLabel:   s.Status.Label(),
		CarrierLabel:  s.Carrier.Label(),
		Deadline:      ClassifyDeadline(s.ShippingDeadline, now),
		ShareURL:      ShareURL(s),
		RouteURL:      RouteURL(s.PickupLocation),
		HasPickupCode: s.PickupLocation != nil && s.PickupLocation.PinCode != "",
	}
}
