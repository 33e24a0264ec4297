package mondialrelay

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
	"packtrack-service/workers/shipments/models"
	"packtrack-service/workers/shipments/processors"
)

// statusKeywords is checked in order against the lower-cased status heading.
// The page is served in French, Dutch or English depending on the locale.
var statusKeywords = []struct {
	keyword string
	status  models.ShipmentStatus
}{
	{"opgehaald", models.StatusPickedUp},
	{"récupéré", models.StatusPickedUp},
	{"collected", models.StatusPickedUp},
	{"op te halen", models.StatusReadyForPickup},
	{"disponible", models.StatusReadyForPickup},
	{"ready for collection", models.StatusReadyForPickup},
	{"ready for pickup", models.StatusReadyForPickup},
	{"livré", models.StatusDelivered},
	{"bezorgd", models.StatusDelivered},
	{"delivered", models.StatusDelivered},
	{"onderweg", models.StatusInTransit},
	{"en cours", models.StatusInTransit},
	{"in transit", models.StatusInTransit},
	{"aangemeld", models.StatusProcessing},
	{"pris en charge", models.StatusProcessing},
	{"registered", models.StatusProcessing},
	{"incident", models.StatusException},
	{"probleem", models.StatusException},
	{"problem", models.StatusException},
}

// TrackingProcessor scrapes the public Mondial Relay tracking page. The
// tracking URI must contain one %s verb for the tracking code.
type TrackingProcessor struct {
	logger      *zap.Logger
	trackingUri string
}

func NewTrackingProcessor(logger *zap.Logger, trackingUri string) *TrackingProcessor {
	return &TrackingProcessor{logger: logger, trackingUri: trackingUri}
}

func (p *TrackingProcessor) Process(ctx context.Context, shipment models.Shipment) (*processors.CarrierTrackingResults, error) {
	now := time.Now()
	title := ""
	lastLoc := ""

	c := colly.NewCollector()
	c.Context = ctx
	c.SetRequestTimeout(20 * time.Second)

	c.OnHTML(".tracking-status h2", func(e *colly.HTMLElement) {
		if title == "" {
			title = strings.TrimSpace(e.Text)
		}
	})

	c.OnHTML(".tracking-steps li.current", func(e *colly.HTMLElement) {
		text := strings.ReplaceAll(e.ChildText(".location"), "\u00a0", " ")
		lastLoc = strings.TrimSpace(text)
	})

	var visitErr error
	c.OnError(func(r *colly.Response, err error) {
		visitErr = fmt.Errorf("mondial relay tracking page returned %d: %w", r.StatusCode, err)
	})

	target := fmt.Sprintf(p.trackingUri, url.QueryEscape(shipment.TrackingCode))
	if err := c.Visit(target); err != nil {
		return nil, err
	}
	if visitErr != nil {
		return nil, visitErr
	}

	status, ok := statusFromTitle(title)
	if !ok {
		p.logger.Warn("Unrecognised Mondial Relay status",
			zap.String("tracking_code", shipment.TrackingCode),
			zap.String("title", title),
		)
		status = shipment.Status
	}

	return &processors.CarrierTrackingResults{
		TrackingCode:  shipment.TrackingCode,
		Status:        status,
		LastLocation:  lastLoc,
		LastCheckedAt: now,
	}, nil
}

func statusFromTitle(title string) (models.ShipmentStatus, bool) {
	lower := strings.ToLower(title)
	if lower == "" {
		return "", false
	}
	for _, k := range statusKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.status, true
		}
	}
	return "", false
}
