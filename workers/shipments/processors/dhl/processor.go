package dhl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"packtrack-service/workers/shipments/models"
	"packtrack-service/workers/shipments/processors"
)

var statusMap = map[string]models.ShipmentStatus{
	"pre-transit": models.StatusProcessing,
	"transit":     models.StatusInTransit,
	"delivered":   models.StatusDelivered,
	"failure":     models.StatusException,
}

// TrackingProcessor queries the DHL unified shipment tracking API.
type TrackingProcessor struct {
	logger  *zap.Logger
	baseUri string
	apiKey  string
	client  *http.Client
}

func NewTrackingProcessor(logger *zap.Logger, baseUri, apiKey string) *TrackingProcessor {
	return &TrackingProcessor{
		logger:  logger,
		baseUri: strings.TrimRight(baseUri, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

func (p *TrackingProcessor) Process(ctx context.Context, shipment models.Shipment) (*processors.CarrierTrackingResults, error) {
	details, err := p.getTrackingDetails(ctx, shipment.TrackingCode)
	if err != nil {
		return nil, err
	}
	if len(details.Shipments) == 0 {
		return nil, fmt.Errorf("dhl returned no shipment for %s", shipment.TrackingCode)
	}

	current := details.Shipments[0].Status
	status, ok := statusMap[current.StatusCode]
	if !ok {
		status = shipment.Status
	}
	// DHL reports parcels waiting at a service point as transit
	if status == models.StatusInTransit && strings.Contains(strings.ToLower(current.Description), "pickup") {
		status = models.StatusReadyForPickup
	}

	return &processors.CarrierTrackingResults{
		TrackingCode:  shipment.TrackingCode,
		Status:        status,
		LastLocation:  current.Location.Address.AddressLocality,
		LastCheckedAt: time.Now(),
	}, nil
}

func (p *TrackingProcessor) getTrackingDetails(ctx context.Context, trackingCode string) (*ApiResponse, error) {
	u, err := url.Parse(p.baseUri + "/track/shipments")
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("trackingNumber", trackingCode)
	q.Set("language", "en")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("DHL-API-Key", p.apiKey)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		var problem ProblemResponse
		bodyBytes, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(bodyBytes, &problem) == nil && problem.Detail != "" {
			return nil, fmt.Errorf("dhl tracking %d: %s", resp.StatusCode, problem.Detail)
		}
		p.logger.Debug("DHL tracking request failed", zap.String("request_id", requestID), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResponse ApiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &apiResponse, nil
}
