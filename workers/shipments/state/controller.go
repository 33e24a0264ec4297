package state

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"packtrack-service/workers/shipments/models"
	"packtrack-service/workers/shipments/repositories"
)

// Controller owns one user's in-memory shipment list. Every mutation goes to
// the store first and touches the cache only after the store accepted it.
type Controller struct {
	ownerID string
	store   repositories.Store
	logger  *zap.Logger

	mu        sync.Mutex
	shipments []models.Shipment
	loaded    bool
}

func NewController(ownerID string, store repositories.Store, logger *zap.Logger) *Controller {
	return &Controller{
		ownerID: ownerID,
		store:   store,
		logger:  logger.With(zap.String("owner_id", ownerID)),
	}
}

func (c *Controller) OwnerID() string {
	return c.ownerID
}

// Load replaces the cache with the stored list. The controller counts as
// loaded once the attempt finished, whether or not it succeeded.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.loaded = true }()

	shipments, err := c.store.FetchAll(ctx, c.ownerID)
	if err != nil {
		c.logger.Error("Failed to load shipments", zap.Error(err))
		return err
	}
	c.shipments = shipments
	return nil
}

func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Shipments returns a copy of the cached list.
func (c *Controller) Shipments() []models.Shipment {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Shipment, len(c.shipments))
	for i, s := range c.shipments {
		out[i] = s.Clone()
	}
	return out
}

// Get returns a copy of the cached shipment with id.
func (c *Controller) Get(id string) (models.Shipment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(id); i >= 0 {
		return c.shipments[i].Clone(), true
	}
	return models.Shipment{}, false
}

func (c *Controller) Exists(ctx context.Context, trackingCode string) (bool, error) {
	return c.store.Exists(ctx, c.ownerID, trackingCode)
}

// Add normalizes and validates draft, inserts it and prepends the stored row.
func (c *Controller) Add(ctx context.Context, draft models.Draft) (models.Shipment, error) {
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		return models.Shipment{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stored, err := c.store.Insert(ctx, c.ownerID, draft.ToShipment(c.ownerID))
	if err != nil {
		c.logger.Error("Failed to add shipment",
			zap.String("tracking_code", draft.TrackingCode),
			zap.Error(err),
		)
		return models.Shipment{}, err
	}

	c.shipments = append([]models.Shipment{*stored}, c.shipments...)
	return stored.Clone(), nil
}

// Update writes patch to the store and then merges it into the cached row.
func (c *Controller) Update(ctx context.Context, id string, patch models.Patch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Update(ctx, c.ownerID, id, patch); err != nil {
		c.logger.Error("Failed to update shipment", zap.String("shipment_id", id), zap.Error(err))
		return err
	}

	if i := c.indexOf(id); i >= 0 {
		patch.ApplyTo(&c.shipments[i])
	}
	return nil
}

// ArchiveCompleted archives every completed shipment and returns the count.
func (c *Controller) ArchiveCompleted(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	count, err := c.store.ArchiveCompleted(ctx, c.ownerID)
	if err != nil {
		c.logger.Error("Failed to archive completed shipments", zap.Error(err))
		return 0, err
	}

	if count > 0 {
		for i := range c.shipments {
			if !c.shipments[i].Archived && c.shipments[i].IsCompleted() {
				c.shipments[i].Archived = true
			}
		}
	}
	return count, nil
}

func (c *Controller) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Remove(ctx, c.ownerID, id); err != nil {
		c.logger.Error("Failed to remove shipment", zap.String("shipment_id", id), zap.Error(err))
		return err
	}

	if i := c.indexOf(id); i >= 0 {
		c.shipments = append(c.shipments[:i], c.shipments[i+1:]...)
	}
	return nil
}

func (c *Controller) indexOf(id string) int {
	for i := range c.shipments {
		if c.shipments[i].ID == id {
			return i
		}
	}
	return -1
}
