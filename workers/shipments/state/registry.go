package state

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"packtrack-service/workers/shipments/models"
	"packtrack-service/workers/shipments/repositories"
)

// Registry binds a Controller to each signed-in owner.
type Registry struct {
	store  repositories.Store
	logger *zap.Logger

	mu          sync.Mutex
	controllers map[string]*Controller
}

func NewRegistry(store repositories.Store, logger *zap.Logger) *Registry {
	return &Registry{
		store:       store,
		logger:      logger,
		controllers: make(map[string]*Controller),
	}
}

// For returns the owner's controller, creating and loading it on first use.
// A controller whose first load failed is handed out with an empty cache but
// not kept.
func (r *Registry) For(ctx context.Context, ownerID string) *Controller {
	r.mu.Lock()
	c, ok := r.controllers[ownerID]
	if !ok {
		c = NewController(ownerID, r.store, r.logger)
		r.controllers[ownerID] = c
	}
	r.mu.Unlock()

	if !ok {
		if err := c.Load(ctx); err != nil {
			// unbind so the next request loads again
			r.mu.Lock()
			if r.controllers[ownerID] == c {
				delete(r.controllers, ownerID)
			}
			r.mu.Unlock()
		}
	}
	return c
}

// Lookup returns the owner's controller without creating one.
func (r *Registry) Lookup(ownerID string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.controllers[ownerID]
	return c, ok
}

// Drop forgets the owner's controller, e.g. on sign-out.
func (r *Registry) Drop(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.controllers, ownerID)
}

// UpdateOwned applies a background update. A bound controller keeps its cache
// in step; otherwise the store is written directly.
func (r *Registry) UpdateOwned(ctx context.Context, ownerID, id string, patch models.Patch) error {
	if c, ok := r.Lookup(ownerID); ok {
		return c.Update(ctx, id, patch)
	}
	return r.store.Update(ctx, ownerID, id, patch)
}
