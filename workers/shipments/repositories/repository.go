package repositories

import (
	"context"
	"errors"
	"fmt"

	"packtrack-service/workers/shipments/models"
)

// ErrNotFound is returned when an update or removal matched no row of the owner.
var ErrNotFound = errors.New("shipment not found")

// RemoteError wraps a failure of the backing database.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("shipment store %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Store is the persistence boundary for shipments. Every call is scoped to the
// owning user except ListRefreshable, which serves the background refresh.
type Store interface {
	FetchAll(ctx context.Context, ownerID string) ([]models.Shipment, error)
	Exists(ctx context.Context, ownerID, trackingCode string) (bool, error)
	Insert(ctx context.Context, ownerID string, shipment *models.Shipment) (*models.Shipment, error)
	Update(ctx context.Context, ownerID, id string, patch models.Patch) error
	Remove(ctx context.Context, ownerID, id string) error
	ArchiveCompleted(ctx context.Context, ownerID string) (int64, error)
	ListRefreshable(ctx context.Context) ([]models.Shipment, error)
}

func remote(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RemoteError{Op: op, Err: err}
}
