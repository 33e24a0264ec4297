package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"packtrack-service/core"
	"packtrack-service/workers/shipments/models"
)

// ShipmentRepository is the gorm backed Store.
type ShipmentRepository struct {
	db      *gorm.DB
	now     func() time.Time
	metrics *core.Metrics
}

func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db, now: time.Now}
}

// WithMetrics makes the repository count failed operations.
func (r *ShipmentRepository) WithMetrics(m *core.Metrics) *ShipmentRepository {
	r.metrics = m
	return r
}

func (r *ShipmentRepository) fail(op string, err error) error {
	if err != nil && r.metrics != nil {
		r.metrics.StoreErrors.WithLabelValues(op).Inc()
	}
	return remote(op, err)
}

// Migrate creates or updates the shipments table.
func (r *ShipmentRepository) Migrate() error {
	return r.fail("migrate", r.db.AutoMigrate(&models.Shipment{}))
}

// FetchAll returns the owner's shipments, newest first.
func (r *ShipmentRepository) FetchAll(ctx context.Context, ownerID string) ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&shipments).Error
	if err != nil {
		return nil, r.fail("fetch", err)
	}
	return shipments, nil
}

func (r *ShipmentRepository) Exists(ctx context.Context, ownerID, trackingCode string) (bool, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Where("user_id = ? AND tracking_code = ?", ownerID, models.NormalizeTrackingCode(trackingCode)).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return false, r.fail("exists", err)
	}
	return len(ids) > 0, nil
}

// Insert stores a new shipment for ownerID. Identity, timestamps and the
// column defaults are assigned here; the stored row is returned.
func (r *ShipmentRepository) Insert(ctx context.Context, ownerID string, shipment *models.Shipment) (*models.Shipment, error) {
	row := shipment.Clone()
	row.ID = uuid.NewString()
	row.UserID = ownerID
	row.CreatedAt = r.now().UTC()
	row.Archived = false
	if row.Image == "" {
		row.Image = models.DefaultImage
	}
	row.Direction = row.Direction.OrDefault()
	if row.LastUpdate == "" {
		row.LastUpdate = models.DefaultLastUpdate
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, r.fail("insert", err)
	}
	return &row, nil
}

// Update writes only the fields present in patch.
func (r *ShipmentRepository) Update(ctx context.Context, ownerID, id string, patch models.Patch) error {
	columns := patch.Columns()
	if len(columns) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(columns)
	if result.Error != nil {
		return r.fail("update", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ShipmentRepository) Remove(ctx context.Context, ownerID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Shipment{})
	if result.Error != nil {
		return r.fail("remove", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ArchiveCompleted flags every non-archived completed shipment of the owner in
// one statement and returns how many rows changed.
func (r *ShipmentRepository) ArchiveCompleted(ctx context.Context, ownerID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Where("user_id = ? AND is_archived = ? AND status IN ?", ownerID, false, models.CompletedStatuses).
		Update("is_archived", true)
	if result.Error != nil {
		return 0, r.fail("archive", result.Error)
	}
	return result.RowsAffected, nil
}

// ListRefreshable returns the active shipments of all owners whose status can
// still change.
func (r *ShipmentRepository) ListRefreshable(ctx context.Context) ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := r.db.WithContext(ctx).
		Where("is_archived = ? AND status NOT IN ?", false, models.UntrackableStatuses).
		Order("created_at ASC").
		Find(&shipments).Error
	if err != nil {
		return nil, r.fail("list refreshable", err)
	}
	return shipments, nil
}
