package shipments

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"packtrack-service/config"
	"packtrack-service/core"
	"packtrack-service/workers/shipments/models"
	"packtrack-service/workers/shipments/processors/simulated"
	"packtrack-service/workers/shipments/processors/unsupported"
	"packtrack-service/workers/shipments/repositories"
	"packtrack-service/workers/shipments/state"
)

func setupWorkerTest(t *testing.T, cfg config.TrackingConfig) (*Worker, *repositories.ShipmentRepository, *state.Registry) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	repo := repositories.NewShipmentRepository(db)
	if err := repo.Migrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	registry := state.NewRegistry(repo, zap.NewNop())
	w := NewWorker(zap.NewNop(), repo, registry, core.NewMetrics(), cfg)
	return w, repo, registry
}

func TestExecuteRefreshesActiveShipments(t *testing.T) {
	w, repo, _ := setupWorkerTest(t, config.TrackingConfig{})
	ctx := context.Background()

	active, _ := repo.Insert(ctx, "user-1", &models.Shipment{ItemName: "a", Status: models.StatusInTransit, Carrier: models.CarrierPostNL, TrackingCode: "A"})
	done, _ := repo.Insert(ctx, "user-1", &models.Shipment{ItemName: "b", Status: models.StatusDelivered, Carrier: models.CarrierPostNL, TrackingCode: "B"})

	w.Execute()

	list, err := repo.FetchAll(ctx, "user-1")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	for _, sh := range list {
		switch sh.ID {
		case active.ID:
			if !strings.HasPrefix(sh.LastUpdate, "Updated ") {
				t.Fatalf("active shipment not refreshed: %q", sh.LastUpdate)
			}
		case done.ID:
			if sh.LastUpdate != models.DefaultLastUpdate {
				t.Fatalf("delivered shipment must not be refreshed: %q", sh.LastUpdate)
			}
		}
	}
}

func TestExecuteKeepsBoundControllerInStep(t *testing.T) {
	w, repo, registry := setupWorkerTest(t, config.TrackingConfig{})
	ctx := context.Background()

	stored, _ := repo.Insert(ctx, "user-1", &models.Shipment{ItemName: "a", Status: models.StatusProcessing, Carrier: models.CarrierDPD, TrackingCode: "DPD1"})
	c := registry.For(ctx, "user-1")

	w.Execute()

	got, ok := c.Get(stored.ID)
	if !ok || !strings.HasPrefix(got.LastUpdate, "Updated ") {
		t.Fatalf("controller cache not refreshed: %+v", got)
	}
}

func TestRefreshOwnerSkipsArchivedAndFinal(t *testing.T) {
	w, repo, registry := setupWorkerTest(t, config.TrackingConfig{})
	ctx := context.Background()

	_, _ = repo.Insert(ctx, "user-1", &models.Shipment{ItemName: "a", Status: models.StatusInTransit, Carrier: models.CarrierDHL, TrackingCode: "A"})
	_, _ = repo.Insert(ctx, "user-1", &models.Shipment{ItemName: "b", Status: models.StatusException, Carrier: models.CarrierDHL, TrackingCode: "B"})
	c := registry.For(ctx, "user-1")

	if got := w.RefreshOwner(ctx, c); got != 1 {
		t.Fatalf("expected 1 refreshed shipment, got %d", got)
	}
}

func TestExecuteLeavesCompletedAndAwaitingDropoffUntouched(t *testing.T) {
	w, repo, _ := setupWorkerTest(t, config.TrackingConfig{Simulate: true})
	ctx := context.Background()

	untouched := []models.Shipment{
		{ItemName: "a", Status: models.StatusPickedUp, Direction: models.DirectionIncoming, Carrier: models.CarrierPostNL, TrackingCode: "A"},
		{ItemName: "b", Status: models.StatusShipped, Direction: models.DirectionOutgoing, Carrier: models.CarrierPostNL, TrackingCode: "B"},
		{ItemName: "c", Status: models.StatusAwaitingDropoff, Direction: models.DirectionOutgoing, Carrier: models.CarrierDHL, TrackingCode: "C"},
	}
	want := make(map[string]models.ShipmentStatus)
	for i := range untouched {
		stored, err := repo.Insert(ctx, "user-1", &untouched[i])
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		want[stored.ID] = stored.Status
	}

	w.Execute()

	list, err := repo.FetchAll(ctx, "user-1")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	for _, sh := range list {
		if sh.Status != want[sh.ID] || sh.LastUpdate != models.DefaultLastUpdate {
			t.Fatalf("shipment %s changed by refresh: status %s, last update %q", sh.ItemName, sh.Status, sh.LastUpdate)
		}
	}
}

func TestRefreshOwnerSkipsAwaitingDropoff(t *testing.T) {
	w, repo, registry := setupWorkerTest(t, config.TrackingConfig{Simulate: true})
	ctx := context.Background()

	_, _ = repo.Insert(ctx, "user-1", &models.Shipment{ItemName: "a", Status: models.StatusAwaitingDropoff, Direction: models.DirectionOutgoing, Carrier: models.CarrierDHL, TrackingCode: "A"})
	_, _ = repo.Insert(ctx, "user-1", &models.Shipment{ItemName: "b", Status: models.StatusPickedUp, Carrier: models.CarrierDHL, TrackingCode: "B"})
	c := registry.For(ctx, "user-1")

	if got := w.RefreshOwner(ctx, c); got != 0 {
		t.Fatalf("expected nothing refreshed, got %d", got)
	}
}

func TestGetProcessorFallsBack(t *testing.T) {
	w, _, _ := setupWorkerTest(t, config.TrackingConfig{})

	if _, ok := w.getProcessor(models.CarrierDHL).(*unsupported.TrackingProcessor); !ok {
		t.Fatalf("dhl without api key should use the unsupported processor")
	}
	if _, ok := w.getProcessor("ups").(*unsupported.TrackingProcessor); !ok {
		t.Fatalf("unknown carrier should use the unsupported processor")
	}
	if w.getProcessor(models.CarrierDHL) != w.getProcessor(models.CarrierDHL) {
		t.Fatalf("processors should be cached per carrier")
	}
}

func TestGetProcessorSimulatesWhenEnabled(t *testing.T) {
	w, _, _ := setupWorkerTest(t, config.TrackingConfig{Simulate: true})

	if _, ok := w.getProcessor(models.CarrierPostNL).(*simulated.TrackingProcessor); !ok {
		t.Fatalf("postnl should use the simulated processor when simulation is on")
	}
	if _, ok := w.getProcessor("ups").(*unsupported.TrackingProcessor); !ok {
		t.Fatalf("unknown carrier should still use the unsupported processor")
	}
}
