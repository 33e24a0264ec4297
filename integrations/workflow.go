package integrations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"packtrack-service/core"
	"packtrack-service/workers/shipments/models"
	"packtrack-service/workers/shipments/state"
)

var (
	ErrSyncInProgress = errors.New("sync already in progress")
	ErrSyncCancelled  = errors.New("sync cancelled")
)

const (
	// forcedSource always takes part in a run, whatever its toggle says.
	forcedSource = "bolcom"
	// webhookMarker selects the parcel whose pickup the run reports.
	webhookMarker = "Nike"

	justNow = "just now"
)

// Publisher pushes run events to the owner's open connections.
type Publisher interface {
	Publish(ownerID string, payload interface{})
}

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastInfo    ToastKind = "info"
)

type Toast struct {
	Kind    ToastKind `json:"kind"`
	Message string    `json:"message"`
}

type Summary struct {
	Imported      int      `json:"imported"`
	Added         int      `json:"added"`
	StatusUpdates int      `json:"statusUpdates"`
	Skipped       int      `json:"skipped"`
	Sources       []string `json:"sources"`
	LastSync      string   `json:"lastSync"`
	Toast         *Toast   `json:"toast,omitempty"`
}

// RunStatus is the latest known state of an owner's sync run.
type RunStatus struct {
	Running  bool     `json:"running"`
	Phase    string   `json:"phase"`
	Label    string   `json:"label"`
	Progress int      `json:"progress"`
	Summary  *Summary `json:"summary,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Event is what subscribers receive for each step of a run.
type Event struct {
	Type string `json:"type"`
	RunStatus
}

type Options struct {
	PhaseDelay  time.Duration
	ImportDelay time.Duration
	LockTTL     time.Duration
}

type run struct {
	cancel    context.CancelFunc
	importing atomic.Bool
}

// Syncer drives the integration sync workflow for every owner.
type Syncer struct {
	logger    *zap.Logger
	registry  *state.Registry
	catalogue *Catalogue
	sources   []Source
	locker    Locker
	publisher Publisher
	metrics   *core.Metrics
	opts      Options
	now       func() time.Time

	mu       sync.Mutex
	runs     map[string]*run
	statuses map[string]RunStatus
}

func NewSyncer(logger *zap.Logger, registry *state.Registry, catalogue *Catalogue, sources []Source, locker Locker, publisher Publisher, metrics *core.Metrics, opts Options) *Syncer {
	if opts.LockTTL <= 0 {
		opts.LockTTL = 2 * time.Minute
	}
	return &Syncer{
		logger:    logger,
		registry:  registry,
		catalogue: catalogue,
		sources:   sources,
		locker:    locker,
		publisher: publisher,
		metrics:   metrics,
		opts:      opts,
		now:       time.Now,
		runs:      make(map[string]*run),
		statuses:  make(map[string]RunStatus),
	}
}

func (s *Syncer) Catalogue() *Catalogue {
	return s.catalogue
}

// Status returns the owner's current or last run state.
func (s *Syncer) Status(ownerID string) RunStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.statuses[ownerID]; ok {
		return st
	}
	return RunStatus{Phase: PhaseIdle}
}

// Start begins a run in the background. It fails with ErrSyncInProgress when
// the owner already has one.
func (s *Syncer) Start(ownerID string) error {
	unlock, err := s.lock(context.Background(), ownerID)
	if err != nil {
		return err
	}
	runCtx, r := s.begin(context.Background(), ownerID)
	go func() {
		defer unlock()
		if _, err := s.execute(runCtx, r, ownerID); err != nil && !errors.Is(err, ErrSyncCancelled) {
			s.logger.Error("Sync run failed", zap.String("owner_id", ownerID), zap.Error(err))
		}
	}()
	return nil
}

// Run performs a whole run and waits for its summary.
func (s *Syncer) Run(ctx context.Context, ownerID string) (*Summary, error) {
	unlock, err := s.lock(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	runCtx, r := s.begin(ctx, ownerID)
	return s.execute(runCtx, r, ownerID)
}

// Cancel stops the owner's run while it is still in the progress phases.
// Once importing has begun the run completes and Cancel reports false.
func (s *Syncer) Cancel(ownerID string) bool {
	s.mu.Lock()
	r, ok := s.runs[ownerID]
	s.mu.Unlock()
	if !ok || r.importing.Load() {
		return false
	}
	r.cancel()
	return true
}

func (s *Syncer) lock(ctx context.Context, ownerID string) (Unlock, error) {
	unlock, ok, err := s.locker.TryLock(ctx, "sync:"+ownerID, s.opts.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire sync lock: %w", err)
	}
	if !ok {
		s.record("rejected")
		return nil, ErrSyncInProgress
	}
	return unlock, nil
}

// begin registers the run so Cancel can reach it before execute starts.
func (s *Syncer) begin(ctx context.Context, ownerID string) (context.Context, *run) {
	runCtx, cancel := context.WithCancel(ctx)
	r := &run{cancel: cancel}
	s.mu.Lock()
	s.runs[ownerID] = r
	s.mu.Unlock()
	return runCtx, r
}

func (s *Syncer) execute(runCtx context.Context, r *run, ownerID string) (*Summary, error) {
	defer func() {
		r.cancel()
		s.mu.Lock()
		if s.runs[ownerID] == r {
			delete(s.runs, ownerID)
		}
		s.mu.Unlock()
	}()

	log := s.logger.With(zap.String("owner_id", ownerID))
	log.Info("Sync run started")

	last := len(Phases) - 1
	for _, phase := range Phases[:last] {
		s.publish(ownerID, "phase", RunStatus{Running: true, Phase: phase.Key, Label: phase.Label, Progress: phase.Progress})
		if err := wait(runCtx, s.opts.PhaseDelay); err != nil {
			return nil, s.abort(ownerID, err)
		}
	}
	if err := wait(runCtx, s.opts.ImportDelay); err != nil {
		return nil, s.abort(ownerID, err)
	}

	// past this point the run is no longer cancellable
	r.importing.Store(true)
	summary := s.importAll(context.WithoutCancel(runCtx), ownerID, log)

	done := Phases[last]
	s.publish(ownerID, "done", RunStatus{Phase: done.Key, Label: done.Label, Progress: done.Progress, Summary: summary})
	s.record("completed")
	log.Info("Sync run completed",
		zap.Int("imported", summary.Imported),
		zap.Int("skipped", summary.Skipped),
		zap.Strings("sources", summary.Sources),
	)
	return summary, nil
}

func (s *Syncer) abort(ownerID string, err error) error {
	if errors.Is(err, context.Canceled) {
		err = ErrSyncCancelled
	}
	s.publish(ownerID, "cancelled", RunStatus{Phase: PhaseIdle, Error: err.Error()})
	s.record("cancelled")
	s.logger.Info("Sync run stopped", zap.String("owner_id", ownerID), zap.Error(err))
	return err
}

// importAll fetches every active source in turn, adds the unseen parcels and
// applies the simulated pickup webhook.
func (s *Syncer) importAll(ctx context.Context, ownerID string, log *zap.Logger) *Summary {
	controller := s.registry.For(ctx, ownerID)
	before := controller.Shipments()

	active := s.catalogue.ActiveIDs(ownerID)
	if !contains(active, forcedSource) {
		active = append(active, forcedSource)
	}

	summary := &Summary{Sources: []string{}}
	for _, source := range s.sources {
		if !contains(active, source.ID()) {
			continue
		}
		drafts, err := source.Fetch(ctx)
		if err != nil {
			log.Error("Failed to fetch integration source", zap.String("source", source.ID()), zap.Error(err))
			continue
		}
		summary.Sources = append(summary.Sources, source.Name())

		for _, draft := range drafts {
			exists, err := controller.Exists(ctx, draft.TrackingCode)
			if err != nil {
				log.Error("Failed to check tracking code", zap.String("tracking_code", draft.TrackingCode), zap.Error(err))
				continue
			}
			if exists {
				summary.Skipped++
				continue
			}
			if _, err := controller.Add(ctx, draft); err != nil {
				continue
			}
			summary.Added++
		}
	}

	if picked, ok := findPickupCandidate(before); ok {
		status := models.StatusPickedUp
		lastUpdate := justNow
		if err := controller.Update(ctx, picked.ID, models.Patch{Status: &status, LastUpdate: &lastUpdate}); err == nil {
			summary.StatusUpdates = 1
		}
	}

	summary.Imported = summary.Added + summary.StatusUpdates
	summary.LastSync = s.now().Format("15:04")
	summary.Toast = toastFor(summary.Imported, summary.Skipped)

	if err := controller.Load(ctx); err != nil {
		log.Warn("Reload after sync failed", zap.Error(err))
	}
	s.catalogue.MarkConnected(ownerID, justNow, "vinted", forcedSource)

	if s.metrics != nil {
		s.metrics.SyncImported.Add(float64(summary.Imported))
		s.metrics.SyncSkipped.Add(float64(summary.Skipped))
	}
	return summary
}

func findPickupCandidate(list []models.Shipment) (models.Shipment, bool) {
	for _, sh := range list {
		if strings.Contains(sh.ItemName, webhookMarker) && sh.Status == models.StatusReadyForPickup {
			return sh, true
		}
	}
	return models.Shipment{}, false
}

func toastFor(imported, skipped int) *Toast {
	switch {
	case imported == 1:
		return &Toast{Kind: ToastSuccess, Message: "1 parcel imported successfully"}
	case imported > 1:
		return &Toast{Kind: ToastSuccess, Message: fmt.Sprintf("%d parcels imported successfully", imported)}
	case skipped > 0:
		return &Toast{Kind: ToastInfo, Message: "All parcels were already in your overview"}
	}
	return nil
}

func (s *Syncer) publish(ownerID, kind string, st RunStatus) {
	s.mu.Lock()
	s.statuses[ownerID] = st
	s.mu.Unlock()

	if s.publisher != nil {
		s.publisher.Publish(ownerID, Event{Type: "sync." + kind, RunStatus: st})
	}
}

func (s *Syncer) record(outcome string) {
	if s.metrics != nil {
		s.metrics.SyncRuns.WithLabelValues(outcome).Inc()
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
