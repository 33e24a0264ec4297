package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"packtrack-service/api/routes"
	"packtrack-service/auth"
	"packtrack-service/config"
	"packtrack-service/core"
	"packtrack-service/integrations"
	"packtrack-service/media"
	"packtrack-service/socket"
	"packtrack-service/workers/shipments"
	"packtrack-service/workers/shipments/repositories"
	"packtrack-service/workers/shipments/state"
)

const (
	shutdownTimeout   = 10 * time.Second
	inlineImageLimit  = 5 << 20
	readHeaderTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := core.NewLogger(cfg.Server.Mode, cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	gin.SetMode(cfg.Server.Mode)

	db, err := core.OpenDatabase(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}

	metrics := core.NewMetrics()
	repo := repositories.NewShipmentRepository(db).WithMetrics(metrics)
	if err := repo.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	registry := state.NewRegistry(repo, logger)

	var locker integrations.Locker = integrations.NewMemoryLocker()
	if cfg.Redis.Enabled {
		client := integrations.NewRedisClient(cfg.Redis)
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		locker = integrations.NewRedisLocker(client, cfg.Redis.Prefix)
	}

	hub := socket.NewHub(logger)
	syncer := integrations.NewSyncer(logger, registry, integrations.NewCatalogue(),
		[]integrations.Source{integrations.NewVintedSource(), integrations.NewBolcomSource()},
		locker, hub, metrics,
		integrations.Options{
			PhaseDelay:  cfg.Sync.PhaseDelay(),
			ImportDelay: cfg.Sync.ImportDelay(),
			LockTTL:     cfg.Sync.LockTTL(),
		},
	)

	worker := shipments.NewWorker(logger, repo, registry, metrics, cfg.Tracking)
	orchestrator := core.NewOrchestrator(logger, []core.Worker{worker})
	c, err := orchestrator.Start()
	if err != nil {
		logger.Fatal("Failed to start workers", zap.Error(err))
	}

	sessions, err := auth.NewSessions(cfg.JWT)
	if err != nil {
		logger.Fatal("Failed to init sessions", zap.Error(err))
	}

	var images media.ImageStore = media.NewDataURLStore(inlineImageLimit)
	if cfg.S3.Enabled() {
		s3Store, err := media.NewS3Store(context.Background(), cfg.S3)
		if err != nil {
			logger.Fatal("Failed to init S3 store", zap.Error(err))
		}
		images = s3Store
	}

	router := routes.SetupRouter(routes.Dependencies{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Registry:  registry,
		Refresher: worker,
		Syncer:    syncer,
		Provider:  auth.NewGoTrueProvider(cfg.Auth),
		Sessions:  sessions,
		Images:    images,
		Hub:       hub,
		Metrics:   metrics,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for termination signal to exit gracefully
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	<-c.Stop().Done()
}
