package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"packtrack-service/api/handlers"
	"packtrack-service/api/middleware"
	"packtrack-service/auth"
	"packtrack-service/config"
	"packtrack-service/core"
	"packtrack-service/integrations"
	"packtrack-service/media"
	"packtrack-service/socket"
	"packtrack-service/workers/shipments/state"
)

// Dependencies are the components the HTTP surface is wired to.
type Dependencies struct {
	Config    *config.Config
	Logger    *zap.Logger
	DB        *gorm.DB
	Registry  *state.Registry
	Refresher handlers.Refresher
	Syncer    *integrations.Syncer
	Provider  auth.Provider
	Sessions  *auth.Sessions
	Images    media.ImageStore
	Hub       *socket.Hub
	Metrics   *core.Metrics
}

func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.CORS(deps.Config.CORS))

	healthHandler := &handlers.HealthHandler{DB: deps.DB}
	authHandler := &handlers.AuthHandler{
		Provider:     deps.Provider,
		Sessions:     deps.Sessions,
		Registry:     deps.Registry,
		Logger:       deps.Logger,
		SecureCookie: deps.Config.Server.Mode == gin.ReleaseMode,
	}
	shipmentHandler := &handlers.ShipmentHandler{
		Registry:  deps.Registry,
		Refresher: deps.Refresher,
		Images:    deps.Images,
		Logger:    deps.Logger,
	}
	integrationHandler := &handlers.IntegrationHandler{Syncer: deps.Syncer, Logger: deps.Logger}
	webSocketHandler := &handlers.WebSocketHandler{Hub: deps.Hub, Sessions: deps.Sessions, Logger: deps.Logger}

	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))
	router.GET("/auth/callback", authHandler.Callback)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/magic-link", authHandler.MagicLink)
			authGroup.POST("/logout", middleware.Auth(deps.Sessions), authHandler.Logout)
		}

		protected := apiV1.Group("/")
		protected.Use(middleware.Auth(deps.Sessions))
		{
			shipments := protected.Group("/shipments")
			{
				shipments.GET("", shipmentHandler.List)
				shipments.POST("", shipmentHandler.Create)
				shipments.POST("/reload", shipmentHandler.Reload)
				shipments.POST("/refresh", shipmentHandler.Refresh)
				shipments.POST("/archive-completed", shipmentHandler.ArchiveCompleted)
				shipments.PATCH("/:id", shipmentHandler.Update)
				shipments.DELETE("/:id", shipmentHandler.Delete)
				shipments.GET("/:id/details", shipmentHandler.Details)
				shipments.GET("/:id/pickup-code.svg", shipmentHandler.PickupCode)
				shipments.POST("/:id/images/:kind", shipmentHandler.UploadImage)
			}

			protected.GET("/integrations", integrationHandler.List)
			protected.POST("/integrations/:id/toggle", integrationHandler.Toggle)

			protected.GET("/sync", integrationHandler.SyncStatus)
			protected.POST("/sync", integrationHandler.StartSync)
			protected.DELETE("/sync", integrationHandler.CancelSync)
		}
	}

	return router
}
