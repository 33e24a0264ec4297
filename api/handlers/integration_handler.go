package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"packtrack-service/api/middleware"
	"packtrack-service/api/response"
	"packtrack-service/integrations"
)

type IntegrationHandler struct {
	Syncer *integrations.Syncer
	Logger *zap.Logger
}

func (h *IntegrationHandler) List(c *gin.Context) {
	response.Success(c, h.Syncer.Catalogue().List(middleware.OwnerID(c)))
}

func (h *IntegrationHandler) Toggle(c *gin.Context) {
	integration, err := h.Syncer.Catalogue().Toggle(middleware.OwnerID(c), c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, integration)
}

// SyncStatus returns the current or last run of the caller.
func (h *IntegrationHandler) SyncStatus(c *gin.Context) {
	response.Success(c, h.Syncer.Status(middleware.OwnerID(c)))
}

// StartSync kicks off a run in the background; progress is pushed over the
// websocket and can be polled with SyncStatus.
func (h *IntegrationHandler) StartSync(c *gin.Context) {
	ownerID := middleware.OwnerID(c)
	if err := h.Syncer.Start(ownerID); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.SuccessWithMsg(c, "Sync started", h.Syncer.Status(ownerID))
}

func (h *IntegrationHandler) CancelSync(c *gin.Context) {
	cancelled := h.Syncer.Cancel(middleware.OwnerID(c))
	response.Success(c, gin.H{"cancelled": cancelled})
}
