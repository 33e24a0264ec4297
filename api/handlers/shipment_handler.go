package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"packtrack-service/api/middleware"
	"packtrack-service/api/response"
	"packtrack-service/media"
	"packtrack-service/presentation"
	"packtrack-service/workers/shipments/models"
	"packtrack-service/workers/shipments/state"
	"packtrack-service/workers/shipments/views"
)

const (
	maxUploadBytes = 5 << 20
	pickupCodeCell = 8
)

// Refresher re-checks an owner's active shipments with the carriers.
type Refresher interface {
	RefreshOwner(ctx context.Context, c *state.Controller) int
}

type ShipmentHandler struct {
	Registry  *state.Registry
	Refresher Refresher
	Images    media.ImageStore
	Logger    *zap.Logger
	Now       func() time.Time
}

func (h *ShipmentHandler) controller(c *gin.Context) *state.Controller {
	return h.Registry.For(c.Request.Context(), middleware.OwnerID(c))
}

func (h *ShipmentHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// List returns the dashboard: the active or archived partition filtered by
// direction, status and search text, plus the stats.
func (h *ShipmentHandler) List(c *gin.Context) {
	var criteria views.Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		response.BadRequest(c, "invalid filter")
		return
	}
	showArchived := c.Query("view") == "archived"

	response.Success(c, views.View(h.controller(c).Shipments(), showArchived, criteria))
}

func (h *ShipmentHandler) Create(c *gin.Context) {
	var draft models.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	shipment, err := h.controller(c).Add(c.Request.Context(), draft)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.SuccessWithMsg(c, "Parcel added", shipment)
}

func (h *ShipmentHandler) Reload(c *gin.Context) {
	ctl := h.controller(c)
	if err := ctl.Load(c.Request.Context()); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, gin.H{"count": len(ctl.Shipments())})
}

func (h *ShipmentHandler) Refresh(c *gin.Context) {
	updated := h.Refresher.RefreshOwner(c.Request.Context(), h.controller(c))
	response.Success(c, gin.H{"updated": updated})
}

func (h *ShipmentHandler) ArchiveCompleted(c *gin.Context) {
	count, err := h.controller(c).ArchiveCompleted(c.Request.Context())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, gin.H{"archived": count})
}

func (h *ShipmentHandler) Update(c *gin.Context) {
	var patch models.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	ctl := h.controller(c)
	id := c.Param("id")
	if err := ctl.Update(c.Request.Context(), id, patch); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	shipment, _ := ctl.Get(id)
	response.Success(c, shipment)
}

func (h *ShipmentHandler) Delete(c *gin.Context) {
	if err := h.controller(c).Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, nil)
}

func (h *ShipmentHandler) Details(c *gin.Context) {
	shipment, ok := h.controller(c).Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "shipment not found")
		return
	}
	response.Success(c, presentation.DetailsFor(shipment, h.now()))
}

func (h *ShipmentHandler) PickupCode(c *gin.Context) {
	shipment, ok := h.controller(c).Get(c.Param("id"))
	if !ok || shipment.PickupLocation == nil || shipment.PickupLocation.PinCode == "" {
		response.NotFound(c, "no pickup code for this shipment")
		return
	}
	svg := presentation.PickupCode(shipment.PickupLocation.PinCode).SVG(pickupCodeCell)
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}

// UploadImage stores the multipart "file" and writes its reference into the
// image, receipt or packaging field.
func (h *ShipmentHandler) UploadImage(c *gin.Context) {
	ctl := h.controller(c)
	id := c.Param("id")
	if _, ok := ctl.Get(id); !ok {
		response.NotFound(c, "shipment not found")
		return
	}

	kind := c.Param("kind")
	if kind != "image" && kind != "receipt" && kind != "packaging" {
		response.BadRequest(c, "unknown image kind")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		response.BadRequest(c, "file could not be read")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	key, err := media.ObjectKey(ctl.OwnerID(), id, kind, contentType)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	ref, err := h.Images.Put(c.Request.Context(), key, contentType, file)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}

	var patch models.Patch
	switch kind {
	case "image":
		patch.Image = &ref
	case "receipt":
		patch.ReceiptImage = &ref
	case "packaging":
		patch.PackagingPhoto = &ref
	}
	if err := ctl.Update(c.Request.Context(), id, patch); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	shipment, _ := ctl.Get(id)
	response.Success(c, shipment)
}
