package response

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"packtrack-service/auth"
	"packtrack-service/integrations"
	"packtrack-service/media"
	"packtrack-service/workers/shipments/models"
	"packtrack-service/workers/shipments/repositories"
)

// FromError maps a domain error to its envelope code and message. Unknown
// errors are logged and answered with a generic message.
func FromError(c *gin.Context, logger *zap.Logger, err error) {
	var validationErr *models.ValidationError
	var providerErr *auth.ProviderError
	var remoteErr *repositories.RemoteError

	switch {
	case errors.As(err, &validationErr):
		ErrorWithData(c, CodeBadRequest, "validation failed", gin.H{"fields": validationErr.Fields})
	case errors.Is(err, repositories.ErrNotFound):
		NotFound(c, "shipment not found")
	case errors.Is(err, integrations.ErrUnknownIntegration):
		NotFound(c, "integration not found")
	case errors.Is(err, integrations.ErrSyncInProgress):
		Error(c, CodeConflict, "a sync is already running")
	case errors.Is(err, media.ErrUnsupportedType):
		BadRequest(c, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(c, "session expired, please sign in again")
	case errors.As(err, &providerErr):
		if providerErr.Status == 429 {
			Error(c, CodeTooManyRequests, providerErr.Message)
			return
		}
		Error(c, CodeUnauthorized, providerErr.Message)
	case errors.As(err, &remoteErr):
		logger.Error("Store request failed", zap.String("op", remoteErr.Op), zap.Error(remoteErr.Err))
		Error(c, CodeInternal, "could not reach the shipment store")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		Error(c, CodeInternal, "request cancelled")
	default:
		logger.Error("Unhandled request error", zap.String("path", c.FullPath()), zap.Error(err))
		Error(c, CodeInternal, "internal error")
	}
}
