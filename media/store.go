package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedType = errors.New("unsupported image type")

// ImageStore persists an uploaded image and returns the reference that is
// written into the shipment record.
type ImageStore interface {
	Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ObjectKey builds owners/<owner>/shipments/<id>/<kind>-<uuid>.<ext>.
func ObjectKey(ownerID, shipmentID, kind, contentType string) (string, error) {
	ext, ok := extensions[normalizeType(contentType)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	name := fmt.Sprintf("%s-%s%s", kind, uuid.NewString(), ext)
	return path.Join("owners", ownerID, "shipments", shipmentID, name), nil
}

func normalizeType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
