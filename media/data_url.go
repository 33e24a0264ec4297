package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
)

// DataURLStore keeps images inline as base64 data URLs.
type DataURLStore struct {
	MaxBytes int64
}

func NewDataURLStore(maxBytes int64) *DataURLStore {
	return &DataURLStore{MaxBytes: maxBytes}
}

func (s *DataURLStore) Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ct := normalizeType(contentType)
	if _, ok := extensions[ct]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	reader := body
	if s.MaxBytes > 0 {
		reader = io.LimitReader(body, s.MaxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", key, err)
	}
	if s.MaxBytes > 0 && int64(len(data)) > s.MaxBytes {
		return "", fmt.Errorf("image %s exceeds %d bytes", key, s.MaxBytes)
	}

	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
