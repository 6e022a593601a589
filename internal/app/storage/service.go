/*
Package storage provides the optional thumbnail mirror.

When configured, catalog refreshes copy each game's cover image into an
S3-compatible bucket and the served catalog points at presigned URLs of the
mirrored copies, so clients never hotlink the upstream CDN.
*/
package storage

import (
	"context"
	"time"
)

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// PresignDuration is the lifetime of the download URLs handed out for
// mirrored thumbnails. Catalog refreshes regenerate them well before expiry.
const PresignDuration = 24 * time.Hour

// ThumbnailStore defines the public interface of the thumbnail mirror.
type ThumbnailStore interface {
	// MirrorThumbnail stores a copy of the image at srcURL under the game's
	// key, skipping the upload when a copy already exists, and returns a
	// presigned URL serving the mirrored copy.
	MirrorThumbnail(ctx context.Context, gameID int64, srcURL string) (string, error)

	// Delete removes the mirrored copy for the given game.
	Delete(ctx context.Context, gameID int64) error
}

// NewThumbnailStore is the factory function for ThumbnailStore.
// It initializes and returns a concrete implementation based on the provided configuration.
func NewThumbnailStore(cfg ServiceConfig) (ThumbnailStore, error) {
	// Currently, only S3 compatible implementations are supported.
	return newS3Store(cfg)
}
