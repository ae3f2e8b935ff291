package usecase

import (
	"context"

	"github.com/viewly/viewly/internal/assets"
	"github.com/viewly/viewly/internal/domain/model"
)

// AssetGateway is the capability services use to store and destroy
// binary assets. Services own the ordering between asset operations and
// their record writes; the gateway owns keys and idempotent removal.
type AssetGateway interface {
	// Store uploads content under a fresh key and returns its reference.
	Store(ctx context.Context, content assets.Content, kind model.AssetKind, folder string) (model.AssetRef, error)

	// Replace stores new content, then destroys the old asset.
	Replace(ctx context.Context, oldID string, content assets.Content, kind model.AssetKind, folder string) (model.AssetRef, error)

	// Remove destroys an asset. Absent assets are treated as removed.
	Remove(ctx context.Context, id string, kind model.AssetKind) error
}

// Compile-time verification that the concrete gateway satisfies the port.
var _ AssetGateway = (*assets.Gateway)(nil)

// Storage folders per asset kind.
const (
	folderVideos     = "videos"
	folderThumbnails = "thumbnails"
	folderAvatars    = "avatars"
)
