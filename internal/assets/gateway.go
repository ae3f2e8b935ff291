// Package assets implements the media asset gateway: a thin capability
// over the blob store that owns asset identifiers, upload/replace
// ordering, and idempotent removal.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/domain/repository"
	"github.com/viewly/viewly/internal/infrastructure/metrics"
)

// ErrUpstream marks a transient blob-store failure. Callers must not
// have committed a record change that assumes the asset operation
// succeeded; operations wrapped with this sentinel are retryable.
var ErrUpstream = errors.New("asset storage upstream failure")

// Content is a binary payload to be stored.
type Content struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// contentTypeFor is the fallback content type per asset kind.
func contentTypeFor(kind model.AssetKind) string {
	if kind == model.AssetKindVideo {
		return "video/mp4"
	}
	return "image/jpeg"
}

// Gateway stores, replaces, and removes binary assets on behalf of the
// record-owning services.
type Gateway struct {
	store  repository.BlobStore
	logger *slog.Logger
}

// NewGateway creates a Gateway over the given blob store.
func NewGateway(store repository.BlobStore, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{store: store, logger: logger}
}

// Store uploads content under a fresh key in folder and returns the
// asset reference. No record state is touched; the caller owns the
// cleanup path if its subsequent record write fails.
func (g *Gateway) Store(ctx context.Context, content Content, kind model.AssetKind, folder string) (model.AssetRef, error) {
	if content.Reader == nil {
		return model.AssetRef{}, fmt.Errorf("store asset: empty content")
	}

	contentType := content.ContentType
	if contentType == "" {
		contentType = contentTypeFor(kind)
	}

	key := path.Join(folder, uuid.NewString())
	if err := g.store.Upload(ctx, key, content.Reader, content.Size, contentType); err != nil {
		metrics.AssetOperationsTotal.WithLabelValues(metrics.AssetOpStore, metrics.AssetStatusErr).Inc()
		return model.AssetRef{}, fmt.Errorf("%w: upload %s: %v", ErrUpstream, key, err)
	}

	metrics.AssetOperationsTotal.WithLabelValues(metrics.AssetOpStore, metrics.AssetStatusOK).Inc()
	return model.AssetRef{ID: key, URL: g.store.URL(key)}, nil
}

// Replace stores the new content first and destroys the old asset only
// after the new one is confirmed stored. A failed removal of the old
// asset is logged and reported; the new reference is still returned
// because the store step committed.
//
// Replace serves callers that swap an asset with no record write in
// between. The account and video services need the record persisted
// between the two steps, so they sequence Store and Remove themselves.
func (g *Gateway) Replace(ctx context.Context, oldID string, content Content, kind model.AssetKind, folder string) (model.AssetRef, error) {
	ref, err := g.Store(ctx, content, kind, folder)
	if err != nil {
		return model.AssetRef{}, err
	}

	if err := g.Remove(ctx, oldID, kind); err != nil {
		g.logger.Warn("failed to remove replaced asset",
			slog.String("asset_id", oldID),
			slog.String("error", err.Error()),
		)
		return ref, err
	}

	return ref, nil
}

// Remove deletes an asset. An already-absent asset is treated as
// success so retries of partially failed sequences are safe.
func (g *Gateway) Remove(ctx context.Context, id string, kind model.AssetKind) error {
	if id == "" {
		return nil
	}

	err := g.store.Remove(ctx, id)
	if err == nil {
		metrics.AssetOperationsTotal.WithLabelValues(metrics.AssetOpRemove, metrics.AssetStatusOK).Inc()
		return nil
	}
	if errors.Is(err, repository.ErrObjectNotFound) {
		g.logger.Warn("asset already absent on remove",
			slog.String("asset_id", id),
			slog.String("kind", kind.String()),
		)
		metrics.AssetOperationsTotal.WithLabelValues(metrics.AssetOpRemove, metrics.AssetStatusAbsent).Inc()
		return nil
	}

	metrics.AssetOperationsTotal.WithLabelValues(metrics.AssetOpRemove, metrics.AssetStatusErr).Inc()
	return fmt.Errorf("%w: remove %s: %v", ErrUpstream, id, err)
}
