// Package service implements the application's use cases on top of the
// repositories and the blob store.
package service

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"stuntcare/internal/blob"
	"stuntcare/internal/models"
	"stuntcare/internal/observability"
)

// ImageUpload carries the bytes of a multipart image upload.
type ImageUpload struct {
	Content     []byte
	ContentType string
}

// CommitFunc commits the entity document with the final image URL. It is only
// called after the upload (if any) has succeeded.
type CommitFunc func(ctx context.Context, imageURL string) error

// MediaWorkflow orchestrates "upload image, then commit document". A document
// is never committed pointing at a blob that was not stored, and a replaced
// blob is only removed after the new document state is durable.
type MediaWorkflow struct {
	blobs           blob.Store
	defaultImageURL string
}

// NewMediaWorkflow creates a MediaWorkflow. defaultImageURL is the shared
// sentinel placeholder; it is never uploaded or deleted by the workflow.
func NewMediaWorkflow(blobs blob.Store, defaultImageURL string) *MediaWorkflow {
	return &MediaWorkflow{blobs: blobs, defaultImageURL: defaultImageURL}
}

// DefaultImageURL returns the sentinel placeholder URL.
func (w *MediaWorkflow) DefaultImageURL() string {
	return w.defaultImageURL
}

// IsDefaultImage reports whether the URL is the shared sentinel.
func (w *MediaWorkflow) IsDefaultImage(imageURL string) bool {
	return imageURL != "" && imageURL == w.defaultImageURL
}

// CreateWithMedia runs the creation path. With no upload the document is
// committed directly with fallbackURL as its image field. With an upload the
// blob is stored first; the document commit only happens after the upload
// succeeds, so a failed upload leaves the store untouched.
func (w *MediaWorkflow) CreateWithMedia(ctx context.Context, kind, ownerID, entityID string, upload *ImageUpload, fallbackURL string, commit CommitFunc) (string, error) {
	if upload == nil {
		if err := commit(ctx, fallbackURL); err != nil {
			return "", err
		}
		return fallbackURL, nil
	}

	name := blobNameFor(ownerID, entityID, kind, upload.ContentType)
	if err := w.blobs.Upload(ctx, name, upload.ContentType, bytes.NewReader(upload.Content)); err != nil {
		observability.UploadsTotal.WithLabelValues(kind, "failed").Inc()
		return "", models.NewUpstreamError("Error uploading image to storage", err)
	}
	observability.UploadsTotal.WithLabelValues(kind, "ok").Inc()

	imageURL := w.blobs.PublicURL(name)
	if err := commit(ctx, imageURL); err != nil {
		// The document was not committed; remove the blob so nothing
		// references it and nothing owns it.
		if delErr := w.blobs.Delete(ctx, name); delErr != nil {
			observability.BlobCleanupFailures.Inc()
			observability.LogCleanupFailure(ctx, name, delErr)
		}
		return "", err
	}
	return imageURL, nil
}

// UpdateWithMedia runs the update path. With no upload the document is
// committed with an empty image URL, meaning the caller leaves the field
// untouched. With an upload the new blob is stored, the document committed,
// and only then is the prior non-default blob removed (best-effort), so the
// document never points at a deleted blob.
func (w *MediaWorkflow) UpdateWithMedia(ctx context.Context, kind, ownerID, entityID, priorURL string, upload *ImageUpload, commit CommitFunc) (string, error) {
	if upload == nil {
		if err := commit(ctx, ""); err != nil {
			return "", err
		}
		return priorURL, nil
	}

	name := blobNameFor(ownerID, entityID, kind, upload.ContentType)
	if err := w.blobs.Upload(ctx, name, upload.ContentType, bytes.NewReader(upload.Content)); err != nil {
		observability.UploadsTotal.WithLabelValues(kind, "failed").Inc()
		return "", models.NewUpstreamError("Error uploading image to storage", err)
	}
	observability.UploadsTotal.WithLabelValues(kind, "ok").Inc()

	imageURL := w.blobs.PublicURL(name)
	if err := commit(ctx, imageURL); err != nil {
		if delErr := w.blobs.Delete(ctx, name); delErr != nil {
			observability.BlobCleanupFailures.Inc()
			observability.LogCleanupFailure(ctx, name, delErr)
		}
		return "", err
	}

	w.CleanupBlob(ctx, priorURL)
	return imageURL, nil
}

// CleanupBlob removes the blob behind imageURL, best-effort. The sentinel
// default image and foreign URLs are left alone. Failures are recorded as
// storage drift, never returned.
func (w *MediaWorkflow) CleanupBlob(ctx context.Context, imageURL string) {
	name, ok := w.ownedBlobName(imageURL)
	if !ok {
		return
	}
	if err := w.blobs.Delete(ctx, name); err != nil {
		observability.BlobCleanupFailures.Inc()
		observability.LogCleanupFailure(ctx, name, err)
	}
}

// ownedBlobName maps a public URL back to a blob name, rejecting the default
// image and URLs that do not belong to our store.
func (w *MediaWorkflow) ownedBlobName(imageURL string) (string, bool) {
	if imageURL == "" || w.IsDefaultImage(imageURL) {
		return "", false
	}
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return "", false
	}
	name := strings.TrimPrefix(parsed.Path, "/")
	if name == "" {
		return "", false
	}
	if w.blobs.PublicURL(name) != imageURL {
		return "", false
	}
	return name, true
}

// blobNameFor derives the storage name for an upload. The timestamp component
// keeps a replacement upload from overwriting the blob the current document
// still points at.
func blobNameFor(ownerID, entityID, purpose, contentType string) string {
	ext := "bin"
	if i := strings.Index(contentType, "/"); i >= 0 && i+1 < len(contentType) {
		ext = contentType[i+1:]
	}
	return fmt.Sprintf("%s_%s_%d_%s_image.%s", ownerID, entityID, time.Now().UnixMilli(), purpose, ext)
}
