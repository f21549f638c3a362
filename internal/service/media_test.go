package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stuntcare/internal/models"
)

func TestCreateWithMediaNoUploadUsesFallback(t *testing.T) {
	f := newFixture(t)

	var committed string
	url, err := f.media.CreateWithMedia(context.Background(), "child", "p1", "c1", nil, defaultImageURL,
		func(_ context.Context, imageURL string) error {
			committed = imageURL
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, defaultImageURL, url)
	assert.Equal(t, defaultImageURL, committed)
	assert.Equal(t, 0, f.blobs.Count())
}

func TestCreateWithMediaUploadFailureSkipsCommit(t *testing.T) {
	f := newFixture(t)
	f.blobs.UploadErr = errors.New("bucket unavailable")

	commits := 0
	_, err := f.media.CreateWithMedia(context.Background(), "child", "p1", "c1", testUpload(), defaultImageURL,
		func(_ context.Context, _ string) error {
			commits++
			return nil
		})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeUpstreamFailure, appErr.Code)
	assert.Equal(t, 0, commits)
	assert.Equal(t, 0, f.blobs.Count())
}

func TestCreateWithMediaCommitFailureRemovesBlob(t *testing.T) {
	f := newFixture(t)

	_, err := f.media.CreateWithMedia(context.Background(), "child", "p1", "c1", testUpload(), defaultImageURL,
		func(_ context.Context, _ string) error {
			return models.NewUpstreamError("write failed", errors.New("conditional check"))
		})
	require.Error(t, err)
	assert.Equal(t, 0, f.blobs.Count())
}

func TestUpdateWithMediaReplacesPriorBlobAfterCommit(t *testing.T) {
	f := newFixture(t)
	priorURL := f.putBlob(t, "p1_c1_1000_child_image.png")

	url, err := f.media.UpdateWithMedia(context.Background(), "child", "p1", "c1", priorURL, testUpload(),
		func(_ context.Context, imageURL string) error {
			require.NotEmpty(t, imageURL)
			return nil
		})
	require.NoError(t, err)
	assert.NotEqual(t, priorURL, url)
	assert.False(t, f.blobs.Has("p1_c1_1000_child_image.png"))
	assert.Equal(t, 1, f.blobs.Count())
}

func TestUpdateWithMediaCommitFailureKeepsPriorBlob(t *testing.T) {
	f := newFixture(t)
	priorURL := f.putBlob(t, "p1_c1_1000_child_image.png")

	_, err := f.media.UpdateWithMedia(context.Background(), "child", "p1", "c1", priorURL, testUpload(),
		func(_ context.Context, _ string) error {
			return models.NewNotFoundError("Child not found")
		})
	require.Error(t, err)
	// The prior blob survives; the new one is rolled back.
	assert.True(t, f.blobs.Has("p1_c1_1000_child_image.png"))
	assert.Equal(t, 1, f.blobs.Count())
}

func TestUpdateWithMediaNoUploadLeavesImageUntouched(t *testing.T) {
	f := newFixture(t)
	priorURL := f.putBlob(t, "p1_c1_1000_child_image.png")

	var committed string
	url, err := f.media.UpdateWithMedia(context.Background(), "child", "p1", "c1", priorURL, nil,
		func(_ context.Context, imageURL string) error {
			committed = imageURL
			return nil
		})
	require.NoError(t, err)
	assert.Empty(t, committed)
	assert.Equal(t, priorURL, url)
	assert.True(t, f.blobs.Has("p1_c1_1000_child_image.png"))
}

func TestCleanupBlobSkipsDefaultAndForeignURLs(t *testing.T) {
	f := newFixture(t)
	f.putBlob(t, "default_image.png")

	f.media.CleanupBlob(context.Background(), defaultImageURL)
	assert.True(t, f.blobs.Has("default_image.png"))

	f.media.CleanupBlob(context.Background(), "https://elsewhere.example.com/some_image.png")
	assert.Empty(t, f.blobs.Deleted)
}

func TestBlobNameCarriesOwnerEntityAndPurpose(t *testing.T) {
	name := blobNameFor("p1", "c1", "child", "image/jpeg")
	assert.True(t, strings.HasPrefix(name, "p1_c1_"))
	assert.True(t, strings.HasSuffix(name, "_child_image.jpeg"))
}
