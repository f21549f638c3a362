package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"stuntcare/internal/models"
	"stuntcare/internal/repository"
	"stuntcare/internal/storage"
	"stuntcare/internal/testutil"
)

const defaultImageURL = "https://media.test/default_image.png"

// fixture wires the services against the in-memory store and blob fakes.
type fixture struct {
	store   *testutil.MemStore
	blobs   *testutil.MemBlob
	parents repository.ParentRepository
	childs  repository.ChildRepository
	growth  repository.GrowthHistoryRepository
	food    repository.DailyFoodRepository
	media   *MediaWorkflow
	cascade *CascadeCoordinator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewMemStore()
	blobs := testutil.NewMemBlob()
	parents := repository.NewParentRepository(store)
	childs := repository.NewChildRepository(store)
	growth := repository.NewGrowthHistoryRepository(store)
	food := repository.NewDailyFoodRepository(store)
	media := NewMediaWorkflow(blobs, defaultImageURL)
	return &fixture{
		store:   store,
		blobs:   blobs,
		parents: parents,
		childs:  childs,
		growth:  growth,
		food:    food,
		media:   media,
		cascade: NewCascadeCoordinator(parents, childs, growth, food, media),
	}
}

func (f *fixture) putParent(t *testing.T, name string) *models.Parent {
	t.Helper()
	now := time.Now().UTC()
	parent := &models.Parent{
		ID:        uuid.NewString(),
		Email:     name + "@example.com",
		Name:      name,
		AuthUID:   "auth-" + name,
		ImageURL:  defaultImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.store.Put(context.Background(), storage.KindParent, parent.ID, parent))
	return parent
}

func (f *fixture) putChild(t *testing.T, parentID, name string, imageURL string) *models.Child {
	t.Helper()
	now := time.Now().UTC()
	child := &models.Child{
		ID:        uuid.NewString(),
		ParentID:  parentID,
		Name:      name,
		Weight:    8.5,
		Height:    70,
		ImageURL:  imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.store.Put(context.Background(), storage.KindChild, child.ID, child))
	return child
}

func (f *fixture) putGrowth(t *testing.T, childID string) *models.GrowthHistory {
	t.Helper()
	record := &models.GrowthHistory{
		ID:        uuid.NewString(),
		ChildID:   childID,
		Weight:    8.5,
		Height:    70,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, f.store.Put(context.Background(), storage.KindGrowthHistory, record.ID, record))
	return record
}

func (f *fixture) putFood(t *testing.T, childID, imageURL string) *models.DailyFood {
	t.Helper()
	entry := &models.DailyFood{
		ID:        uuid.NewString(),
		ChildID:   childID,
		Schedule:  "pagi",
		FoodName:  "Bubur ayam",
		ImageURL:  imageURL,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, f.store.Put(context.Background(), storage.KindDailyFood, entry.ID, entry))
	return entry
}

// putBlob stores an object and returns its public URL.
func (f *fixture) putBlob(t *testing.T, name string) string {
	t.Helper()
	require.NoError(t, f.blobs.Upload(context.Background(), name, "image/png", bytes.NewReader(pngBytes)))
	return f.blobs.PublicURL(name)
}

var pngBytes = []byte{0x89, 0x50, 0x4e, 0x47}

func testUpload() *ImageUpload {
	return &ImageUpload{Content: pngBytes, ContentType: "image/png"}
}
