package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stuntcare/internal/models"
	"stuntcare/internal/storage"
)

func newFoodService(f *fixture) *DailyFoodService {
	return NewDailyFoodService(f.childs, f.food, f.media)
}

func TestListEmptyDiaryNotFound(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	child := f.putChild(t, parent.ID, "ani", "")
	svc := newFoodService(f)

	_, err := svc.List(context.Background(), parent.ID, child.ID)
	require.Error(t, err)
	assert.EqualError(t, err, "Catatan harian belum diisi")

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestListDiaryUnknownChild(t *testing.T) {
	f := newFixture(t)
	svc := newFoodService(f)

	_, err := svc.List(context.Background(), "p1", "nope")
	require.Error(t, err)
	assert.EqualError(t, err, "Child not found")
}

func TestDiaryOwnershipEnforced(t *testing.T) {
	f := newFixture(t)
	owner := f.putParent(t, "budi")
	other := f.putParent(t, "siti")
	child := f.putChild(t, owner.ID, "ani", "")
	f.putFood(t, child.ID, "")
	svc := newFoodService(f)

	_, err := svc.List(context.Background(), other.ID, child.ID)
	require.Error(t, err)
	assert.EqualError(t, err, "Child not found")

	_, err = svc.Create(context.Background(), CreateDailyFoodInput{
		ParentID: other.ID,
		ChildID:  child.ID,
		Schedule: "pagi",
		FoodName: "Bubur ayam",
	})
	require.Error(t, err)
	assert.EqualError(t, err, "Child not found")
	assert.Equal(t, 1, f.store.Count(storage.KindDailyFood))
}

func TestCreateDiaryEntryWithoutImage(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	child := f.putChild(t, parent.ID, "ani", "")
	svc := newFoodService(f)

	entry, err := svc.Create(context.Background(), CreateDailyFoodInput{
		ParentID: parent.ID,
		ChildID:  child.ID,
		Schedule: "pagi",
		FoodName: "Bubur ayam",
	})
	require.NoError(t, err)
	// No image means no sentinel either; the field stays empty.
	assert.Empty(t, entry.ImageURL)
	assert.Equal(t, 1, f.store.Count(storage.KindDailyFood))
	assert.Equal(t, 0, f.blobs.Count())

	entries, err := svc.List(context.Background(), parent.ID, child.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Bubur ayam", entries[0].FoodName)
}

func TestCreateDiaryEntryWithImage(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	child := f.putChild(t, parent.ID, "ani", "")
	svc := newFoodService(f)

	entry, err := svc.Create(context.Background(), CreateDailyFoodInput{
		ParentID: parent.ID,
		ChildID:  child.ID,
		Schedule: "siang",
		FoodName: "Nasi tim",
		Image:    testUpload(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ImageURL)
	assert.Equal(t, 1, f.blobs.Count())
}

func TestCreateDiaryEntryValidation(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	child := f.putChild(t, parent.ID, "ani", "")
	svc := newFoodService(f)

	_, err := svc.Create(context.Background(), CreateDailyFoodInput{
		ParentID: parent.ID,
		ChildID:  child.ID,
		Schedule: "pagi",
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}
