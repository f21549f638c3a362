package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stuntcare/internal/storage"
)

func TestDeleteParentCascadesEverything(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")

	childImageA := f.putBlob(t, "pa_ca_1_child_image.png")
	childA := f.putChild(t, parent.ID, "ani", childImageA)
	f.putGrowth(t, childA.ID)
	f.putGrowth(t, childA.ID)
	foodImage := f.putBlob(t, "ca_fa_1_daily_food_image.png")
	f.putFood(t, childA.ID, foodImage)

	childB := f.putChild(t, parent.ID, "bayu", defaultImageURL)
	f.putGrowth(t, childB.ID)
	f.putFood(t, childB.ID, "")

	summary, err := f.cascade.DeleteParent(context.Background(), parent.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Documents[storage.KindParent])
	assert.Equal(t, 2, summary.Documents[storage.KindChild])
	assert.Equal(t, 3, summary.Documents[storage.KindGrowthHistory])
	assert.Equal(t, 2, summary.Documents[storage.KindDailyFood])

	assert.Equal(t, 0, f.store.Count(storage.KindParent))
	assert.Equal(t, 0, f.store.Count(storage.KindChild))
	assert.Equal(t, 0, f.store.Count(storage.KindGrowthHistory))
	assert.Equal(t, 0, f.store.Count(storage.KindDailyFood))

	// Both owned blobs gone; childB carried the shared default image, which
	// is never touched.
	assert.False(t, f.blobs.Has("pa_ca_1_child_image.png"))
	assert.False(t, f.blobs.Has("ca_fa_1_daily_food_image.png"))
	assert.Len(t, summary.Blobs.Deleted, 2)
	assert.Empty(t, summary.Blobs.Failed)
}

func TestDeleteParentAbortsWhenChildDeleteFails(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	f.putChild(t, parent.ID, "ani", "")

	f.store.FailNext["delete:child"] = errors.New("throttled")

	_, err := f.cascade.DeleteParent(context.Background(), parent.ID)
	require.Error(t, err)

	// The root document survives an aborted cascade.
	assert.True(t, f.store.Has(storage.KindParent, parent.ID))
}

func TestDeleteParentMissingRoot(t *testing.T) {
	f := newFixture(t)

	_, err := f.cascade.DeleteParent(context.Background(), "nope")
	require.Error(t, err)
	assert.EqualError(t, err, "Parent not found")
}

func TestDeleteChildRemovesDependents(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	childImage := f.putBlob(t, "pa_ca_1_child_image.png")
	child := f.putChild(t, parent.ID, "ani", childImage)
	f.putGrowth(t, child.ID)
	f.putFood(t, child.ID, "")

	summary, err := f.cascade.DeleteChild(context.Background(), child.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Documents[storage.KindChild])
	assert.Equal(t, 1, summary.Documents[storage.KindGrowthHistory])
	assert.Equal(t, 1, summary.Documents[storage.KindDailyFood])
	assert.Zero(t, summary.Documents[storage.KindParent])

	// The parent is untouched.
	assert.True(t, f.store.Has(storage.KindParent, parent.ID))
	assert.False(t, f.blobs.Has("pa_ca_1_child_image.png"))
}

func TestCascadeBlobFailureIsRecordedNotFatal(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	childImage := f.putBlob(t, "pa_ca_1_child_image.png")
	child := f.putChild(t, parent.ID, "ani", childImage)

	f.blobs.DeleteErr = errors.New("access denied")

	summary, err := f.cascade.DeleteChild(context.Background(), child.ID)
	require.NoError(t, err)

	// Documents are gone even though the blob lingered.
	assert.False(t, f.store.Has(storage.KindChild, child.ID))
	require.Len(t, summary.Blobs.Failed, 1)
	assert.Equal(t, "pa_ca_1_child_image.png", summary.Blobs.Failed[0].Name)
	assert.Empty(t, summary.Blobs.Deleted)
}
