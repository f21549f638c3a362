package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stuntcare/internal/models"
	"stuntcare/internal/storage"
)

func newChildService(f *fixture) *ChildService {
	return NewChildService(f.parents, f.childs, f.growth, f.media, f.cascade, ThresholdClassifier{})
}

func TestCreateChildAppendsFirstGrowthRecord(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	svc := newChildService(f)

	child, err := svc.Create(context.Background(), CreateChildInput{
		ParentID:    parent.ID,
		Name:        "Ani",
		Gender:      "female",
		BirthDay:    "2023-01-15",
		BirthWeight: "3.2",
		BirthHeight: "49",
		Weight:      "8.5",
		Height:      "70",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, child.ID)
	assert.Equal(t, 8.5, child.Weight)
	assert.Equal(t, defaultImageURL, child.ImageURL)
	assert.NotEmpty(t, child.StuntingStatus)

	history, err := f.growth.ListByChild(context.Background(), child.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 8.5, history[0].Weight)
	assert.Equal(t, 70.0, history[0].Height)
}

func TestCreateChildRejectsNonNumericWeight(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	svc := newChildService(f)

	_, err := svc.Create(context.Background(), CreateChildInput{
		ParentID:    parent.ID,
		Name:        "Ani",
		BirthWeight: "3.2",
		BirthHeight: "49",
		Weight:      "abc",
		Height:      "70",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)

	// Nothing was written.
	assert.Equal(t, 0, f.store.Count(storage.KindChild))
	assert.Equal(t, 0, f.store.Count(storage.KindGrowthHistory))
	assert.Equal(t, 0, f.blobs.Count())
}

func TestCreateChildMissingParent(t *testing.T) {
	f := newFixture(t)
	svc := newChildService(f)

	_, err := svc.Create(context.Background(), CreateChildInput{
		ParentID:    "nope",
		Name:        "Ani",
		BirthWeight: "3.2",
		BirthHeight: "49",
		Weight:      "8.5",
		Height:      "70",
	})
	require.Error(t, err)
	assert.EqualError(t, err, "Parent not found")
	assert.Equal(t, 0, f.store.Count(storage.KindChild))
}

func TestCreateChildUploadFailureWritesNothing(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	f.blobs.UploadErr = errors.New("bucket gone")
	svc := newChildService(f)

	_, err := svc.Create(context.Background(), CreateChildInput{
		ParentID:    parent.ID,
		Name:        "Ani",
		BirthWeight: "3.2",
		BirthHeight: "49",
		Weight:      "8.5",
		Height:      "70",
		Image:       testUpload(),
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeUpstreamFailure, appErr.Code)
	assert.Equal(t, 0, f.store.Count(storage.KindChild))
	assert.Equal(t, 0, f.store.Count(storage.KindGrowthHistory))
}

func TestUpdateChildMeasurementAppendsGrowthAndReclassifies(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	child := f.putChild(t, parent.ID, "ani", defaultImageURL)
	svc := newChildService(f)

	updated, err := svc.Update(context.Background(), UpdateChildInput{
		ParentID: parent.ID,
		ChildID:  child.ID,
		Weight:   "9.1",
		Height:   "73",
	})
	require.NoError(t, err)
	assert.Equal(t, 9.1, updated.Weight)
	assert.Equal(t, 73.0, updated.Height)
	assert.NotEmpty(t, updated.StuntingStatus)

	history, err := f.growth.ListByChild(context.Background(), child.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 9.1, history[0].Weight)
}

func TestUpdateChildRejectsNonNumericWeight(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	child := f.putChild(t, parent.ID, "ani", defaultImageURL)
	svc := newChildService(f)

	_, err := svc.Update(context.Background(), UpdateChildInput{
		ParentID: parent.ID,
		ChildID:  child.ID,
		Weight:   "abc",
		Height:   "73",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)

	// The stored child and its history are untouched.
	assert.Equal(t, 0, f.store.Count(storage.KindGrowthHistory))
	current, err := f.childs.GetByID(context.Background(), child.ID)
	require.NoError(t, err)
	assert.Equal(t, child.Weight, current.Weight)
}

func TestUpdateChildGrowthAppendFailureIsReported(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	child := f.putChild(t, parent.ID, "ani", defaultImageURL)
	f.store.FailNext["put:growth_history"] = errors.New("table throttled")
	svc := newChildService(f)

	_, err := svc.Update(context.Background(), UpdateChildInput{
		ParentID: parent.ID,
		ChildID:  child.ID,
		Weight:   "9.1",
		Height:   "73",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeUpstreamFailure, appErr.Code)
	assert.Equal(t, 0, f.store.Count(storage.KindGrowthHistory))
}

func TestCreateChildGrowthAppendFailureIsReported(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	f.store.FailNext["put:growth_history"] = errors.New("table throttled")
	svc := newChildService(f)

	_, err := svc.Create(context.Background(), CreateChildInput{
		ParentID:    parent.ID,
		Name:        "Ani",
		BirthWeight: "3.2",
		BirthHeight: "49",
		Weight:      "8.5",
		Height:      "70",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeUpstreamFailure, appErr.Code)
}

func TestUpdateChildNameOnlySkipsGrowthRecord(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	child := f.putChild(t, parent.ID, "ani", defaultImageURL)
	svc := newChildService(f)

	updated, err := svc.Update(context.Background(), UpdateChildInput{
		ParentID: parent.ID,
		ChildID:  child.ID,
		Name:     "Ani Putri",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ani Putri", updated.Name)

	history, err := f.growth.ListByChild(context.Background(), child.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestChildOwnershipEnforced(t *testing.T) {
	f := newFixture(t)
	owner := f.putParent(t, "budi")
	other := f.putParent(t, "siti")
	child := f.putChild(t, owner.ID, "ani", "")
	svc := newChildService(f)

	_, _, err := svc.Get(context.Background(), other.ID, child.ID)
	require.Error(t, err)
	assert.EqualError(t, err, "Child not found")
}

func TestDeleteChildThroughService(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	child := f.putChild(t, parent.ID, "ani", "")
	f.putGrowth(t, child.ID)
	svc := newChildService(f)

	summary, err := svc.Delete(context.Background(), parent.ID, child.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Documents[storage.KindChild])
	assert.False(t, f.store.Has(storage.KindChild, child.ID))
}
