package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stuntcare/internal/auth"
	"stuntcare/internal/models"
	"stuntcare/internal/storage"
	"stuntcare/internal/testutil"
)

func newParentService(f *fixture, provider auth.Provider) *ParentService {
	return NewParentService(f.parents, f.childs, provider, f.media, f.cascade)
}

func TestRegisterCreatesParentWithDefaultImage(t *testing.T) {
	f := newFixture(t)
	stub := &testutil.AuthStub{}
	svc := newParentService(f, stub)

	parent, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Budi@Example.com",
		Password: "rahasia-banget",
		Name:     "Budi",
	})
	require.NoError(t, err)

	assert.Equal(t, "budi@example.com", parent.Email)
	assert.Equal(t, defaultImageURL, parent.ImageURL)
	assert.True(t, f.store.Has(storage.KindParent, parent.ID))
	assert.Equal(t, []string{"budi@example.com"}, stub.CreatedEmails)
}

func TestRegisterRollsBackAuthSubjectOnWriteFailure(t *testing.T) {
	f := newFixture(t)
	f.store.FailNext["put:parent"] = errors.New("throttled")
	stub := &testutil.AuthStub{}
	svc := newParentService(f, stub)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "budi@example.com",
		Password: "rahasia-banget",
		Name:     "Budi",
	})
	require.Error(t, err)

	// The orphaned auth subject was removed so the email stays usable.
	assert.Equal(t, []string{"uid-budi@example.com"}, stub.DeletedUIDs)
	assert.Equal(t, 0, f.store.Count(storage.KindParent))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	stub := &testutil.AuthStub{
		CreateUserFn: func(_ context.Context, _, _ string) (string, error) {
			return "", auth.ErrUserExists
		},
	}
	svc := newParentService(f, stub)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "budi@example.com",
		Password: "rahasia-banget",
		Name:     "Budi",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestRegisterValidatesInput(t *testing.T) {
	f := newFixture(t)
	svc := newParentService(f, &testutil.AuthStub{})

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"missing email", RegisterInput{Password: "rahasia-banget", Name: "Budi"}},
		{"malformed email", RegisterInput{Email: "not-an-email", Password: "rahasia-banget", Name: "Budi"}},
		{"short password", RegisterInput{Email: "budi@example.com", Password: "short", Name: "Budi"}},
		{"missing name", RegisterInput{Email: "budi@example.com", Password: "rahasia-banget"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.in)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, models.CodeValidation, appErr.Code)
		})
	}
}

func TestGetProfileEmbedsChildren(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	f.putChild(t, parent.ID, "ani", "")
	f.putChild(t, parent.ID, "bayu", "")
	svc := newParentService(f, &testutil.AuthStub{})

	profile, err := svc.GetProfile(context.Background(), parent.ID)
	require.NoError(t, err)
	assert.Equal(t, parent.ID, profile.ID)
	assert.Len(t, profile.Children, 2)
}

func TestDeleteParentRemovesAuthSubject(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	f.putChild(t, parent.ID, "ani", "")
	stub := &testutil.AuthStub{}
	svc := newParentService(f, stub)

	summary, err := svc.Delete(context.Background(), parent.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Documents[storage.KindParent])
	assert.Equal(t, []string{parent.AuthUID}, stub.DeletedUIDs)
}

func TestUpdateProfilePartialFields(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	svc := newParentService(f, &testutil.AuthStub{})

	updated, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		ParentID: parent.ID,
		Address:  "Bandung",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bandung", updated.Address)
	assert.Equal(t, parent.Name, updated.Name)

	var stored models.Parent
	require.NoError(t, f.store.Get(context.Background(), storage.KindParent, parent.ID, &stored))
	assert.Equal(t, "Bandung", stored.Address)
	assert.Equal(t, parent.Name, stored.Name)
}

func TestUpdateProfileWithImageReplacesBlob(t *testing.T) {
	f := newFixture(t)
	parent := f.putParent(t, "budi")
	svc := newParentService(f, &testutil.AuthStub{})

	updated, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		ParentID: parent.ID,
		Image:    testUpload(),
	})
	require.NoError(t, err)
	assert.NotEqual(t, defaultImageURL, updated.ImageURL)
	assert.Equal(t, 1, f.blobs.Count())
}
