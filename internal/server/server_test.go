package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stuntcare/internal/auth"
	"stuntcare/internal/config"
	"stuntcare/internal/middleware"
	"stuntcare/internal/models"
	"stuntcare/internal/testutil"
)

const testDefaultImage = "https://media.test/default_image.png"

func newTestApp(t *testing.T) (*fiber.App, *testutil.MemStore, *testutil.MemBlob) {
	t.Helper()
	cfg := &config.Config{
		Port:            "8080",
		Env:             "test",
		SessionSecret:   "test-secret",
		SessionTTLHours: 120,
		AWSRegion:       "ap-southeast-1",
		TablePrefix:     "stuntcare_",
		StorageBucket:   "stuntcare-media",
		DefaultImageURL: testDefaultImage,
	}
	store := testutil.NewMemStore()
	blobs := testutil.NewMemBlob()
	provider := auth.NewJWTProvider(store, cfg.SessionSecret)
	srv := NewServer(cfg, store, blobs, provider, nil)
	return srv.App(), store, blobs
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, cookie string) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func get(t *testing.T, app *fiber.App, path, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) models.Response {
	t.Helper()
	var envelope models.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value != "" {
			return fmt.Sprintf("%s=%s", c.Name, c.Value)
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

func TestHealthEndpoint(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := get(t, app, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := postJSON(t, app, "/register", fiber.Map{
		"email":    "budi@example.com",
		"password": "rahasia-banget",
		"name":     "Budi",
		"address":  "Jakarta",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.False(t, envelope.Error)
	parent, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	parentID, _ := parent["id"].(string)
	require.NotEmpty(t, parentID)
	assert.Equal(t, testDefaultImage, parent["image_url"])

	resp = postJSON(t, app, "/login", fiber.Map{
		"email":    "budi@example.com",
		"password": "rahasia-banget",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(t, resp)

	resp = get(t, app, "/parent/"+parentID, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	envelope = decodeEnvelope(t, resp)
	profile, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Budi", profile["name"])
}

func TestParentRouteRejectsForeignAccount(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := postJSON(t, app, "/register", fiber.Map{
		"email":    "budi@example.com",
		"password": "rahasia-banget",
		"name":     "Budi",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/login", fiber.Map{
		"email":    "budi@example.com",
		"password": "rahasia-banget",
	}, "")
	cookie := sessionCookie(t, resp)

	resp = get(t, app, "/parent/someone-else", cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := get(t, app, "/doctors", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = get(t, app, "/parent/abc", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := postJSON(t, app, "/login", fiber.Map{
		"email":    "nobody@example.com",
		"password": "whatever",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, app, "/login", fiber.Map{}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogoutClearsCookie(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := get(t, app, "/logout", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName {
			assert.Empty(t, c.Value)
		}
	}
}

func TestArticlesArePubliclyReadable(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := get(t, app, "/articles", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, app, "/articles/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
