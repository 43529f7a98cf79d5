package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomePayload(t *testing.T) {
	_, app, _ := newTestServer(t)
	token := loginAdmin(t, app)
	createTestPost(t, app, token, "Landing Post")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload landingPayload
	decodeBody(t, resp, &payload)
	require.NotNil(t, payload.Profile)
	assert.Len(t, payload.Posts, 1)
	assert.Equal(t, "Landing Post", payload.Posts[0].Title)
	assert.Zero(t, payload.Subscribers)
}

func TestDashboard(t *testing.T) {
	_, app, _ := newTestServer(t)

	t.Run("redirects without session", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	})

	t.Run("serves data with session", func(t *testing.T) {
		token := loginAdmin(t, app)
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})

		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Messages    []any `json:"messages"`
			Subscribers int64 `json:"subscribers"`
		}
		decodeBody(t, resp, &body)
		assert.Empty(t, body.Messages)
	})
}

func TestHealthEndpoints(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Ready without Redis: still healthy, redis reported unavailable
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status string `json:"status"`
		Checks struct {
			Database string `json:"database"`
			Redis    string `json:"redis"`
		} `json:"checks"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Checks.Database)
	assert.Equal(t, "unavailable", body.Checks.Redis)
}
