package server

import (
	"net/http"
	"testing"

	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/profile", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile models.Profile
	decodeBody(t, resp, &profile)
	assert.Equal(t, "Owner", profile.Name)
}

func TestUpdateProfile(t *testing.T) {
	_, app, _ := newTestServer(t)
	token := loginAdmin(t, app)

	t.Run("partial update", func(t *testing.T) {
		req := withBearer(jsonRequest(http.MethodPut, "/api/profile",
			map[string]string{"headline": "New headline"}), token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var profile models.Profile
		decodeBody(t, resp, &profile)
		assert.Equal(t, "New headline", profile.Headline)
		assert.Equal(t, "Owner", profile.Name, "absent fields stay untouched")
	})

	t.Run("empty name rejected", func(t *testing.T) {
		req := withBearer(jsonRequest(http.MethodPut, "/api/profile",
			map[string]string{"name": "  "}), token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("requires session", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPut, "/api/profile",
			map[string]string{"name": "Intruder"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
