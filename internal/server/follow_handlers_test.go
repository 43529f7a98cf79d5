package server

import (
	"net/http"
	"testing"

	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollow(t *testing.T) {
	srv, app, _ := newTestServer(t)

	follow := func() *http.Response {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/follow", map[string]string{
			"name":  "Ada",
			"email": "ada@example.com",
		}))
		require.NoError(t, err)
		return resp
	}

	resp := follow()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Success bool `json:"success"`
		Created bool `json:"created"`
	}
	decodeBody(t, resp, &body)
	assert.True(t, body.Success)
	assert.True(t, body.Created)

	// Following twice is still a success, with no second row
	resp = follow()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.True(t, body.Success)
	assert.False(t, body.Created)

	var count int64
	require.NoError(t, srv.db.Model(&models.Subscriber{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFollowValidation(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/follow",
		map[string]string{"name": "Ada", "email": "nope"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminSubscribers(t *testing.T) {
	_, app, _ := newTestServer(t)
	token := loginAdmin(t, app)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/follow",
		map[string]string{"name": "Ada", "email": "ada@example.com"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := withBearer(jsonRequest(http.MethodGet, "/api/admin/subscribers", nil), token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var subs []models.Subscriber
	decodeBody(t, resp, &subs)
	require.Len(t, subs, 1)
	assert.Equal(t, "ada@example.com", subs[0].Email)
}
