package server

import (
	"fmt"
	"net/http"
	"testing"

	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockedUsers(t *testing.T) {
	_, app, _ := newTestServer(t)
	token := loginAdmin(t, app)

	block := func(name string) *http.Response {
		req := withBearer(jsonRequest(http.MethodPost, "/api/admin/blocked-users",
			map[string]string{"name": name, "reason": "spam"}), token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	resp := block("Troll")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var entry models.BlockedUser
	decodeBody(t, resp, &entry)
	assert.Equal(t, "troll", entry.Name, "names are stored normalized")

	t.Run("blocking twice returns the same entry", func(t *testing.T) {
		resp := block("TROLL")
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var again models.BlockedUser
		decodeBody(t, resp, &again)
		assert.Equal(t, entry.ID, again.ID)
	})

	t.Run("list", func(t *testing.T) {
		req := withBearer(jsonRequest(http.MethodGet, "/api/admin/blocked-users", nil), token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var entries []models.BlockedUser
		decodeBody(t, resp, &entries)
		assert.Len(t, entries, 1)
	})

	t.Run("unblock", func(t *testing.T) {
		req := withBearer(jsonRequest(http.MethodDelete,
			fmt.Sprintf("/api/admin/blocked-users/%d", entry.ID), nil), token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		listReq := withBearer(jsonRequest(http.MethodGet, "/api/admin/blocked-users", nil), token)
		listResp, err := app.Test(listReq)
		require.NoError(t, err)
		var entries []models.BlockedUser
		decodeBody(t, listResp, &entries)
		assert.Empty(t, entries)
	})

	t.Run("unblock unknown id succeeds", func(t *testing.T) {
		req := withBearer(jsonRequest(http.MethodDelete, "/api/admin/blocked-users/999", nil), token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
