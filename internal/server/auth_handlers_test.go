package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminLogin(t *testing.T) {
	_, app, _ := newTestServer(t)

	t.Run("correct password", func(t *testing.T) {
		token := loginAdmin(t, app)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/admin/login",
			map[string]string{"password": "wrong"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("empty password", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/admin/login",
			map[string]string{"password": ""}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("legacy alias", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/login",
			map[string]string{"password": testAdminPassword}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestAdminLoginWithBcryptHash(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	cfg := testConfig(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cure-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg.AdminPasswordHash = string(hash)
	cfg.AdminPassword = ""

	srv, err := NewServerWithDeps(cfg, newTestDB(t), nil, nil)
	require.NoError(t, err)
	app := fiberTestApp(srv)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/admin/login",
		map[string]string{"password": "s3cure-pass"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/admin/login",
		map[string]string{"password": "wrong"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutesRequireSession(t *testing.T) {
	_, app, _ := newTestServer(t)

	t.Run("rejected without token", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/posts",
			map[string]string{"title": "t", "description": "d"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejected with garbage token", func(t *testing.T) {
		req := withBearer(jsonRequest(http.MethodPost, "/api/posts",
			map[string]string{"title": "t", "description": "d"}), "not-a-jwt")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("accepted with valid token", func(t *testing.T) {
		token := loginAdmin(t, app)
		req := withBearer(jsonRequest(http.MethodPost, "/api/posts",
			map[string]string{"title": "t", "description": "d"}), token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("accepted with session cookie", func(t *testing.T) {
		token := loginAdmin(t, app)
		req := jsonRequest(http.MethodGet, "/api/admin/messages", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestLogoutRevokesSession(t *testing.T) {
	_, app, _ := newTestServerWithRedis(t)
	token := loginAdmin(t, app)

	// Token works before logout
	req := withBearer(jsonRequest(http.MethodGet, "/api/admin/messages", nil), token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Logout with the session cookie
	logoutReq := httptest.NewRequest(http.MethodGet, "/logout", nil)
	logoutReq.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	resp, err = app.Test(logoutReq)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	// The revoked token is rejected even as a Bearer header
	req = withBearer(jsonRequest(http.MethodGet, "/api/admin/messages", nil), token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
