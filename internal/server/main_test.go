package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"atelier/internal/config"
	"atelier/internal/database"
	"atelier/internal/mailer"
	"atelier/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testAdminPassword   = "hunter2"
	testShutdownTimeout = 2 * time.Second
)

// recordingSender captures outgoing mail, optionally failing every send.
type recordingSender struct {
	mu       sync.Mutex
	messages []mailer.Message
	fail     bool
	sent     chan struct{}
}

func newRecordingSender(fail bool) *recordingSender {
	return &recordingSender{fail: fail, sent: make(chan struct{}, 16)}
}

func (r *recordingSender) Send(_ context.Context, msg mailer.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer func() { r.sent <- struct{}{} }()
	if r.fail {
		return errors.New("smtp unavailable")
	}
	r.messages = append(r.messages, msg)
	return nil
}

func (r *recordingSender) delivered() []mailer.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mailer.Message(nil), r.messages...)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:          "0",
		Env:           "test",
		SiteBaseURL:   "http://example.test",
		SessionSecret: "test-session-secret-0123456789abcdef",
		AdminPassword: testAdminPassword,
		DBDriver:      "sqlite",
		DBPath:        ":memory:",
		UploadDir:     t.TempDir(),
		MailTo:        "owner@example.test",
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// newTestServer builds a server on in-memory sqlite with no Redis and a
// recording mail sender. Routes are registered without the middleware stack
// so tests exercise handlers directly.
func newTestServer(t *testing.T) (*Server, *fiber.App, *recordingSender) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	sender := newRecordingSender(false)
	srv, err := NewServerWithDeps(testConfig(t), newTestDB(t), nil, sender)
	require.NoError(t, err)
	require.NoError(t, srv.profileRepo.EnsureDefault(context.Background(),
		models.Profile{Name: "Owner", Headline: "Test headline"}))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testShutdownTimeout)
		defer cancel()
		srv.dispatcher.Shutdown(ctx)
	})

	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app, sender
}

// newTestServerWithRedis is like newTestServer but backed by miniredis, for
// session revocation and cache paths.
func newTestServerWithRedis(t *testing.T) (*Server, *fiber.App, *miniredis.Miniredis) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	srv, err := NewServerWithDeps(testConfig(t), newTestDB(t), rdb, newRecordingSender(false))
	require.NoError(t, err)
	require.NoError(t, srv.profileRepo.EnsureDefault(context.Background(),
		models.Profile{Name: "Owner", Headline: "Test headline"}))

	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app, mr
}

func fiberTestApp(srv *Server) *fiber.App {
	app := fiber.New()
	srv.SetupRoutes(app)
	return app
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// loginAdmin logs in and returns the session token.
func loginAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/admin/login",
		map[string]string{"password": testAdminPassword}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status string `json:"status"`
		Token  string `json:"token"`
	}
	decodeBody(t, resp, &body)
	require.Equal(t, "success", body.Status)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func withBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}
