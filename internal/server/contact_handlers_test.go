package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForSend(t *testing.T, sender *recordingSender) {
	t.Helper()
	select {
	case <-sender.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for mail dispatch")
	}
}

func TestSubmitContact(t *testing.T) {
	srv, app, sender := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/contact", map[string]string{
		"name":    "Ada",
		"email":   "ada@example.com",
		"message": "Hello there",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var msg models.ContactMessage
	require.NoError(t, srv.db.First(&msg).Error)
	assert.Equal(t, "Ada", msg.Name)
	assert.Equal(t, "ada@example.com", msg.Email)

	waitForSend(t, sender)
	delivered := sender.delivered()
	require.Len(t, delivered, 1)
	assert.Equal(t, "owner@example.test", delivered[0].To)
	assert.Equal(t, "New Contact Form Submission", delivered[0].Subject)
	assert.Contains(t, delivered[0].Body, "Name: Ada")
	assert.Contains(t, delivered[0].Body, "Email: ada@example.com")
	assert.Contains(t, delivered[0].Body, "Message:\nHello there")
}

func TestSubmitContactSurvivesMailFailure(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	sender := newRecordingSender(true)
	srv, err := NewServerWithDeps(testConfig(t), newTestDB(t), nil, sender)
	require.NoError(t, err)
	require.NoError(t, srv.profileRepo.EnsureDefault(context.Background(),
		models.Profile{Name: "Owner"}))
	app := fiberTestApp(srv)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/contact", map[string]string{
		"name":    "Ada",
		"email":   "ada@example.com",
		"message": "Hello",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "mail outage never surfaces to the visitor")

	waitForSend(t, sender)
	var count int64
	require.NoError(t, srv.db.Model(&models.ContactMessage{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "the row persists regardless of delivery")
}

func TestSubmitContactValidation(t *testing.T) {
	_, app, _ := newTestServer(t)

	cases := []map[string]string{
		{"name": "", "email": "a@b.com", "message": "hi"},
		{"name": "Ada", "email": "not-an-email", "message": "hi"},
		{"name": "Ada", "email": "a@b.com", "message": ""},
	}
	for i, body := range cases {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/contact", body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "case %d", i)
	}
}

func TestAdminMessagesAndReply(t *testing.T) {
	srv, app, sender := newTestServer(t)
	token := loginAdmin(t, app)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/contact", map[string]string{
		"name":    "Ada",
		"email":   "ada@example.com",
		"message": "Question about a project",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	waitForSend(t, sender)

	t.Run("list messages", func(t *testing.T) {
		req := withBearer(jsonRequest(http.MethodGet, "/api/admin/messages", nil), token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var messages []models.ContactMessage
		decodeBody(t, resp, &messages)
		require.Len(t, messages, 1)
		assert.Nil(t, messages[0].RepliedAt)
	})

	t.Run("reply marks message and mails the sender", func(t *testing.T) {
		var msg models.ContactMessage
		require.NoError(t, srv.db.First(&msg).Error)

		req := withBearer(jsonRequest(http.MethodPost,
			fmt.Sprintf("/api/admin/messages/%d/reply", msg.ID),
			map[string]string{"body": "Thanks, answering soon."}), token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var replied models.ContactMessage
		decodeBody(t, resp, &replied)
		assert.NotNil(t, replied.RepliedAt)

		waitForSend(t, sender)
		delivered := sender.delivered()
		require.Len(t, delivered, 2)
		assert.Equal(t, "ada@example.com", delivered[1].To)
	})

	t.Run("reply to unknown message", func(t *testing.T) {
		req := withBearer(jsonRequest(http.MethodPost, "/api/admin/messages/999/reply",
			map[string]string{"body": "hi"}), token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
