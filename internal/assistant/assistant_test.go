package assistant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"atelier/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     "test-key",
		model:      "test-model",
		persona:    "You are a test persona.",
	}
}

func TestGenerateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Hello from the model  "}]}}]}`))
	}))
	defer srv.Close()

	client := newStubClient(srv.URL)
	reply, err := client.Generate(context.Background(), "hi there")
	require.NoError(t, err)
	assert.Equal(t, "Hello from the model", reply)
}

func TestGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newStubClient(srv.URL)
	_, err := client.Generate(context.Background(), "hi")
	assert.Error(t, err)
}

func TestGenerateEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := newStubClient(srv.URL)
	_, err := client.Generate(context.Background(), "hi")
	assert.Error(t, err)
}

func TestNewClientWithoutKey(t *testing.T) {
	cfg := &config.Config{AIBaseURL: "https://example.test"}
	assert.Nil(t, NewClient(cfg))
}

func TestCannedReply(t *testing.T) {
	tests := []struct {
		prompt   string
		contains string
	}{
		{"How do I CONTACT you?", "contact form"},
		{"Tell me about your projects", "posts section"},
		{"Can I see your resume?", "journey section"},
		{"hello!", "Hi there"},
		{"something entirely unrelated", "Thanks for asking"},
	}
	for _, tt := range tests {
		reply := CannedReply(tt.prompt)
		assert.Contains(t, reply, tt.contains, "prompt %q", tt.prompt)
	}
}
