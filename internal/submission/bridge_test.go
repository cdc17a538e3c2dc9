package submission_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forik/backend/internal/submission"
)

func TestBridgePingOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b := submission.NewBridge(srv.URL)
	assert.NoError(t, b.Ping(context.Background()))
}

func TestBridgeUnreachableIsBridgeUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	b := submission.NewBridge(srv.URL)
	assert.ErrorIs(t, b.Ping(context.Background()), submission.ErrBridgeUnavailable)
	assert.ErrorIs(t, b.Submit(context.Background(), submission.Request{}), submission.ErrBridgeUnavailable)
}

func TestBridgeSubmitPostsJob(t *testing.T) {
	var got submission.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submit", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b := submission.NewBridge(srv.URL)
	job := submission.Request{ForumURL: "https://forum.example", Title: "Жалоба на X", Body: "[B]text[/B]"}
	require.NoError(t, b.Submit(context.Background(), job))
	assert.Equal(t, job, got)
}

func TestBridgeNoSessionIsBridgeUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	b := submission.NewBridge(srv.URL)
	assert.ErrorIs(t, b.Submit(context.Background(), submission.Request{}), submission.ErrBridgeUnavailable)
}

func TestBridgeSubmitFailureIsNotBridgeUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "captcha failed", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	b := submission.NewBridge(srv.URL)
	err := b.Submit(context.Background(), submission.Request{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, submission.ErrBridgeUnavailable)
	assert.Contains(t, err.Error(), "captcha failed")
}

func TestBridgeCancelledContextSurfacesAsCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := submission.NewBridge(srv.URL)
	assert.ErrorIs(t, b.Ping(ctx), context.Canceled)
}
