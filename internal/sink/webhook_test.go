package sink

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yanizio/linkpage/internal/logger"
)

func TestWebhook_DeliverPostsContent(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("X-Token"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"content": "hello\nworld"}, body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	wh := NewWebhook(Options{URL: srv.URL, Headers: map[string]string{"X-Token": "secret"}})
	require.True(t, wh.Configured())
	require.NoError(t, wh.Deliver(context.Background(), "hello\nworld"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestWebhook_NonSuccessStatus(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	core, logs := observer.New(zap.WarnLevel)
	ctx := logger.WithContext(context.Background(), zap.New(core).Sugar())

	err := NewWebhook(Options{URL: srv.URL}).Deliver(ctx, "x")

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.Code)
	assert.Contains(t, se.Body, "rate limited")

	entries := logs.FilterMessage("sink refused message").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["body"], "rate limited")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "no retry expected")
}

func TestWebhook_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewWebhook(Options{URL: url}).Deliver(context.Background(), "x")
	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se), "transport failure is not a status error")
}

func TestWebhook_NotConfigured(t *testing.T) {
	wh := NewWebhook(Options{})
	assert.False(t, wh.Configured())
	assert.ErrorIs(t, wh.Deliver(context.Background(), "x"), ErrNotConfigured)
}
