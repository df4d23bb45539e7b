// internal/sink/webhook.go
//
// Linkpage – Notification sink: JSON webhook client.
//
// Context
//   Accepted contact messages leave the process through exactly one HTTP
//   request.  The sink is any endpoint that accepts
//
//       POST <url>
//       Content-Type: application/json
//
//       {"content": "<formatted text>"}
//
//   and answers 2xx on success (chat webhooks accept this shape as-is).
//   Deliver sends once and never retries; the caller decides what a failure
//   means for the visitor.
//
// Notes
//   •  Timeout 0 leaves the request unbounded.  Resolution then depends on the
//      sink and on the caller's context.
//   •  Headers from config are copied verbatim (e.g. an auth token).
//   •  Two spaces after periods, Oxford commas.
//
//------------------------------------------------------------------------------

package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yanizio/linkpage/internal/logger"
	"github.com/yanizio/linkpage/internal/metrics"
)

// ErrNotConfigured is returned when no sink URL is set.
var ErrNotConfigured = errors.New("sink: url not configured")

// StatusError reports a non-2xx answer from the sink.
type StatusError struct {
	Code int
	Body string // first bytes of the response, for logs
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sink: unexpected status %d", e.Code)
}

// Options configure a Webhook.
type Options struct {
	URL     string
	Timeout time.Duration
	Headers map[string]string
	Client  *http.Client // optional, mainly for tests
}

// Webhook delivers messages to an HTTP endpoint.  Safe for concurrent use.
type Webhook struct {
	url     string
	headers map[string]string
	client  *http.Client
}

type payload struct {
	Content string `json:"content"`
}

// maxErrBody caps how much of an error response is kept for logging.
const maxErrBody = 512

// NewWebhook builds a Webhook from opts.
func NewWebhook(opts Options) *Webhook {
	cli := opts.Client
	if cli == nil {
		cli = &http.Client{Timeout: opts.Timeout}
	}
	return &Webhook{url: opts.URL, headers: opts.Headers, client: cli}
}

// Configured reports whether a URL is set.
func (w *Webhook) Configured() bool { return w.url != "" }

// Deliver posts content once.  Any 2xx status is success.
func (w *Webhook) Deliver(ctx context.Context, content string) (err error) {
	if w.url == "" {
		return ErrNotConfigured
	}

	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		metrics.SinkDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(payload{Content: content})
	if err != nil {
		return fmt.Errorf("sink: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sink: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range w.headers {
		req.Header.Set(k, v)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("sink: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		se := &StatusError{Code: resp.StatusCode, Body: string(snippet)}
		logger.FromContext(ctx).Warnw("sink refused message", "status", se.Code, "body", se.Body)
		return se
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	logger.FromContext(ctx).Debugw("sink acknowledged", "status", resp.StatusCode)
	return nil
}
