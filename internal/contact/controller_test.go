package contact

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSink records every delivery.  When block is set, Deliver signals
// entered and waits for block to close.
type fakeSink struct {
	mu      sync.Mutex
	calls   []string
	err     error
	entered chan struct{}
	block   chan struct{}
}

func (f *fakeSink) Deliver(ctx context.Context, content string) error {
	f.mu.Lock()
	f.calls = append(f.calls, content)
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	return f.err
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type recorder struct {
	mu   sync.Mutex
	seen []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	r.seen = append(r.seen, n)
	r.mu.Unlock()
}

func TestController_ScenarioA_Success(t *testing.T) {
	s := &fakeSink{}
	rec := &recorder{}
	c := NewController(s, rec)
	require.Equal(t, Idle, c.State())

	state, err := c.Submit(context.Background(), valid())

	require.NoError(t, err)
	assert.Equal(t, Succeeded, state)
	assert.Equal(t, Succeeded, c.State())
	require.Equal(t, 1, s.count())
	assert.Equal(t, Format(valid()), s.calls[0])
	assert.Equal(t, []Notification{SuccessNotice}, rec.seen)

	_, ok := c.Pending()
	assert.False(t, ok, "request should be cleared on success")
}

func TestController_ScenarioB_Rejected(t *testing.T) {
	s := &fakeSink{}
	rec := &recorder{}
	c := NewController(s, rec)

	state, err := c.Submit(context.Background(), Request{Name: "A", Email: "bad", Message: "short"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, FieldErrors{"name": MsgName, "email": MsgEmail, "message": MsgMessage}, ve.Fields)
	assert.Equal(t, Idle, state)
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, 0, s.count())
	assert.Empty(t, rec.seen)
	assert.Equal(t, ve.Fields, c.Errors())
}

func TestController_ScenarioC_Failure(t *testing.T) {
	s := &fakeSink{err: errors.New("503 from sink")}
	rec := &recorder{}
	c := NewController(s, rec)

	state, err := c.Submit(context.Background(), valid())

	var de *DeliveryError
	require.ErrorAs(t, err, &de)
	assert.EqualError(t, de.Unwrap(), "503 from sink")
	assert.Equal(t, Failed, state)
	assert.Equal(t, 1, s.count())
	assert.Equal(t, []Notification{FailureNotice}, rec.seen)

	got, ok := c.Pending()
	require.True(t, ok)
	assert.Equal(t, valid(), got)

	// Resubmission is allowed straight from Failed.
	s.err = nil
	state, err = c.Submit(context.Background(), got)
	require.NoError(t, err)
	assert.Equal(t, Succeeded, state)
	assert.Equal(t, 2, s.count())
}

func TestController_InFlightGuard(t *testing.T) {
	s := &fakeSink{entered: make(chan struct{}), block: make(chan struct{})}
	c := NewController(s, nil)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), valid())
		done <- err
	}()

	select {
	case <-s.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("sink was never called")
	}
	assert.Equal(t, Sending, c.State())

	state, err := c.Submit(context.Background(), valid())
	assert.ErrorIs(t, err, ErrInFlight)
	assert.Equal(t, Sending, state)
	assert.Equal(t, 1, s.count())

	close(s.block)
	require.NoError(t, <-done)
	assert.Equal(t, Succeeded, c.State())
	assert.Equal(t, 1, s.count())
}

func TestController_DeliveryIgnoresCallerCancel(t *testing.T) {
	var seen error
	s := sinkFunc(func(ctx context.Context, _ string) error {
		seen = ctx.Err()
		return nil
	})
	c := NewController(s, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Submit(ctx, valid())

	require.NoError(t, err)
	assert.NoError(t, seen)
}

func TestController_DismissAndOpen(t *testing.T) {
	s := &fakeSink{err: errors.New("down")}
	c := NewController(s, nil)

	_, _ = c.Submit(context.Background(), valid())
	require.Equal(t, Failed, c.State())

	req, ok := c.Open()
	require.True(t, ok)
	assert.Equal(t, valid(), req)
	assert.Equal(t, Idle, c.State())

	s.err = nil
	_, _ = c.Submit(context.Background(), valid())
	require.Equal(t, Succeeded, c.State())
	c.Dismiss()
	assert.Equal(t, Idle, c.State())
	_, ok = c.Open()
	assert.False(t, ok)
}

type sinkFunc func(ctx context.Context, content string) error

func (f sinkFunc) Deliver(ctx context.Context, content string) error { return f(ctx, content) }
