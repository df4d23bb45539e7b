// internal/contact/controller.go
//
// Linkpage – Contact subsystem: submission controller.
//
// Context
//   The controller owns the lifecycle of one visitor's contact attempts:
//
//       Idle → Sending → Succeeded | Failed → Idle
//
//   Submit validates, hands an accepted request to the Sink exactly once, and
//   reports the result through the Notifier.  While an attempt is Sending any
//   further Submit is a no-op that returns ErrInFlight, so a controller never
//   has more than one outbound request in flight.
//
// Notes
//   •  The outbound call is detached from caller cancellation.  Once sent, the
//      controller waits for the sink to resolve.
//   •  A failed attempt keeps the Request so the form can be pre-filled; a
//      successful one clears it.
//   •  Two spaces after periods, Oxford commas.
//
//------------------------------------------------------------------------------

package contact

import (
	"context"
	"sync"

	"github.com/yanizio/linkpage/internal/logger"
	"github.com/yanizio/linkpage/internal/metrics"
)

// -----------------------------------------------------------------------------
// State
// -----------------------------------------------------------------------------

// State is the user-visible phase of a submission.
type State int

const (
	Idle State = iota
	Sending
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sending:
		return "sending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Collaborators
// -----------------------------------------------------------------------------

// Sink receives the formatted message text.  A nil error means the sink
// acknowledged it.
type Sink interface {
	Deliver(ctx context.Context, content string) error
}

// Notifier surfaces user-visible feedback.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// -----------------------------------------------------------------------------
// Controller
// -----------------------------------------------------------------------------

// Controller is safe for concurrent use.  Zero value is invalid; use
// NewController.
type Controller struct {
	sink   Sink
	notify Notifier

	mu      sync.Mutex
	state   State
	pending *Request
	errs    FieldErrors
}

// NewController returns an Idle controller.  A nil notifier discards
// notifications.
func NewController(s Sink, n Notifier) *Controller {
	if n == nil {
		n = NotifierFunc(func(Notification) {})
	}
	return &Controller{sink: s, notify: n}
}

// Submit runs one attempt.  It returns the resulting state and, on rejection,
// a *ValidationError; on sink failure, a *DeliveryError; while another
// attempt is in flight, ErrInFlight.
func (c *Controller) Submit(ctx context.Context, req Request) (State, error) {
	log := logger.FromContext(ctx)

	c.mu.Lock()
	if c.state == Sending {
		c.mu.Unlock()
		metrics.Submissions.WithLabelValues("busy").Inc()
		log.Debugw("contact submit ignored", "reason", "in flight")
		return Sending, ErrInFlight
	}
	c.state = Sending
	c.pending = &req
	c.errs = nil
	c.mu.Unlock()

	res := Validate(req)
	if !res.Accepted() {
		c.mu.Lock()
		c.state = Idle
		c.errs = res.Errors
		c.mu.Unlock()

		metrics.Submissions.WithLabelValues("rejected").Inc()
		log.Infow("contact rejected", "fields", len(res.Errors))
		return Idle, res.Err()
	}

	err := c.sink.Deliver(context.WithoutCancel(ctx), Format(req))

	c.mu.Lock()
	if err != nil {
		c.state = Failed
	} else {
		c.state = Succeeded
		c.pending = nil
	}
	state := c.state
	c.mu.Unlock()

	if err != nil {
		metrics.Submissions.WithLabelValues("failed").Inc()
		log.Errorw("contact delivery failed", "email", MaskEmail(req.Email), "error", err)
		c.notify.Notify(FailureNotice)
		return state, &DeliveryError{Err: err}
	}

	metrics.Submissions.WithLabelValues("delivered").Inc()
	log.Infow("contact delivered", "email", MaskEmail(req.Email))
	c.notify.Notify(SuccessNotice)
	return state, nil
}

// Dismiss acknowledges feedback: Succeeded and Failed return to Idle.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	if c.state == Succeeded || c.state == Failed {
		c.state = Idle
	}
	c.mu.Unlock()
}

// Open is called when the visitor reopens the form.  Feedback is dismissed and
// the retained request, if any, is returned for pre-filling.
func (c *Controller) Open() (Request, bool) {
	c.Dismiss()
	return c.Pending()
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending returns a copy of the retained request.
func (c *Controller) Pending() (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return Request{}, false
	}
	return *c.pending, true
}

// Errors returns the field errors of the last rejected attempt.
func (c *Controller) Errors() FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.errs) == 0 {
		return nil
	}
	out := make(FieldErrors, len(c.errs))
	for k, msg := range c.errs {
		out[k] = msg
	}
	return out
}
