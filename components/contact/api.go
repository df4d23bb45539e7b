package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yanizio/linkpage/internal/contact"
	"github.com/yanizio/linkpage/internal/form"
	"github.com/yanizio/linkpage/internal/logger"
	"github.com/yanizio/linkpage/internal/sink"
)

// apiResponse is the JSON reply of POST /api/contact.
type apiResponse struct {
	State        string                `json:"state"`
	Error        string                `json:"error,omitempty"`
	Errors       contact.FieldErrors   `json:"errors,omitempty"`
	Notification *contact.Notification `json:"notification,omitempty"`
}

func (c *Comp) postAPI(w http.ResponseWriter, r *http.Request) {
	v := c.deps.Sessions.Visitor(w, r)
	ctx := submitContext(r, v)

	req, err := form.Decode(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{State: contact.Idle.String(), Error: "malformed request body"})
		return
	}

	// Toasts queued by earlier page flows stay queued for the next page.
	earlier := v.Drain()
	state, err := v.Controller.Submit(ctx, req)

	// The reply carries this call's toast, so it is not queued again.
	resp := apiResponse{State: state.String()}
	var rest []contact.Notification
	if !errors.Is(err, contact.ErrInFlight) {
		if produced := v.Drain(); len(produced) > 0 {
			n := produced[len(produced)-1]
			resp.Notification = &n
			rest = produced[:len(produced)-1]
		}
		v.Controller.Dismiss()
	}
	v.Requeue(append(earlier, rest...))

	status := http.StatusOK
	switch {
	case err == nil:
	case errors.Is(err, contact.ErrInFlight):
		status, resp.Error = http.StatusConflict, "a message is already being sent"
	case contact.IsValidationError(err):
		status, resp.Errors = http.StatusUnprocessableEntity, v.Controller.Errors()
	case errors.Is(err, sink.ErrNotConfigured):
		status, resp.Error = http.StatusServiceUnavailable, "messaging is not configured"
	default:
		status, resp.Error = http.StatusBadGateway, "message could not be delivered"
	}

	logger.FromContext(ctx).Debugw("contact api reply", "status", status, "state", resp.State)
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
