// components/contact/contact.go
//
// Contact Component – the “Send me a message” modal and its JSON twin.
//
// Context
//   Every visitor owns one contact.Controller (see internal/session).  The
//   handlers here only translate HTTP into controller calls and controller
//   outcomes back into pages or JSON; validation, the in-flight guard, and
//   delivery all live in the controller.
//
// Routes
//   GET  /contact       card with the modal open, pre-filled with input the
//                       visitor has not successfully sent yet.
//   POST /contact       form post.  422 + inline errors on rejection, 409
//                       while sending, 303 → / on success, 303 → /contact on
//                       failure (input retained).
//   POST /api/contact   JSON body; JSON reply with the same state mapping,
//                       plus 503 when no sink is configured and 502 on
//                       delivery failure.
//
// Notes
//   • POST routes sit behind the per-client rate limiter.
//   • The form post is CSRF-checked; the JSON route relies on CORS.
package contact

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/yanizio/linkpage/internal/component"
	"github.com/yanizio/linkpage/internal/contact"
	"github.com/yanizio/linkpage/internal/form"
	"github.com/yanizio/linkpage/internal/logger"
	"github.com/yanizio/linkpage/internal/requestinfo"
	"github.com/yanizio/linkpage/internal/session"
)

// compile-time assertion
var _ component.Component = (*Comp)(nil)

// Comp implements component.Component.
type Comp struct {
	deps component.Deps
}

func init() { component.Register(&Comp{}) }

func (c *Comp) Name() string { return "contact" }

// Init stores shared services.
func (c *Comp) Init(d component.Deps) error {
	if d.Sessions == nil || d.Renderer == nil || d.CSRF == nil {
		return errors.New("sessions, renderer, and csrf are required")
	}
	c.deps = d
	return nil
}

func (c *Comp) Routes(r chi.Router) {
	r.Get("/contact", c.getContact)

	r.Group(func(g chi.Router) {
		if c.deps.Limiter != nil {
			g.Use(c.deps.Limiter.Middleware)
		}
		g.Post("/contact", c.postContact)
	})

	r.Route("/api/contact", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins:   c.deps.AllowedOrigins,
			AllowedMethods:   []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: len(c.deps.AllowedOrigins) > 0,
			MaxAge:           300,
		}))
		if c.deps.Limiter != nil {
			api.With(c.deps.Limiter.Middleware).Post("/", c.postAPI)
		} else {
			api.Post("/", c.postAPI)
		}
	})
}

/*──────────────────────────── HTML modal ───────────────────────────────────*/

func (c *Comp) getContact(w http.ResponseWriter, r *http.Request) {
	v := c.deps.Sessions.Visitor(w, r)
	prefill, _ := v.Controller.Open()
	c.renderModal(w, r, v, http.StatusOK, prefill, nil)
}

func (c *Comp) postContact(w http.ResponseWriter, r *http.Request) {
	v := c.deps.Sessions.Visitor(w, r)
	ctx := submitContext(r, v)
	log := logger.FromContext(ctx)

	req, err := form.Decode(w, r)
	if err != nil {
		log.Infow("contact form unreadable", "error", err)
		http.Error(w, "Bad request.", http.StatusBadRequest)
		return
	}
	if !c.deps.CSRF.Verify(r.PostForm.Get(form.CSRFField), v.ID) {
		log.Warnw("contact form csrf check failed")
		http.Error(w, "Your form expired.  Please reload the page and try again.", http.StatusForbidden)
		return
	}

	_, err = v.Controller.Submit(ctx, req)

	switch {
	case err == nil:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, contact.ErrInFlight):
		pending, _ := v.Controller.Pending()
		c.renderModal(w, r, v, http.StatusConflict, pending, nil)
	case contact.IsValidationError(err):
		c.renderModal(w, r, v, http.StatusUnprocessableEntity, req, v.Controller.Errors())
	default: // delivery failed; the failure toast is queued
		http.Redirect(w, r, "/contact", http.StatusSeeOther)
	}
}

// renderModal draws the card with the contact modal open.
func (c *Comp) renderModal(w http.ResponseWriter, r *http.Request, v *session.Visitor, status int,
	values contact.Request, errs contact.FieldErrors) {
	token, err := c.deps.CSRF.Generate(v.ID)
	if err != nil {
		logger.FromContext(r.Context()).Errorw("csrf token generation failed", "error", err)
		http.Error(w, "Internal error.", http.StatusInternalServerError)
		return
	}

	page := c.deps.Renderer.NewPage(r)
	page.Toasts = v.Drain()
	page.Modal = form.RenderContact(form.ContactView{
		Action:    "/contact",
		CSRFToken: token,
		Values:    values,
		Errors:    errs,
		Sending:   v.Controller.State() == contact.Sending,
	})
	c.deps.Renderer.Render(w, r, status, page)
}

/*──────────────────────────── helpers ──────────────────────────────────────*/

// submitContext tags the request logger with the session and client so
// controller logs can be traced back to a visitor.
func submitContext(r *http.Request, v *session.Visitor) context.Context {
	log := logger.FromContext(r.Context()).With("session", v.ID[:8])
	if info := requestinfo.FromContext(r.Context()); info != nil {
		log = log.With("ua", info.UA.String(), "bot", info.UA.IsBot, "country", info.Geo.CountryISO)
	}
	return logger.WithContext(r.Context(), log)
}
