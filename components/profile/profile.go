// components/profile/profile.go
//
// Profile Component – the link-in-bio card.
//
// Routes
//   GET /       card; shows queued toasts and acknowledges last feedback.
//   GET /email  302 to mailto:<profile.email>; 404 when no address is set.
package profile

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/linkpage/internal/component"
)

// compile-time assertion
var _ component.Component = (*Comp)(nil)

// Comp implements component.Component.
type Comp struct {
	deps component.Deps
}

func init() { component.Register(&Comp{}) }

func (c *Comp) Name() string { return "profile" }

// Init stores shared services.
func (c *Comp) Init(d component.Deps) error {
	if d.Sessions == nil || d.Renderer == nil {
		return errors.New("sessions and renderer are required")
	}
	c.deps = d
	return nil
}

func (c *Comp) Routes(r chi.Router) {
	r.Get("/", c.home)
	r.Get("/email", c.email)
}

func (c *Comp) home(w http.ResponseWriter, r *http.Request) {
	v := c.deps.Sessions.Visitor(w, r)
	v.Controller.Dismiss()

	page := c.deps.Renderer.NewPage(r)
	page.Toasts = v.Drain()
	c.deps.Renderer.Render(w, r, http.StatusOK, page)
}

func (c *Comp) email(w http.ResponseWriter, r *http.Request) {
	to := c.deps.Renderer.Profile().MailTo()
	if to == "" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, to, http.StatusFound)
}
