// internal/view/render.go
//
// Central view engine: builds the per-request page model and executes the
// theme's layout.
//
// Public helpers
// --------------
//   - Renderer.NewPage  – page model with the head pre-filled (title,
//     description, stylesheet, analytics).
//   - Renderer.Render   – execute "layout" into a buffer, then write it with
//     the given status.  Template errors become a bare 500.
//
// Notes
// -----
// • Pages carry per-visitor state (CSRF token, toasts), so responses are
//   marked no-store.
// • Oxford commas, two spaces after periods.

package view

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"

	"github.com/yanizio/linkpage/internal/contact"
	"github.com/yanizio/linkpage/internal/head"
	"github.com/yanizio/linkpage/internal/logger"
	"github.com/yanizio/linkpage/internal/profile"
	"github.com/yanizio/linkpage/internal/requestinfo"
	"github.com/yanizio/linkpage/internal/theme"
)

// Analytics configures the optional analytics script tag.
type Analytics struct {
	Domain string
	Script string
}

// Page is the data handed to the layout template.
type Page struct {
	Head    *head.Builder
	Info    *requestinfo.Info
	Profile *profile.Profile
	Toasts  []contact.Notification
	Modal   template.HTML // contact form markup; empty when the modal is closed
}

// Renderer is shared by all handlers.  Safe for concurrent use.
type Renderer struct {
	theme     *theme.Theme
	profile   *profile.Profile
	analytics Analytics
}

// NewRenderer wires a theme and profile together.
func NewRenderer(th *theme.Theme, p *profile.Profile, a Analytics) *Renderer {
	return &Renderer{theme: th, profile: p, analytics: a}
}

// Theme exposes the loaded theme (asset routes need it).
func (rn *Renderer) Theme() *theme.Theme { return rn.theme }

// Profile exposes the profile model.
func (rn *Renderer) Profile() *profile.Profile { return rn.profile }

// NewPage returns a page model for r.
func (rn *Renderer) NewPage(r *http.Request) *Page {
	h := head.New()
	h.SetTitle(rn.profile.Name)
	h.Description(rn.profile.Description)
	h.Stylesheet(rn.theme.Asset("css/main.css"))
	if rn.analytics.Script != "" {
		data := map[string]string{}
		if rn.analytics.Domain != "" {
			data["domain"] = rn.analytics.Domain
		}
		h.ScriptSrc(rn.analytics.Script, data)
	}

	return &Page{
		Head:    h,
		Info:    requestinfo.FromContext(r.Context()),
		Profile: rn.profile,
	}
}

// Render executes the layout and writes it with status.
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, p *Page) {
	var buf bytes.Buffer
	if err := rn.theme.Execute(&buf, "layout", p); err != nil {
		logger.FromContext(r.Context()).Errorw("template render failed", "theme", rn.theme.Name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	hdr := w.Header()
	hdr.Set("Content-Type", "text/html; charset=utf-8")
	hdr.Set("Content-Length", strconv.Itoa(buf.Len()))
	hdr.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
