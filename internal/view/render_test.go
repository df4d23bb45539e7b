package view

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/linkpage/internal/config"
	"github.com/yanizio/linkpage/internal/contact"
	"github.com/yanizio/linkpage/internal/profile"
	"github.com/yanizio/linkpage/internal/theme"
)

func newRenderer(t *testing.T, a Analytics) *Renderer {
	t.Helper()
	th, err := (&theme.Manager{}).Load("default")
	require.NoError(t, err)
	p := profile.FromConfig(config.Profile{
		Name:        "Jane Doe",
		Title:       "Full Stack Developer",
		Location:    "Based in Ontario, Canada",
		Flag:        "🇨🇦",
		Avatar:      "/img/profile.png",
		Email:       "jane@example.com",
		Description: "Check out my social links",
		Links:       []config.Link{{Label: "GitHub", URL: "https://github.com/jane", Icon: "github"}},
	})
	return NewRenderer(th, p, a)
}

func TestRender_ProfilePage(t *testing.T) {
	rn := newRenderer(t, Analytics{Domain: "jane.dev", Script: "https://stats.jane.dev/js/script.js"})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	rn.Render(rr, r, http.StatusOK, rn.NewPage(r))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.Contains(t, body, "<title>Jane Doe</title>")
	assert.Contains(t, body, `<meta name="description" content="Check out my social links">`)
	assert.Contains(t, body, `data-domain="jane.dev"`)
	assert.Contains(t, body, "Full Stack Developer")
	assert.Contains(t, body, "Based in Ontario, Canada")
	assert.Contains(t, body, `href="https://github.com/jane" target="_blank" rel="noopener noreferrer"`)
	assert.Contains(t, body, `href="/email"`)
	assert.Contains(t, body, `href="/contact"`)
	assert.NotContains(t, body, "modal-backdrop")
	assert.NotContains(t, body, `class="toasts"`)
}

func TestRender_ModalAndToasts(t *testing.T) {
	rn := newRenderer(t, Analytics{})
	r := httptest.NewRequest(http.MethodGet, "/contact", nil)
	rr := httptest.NewRecorder()

	p := rn.NewPage(r)
	p.Modal = template.HTML(`<form class="contact-form"></form>`)
	p.Toasts = []contact.Notification{contact.FailureNotice}
	rn.Render(rr, r, http.StatusUnprocessableEntity, p)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Send me a message</h2>")
	assert.Contains(t, body, `<form class="contact-form"></form>`)
	assert.Contains(t, body, "Failed to send message")
	assert.Contains(t, body, "Please try again later.")
	assert.NotContains(t, body, "<script")
}
