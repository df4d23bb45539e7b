package profile

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/linkpage/internal/component"
	"github.com/yanizio/linkpage/internal/config"
	"github.com/yanizio/linkpage/internal/contact"
	"github.com/yanizio/linkpage/internal/profile"
	"github.com/yanizio/linkpage/internal/session"
	"github.com/yanizio/linkpage/internal/sink"
	"github.com/yanizio/linkpage/internal/theme"
	"github.com/yanizio/linkpage/internal/view"
)

func newRouter(t *testing.T, p config.Profile) (http.Handler, *session.Store) {
	t.Helper()
	th, err := (&theme.Manager{}).Load("default")
	require.NoError(t, err)

	store := session.NewStore(sink.NewWebhook(sink.Options{}), session.Options{})
	c := &Comp{}
	require.NoError(t, c.Init(component.Deps{
		Sessions: store,
		Renderer: view.NewRenderer(th, profile.FromConfig(p), view.Analytics{}),
	}))

	r := chi.NewRouter()
	c.Routes(r)
	return r, store
}

func TestHome_RendersCard(t *testing.T) {
	h, _ := newRouter(t, config.Profile{
		Name:  "Jane Doe",
		Title: "Engineer",
		Email: "jane@example.com",
		Links: []config.Link{{Label: "GitHub", URL: "https://github.com/jane", Icon: "github"}},
	})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "<h1>Jane Doe</h1>")
	assert.Contains(t, body, `href="https://github.com/jane" target="_blank" rel="noopener noreferrer"`)
	assert.Contains(t, body, `href="/email"`)
	assert.Contains(t, body, `href="/contact"`)
	assert.NotContains(t, body, `class="contact-form"`, "modal closed on the card")
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
}

func TestHome_ShowsQueuedToastOnce(t *testing.T) {
	h, store := newRouter(t, config.Profile{Name: "Jane"})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)

	v, ok := store.Get(cookies[0].Value)
	require.True(t, ok)
	v.Notify(contact.SuccessNotice)

	get := func() string {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(cookies[0])
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)
		return rr.Body.String()
	}
	assert.Contains(t, get(), contact.SuccessNotice.Title)
	assert.NotContains(t, get(), contact.SuccessNotice.Title)
}

func TestEmail(t *testing.T) {
	t.Run("redirects to mailto", func(t *testing.T) {
		h, _ := newRouter(t, config.Profile{Name: "Jane", Email: "jane@example.com"})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/email", nil))

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "mailto:jane@example.com", rr.Header().Get("Location"))
	})

	t.Run("404 without address", func(t *testing.T) {
		h, _ := newRouter(t, config.Profile{Name: "Jane"})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/email", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
