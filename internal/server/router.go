// internal/server/router.go
//
// Root router assembly.
//
// Middleware order
// ----------------
//   RealIP (trust_proxy only) → RequestID → Recoverer → AccessLog
//                                                (every route)
//   Enrich → ForceHTTPS (optional) → Security    (site routes)
//
// /healthz and /metrics sit outside the site group so probes and scrapers
// are never redirected to HTTPS.
//
// Site routes
// -----------
//   /themes/<name>/assets/*   theme assets (embedded or override dir)
//   /img/*                    <root>/public/img (avatar and friends)
//   everything else           registered components

package server

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanizio/linkpage/internal/component"
	"github.com/yanizio/linkpage/internal/middleware"
	"github.com/yanizio/linkpage/internal/requestinfo"
)

// Options configure NewRouter.
type Options struct {
	Deps       component.Deps
	Geo        requestinfo.GeoLookup // nil disables geo lookups
	ForceHTTPS bool
	TrustProxy bool   // a proxy in front sets X-Forwarded-For / X-Real-IP
	ScriptSrc  string // analytics script allowed by the CSP
	PublicDir  string // served under /img from <PublicDir>/img
}

// NewRouter builds the root handler.
func NewRouter(o Options) (http.Handler, error) {
	r := chi.NewRouter()
	if o.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestID, chimw.Recoverer, middleware.AccessLog)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	var mountErr error
	r.Group(func(site chi.Router) {
		site.Use(requestinfo.Enrich(o.Geo))
		if o.ForceHTTPS {
			site.Use(middleware.ForceHTTPS)
		}
		site.Use(middleware.Security(o.ScriptSrc))

		th := o.Deps.Renderer.Theme()
		site.Handle(th.AssetPrefix()+"*",
			http.StripPrefix(th.AssetPrefix(), http.FileServer(http.FS(th.Assets))))

		if o.PublicDir != "" {
			img := filepath.Join(o.PublicDir, "img")
			if info, err := os.Stat(img); err == nil && info.IsDir() {
				site.Handle("/img/*", http.StripPrefix("/img/", http.FileServer(http.Dir(img))))
			}
		}

		mountErr = component.Mount(site, o.Deps)
	})
	if mountErr != nil {
		return nil, mountErr
	}
	return r, nil
}
