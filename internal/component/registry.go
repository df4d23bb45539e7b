// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  At boot the server calls
// Mount, which hands every component the shared Deps through Init and then
// lets it add its routes to the root router.

package component

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/linkpage/internal/form"
	"github.com/yanizio/linkpage/internal/middleware"
	"github.com/yanizio/linkpage/internal/session"
	"github.com/yanizio/linkpage/internal/view"
)

// Deps are the process-wide services components may use.
type Deps struct {
	Sessions       *session.Store
	Renderer       *view.Renderer
	CSRF           *form.CSRF
	Limiter        *middleware.RateLimiter // guards submission routes
	AllowedOrigins []string                // CORS for JSON APIs
}

// Initializer receives Deps once before routes are mounted.
type Initializer interface {
	Init(Deps) error
}

// Component contract.  Routes adds page and API endpoints to r, e.g.:
//
//	r.Get("/contact", c.getContact)
//	r.Route("/api", func(api chi.Router) { ... })
type Component interface {
	Name() string
	Routes(r chi.Router)
	Initializer
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Mount initialises every registered component and adds its routes to r.
func Mount(r chi.Router, d Deps) error {
	for _, c := range All() {
		if err := c.Init(d); err != nil {
			return fmt.Errorf("component %s: init: %w", c.Name(), err)
		}
		c.Routes(r)
	}
	return nil
}
