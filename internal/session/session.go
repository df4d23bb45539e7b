// internal/session/session.go
//
// Linkpage – Visitor sessions.
//
// Context
//   Each browser gets an opaque random ID in the “linkpage_session” cookie.
//   The ID maps to a Visitor held in memory: the visitor's own contact
//   Controller (so the one-in-flight guard is per visitor) and a flash queue
//   of notifications shown on the next page view.  Nothing is persisted; a
//   restart simply hands out fresh sessions.
//
// Workflow
//   •  Store.Visitor reads the cookie, returns the live Visitor, or creates
//      one and sets the cookie.
//   •  Every lookup refreshes lastSeen.  Run sweeps idle visitors; the LRU
//      cap bounds memory under load.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package session

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yanizio/linkpage/internal/contact"
)

// CookieName is the session cookie.
const CookieName = "linkpage_session"

// Visitor is the per-browser state.
type Visitor struct {
	ID         string
	Controller *contact.Controller

	lastSeen atomic.Int64 // UnixNano

	flashMu sync.Mutex
	flash   []contact.Notification
}

// Notify implements contact.Notifier by queueing n for the next page view.
func (v *Visitor) Notify(n contact.Notification) {
	v.flashMu.Lock()
	v.flash = append(v.flash, n)
	v.flashMu.Unlock()
}

// Drain returns and clears queued notifications.
func (v *Visitor) Drain() []contact.Notification {
	v.flashMu.Lock()
	defer v.flashMu.Unlock()
	out := v.flash
	v.flash = nil
	return out
}

// Requeue puts ns back at the front of the queue, ahead of anything queued
// since they were drained.
func (v *Visitor) Requeue(ns []contact.Notification) {
	if len(ns) == 0 {
		return
	}
	v.flashMu.Lock()
	v.flash = append(append([]contact.Notification(nil), ns...), v.flash...)
	v.flashMu.Unlock()
}

func (v *Visitor) touch(now time.Time) { v.lastSeen.Store(now.UnixNano()) }

func (v *Visitor) idleFor(now time.Time) time.Duration {
	return time.Duration(now.UnixNano() - v.lastSeen.Load())
}

// setCookie writes the session cookie.  It lives for the browser session.
func setCookie(w http.ResponseWriter, r *http.Request, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil, // only send over HTTPS
		SameSite: http.SameSiteLaxMode,
	})
}

// cookieID returns the session ID presented by the browser, if any.
func cookieID(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
