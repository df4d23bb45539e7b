// internal/requestinfo/middleware.go
//
// HTTP middleware that enriches each request with *Info.
//
/*
Context
--------
This handler sits right after the request-ID and access-log middleware.
For every request it:

  1. Parses the User-Agent header and Accept-Language list.
  2. Takes the client IP from `r.RemoteAddr`.
  3. Performs a GeoLite2 lookup when a database is configured.
  4. Stores the result in the request context, so the rate limiter,
     submission logs, and templates read it without reparsing.

Notes
-----
  • Forwarded headers are never read here.  Behind a proxy, enable
    http.trust_proxy so chi's RealIP rewrites RemoteAddr first.
  • Oxford commas, two spaces after periods.  No em dash.
*/
package requestinfo

import (
	"net"
	"net/http"
	"time"

	"github.com/yanizio/linkpage/internal/logger"
	"github.com/yanizio/linkpage/internal/ua"
)

/*──────────────────────────── middleware ───────────────────────────────────*/

// Enrich returns middleware that attaches *Info.  geo may be nil.
func Enrich(geo GeoLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			info := &Info{
				IP:          ip,
				UA:          ua.Parse(r.UserAgent()),
				PrimaryLang: primaryLang(r.Header.Get("Accept-Language")),
				Timestamp:   time.Now().UTC(),
			}
			if geo != nil {
				info.Geo = geo.Lookup(ip)
			}

			logger.FromContext(r.Context()).Debugw("request info",
				"ip", ip,
				"country", info.Geo.CountryISO,
				"ua", info.UA.String(),
				"bot", info.UA.IsBot,
			)

			next.ServeHTTP(w, r.WithContext(WithInfo(r.Context(), info)))
		})
	}
}

/*──────────────────────────── client IP helper ─────────────────────────────*/

// ClientIP returns the peer address from r.RemoteAddr ("ip:port").  The
// value is only as trustworthy as whatever set RemoteAddr, so rate limiting
// can key on it safely.
func ClientIP(r *http.Request) net.IP {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return net.ParseIP(host)
	}
	return net.ParseIP(r.RemoteAddr)
}
