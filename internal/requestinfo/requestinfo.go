//
//  internal/requestinfo/requestinfo.go
//
//  Lightweight types that collect per-request metadata (user-agent
//  fingerprint, client IP, optional geolocation, and timestamp).  The
//  structs are inert, so they are safe to log.
//
//  Dependencies
//  • internal/ua                      (uasurfer wrapper)
//  • github.com/oschwald/geoip2-golang (optional MaxMind lookup)
//

package requestinfo

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/oschwald/geoip2-golang"

	"github.com/yanizio/linkpage/internal/ua"
)

// Geo holds IP-based hints.  Empty when no database is configured or the
// address has no match.
type Geo struct {
	CountryISO string
	City       string
}

// Info is attached to every request by Enrich.
type Info struct {
	IP          net.IP
	UA          ua.Info
	Geo         Geo
	PrimaryLang string // first tag of Accept-Language ("en", "pt-br", ...)
	Timestamp   time.Time
}

// GeoLookup resolves an address to Geo.  *GeoDB is the production type.
type GeoLookup interface {
	Lookup(ip net.IP) Geo
}

// GeoDB wraps a MaxMind City reader.  Safe for concurrent reads.
type GeoDB struct {
	r *geoip2.Reader
}

// OpenGeo opens a GeoLite2/GeoIP2 City database.
func OpenGeo(path string) (*GeoDB, error) {
	r, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("requestinfo: open geo db: %w", err)
	}
	return &GeoDB{r: r}, nil
}

// Lookup implements GeoLookup.  Errors yield an empty Geo.
func (g *GeoDB) Lookup(ip net.IP) Geo {
	if g == nil || ip == nil {
		return Geo{}
	}
	rec, err := g.r.City(ip)
	if err != nil {
		return Geo{}
	}
	return Geo{CountryISO: rec.Country.IsoCode, City: rec.City.Names["en"]}
}

// Close releases the database.
func (g *GeoDB) Close() error {
	if g == nil {
		return nil
	}
	return g.r.Close()
}

type ctxKey struct{}

// WithInfo stores info in ctx.
func WithInfo(ctx context.Context, info *Info) context.Context {
	return context.WithValue(ctx, ctxKey{}, info)
}

// FromContext returns the Info stored by Enrich, or nil.
func FromContext(ctx context.Context) *Info {
	v, _ := ctx.Value(ctxKey{}).(*Info)
	return v
}

// primaryLang extracts the first language tag before any ";q=" weight.
func primaryLang(al string) string {
	tag, _, _ := strings.Cut(al, ",")
	tag, _, _ = strings.Cut(tag, ";")
	return strings.ToLower(strings.TrimSpace(tag))
}
