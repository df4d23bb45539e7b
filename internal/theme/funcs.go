//
//  internal/theme/funcs.go
//
//  Template functions.  Request-info helpers take the *requestinfo.Info
//  stored on the page and tolerate nil, so templates never need guards.
//

package theme

import (
	"html/template"
	"strings"

	"github.com/yanizio/linkpage/internal/requestinfo"
)

// icons maps link icon names to a glyph.  Unknown names fall back to "↗".
var icons = map[string]string{
	"globe":       "🌐",
	"github":      "🐙",
	"linkedin":    "💼",
	"instagram":   "📷",
	"envelope":    "✉️",
	"paper-plane": "📨",
}

// FuncMap returns the template function map.  asset resolves asset paths.
func FuncMap(asset func(string) string) template.FuncMap {
	return template.FuncMap{
		"asset": asset,

		"icon": func(name string) template.HTML {
			glyph, ok := icons[name]
			if !ok {
				glyph = "↗"
			}
			return template.HTML(`<span class="icon icon-` + template.HTMLEscapeString(name) +
				`" aria-hidden="true">` + glyph + `</span>`)
		},

		// Request-info helpers
		"device": func(i *requestinfo.Info) string {
			if i == nil {
				return "unknown"
			}
			return strings.ToLower(i.UA.Device)
		},
		"isBot": func(i *requestinfo.Info) bool {
			return i != nil && i.UA.IsBot
		},
		"country": func(i *requestinfo.Info) string {
			if i == nil {
				return ""
			}
			return i.Geo.CountryISO
		},
	}
}
