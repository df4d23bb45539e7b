// internal/head/builder.go
//
// The Builder collects everything that should appear inside a page's <head>
// element.  It is scoped to a single request.  Handlers push tags into the
// builder, then the theme's layout emits each slice where it wants.
//
// Features
// --------
//   - SetTitle             single <title> tag (last call wins).
//   - Description          <meta name="description">.
//   - Stylesheet           <link rel="stylesheet">.
//   - ScriptSrc            deferred external <script> with data-* attributes.
//   - Meta, Link, Script   raw, pre-escaped tags with deduplication.
//   - Render helpers       concat methods that return template.HTML.
package head

import (
	"html/template"
	"sort"
	"strings"
)

// Builder is meant for one goroutine per request.
type Builder struct {
	title string

	metas   []string
	links   []string
	scripts []string

	seen map[string]struct{}
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// ------------------------------------------------------------------
// Typed helpers
// ------------------------------------------------------------------

// SetTitle overrides the page <title>.  The last caller wins.
func (b *Builder) SetTitle(t string) { b.title = t }

// Description adds the meta description.
func (b *Builder) Description(d string) {
	if d == "" {
		return
	}
	b.Meta(`<meta name="description" content="` + esc(d) + `">`)
}

// Stylesheet links a CSS file.
func (b *Builder) Stylesheet(href string) {
	b.Link(`<link rel="stylesheet" href="` + esc(href) + `">`)
}

// ScriptSrc adds a deferred external script.  data holds data-* attributes
// without the prefix, e.g. {"domain": "example.com"}.
func (b *Builder) ScriptSrc(src string, data map[string]string) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(`<script defer`)
	for _, k := range keys {
		sb.WriteString(` data-` + esc(k) + `="` + esc(data[k]) + `"`)
	}
	sb.WriteString(` src="` + esc(src) + `"></script>`)
	b.Script(sb.String())
}

// ------------------------------------------------------------------
// Raw tags with deduplication
// ------------------------------------------------------------------

func (b *Builder) Meta(tag string)   { b.add("meta:"+tag, &b.metas, tag) }
func (b *Builder) Link(tag string)   { b.add("link:"+tag, &b.links, tag) }
func (b *Builder) Script(tag string) { b.add("script:"+tag, &b.scripts, tag) }

func (b *Builder) add(key string, tgt *[]string, tag string) {
	if _, dup := b.seen[key]; dup {
		return
	}
	b.seen[key] = struct{}{}
	*tgt = append(*tgt, tag)
}

// ------------------------------------------------------------------
// Rendering helpers called from theme templates
// ------------------------------------------------------------------

// Title returns a fully formed <title> tag or an empty string.
func (b *Builder) Title() template.HTML {
	if b.title == "" {
		return ""
	}
	return template.HTML("<title>" + esc(b.title) + "</title>")
}

func (b *Builder) Metas() template.HTML   { return concat(b.metas) }
func (b *Builder) Links() template.HTML   { return concat(b.links) }
func (b *Builder) Scripts() template.HTML { return concat(b.scripts) }

func concat(sl []string) template.HTML { return template.HTML(strings.Join(sl, "\n")) }

func esc(s string) string { return template.HTMLEscapeString(s) }
