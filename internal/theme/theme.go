// Package theme holds the data structures that describe one visual theme.
// A Theme combines:
//
//   - Name       – the theme name (for example, “default”).
//   - Templates  – parsed templates ready for execution.
//   - Assets     – the static files served under /themes/<name>/assets/.
//
// The default theme is embedded in the binary.  An operator can override
// any template or asset by placing files under <theme.dir>/<name>/.
package theme

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
)

//go:embed themes
var embedded embed.FS

// Theme is returned by the Manager once all templates are parsed.
type Theme struct {
	Name      string
	Templates *template.Template
	Assets    fs.FS
}

// AssetPrefix is the URL path the theme's assets are mounted at.
func (t *Theme) AssetPrefix() string { return "/themes/" + t.Name + "/assets/" }

// Asset resolves `{{ asset "css/main.css" }}` to a URL.
func (t *Theme) Asset(p string) string { return t.AssetPrefix() + p }

// Execute runs the named template into w.
func (t *Theme) Execute(w io.Writer, name string, data any) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}
