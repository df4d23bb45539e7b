package theme

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// Manager discovers and loads themes.
type Manager struct {
	Dir string // optional override root, e.g. "<root>/themes"
}

// Load parses templates for the named theme.
// Template precedence (high → low):
//  1. <Dir>/<name>/templates/*.html (overrides)
//  2. embedded themes/<name>/templates/*.html
//
// Assets come from <Dir>/<name>/assets when that directory exists,
// otherwise from the embedded copy.
func (m *Manager) Load(name string) (*Theme, error) {
	th := &Theme{Name: name}
	tpl := template.New(name).Funcs(FuncMap(th.Asset))

	base, baseErr := fs.Sub(embedded, path.Join("themes", name))
	haveBase := baseErr == nil && exists(base, "templates")
	if haveBase {
		if _, err := tpl.ParseFS(base, "templates/*.html"); err != nil {
			return nil, fmt.Errorf("parse theme %s: %w", name, err)
		}
		th.Assets, _ = fs.Sub(base, "assets")
	}

	var haveOverride bool
	if m.Dir != "" {
		root := filepath.Join(m.Dir, name)
		files, _ := CollectHTML(filepath.Join(root, "templates"))
		if len(files) > 0 {
			if _, err := tpl.ParseFiles(files...); err != nil {
				return nil, fmt.Errorf("parse theme overrides %s: %w", root, err)
			}
			haveOverride = true
		}
		if info, err := os.Stat(filepath.Join(root, "assets")); err == nil && info.IsDir() {
			th.Assets = os.DirFS(filepath.Join(root, "assets"))
		}
	}

	if !haveBase && !haveOverride {
		return nil, fmt.Errorf("theme %s not found", name)
	}
	if tpl.Lookup("layout") == nil {
		return nil, fmt.Errorf("theme %s has no layout template", name)
	}
	if th.Assets == nil {
		th.Assets = emptyFS{}
	}
	th.Templates = tpl
	return th, nil
}

func exists(fsys fs.FS, name string) bool {
	_, err := fs.Stat(fsys, name)
	return err == nil
}

// emptyFS serves nothing; used when a disk-only theme ships no assets.
type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
