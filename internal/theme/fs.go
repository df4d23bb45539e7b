// fs.go holds a tiny helper for walking an override directory, since
// template.ParseGlob has no “**” support.  CollectHTML returns every .html
// file under the supplied directory.
package theme

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// CollectHTML walks rootDir recursively and returns a list of *.html paths.
// A missing directory yields an error the caller may ignore.
func CollectHTML(rootDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
