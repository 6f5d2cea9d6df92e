package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover reads the adapter-owned files present under root, keyed by
// project-relative path. Missing files simply do not appear.
func Discover(a Adapter, root string) (map[string]string, error) {
	files := make(map[string]string)
	for _, pattern := range a.Globs() {
		matches, err := doublestar.FilepathGlob(filepath.Join(root, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, match := range matches {
			rel, err := filepath.Rel(root, match)
			if err != nil {
				return nil, err
			}
			data, err := os.ReadFile(match)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", match, err)
			}
			files[rel] = string(data)
		}
	}
	return files, nil
}
