package sprites

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a sprite name does not match any file.
var ErrNotFound = errors.New("sprites: not found")

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// IsImage reports whether name has a decodable image extension (case-insensitive).
func IsImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// Library resolves sprite names under a root directory and caches the
// decoded, scaled bitmaps. Sprite names are slash-separated paths relative
// to the root.
//
// A Library is not safe for concurrent use; it belongs to the update loop.
type Library struct {
	dir   string
	cache *Registry
}

// NewLibrary creates a Library rooted at dir ("." when empty).
func NewLibrary(dir string) *Library {
	if dir == "" {
		dir = "."
	}
	return &Library{dir: filepath.Clean(dir), cache: NewRegistry()}
}

func (l *Library) Dir() string { return l.dir }

// List walks the root recursively and returns every image file in
// traversal order.
func (l *Library) List() ([]string, error) {
	var names []string
	err := filepath.WalkDir(l.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsImage(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(l.dir, p)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sprites: list %s: %w", l.dir, err)
	}
	return names, nil
}

// Find returns the file path for name. The exact relative path wins;
// otherwise the first file in traversal order with the same base name.
func (l *Library) Find(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("sprites: find %q: %w", name, ErrNotFound)
	}
	local := filepath.FromSlash(name)
	if filepath.IsLocal(local) {
		direct := filepath.Join(l.dir, local)
		if info, err := os.Stat(direct); err == nil && !info.IsDir() {
			return direct, nil
		}
	}

	base := path.Base(filepath.ToSlash(name))
	var found string
	_ = filepath.WalkDir(l.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable subtrees are skipped
			return nil
		}
		if !d.IsDir() && d.Name() == base {
			found = p
			return fs.SkipAll
		}
		return nil
	})
	if found == "" {
		return "", fmt.Errorf("sprites: find %s: %w", name, ErrNotFound)
	}
	return found, nil
}

// Load resolves name and returns its bitmap magnified by scale.
func (l *Library) Load(name string, scale int) (image.Image, error) {
	p, err := l.Find(name)
	if err != nil {
		return nil, err
	}
	return l.cache.Load(p, scale)
}

// Invalidate drops cached bitmaps for a file path, typically one reported
// by a Watcher.
func (l *Library) Invalidate(file string) {
	l.cache.Invalidate(file)
}
