package sprites

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
)

// ListDir returns the image files directly inside dir, sorted by name.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("sprites: list %s: %w", dir, err)
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsImage(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// DirFrames is an animation frame source backed by the images of one
// directory. Every call to Frames rescans the directory; files are decoded
// again only when they changed.
type DirFrames struct {
	dir   string
	cache *Registry
}

func NewDirFrames(dir string) *DirFrames {
	return &DirFrames{dir: dir, cache: NewRegistry()}
}

func (d *DirFrames) Dir() string { return d.dir }

// Frames returns the directory's images in filename order, magnified by
// zoom. Files that fail to decode (for example while an editor is still
// writing them) are skipped.
func (d *DirFrames) Frames(zoom int) ([]image.Image, error) {
	paths, err := ListDir(d.dir)
	if err != nil {
		return nil, err
	}
	imgs, errs := d.cache.LoadAll(paths, zoom)
	frames := make([]image.Image, 0, len(paths))
	for i, img := range imgs {
		if errs[i] != nil {
			continue
		}
		frames = append(frames, img)
	}
	d.cache.Retain(paths)
	return frames, nil
}

func (d *DirFrames) Invalidate(path string) {
	d.cache.Invalidate(path)
}
