package sprites

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

type cacheKey struct {
	path  string
	scale int
}

type cacheEntry struct {
	img  image.Image
	mod  time.Time
	size int64
}

// Registry caches decoded bitmaps by file path and scale. An entry is reused
// while the file's modification time and size are unchanged.
type Registry struct {
	entries map[cacheKey]cacheEntry
}

func NewRegistry() *Registry {
	return &Registry{entries: map[cacheKey]cacheEntry{}}
}

// Load returns the bitmap at path magnified by scale, decoding the file
// only when it changed since the last call.
func (r *Registry) Load(path string, scale int) (image.Image, error) {
	if scale < 1 {
		scale = 1
	}
	path = filepath.Clean(path)
	key := cacheKey{path: path, scale: scale}

	info, err := os.Stat(path)
	if err != nil {
		delete(r.entries, key)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("sprites: load %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("sprites: load %s: %w", path, err)
	}
	if e, ok := r.entries[key]; ok && e.mod.Equal(info.ModTime()) && e.size == info.Size() {
		return e.img, nil
	}

	img, err := Decode(path)
	if err != nil {
		delete(r.entries, key)
		return nil, err
	}
	img = Scale(img, scale)
	r.entries[key] = cacheEntry{img: img, mod: info.ModTime(), size: info.Size()}
	return img, nil
}

// LoadAll is Load for many files. Changed files are decoded concurrently.
// The result holds one image or error per path, in order.
func (r *Registry) LoadAll(paths []string, scale int) ([]image.Image, []error) {
	scale = max(scale, 1)
	imgs := make([]image.Image, len(paths))
	errs := make([]error, len(paths))
	infos := make([]fs.FileInfo, len(paths))

	var stale []int
	for i, p := range paths {
		p = filepath.Clean(p)
		key := cacheKey{path: p, scale: scale}
		info, err := os.Stat(p)
		if err != nil {
			delete(r.entries, key)
			if errors.Is(err, fs.ErrNotExist) {
				err = ErrNotFound
			}
			errs[i] = fmt.Errorf("sprites: load %s: %w", p, err)
			continue
		}
		if e, ok := r.entries[key]; ok && e.mod.Equal(info.ModTime()) && e.size == info.Size() {
			imgs[i] = e.img
			continue
		}
		infos[i] = info
		stale = append(stale, i)
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, i := range stale {
		g.Go(func() error {
			img, err := Decode(paths[i])
			if err != nil {
				errs[i] = err
				return nil
			}
			imgs[i] = Scale(img, scale)
			return nil
		})
	}
	_ = g.Wait()

	for _, i := range stale {
		key := cacheKey{path: filepath.Clean(paths[i]), scale: scale}
		if errs[i] != nil {
			delete(r.entries, key)
			continue
		}
		r.entries[key] = cacheEntry{img: imgs[i], mod: infos[i].ModTime(), size: infos[i].Size()}
	}
	return imgs, errs
}

// Invalidate forgets every scale of path.
func (r *Registry) Invalidate(path string) {
	path = filepath.Clean(path)
	for k := range r.entries {
		if k.path == path {
			delete(r.entries, k)
		}
	}
}

// Retain drops entries whose path is not in paths.
func (r *Registry) Retain(paths []string) {
	keep := make(map[string]bool, len(paths))
	for _, p := range paths {
		keep[filepath.Clean(p)] = true
	}
	for k := range r.entries {
		if !keep[k.path] {
			delete(r.entries, k)
		}
	}
}

func (r *Registry) Len() int { return len(r.entries) }

// Decode reads and decodes the image file at path.
func Decode(path string) (image.Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sprites: read %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("sprites: decode %s: %w", path, err)
	}
	return img, nil
}
