package scene

import (
	"errors"
	"fmt"
	"image"
	"log"
	"slices"
)

var (
	// ErrNoSprites is returned by Add when the sprite directory is empty.
	ErrNoSprites = errors.New("scene: no sprites available")
	// ErrNoPath is returned by Save for a scene that was never given a file.
	ErrNoPath = errors.New("scene: no file path")
)

// Library resolves sprite names to bitmaps.
type Library interface {
	Dir() string
	List() ([]string, error)
	Load(name string, scale int) (image.Image, error)
}

// Scene is an ordered list of sprites on a canvas. Index 0 is drawn first
// (back-most), the last index is drawn on top. Methods taking an index
// treat out-of-range values as no-ops.
type Scene struct {
	lib  Library
	doc  Document
	path string

	// sprite names already reported as unresolvable
	missing map[string]bool
	badBG   string
}

// New returns an empty, unsaved scene with default settings.
func New(lib Library) *Scene {
	return &Scene{lib: lib, doc: NewDocument(), missing: map[string]bool{}}
}

func (s *Scene) SpritesDir() string { return s.lib.Dir() }

// Path is the file the scene saves to, empty for a new scene.
func (s *Scene) Path() string { return s.path }

func (s *Scene) Resolution() image.Point { return s.doc.Resolution }

// SetResolution resizes the canvas. Object positions are absolute and are
// left untouched.
func (s *Scene) SetResolution(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.doc.Resolution = image.Pt(w, h)
}

func (s *Scene) Scale() int { return s.doc.Scale }

// SetScale sets the sprite magnification, clamped to at least 1.
func (s *Scene) SetScale(n int) {
	s.doc.Scale = max(n, 1)
}

func (s *Scene) Background() string { return s.doc.Background }

func (s *Scene) SetBackground(name string) {
	s.doc.Background = name
}

func (s *Scene) Len() int { return len(s.doc.Objects) }

// Objects returns a copy of the object list in z-order.
func (s *Scene) Objects() []Object {
	return slices.Clone(s.doc.Objects)
}

func (s *Scene) Object(i int) (Object, bool) {
	if !s.valid(i) {
		return Object{}, false
	}
	return s.doc.Objects[i], true
}

// Document returns a copy of the persisted state.
func (s *Scene) Document() Document {
	doc := s.doc
	doc.Objects = slices.Clone(s.doc.Objects)
	return doc
}

func (s *Scene) valid(i int) bool {
	return i >= 0 && i < len(s.doc.Objects)
}

// SpriteNames lists every sprite available to the scene.
func (s *Scene) SpriteNames() ([]string, error) {
	return s.lib.List()
}

// Image returns the bitmap for a sprite name at the scene's scale.
func (s *Scene) Image(name string) (image.Image, error) {
	return s.lib.Load(name, s.doc.Scale)
}

// resolve is Image for drawing and hit testing: failures are logged once
// per sprite name and the object is skipped.
func (s *Scene) resolve(name string) (image.Image, bool) {
	img, err := s.Image(name)
	if err != nil {
		if !s.missing[name] {
			log.Printf("scene: sprite %s unavailable: %v", name, err)
			s.missing[name] = true
		}
		return nil, false
	}
	delete(s.missing, name)
	return img, true
}

// DistanceTo returns p relative to the origin of object i.
func (s *Scene) DistanceTo(i int, p image.Point) (image.Point, bool) {
	if !s.valid(i) {
		return image.Point{}, false
	}
	return p.Sub(s.doc.Objects[i].Position), true
}

func (s *Scene) Move(i int, p image.Point) bool {
	if !s.valid(i) {
		return false
	}
	s.doc.Objects[i].Position = p
	return true
}

// Delete removes object i; every later index shifts down by one.
func (s *Scene) Delete(i int) bool {
	if !s.valid(i) {
		return false
	}
	s.doc.Objects = slices.Delete(s.doc.Objects, i, i+1)
	return true
}

// Copy duplicates object i directly above it and returns the copy's index.
func (s *Scene) Copy(i int) (int, bool) {
	if !s.valid(i) {
		return -1, false
	}
	s.doc.Objects = slices.Insert(s.doc.Objects, i+1, s.doc.Objects[i])
	return i + 1, true
}

// BringToFront moves object i to the top of the z-order.
func (s *Scene) BringToFront(i int) (int, bool) {
	if !s.valid(i) {
		return -1, false
	}
	obj := s.doc.Objects[i]
	s.doc.Objects = append(slices.Delete(s.doc.Objects, i, i+1), obj)
	return len(s.doc.Objects) - 1, true
}

// SendToBack moves object i to the bottom of the z-order.
func (s *Scene) SendToBack(i int) (int, bool) {
	if !s.valid(i) {
		return -1, false
	}
	obj := s.doc.Objects[i]
	s.doc.Objects = slices.Insert(slices.Delete(s.doc.Objects, i, i+1), 0, obj)
	return 0, true
}

// Add places the first listed sprite at p on top of the z-order.
func (s *Scene) Add(p image.Point) (int, error) {
	names, err := s.SpriteNames()
	if err != nil {
		return -1, fmt.Errorf("scene: add object: %w", err)
	}
	if len(names) == 0 {
		return -1, fmt.Errorf("scene: add object in %s: %w", s.lib.Dir(), ErrNoSprites)
	}
	s.doc.Objects = append(s.doc.Objects, Object{Sprite: names[0], Position: p})
	return len(s.doc.Objects) - 1, nil
}

// NextSprite switches object i to the sprite listed after its current one.
func (s *Scene) NextSprite(i int) error { return s.cycleSprite(i, 1) }

// PrevSprite switches object i to the sprite listed before its current one.
func (s *Scene) PrevSprite(i int) error { return s.cycleSprite(i, -1) }

// cycleSprite steps through SpriteNames with wrap-around. A sprite missing
// from the listing counts as the first entry.
func (s *Scene) cycleSprite(i, step int) error {
	if !s.valid(i) {
		return nil
	}
	names, err := s.SpriteNames()
	if err != nil {
		return fmt.Errorf("scene: cycle sprite: %w", err)
	}
	n := len(names)
	if n == 0 {
		return nil
	}
	cur := max(slices.Index(names, s.doc.Objects[i].Sprite), 0)
	s.doc.Objects[i].Sprite = names[((cur+step)%n+n)%n]
	return nil
}
