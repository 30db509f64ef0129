package scene

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"strings"

	"golang.org/x/image/colornames"
)

// Drawable is one object ready to blit.
type Drawable struct {
	Index    int
	Sprite   string
	Image    image.Image
	Position image.Point
}

// Drawables returns the resolvable objects in draw order (back to front).
func (s *Scene) Drawables() []Drawable {
	out := make([]Drawable, 0, len(s.doc.Objects))
	for i, obj := range s.doc.Objects {
		img, ok := s.resolve(obj.Sprite)
		if !ok {
			continue
		}
		out = append(out, Drawable{Index: i, Sprite: obj.Sprite, Image: img, Position: obj.Position})
	}
	return out
}

// Render fills the canvas with the background and draws every object in
// ascending index order, so later objects cover earlier ones.
func (s *Scene) Render(dst draw.Image) {
	canvas := image.Rectangle{Max: s.doc.Resolution}
	draw.Draw(dst, canvas, image.NewUniform(s.BackgroundColor()), image.Point{}, draw.Src)
	for _, d := range s.Drawables() {
		b := d.Image.Bounds()
		r := image.Rectangle{Min: d.Position, Max: d.Position.Add(b.Size())}
		draw.Draw(dst, r, d.Image, b.Min, draw.Over)
	}
}

// ObjectAt returns the front-most object with an opaque pixel at p.
// Fully transparent pixels inside an object's rectangle do not count.
func (s *Scene) ObjectAt(p image.Point) (int, bool) {
	for i := len(s.doc.Objects) - 1; i >= 0; i-- {
		obj := s.doc.Objects[i]
		img, ok := s.resolve(obj.Sprite)
		if !ok {
			continue
		}
		b := img.Bounds()
		local := p.Sub(obj.Position)
		if !local.In(image.Rectangle{Max: b.Size()}) {
			continue
		}
		if _, _, _, a := img.At(b.Min.X+local.X, b.Min.Y+local.Y).RGBA(); a == 0 {
			continue
		}
		return i, true
	}
	return -1, false
}

// Bounds is the canvas rectangle covered by object i's bitmap.
func (s *Scene) Bounds(i int) (image.Rectangle, bool) {
	if !s.valid(i) {
		return image.Rectangle{}, false
	}
	obj := s.doc.Objects[i]
	img, ok := s.resolve(obj.Sprite)
	if !ok {
		return image.Rectangle{}, false
	}
	return image.Rectangle{Min: obj.Position, Max: obj.Position.Add(img.Bounds().Size())}, true
}

// BackgroundColor parses the background as an SVG colour name or #rrggbb.
// Unknown values fall back to black.
func (s *Scene) BackgroundColor() color.Color {
	c, err := ParseColor(s.doc.Background)
	if err != nil {
		if s.badBG != s.doc.Background {
			log.Printf("scene: background: %v", err)
			s.badBG = s.doc.Background
		}
		return color.Black
	}
	return c
}

// ParseColor accepts SVG colour names ("black", "cornflowerblue") and
// hex colours ("#rrggbb").
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if len(name) == 7 && name[0] == '#' {
		var r, g, b uint8
		if _, err := fmt.Sscanf(name[1:], "%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("unknown colour %q", s)
}
