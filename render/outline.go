package render

import (
	"image"
	"image/color"
)

// Outline returns an image thickness pixels larger than src on every side
// holding only the pixels that border src's opaque area. Draw it at the
// source position minus (thickness, thickness).
func Outline(src image.Image, thickness int, clr color.Color) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w+2*thickness, h+2*thickness))

	opaque := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		_, _, _, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
		return a != 0
	}

	for oy := 0; oy < out.Rect.Dy(); oy++ {
		for ox := 0; ox < out.Rect.Dx(); ox++ {
			x, y := ox-thickness, oy-thickness
			if opaque(x, y) {
				continue
			}
			found := false
			for yy := y - thickness; yy <= y+thickness && !found; yy++ {
				for xx := x - thickness; xx <= x+thickness; xx++ {
					if opaque(xx, yy) {
						found = true
						break
					}
				}
			}
			if found {
				out.Set(ox, oy, clr)
			}
		}
	}
	return out
}

// Outlines caches one outline per source bitmap.
type Outlines struct {
	thickness int
	clr       color.Color
	cache     map[image.Image]*image.NRGBA
}

func NewOutlines(thickness int, clr color.Color) *Outlines {
	return &Outlines{thickness: max(thickness, 1), clr: clr, cache: map[image.Image]*image.NRGBA{}}
}

// Get returns the outline of src and the offset to draw it at relative to
// src's position.
func (o *Outlines) Get(src image.Image) (image.Image, image.Point) {
	out, ok := o.cache[src]
	if !ok {
		// a changed sprite is a new bitmap; keep only the latest
		clear(o.cache)
		out = Outline(src, o.thickness, o.clr)
		o.cache[src] = out
	}
	return out, image.Pt(-o.thickness, -o.thickness)
}
