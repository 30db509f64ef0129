package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Textures maps decoded bitmaps to GPU images. A bitmap is uploaded once;
// call Sweep after each frame to release textures that were not drawn.
type Textures struct {
	images map[image.Image]*texture
}

type texture struct {
	img  *ebiten.Image
	used bool
}

func NewTextures() *Textures {
	return &Textures{images: map[image.Image]*texture{}}
}

// Get returns the texture for src, uploading it on first use.
func (t *Textures) Get(src image.Image) *ebiten.Image {
	if src == nil {
		return nil
	}
	if tex, ok := t.images[src]; ok {
		tex.used = true
		return tex.img
	}
	tex := &texture{img: ebiten.NewImageFromImage(src), used: true}
	t.images[src] = tex
	return tex.img
}

// Sweep deallocates every texture not requested since the last Sweep.
func (t *Textures) Sweep() {
	for src, tex := range t.images {
		if !tex.used {
			tex.img.Deallocate()
			delete(t.images, src)
			continue
		}
		tex.used = false
	}
}

func (t *Textures) Len() int { return len(t.images) }

// Draw blits src at pos with nearest-neighbour filtering.
func (t *Textures) Draw(screen *ebiten.Image, src image.Image, pos image.Point) {
	img := t.Get(src)
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(pos.X), float64(pos.Y))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)
}

// DrawRectOutline strokes r with a 1px line.
func DrawRectOutline(screen *ebiten.Image, r image.Rectangle, clr color.Color) {
	if r.Empty() {
		return
	}
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, clr, false)
}
