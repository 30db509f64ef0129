package previewer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
)

// Source yields the animation frames at a zoom level, in display order.
type Source interface {
	Frames(zoom int) ([]image.Image, error)
}

type Options struct {
	Speed int
	Zoom  int
}

// Empty is the fill used when there is nothing to show.
var Empty = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// Previewer cycles through the frames of a Source. Each frame is shown for
// speed+1 ticks.
type Previewer struct {
	src     Source
	speed   int
	zoom    int
	counter int
	frames  []image.Image
	lastErr string
}

func New(src Source, opts Options) *Previewer {
	return &Previewer{
		src:   src,
		speed: max(opts.Speed, 0),
		zoom:  max(opts.Zoom, 1),
	}
}

func (p *Previewer) Speed() int { return p.speed }
func (p *Previewer) Zoom() int  { return p.zoom }
func (p *Previewer) Len() int   { return len(p.frames) }

// Faster shortens the time each frame is shown, down to one tick.
func (p *Previewer) Faster() { p.speed = max(p.speed-1, 0) }

func (p *Previewer) Slower() { p.speed++ }

func (p *Previewer) ZoomIn() { p.zoom++ }

func (p *Previewer) ZoomOut() { p.zoom = max(p.zoom-1, 1) }

// Tick reloads the frames and advances the counter. A failed reload leaves
// no frames, so a vanished directory shows the empty fill.
func (p *Previewer) Tick() {
	frames, err := p.src.Frames(p.zoom)
	if err != nil {
		if msg := err.Error(); msg != p.lastErr {
			log.Printf("previewer: %v", err)
			p.lastErr = msg
		}
		p.frames = nil
	} else {
		p.lastErr = ""
		p.frames = frames
	}
	p.counter++
}

// Index is the position of the current frame, or -1 with no frames.
func (p *Previewer) Index() int {
	if len(p.frames) == 0 {
		return -1
	}
	return (p.counter / (p.speed + 1)) % len(p.frames)
}

func (p *Previewer) Current() (image.Image, bool) {
	i := p.Index()
	if i < 0 {
		return nil, false
	}
	return p.frames[i], true
}

// Render draws the current frame at the origin over black, or fills dst
// with grey when there are no frames.
func (p *Previewer) Render(dst draw.Image) {
	frame, ok := p.Current()
	if !ok {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(Empty), image.Point{}, draw.Src)
		return
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	b := frame.Bounds()
	draw.Draw(dst, image.Rectangle{Max: b.Size()}.Add(dst.Bounds().Min), frame, b.Min, draw.Over)
}

// Status is the status bar text for dir.
func (p *Previewer) Status(dir string) string {
	frame := "-"
	if i := p.Index(); i >= 0 {
		frame = fmt.Sprintf("%d/%d", i+1, len(p.frames))
	}
	return fmt.Sprintf("Dir: %s | Speed: %d | Zoom: %dx | Frame: %s", dir, p.speed, p.zoom, frame)
}
