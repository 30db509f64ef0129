package previewer

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/freegametools/sprites"
)

type fakeSource struct {
	frames []image.Image
	err    error
	zooms  []int
}

func (f *fakeSource) Frames(zoom int) ([]image.Image, error) {
	f.zooms = append(f.zooms, zoom)
	return f.frames, f.err
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func threeFrames() []image.Image {
	return []image.Image{
		solid(2, 2, color.RGBA{R: 1, A: 0xff}),
		solid(2, 2, color.RGBA{R: 2, A: 0xff}),
		solid(2, 2, color.RGBA{R: 3, A: 0xff}),
	}
}

func TestFrameSelection(t *testing.T) {
	cases := []struct {
		speed int
		want  []int
	}{
		{0, []int{1, 2, 0, 1, 2, 0}},
		{1, []int{0, 1, 1, 2, 2, 0}},
		{2, []int{0, 0, 1, 1, 1, 2}},
	}
	for _, c := range cases {
		t.Run(strings.Repeat("s", c.speed+1), func(t *testing.T) {
			p := New(&fakeSource{frames: threeFrames()}, Options{Speed: c.speed, Zoom: 1})
			var got []int
			for range c.want {
				p.Tick()
				got = append(got, p.Index())
			}
			for i := range c.want {
				if got[i] != c.want[i] {
					t.Fatalf("indices = %v, want %v", got, c.want)
				}
			}
		})
	}
}

func TestSpeedAndZoomFloors(t *testing.T) {
	p := New(&fakeSource{}, Options{Speed: 1, Zoom: 1})
	p.Faster()
	p.Faster()
	if p.Speed() != 0 {
		t.Fatalf("Speed = %d, want 0", p.Speed())
	}
	p.Slower()
	if p.Speed() != 1 {
		t.Fatalf("Speed = %d, want 1", p.Speed())
	}
	p.ZoomOut()
	if p.Zoom() != 1 {
		t.Fatalf("Zoom = %d, want 1", p.Zoom())
	}
	p.ZoomIn()
	p.ZoomIn()
	if p.Zoom() != 3 {
		t.Fatalf("Zoom = %d, want 3", p.Zoom())
	}

	q := New(&fakeSource{}, Options{Speed: -3, Zoom: 0})
	if q.Speed() != 0 || q.Zoom() != 1 {
		t.Fatalf("New clamps: speed=%d zoom=%d", q.Speed(), q.Zoom())
	}
}

func TestTickRequestsCurrentZoom(t *testing.T) {
	src := &fakeSource{}
	p := New(src, Options{Zoom: 2})
	p.Tick()
	p.ZoomIn()
	p.Tick()
	if len(src.zooms) != 2 || src.zooms[0] != 2 || src.zooms[1] != 3 {
		t.Fatalf("zooms = %v, want [2 3]", src.zooms)
	}
}

func TestRender(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))

	p := New(&fakeSource{}, Options{})
	p.Tick()
	p.Render(dst)
	if got := dst.RGBAAt(3, 3); got != Empty {
		t.Fatalf("empty render = %v, want grey", got)
	}

	p = New(&fakeSource{frames: threeFrames()}, Options{})
	p.Tick()
	p.Render(dst)
	if got := dst.RGBAAt(0, 0); got != (color.RGBA{R: 2, A: 0xff}) {
		t.Fatalf("frame pixel = %v", got)
	}
	if got := dst.RGBAAt(3, 3); got != (color.RGBA{A: 0xff}) {
		t.Fatalf("outside frame = %v, want black", got)
	}
}

func TestFailedReloadDropsFrames(t *testing.T) {
	src := &fakeSource{frames: threeFrames()}
	p := New(src, Options{})
	p.Tick()
	src.frames, src.err = nil, errors.New("directory gone")
	p.Tick()
	if p.Len() != 0 {
		t.Fatalf("Len = %d, want 0", p.Len())
	}

	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	p.Render(dst)
	if got := dst.RGBAAt(1, 1); got != Empty {
		t.Fatalf("pixel = %v, want %v", got, Empty)
	}

	src.frames, src.err = threeFrames(), nil
	p.Tick()
	if p.Len() != 3 {
		t.Fatalf("Len after recovery = %d, want 3", p.Len())
	}
}

func TestMissingDirectoryRendersEmpty(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "a.png"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, solid(4, 4, color.RGBA{G: 0xff, A: 0xff})); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	p := New(sprites.NewDirFrames(dir), Options{Zoom: 2})
	p.Tick()
	if p.Len() != 1 {
		t.Fatalf("Len = %d, want 1", p.Len())
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove: %v", err)
	}
	p.Tick()

	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	p.Render(dst)
	if got := dst.RGBAAt(6, 6); got != Empty {
		t.Fatalf("pixel(6,6) = %v, want %v", got, Empty)
	}
}

func TestStatus(t *testing.T) {
	p := New(&fakeSource{frames: threeFrames()}, Options{Speed: 4, Zoom: 2})
	if got := p.Status("walk"); !strings.Contains(got, "Frame: -") {
		t.Fatalf("Status before first tick = %q", got)
	}
	p.Tick()
	want := "Dir: walk | Speed: 4 | Zoom: 2x | Frame: 1/3"
	if got := p.Status("walk"); got != want {
		t.Fatalf("Status = %q, want %q", got, want)
	}
}

func TestExecute(t *testing.T) {
	p := New(&fakeSource{}, Options{Speed: 4, Zoom: 1})
	for _, name := range []string{"slower", "zoom_in", "faster", "faster"} {
		c, err := ParseCommand(name)
		if err != nil {
			t.Fatalf("ParseCommand(%q): %v", name, err)
		}
		if p.Execute(c) {
			t.Fatalf("%s asked to quit", name)
		}
	}
	if p.Speed() != 3 || p.Zoom() != 2 {
		t.Fatalf("speed=%d zoom=%d, want 3 2", p.Speed(), p.Zoom())
	}
	if !p.Execute(CmdQuit) {
		t.Fatal("quit did not report quit")
	}
	if _, err := ParseCommand("rewind"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("ParseCommand(rewind) err = %v", err)
	}
}
