package scene

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/milk9111/freegametools/sprites"
)

var (
	red  = color.NRGBA{R: 0xff, A: 0xff}
	blue = color.NRGBA{B: 0xff, A: 0xff}
)

// writeSprite writes a w x h sprite of colour c whose top-left clear x clear
// pixels are fully transparent.
func writeSprite(t *testing.T, dir, name string, w, h, clear int, c color.Color) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < clear && y < clear {
				continue
			}
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

// newTestScene returns a scene over a directory holding opaque 10x10
// sprites a.png (red) and b.png (blue).
func newTestScene(t *testing.T) (*Scene, string) {
	t.Helper()
	dir := t.TempDir()
	writeSprite(t, dir, "a.png", 10, 10, 0, red)
	writeSprite(t, dir, "b.png", 10, 10, 0, blue)
	return New(sprites.NewLibrary(dir)), dir
}

func place(t *testing.T, s *Scene, objs ...Object) {
	t.Helper()
	for _, o := range objs {
		i, err := s.Add(o.Position)
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if o.Sprite != "a.png" {
			names, _ := s.SpriteNames()
			for k := 0; k < len(names) && s.doc.Objects[i].Sprite != o.Sprite; k++ {
				if err := s.NextSprite(i); err != nil {
					t.Fatalf("NextSprite: %v", err)
				}
			}
		}
	}
}

func TestNewSceneDefaults(t *testing.T) {
	s, _ := newTestScene(t)
	if got := s.Resolution(); got != image.Pt(800, 600) {
		t.Errorf("Resolution = %v, want 800x600", got)
	}
	if s.Scale() != 1 {
		t.Errorf("Scale = %d, want 1", s.Scale())
	}
	if s.Background() != "black" {
		t.Errorf("Background = %q, want black", s.Background())
	}
	if s.Len() != 0 || s.Path() != "" {
		t.Errorf("new scene should be empty and unsaved, got len=%d path=%q", s.Len(), s.Path())
	}
}

func TestRenderDrawsBackToFront(t *testing.T) {
	s, _ := newTestScene(t)
	s.SetResolution(20, 20)
	place(t, s,
		Object{Sprite: "a.png", Position: image.Pt(0, 0)},
		Object{Sprite: "b.png", Position: image.Pt(5, 5)},
	)

	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	s.Render(dst)

	cases := []struct {
		name string
		at   image.Point
		want color.RGBA
	}{
		{"back_only", image.Pt(2, 2), color.RGBA{R: 0xff, A: 0xff}},
		{"overlap_front_wins", image.Pt(7, 7), color.RGBA{B: 0xff, A: 0xff}},
		{"front_only", image.Pt(14, 14), color.RGBA{B: 0xff, A: 0xff}},
		{"background", image.Pt(18, 1), color.RGBA{A: 0xff}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := dst.RGBAAt(c.at.X, c.at.Y); got != c.want {
				t.Fatalf("pixel %v = %v, want %v", c.at, got, c.want)
			}
		})
	}

	if _, ok := s.BringToFront(0); !ok {
		t.Fatal("BringToFront failed")
	}
	s.Render(dst)
	if got := dst.RGBAAt(7, 7); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Fatalf("after BringToFront pixel (7,7) = %v, want red", got)
	}
}

func TestObjectAtIgnoresTransparentPixels(t *testing.T) {
	dir := t.TempDir()
	writeSprite(t, dir, "corner.png", 10, 10, 4, red)
	writeSprite(t, dir, "floor.png", 10, 10, 0, blue)
	s := New(sprites.NewLibrary(dir))
	s.doc.Objects = []Object{{Sprite: "corner.png", Position: image.Pt(0, 0)}}

	if i, ok := s.ObjectAt(image.Pt(1, 1)); ok {
		t.Fatalf("ObjectAt(transparent corner) = %d, want none", i)
	}
	if i, ok := s.ObjectAt(image.Pt(6, 6)); !ok || i != 0 {
		t.Fatalf("ObjectAt(opaque) = %d,%v, want 0,true", i, ok)
	}
	if i, ok := s.ObjectAt(image.Pt(10, 10)); ok {
		t.Fatalf("ObjectAt(outside) = %d, want none", i)
	}

	// an opaque object behind the transparent corner is hit instead
	s.doc.Objects = []Object{
		{Sprite: "floor.png", Position: image.Pt(0, 0)},
		{Sprite: "corner.png", Position: image.Pt(0, 0)},
	}
	if i, ok := s.ObjectAt(image.Pt(1, 1)); !ok || i != 0 {
		t.Fatalf("ObjectAt through transparency = %d,%v, want 0,true", i, ok)
	}
	if i, ok := s.ObjectAt(image.Pt(6, 6)); !ok || i != 1 {
		t.Fatalf("ObjectAt overlap = %d,%v, want 1,true", i, ok)
	}
}

func TestAddPicksFirstSpriteAndFrontMostWins(t *testing.T) {
	s, _ := newTestScene(t)
	s.doc.Objects = []Object{{Sprite: "a.png", Position: image.Pt(0, 0)}}

	i, err := s.Add(image.Pt(5, 5))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if i != 1 {
		t.Fatalf("Add index = %d, want 1", i)
	}
	if got, _ := s.Object(1); got != (Object{Sprite: "a.png", Position: image.Pt(5, 5)}) {
		t.Fatalf("added object = %+v", got)
	}
	if hit, ok := s.ObjectAt(image.Pt(7, 7)); !ok || hit != 1 {
		t.Fatalf("ObjectAt(7,7) = %d,%v, want 1,true", hit, ok)
	}
}

func TestAddWithoutSprites(t *testing.T) {
	s := New(sprites.NewLibrary(t.TempDir()))
	if _, err := s.Add(image.Pt(0, 0)); !errors.Is(err, ErrNoSprites) {
		t.Fatalf("Add err = %v, want ErrNoSprites", err)
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
}

func TestCopyThenDeleteRestores(t *testing.T) {
	s, _ := newTestScene(t)
	place(t, s,
		Object{Sprite: "a.png", Position: image.Pt(1, 2)},
		Object{Sprite: "b.png", Position: image.Pt(3, 4)},
		Object{Sprite: "a.png", Position: image.Pt(5, 6)},
	)
	before := s.Objects()

	for i := range before {
		n, ok := s.Copy(i)
		if !ok || n != i+1 {
			t.Fatalf("Copy(%d) = %d,%v, want %d,true", i, n, ok, i+1)
		}
		if s.Len() != len(before)+1 {
			t.Fatalf("Len after Copy = %d", s.Len())
		}
		// the copy must not alias the original position
		s.Move(n, image.Pt(99, 99))
		if got, _ := s.Object(i); got != before[i] {
			t.Fatalf("moving the copy changed the original: %+v", got)
		}
		if !s.Delete(n) {
			t.Fatalf("Delete(%d) failed", n)
		}
		if got := s.Objects(); !reflect.DeepEqual(got, before) {
			t.Fatalf("after copy+delete objects = %+v, want %+v", got, before)
		}
	}
}

func TestFrontAndBack(t *testing.T) {
	for start := 0; start < 3; start++ {
		s, _ := newTestScene(t)
		place(t, s,
			Object{Sprite: "a.png", Position: image.Pt(0, 0)},
			Object{Sprite: "a.png", Position: image.Pt(1, 0)},
			Object{Sprite: "a.png", Position: image.Pt(2, 0)},
		)
		obj, _ := s.Object(start)

		front, ok := s.BringToFront(start)
		if !ok || front != 2 {
			t.Fatalf("BringToFront(%d) = %d,%v, want 2,true", start, front, ok)
		}
		back, ok := s.SendToBack(front)
		if !ok || back != 0 {
			t.Fatalf("SendToBack = %d,%v, want 0,true", back, ok)
		}
		if got, _ := s.Object(0); got != obj {
			t.Fatalf("object at 0 = %+v, want %+v", got, obj)
		}
		front, _ = s.BringToFront(back)
		if got, _ := s.Object(s.Len() - 1); front != s.Len()-1 || got != obj {
			t.Fatalf("object at front = %+v (index %d), want %+v", got, front, obj)
		}
	}
}

func TestMoveIsIdempotent(t *testing.T) {
	s, _ := newTestScene(t)
	place(t, s, Object{Sprite: "a.png", Position: image.Pt(0, 0)})
	p := image.Pt(-3, 42)
	s.Move(0, p)
	s.Move(0, p)
	if got, _ := s.Object(0); got.Position != p {
		t.Fatalf("position = %v, want %v", got.Position, p)
	}
	if d, _ := s.DistanceTo(0, image.Pt(0, 50)); d != image.Pt(3, 8) {
		t.Fatalf("DistanceTo = %v, want (3,8)", d)
	}
}

func TestCycleSprite(t *testing.T) {
	s, dir := newTestScene(t)
	writeSprite(t, dir, "sub/c.png", 2, 2, 0, red)
	place(t, s, Object{Sprite: "a.png", Position: image.Pt(0, 0)})

	names, err := s.SpriteNames()
	if err != nil {
		t.Fatalf("SpriteNames: %v", err)
	}
	if want := []string{"a.png", "b.png", "sub/c.png"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("SpriteNames = %v, want %v", names, want)
	}

	var seen []string
	for range names {
		if err := s.NextSprite(0); err != nil {
			t.Fatalf("NextSprite: %v", err)
		}
		o, _ := s.Object(0)
		seen = append(seen, o.Sprite)
	}
	if want := []string{"b.png", "sub/c.png", "a.png"}; !reflect.DeepEqual(seen, want) {
		t.Fatalf("forward cycle = %v, want %v", seen, want)
	}

	if err := s.PrevSprite(0); err != nil {
		t.Fatalf("PrevSprite: %v", err)
	}
	if o, _ := s.Object(0); o.Sprite != "sub/c.png" {
		t.Fatalf("PrevSprite from first = %s, want sub/c.png (wrap)", o.Sprite)
	}

	s.doc.Objects[0].Sprite = "deleted.png"
	if err := s.NextSprite(0); err != nil {
		t.Fatalf("NextSprite: %v", err)
	}
	if o, _ := s.Object(0); o.Sprite != "b.png" {
		t.Fatalf("NextSprite from unlisted = %s, want b.png", o.Sprite)
	}
}

func TestOutOfRangeIsNoOp(t *testing.T) {
	s, _ := newTestScene(t)
	place(t, s, Object{Sprite: "a.png", Position: image.Pt(0, 0)})
	before := s.Objects()

	for _, i := range []int{-1, 1, 7} {
		if s.Move(i, image.Pt(1, 1)) {
			t.Errorf("Move(%d) reported success", i)
		}
		if s.Delete(i) {
			t.Errorf("Delete(%d) reported success", i)
		}
		if _, ok := s.Copy(i); ok {
			t.Errorf("Copy(%d) reported success", i)
		}
		if _, ok := s.BringToFront(i); ok {
			t.Errorf("BringToFront(%d) reported success", i)
		}
		if _, ok := s.SendToBack(i); ok {
			t.Errorf("SendToBack(%d) reported success", i)
		}
		if _, ok := s.Bounds(i); ok {
			t.Errorf("Bounds(%d) reported success", i)
		}
		if _, ok := s.DistanceTo(i, image.Point{}); ok {
			t.Errorf("DistanceTo(%d) reported success", i)
		}
		if err := s.NextSprite(i); err != nil {
			t.Errorf("NextSprite(%d): %v", i, err)
		}
	}
	if got := s.Objects(); !reflect.DeepEqual(got, before) {
		t.Fatalf("objects changed: %+v", got)
	}
}

func TestMissingSpriteIsKeptButSkipped(t *testing.T) {
	s, _ := newTestScene(t)
	s.SetResolution(20, 20)
	s.doc.Objects = []Object{
		{Sprite: "a.png", Position: image.Pt(0, 0)},
		{Sprite: "gone.png", Position: image.Pt(0, 0)},
	}

	if got := len(s.Drawables()); got != 1 {
		t.Fatalf("Drawables = %d, want 1", got)
	}
	if i, ok := s.ObjectAt(image.Pt(1, 1)); !ok || i != 0 {
		t.Fatalf("ObjectAt = %d,%v, want 0,true", i, ok)
	}
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	s.Render(dst)
	if got := dst.RGBAAt(1, 1); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Fatalf("pixel = %v, want red", got)
	}
	if _, ok := s.Bounds(1); ok {
		t.Fatal("Bounds of a missing sprite should fail")
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
}

func TestScaleAffectsBoundsAndHits(t *testing.T) {
	s, _ := newTestScene(t)
	place(t, s, Object{Sprite: "a.png", Position: image.Pt(10, 10)})

	s.SetScale(0)
	if s.Scale() != 1 {
		t.Fatalf("SetScale(0) -> %d, want 1", s.Scale())
	}
	s.SetScale(3)
	r, ok := s.Bounds(0)
	if !ok || r != image.Rect(10, 10, 40, 40) {
		t.Fatalf("Bounds = %v,%v, want (10,10)-(40,40)", r, ok)
	}
	if _, ok := s.ObjectAt(image.Pt(35, 35)); !ok {
		t.Fatal("scaled sprite should be hit at (35,35)")
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"black", color.RGBA{A: 0xff}, false},
		{"White", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, false},
		{"#102030", color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, false},
		{"#12", color.RGBA{}, true},
		{"notacolour", color.RGBA{}, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseColor(c.in)
			if c.wantErr {
				if err == nil {
					t.Fatalf("ParseColor(%q) expected error", c.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", c.in, err)
			}
			if got != c.want {
				t.Fatalf("ParseColor(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}

	s, _ := newTestScene(t)
	s.SetBackground("mauve-ish")
	if got := s.BackgroundColor(); got != color.Black {
		t.Fatalf("unknown background = %v, want black", got)
	}
}
