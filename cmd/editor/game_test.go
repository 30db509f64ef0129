package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/freegametools/editor"
	"github.com/milk9111/freegametools/scene"
	"github.com/milk9111/freegametools/sprites"
	"github.com/milk9111/freegametools/ui"
)

// newTestGame returns a game whose scene holds one opaque 10x10 object at
// the origin, half hidden under the status bar.
func newTestGame(t *testing.T) *Game {
	t.Helper()
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.NRGBA{R: 0xff, A: 0xff})
		}
	}
	f, err := os.Create(filepath.Join(dir, "a.png"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}

	sc := scene.New(sprites.NewLibrary(dir))
	if _, err := sc.Add(image.Pt(0, 5)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return &Game{scene: sc, editor: editor.New(sc, editor.Options{}), barH: ui.StatusBarHeight}
}

func TestReleaseOnStatusBar(t *testing.T) {
	cases := []struct {
		name      string
		barH      int
		primary   bool
		secondary bool
		wantSel   bool
		wantLen   int
	}{
		{"pick_under_bar", ui.StatusBarHeight, true, false, false, 1},
		{"delete_under_bar", ui.StatusBarHeight, false, true, false, 1},
		{"pick_without_bar", 0, true, false, true, 1},
		{"delete_without_bar", 0, false, true, false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := newTestGame(t)
			g.barH = c.barH
			g.release(image.Pt(3, 8), c.primary, c.secondary)
			if _, ok := g.editor.Selected(); ok != c.wantSel {
				t.Fatalf("selected = %v, want %v", ok, c.wantSel)
			}
			if g.scene.Len() != c.wantLen {
				t.Fatalf("Len = %d, want %d", g.scene.Len(), c.wantLen)
			}
		})
	}
}

func TestReleaseDropsOnStatusBar(t *testing.T) {
	g := newTestGame(t)
	g.barH = 0
	g.release(image.Pt(3, 8), true, false)
	if _, ok := g.editor.Selected(); !ok {
		t.Fatal("object not picked up")
	}

	g.barH = ui.StatusBarHeight
	g.release(image.Pt(30, 4), true, false)
	if _, ok := g.editor.Selected(); ok {
		t.Fatal("held object not dropped over the status bar")
	}
}
