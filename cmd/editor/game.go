package main

import (
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/colornames"

	"github.com/milk9111/freegametools/editor"
	"github.com/milk9111/freegametools/render"
	"github.com/milk9111/freegametools/scene"
	"github.com/milk9111/freegametools/sprites"
	"github.com/milk9111/freegametools/ui"
)

const pointerMarker = 3

type Game struct {
	scene    *scene.Scene
	editor   *editor.Editor
	lib      *sprites.Library
	watcher  *sprites.Watcher
	bindings ui.Bindings[editor.Command]
	textures *render.Textures
	outlines *render.Outlines
	status   *ui.StatusBar
	prompt   *ui.Prompt
	barH     int

	debug   bool
	frames  int
	tps     int
	cursor  image.Point
	size    image.Point
	laidOut bool
}

func NewGame(sc *scene.Scene, ed *editor.Editor, lib *sprites.Library, w *sprites.Watcher, bindings ui.Bindings[editor.Command], statusBar bool, tps int, debug bool) *Game {
	g := &Game{
		scene:    sc,
		editor:   ed,
		lib:      lib,
		watcher:  w,
		bindings: bindings,
		textures: render.NewTextures(),
		outlines: render.NewOutlines(1, colornames.Yellow),
		prompt:   ui.NewPrompt(),
		debug:    debug,
		tps:      tps,
	}
	if statusBar {
		g.status = ui.NewStatusBar()
		g.barH = ui.StatusBarHeight
	}
	return g
}

func (g *Game) Update() error {
	g.frames++
	if g.tps > 0 && g.frames%g.tps == 0 {
		ebiten.SetWindowTitle(fmt.Sprintf("SceneCreator %s - %.0f FPS", version, ebiten.ActualFPS()))
	}

	if g.watcher != nil {
		g.watcher.Drain(g.lib.Invalidate)
		select {
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("sprite watcher: %v", err)
			}
		default:
		}
	}

	if !g.prompt.Update() {
		g.handleInput()
	}
	g.editor.Tick()

	if g.status != nil {
		g.status.SetText(g.statusText())
		g.status.Update()
	}

	if g.editor.Quitting() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) handleInput() {
	cx, cy := ebiten.CursorPosition()
	cur := image.Pt(cx, cy)
	if cur != g.cursor {
		g.cursor = cur
		g.editor.PointerMoved(cur)
	}

	g.release(cur,
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight))

	g.editor.SetFast(ebiten.IsKeyPressed(ebiten.KeyShift))
	for _, cmd := range g.bindings.JustPressed() {
		if cmd == editor.CmdSave && g.scene.Path() == "" {
			g.prompt.Open("Save as:", "scene.json", g.editor.SaveAs)
			continue
		}
		g.editor.Execute(cmd)
	}
}

// release forwards mouse button releases at cur to the editor. Clicks on the
// status bar neither pick up nor delete the objects hidden under it; a held
// object can still be dropped there.
func (g *Game) release(cur image.Point, primary, secondary bool) {
	onBar := cur.Y < g.barH
	if primary {
		if _, held := g.editor.Selected(); held || !onBar {
			g.editor.PrimaryRelease(cur)
		}
	}
	if secondary && !onBar {
		g.editor.SecondaryRelease(cur)
	}
}

func (g *Game) statusText() string {
	path := g.scene.Path()
	if path == "" {
		path = "(unsaved)"
	}
	sel := "none"
	if i, ok := g.editor.Selected(); ok {
		sel = fmt.Sprintf("%d", i)
	}
	text := fmt.Sprintf("%s | Objects: %d | Selected: %s | Scale: %dx", path, g.scene.Len(), sel, g.scene.Scale())
	if msg := g.editor.Status(); msg != "" {
		text += " | " + msg
	}
	return text
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.scene.BackgroundColor())
	for _, d := range g.scene.Drawables() {
		g.textures.Draw(screen, d.Image, d.Position)
	}

	if i, ok := g.editor.Selected(); ok {
		g.drawSelection(screen, i)
	}
	if p := g.editor.Pointer(); p != g.cursor {
		r := image.Rect(p.X-pointerMarker, p.Y-pointerMarker, p.X+pointerMarker+1, p.Y+pointerMarker+1)
		render.DrawRectOutline(screen, r, colornames.Red)
	}

	if g.status != nil {
		g.status.Draw(screen)
	}
	g.prompt.Draw(screen)

	if g.debug {
		y := 0
		if g.status != nil {
			y = ui.StatusBarHeight
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.1f  FPS: %.1f  Textures: %d", ebiten.ActualTPS(), ebiten.ActualFPS(), g.textures.Len()), 4, y+4)
	}
	g.textures.Sweep()
}

// drawSelection outlines the opaque pixels of object i.
func (g *Game) drawSelection(screen *ebiten.Image, i int) {
	obj, ok := g.scene.Object(i)
	if !ok {
		return
	}
	img, err := g.scene.Image(obj.Sprite)
	if err != nil {
		return
	}
	outline, off := g.outlines.Get(img)
	g.textures.Draw(screen, outline, obj.Position.Add(off))
	if g.debug {
		if r, ok := g.scene.Bounds(i); ok {
			render.DrawRectOutline(screen, r, colornames.Gray)
		}
	}
}

// Layout keeps one screen pixel per scene pixel. Window resizes after the
// first layout resize the scene canvas.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := image.Pt(outsideWidth, outsideHeight)
	if !g.laidOut {
		g.laidOut = true
		g.size = size
	} else if size != g.size {
		g.size = size
		g.editor.Resize(size.X, size.Y)
	}
	return outsideWidth, outsideHeight
}
