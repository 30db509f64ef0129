package main

import (
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/freegametools/previewer"
	"github.com/milk9111/freegametools/render"
	"github.com/milk9111/freegametools/sprites"
	"github.com/milk9111/freegametools/ui"
)

type animatorGame struct {
	preview  *previewer.Previewer
	frames   *sprites.DirFrames
	watcher  *sprites.Watcher
	bindings ui.Bindings[previewer.Command]
	textures *render.Textures
	status   *ui.StatusBar

	width, height int
	debug         bool
	ticks         int
	tps           int
	quit          bool
}

func (g *animatorGame) Update() error {
	g.ticks++
	if g.tps > 0 && g.ticks%g.tps == 0 {
		ebiten.SetWindowTitle(fmt.Sprintf("Animator %s - %.0f FPS", version, ebiten.ActualFPS()))
	}

	if g.watcher != nil {
		g.watcher.Drain(g.frames.Invalidate)
		select {
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("frame watcher: %v", err)
			}
		default:
		}
	}

	for _, cmd := range g.bindings.JustPressed() {
		if g.preview.Execute(cmd) {
			g.quit = true
		}
	}
	g.preview.Tick()

	if g.status != nil {
		g.status.SetText(fmt.Sprintf("%s | FPS: %.0f", g.preview.Status(g.frames.Dir()), ebiten.ActualFPS()))
		g.status.Update()
	}

	if g.quit {
		return ebiten.Termination
	}
	return nil
}

func (g *animatorGame) Draw(screen *ebiten.Image) {
	top := 0
	if g.status != nil {
		top = ui.StatusBarHeight
	}

	frame, ok := g.preview.Current()
	if !ok {
		screen.Fill(previewer.Empty)
	} else {
		screen.Fill(image.Black)
		g.textures.Draw(screen, frame, image.Pt(0, top))
	}

	if g.status != nil {
		g.status.Draw(screen)
	}
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.1f  Frames: %d", ebiten.ActualTPS(), g.preview.Len()), 4, top+4)
	}
	g.textures.Sweep()
}

func (g *animatorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
