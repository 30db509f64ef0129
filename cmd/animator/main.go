package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/freegametools/config"
	"github.com/milk9111/freegametools/previewer"
	"github.com/milk9111/freegametools/render"
	"github.com/milk9111/freegametools/sprites"
	"github.com/milk9111/freegametools/ui"
)

var version = "0.1"

func main() {
	configPath := flag.String("config", "", "YAML config file (default "+config.DefaultFile+" when present)")
	debug := flag.Bool("debug", false, "show the TPS overlay and log file:line")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [spritesDir]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("%v; using defaults", err)
	}

	dir := flag.Arg(0)
	if dir == "" {
		dir, err = ui.PromptLine(os.Stdin, os.Stdout, "Directory: ")
		if err != nil {
			log.Fatal(err)
		}
	}
	if dir == "" {
		dir = "."
	}
	log.Printf("Animating images in %s", dir)

	bindings, err := ui.ParseBindings(cfg.Animator.Bindings, previewer.ParseCommand)
	if err != nil {
		log.Printf("animator bindings: %v", err)
	}

	frames := sprites.NewDirFrames(dir)
	watcher, err := sprites.NewWatcher(dir)
	if err != nil {
		log.Printf("frame watcher disabled: %v", err)
		watcher = nil
	} else {
		defer watcher.Close()
	}

	g := &animatorGame{
		preview:  previewer.New(frames, previewer.Options{Speed: cfg.Animator.Speed, Zoom: cfg.Animator.Zoom}),
		frames:   frames,
		watcher:  watcher,
		bindings: bindings,
		textures: render.NewTextures(),
		width:    cfg.Animator.Window[0],
		height:   cfg.Animator.Window[1],
		debug:    *debug,
		tps:      cfg.TickRate,
	}
	if cfg.Animator.StatusBar {
		g.status = ui.NewStatusBar()
	}

	ebiten.SetTPS(cfg.TickRate)
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle("Animator " + version)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	log.Println("End of program")
}
