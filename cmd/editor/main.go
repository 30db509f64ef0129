package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"

	"github.com/milk9111/freegametools/config"
	"github.com/milk9111/freegametools/editor"
	"github.com/milk9111/freegametools/scene"
	"github.com/milk9111/freegametools/sprites"
	"github.com/milk9111/freegametools/ui"
)

var version = "0.1"

func main() {
	configPath := flag.String("config", "", "YAML config file (default "+config.DefaultFile+" when present)")
	debug := flag.Bool("debug", false, "show the TPS/FPS overlay and log file:line")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [spritesDir [sceneFile]]\n", os.Args[0])
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

	spritesDir, scenePath := ".", ""
	if flag.NArg() > 0 {
		spritesDir = flag.Arg(0)
	}
	if flag.NArg() > 1 {
		scenePath = flag.Arg(1)
	}
	log.Printf("Launching with sprite dir %s and scene file %q", spritesDir, scenePath)

	lib := sprites.NewLibrary(spritesDir)
	sc, err := scene.Load(lib, scenePath)
	switch {
	case err != nil:
		log.Printf("%v; starting with an empty scene", err)
		applyDefaults(sc, cfg.Editor)
	case scenePath == "":
		applyDefaults(sc, cfg.Editor)
	default:
		log.Printf("%s scene loaded with %d objects", scenePath, sc.Len())
	}

	bindings, err := ui.ParseBindings(cfg.Editor.Bindings, editor.ParseCommand)
	if err != nil {
		log.Printf("editor bindings: %v", err)
	}

	opts := editor.Options{FastMultiplier: cfg.Editor.NudgeFast}
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		opts.Export = func(b []byte) error {
			clipboard.Write(clipboard.FmtText, b)
			return nil
		}
	}

	watcher, err := sprites.NewTreeWatcher(lib.Dir())
	if err != nil {
		log.Printf("sprite watcher disabled: %v", err)
		watcher = nil
	} else {
		defer watcher.Close()
	}

	game := NewGame(sc, editor.New(sc, opts), lib, watcher, bindings, cfg.Editor.StatusBar, cfg.TickRate, *debug)

	res := sc.Resolution()
	ebiten.SetTPS(cfg.TickRate)
	ebiten.SetWindowSize(res.X, res.Y)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("SceneCreator " + version)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
	log.Println("End of program")
}

func applyDefaults(sc *scene.Scene, cfg config.EditorConfig) {
	sc.SetResolution(cfg.Resolution[0], cfg.Resolution[1])
	sc.SetBackground(cfg.Background)
}
