package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/blocklevel/config"
	"github.com/milk9111/blocklevel/levels"
)

func main() {
	debug := flag.Bool("debug", false, "draw collision strips and contact state")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "intro.png", "level name in levels/ (embedded unless present on disk)")
	levelFile := flag.String("file", "", "level file path; overrides -level")
	configPath := flag.String("config", "", "build config YAML laid over the defaults")
	watch := flag.Bool("watch", false, "reload the level when files in levels/ change")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("blocklevel")

	src := levelSource{name: *levelName, path: *levelFile}
	game, err := NewGame(cfg, src, *debug)
	if err != nil {
		log.Fatal(err)
	}

	if *watch {
		dir := levels.Dir
		if src.path != "" {
			dir = src.dir()
		}
		w, err := levels.NewWatcher(dir)
		if err != nil {
			log.Printf("watch %s: %v", dir, err)
		} else {
			defer w.Close()
			game.watcher = w
		}
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
