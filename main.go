package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ballpit/ecs/entity"
)

func main() {
	sceneName := flag.String("scene", "single", "scene name in scenes/ (basename, .yaml optional)")
	solver := flag.String("solver", "native", "physics solver: native or chipmunk")
	broadphase := flag.String("broadphase", "all", "native pair scan: all or grid")
	tps := flag.Int("tps", 0, "override the scene's ticks per second")
	debug := flag.Bool("debug", false, "enable the physics debug overlay")
	trails := flag.Bool("trails", false, "draw ball trails")
	paused := flag.Bool("paused", false, "start paused")
	mute := flag.Bool("mute", false, "disable contact sounds")
	watch := flag.Bool("watch", false, "reload the scene when its file changes on disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(Config{
		Scene:      *sceneName,
		Solver:     *solver,
		Broadphase: *broadphase,
		Watch:      *watch,
		Mute:       *mute,
		Options: entity.SceneOptions{
			Paused:     *paused,
			Debug:      *debug,
			ShowTrails: *trails,
			TPS:        *tps,
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w, h := game.Size()
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("ballpit")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
