package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ballpit/ecs"
	"github.com/milk9111/ballpit/ecs/component"
	"github.com/milk9111/ballpit/ecs/entity"
	"github.com/milk9111/ballpit/ecs/system"
	"github.com/milk9111/ballpit/physics"
	"github.com/milk9111/ballpit/scenes"
	"golang.design/x/clipboard"
)

type Config struct {
	Scene      string
	Solver     string
	Broadphase string
	Watch      bool
	Mute       bool
	Options    entity.SceneOptions
}

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	input     *system.InputSystem
	scene     *system.SceneSystem
	watcher   *scenes.Watcher

	menu     *ebitenui.UI
	menuOpen bool
	quit     bool
	tps      int
}

func NewGame(cfg Config) (*Game, error) {
	physicsSystem, err := system.NewPhysicsSystem(cfg.Solver, cfg.Broadphase)
	if err != nil {
		return nil, err
	}

	g := &Game{world: ecs.NewWorld(), input: system.NewInputSystem()}
	if cfg.Watch {
		g.watcher = newSceneWatcher()
	}

	if _, err := entity.BuildInput(g.world); err != nil {
		return nil, err
	}
	if !cfg.Mute {
		if _, err := entity.BuildAudio(g.world); err != nil {
			log.Printf("audio disabled: %v", err)
		}
	}
	g.scene = system.NewSceneSystem(cfg.Scene, cfg.Options, g.watcher, newSnapshotExporter())
	if err := g.scene.Load(g.world); err != nil {
		g.Close()
		return nil, fmt.Errorf("load scene %q: %w", cfg.Scene, err)
	}

	g.scheduler = ecs.NewScheduler(
		g.input,
		system.NewControlSystem(scenes.Names()),
		g.scene,
		physicsSystem,
		system.NewContactSystem(),
		system.NewContactFlashSystem(),
		system.NewTrailSystem(),
		system.NewTTLSystem(),
		system.NewAudioSystem(),
		system.NewRenderSystem(),
		system.NewPhysicsDebugSystem(physicsSystem),
		system.NewHUDSystem(),
	)
	g.menu = NewPauseUI(g)
	g.syncTPS()
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if g.menuOpen {
		g.input.Update(g.world)
		g.menu.Update()
		if _, input, ok := ecs.First(g.world, component.InputComponent); ok && input.Menu {
			g.closeMenu()
		}
		return nil
	}

	g.scheduler.Update(g.world)
	if _, input, ok := ecs.First(g.world, component.InputComponent); ok && input.Menu {
		g.menuOpen = true
	}
	g.syncTPS()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scheduler.Draw(g.world, screen)
	if g.menuOpen {
		g.menu.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	w, h := g.arena()
	return w, h
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Size returns the arena size in pixels.
func (g *Game) Size() (int, int) {
	w, h := g.arena()
	return int(w), int(h)
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) arena() (float64, float64) {
	if _, sim, ok := ecs.First(g.world, component.SimulationComponent); ok {
		return sim.Params.Width, sim.Params.Height
	}
	return physics.DefaultWidth, physics.DefaultHeight
}

func (g *Game) syncTPS() {
	_, sim, ok := ecs.First(g.world, component.SimulationComponent)
	if !ok || sim.TPS == g.tps {
		return
	}
	g.tps = sim.TPS
	ebiten.SetTPS(sim.TPS)
}

func (g *Game) closeMenu() {
	g.menuOpen = false
}

func (g *Game) restart() {
	e := ecs.CreateEntity(g.world)
	_ = ecs.Add(g.world, e, component.ReloadRequestComponent, &component.ReloadRequest{})
	g.closeMenu()
}

// nextScene requests the scene after the current one in the embedded list.
func (g *Game) nextScene() {
	names := scenes.Names()
	if len(names) == 0 {
		return
	}
	next := names[0]
	for i, name := range names {
		if name == scenes.SceneName(g.scene.SceneName()) {
			next = names[(i+1)%len(names)]
			break
		}
	}
	e := ecs.CreateEntity(g.world)
	_ = ecs.Add(g.world, e, component.ReloadRequestComponent, &component.ReloadRequest{Scene: next})
	g.closeMenu()
}

func newSceneWatcher() *scenes.Watcher {
	dirs := []string{}
	for _, dir := range []string{scenes.DiskDir, filepath.Join(scenes.DiskDir, "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		log.Printf("watch: no %s directory, hot reload disabled", scenes.DiskDir)
		return nil
	}
	w, err := scenes.NewWatcher(dirs...)
	if err != nil {
		log.Printf("watch: %v", err)
		return nil
	}
	return w
}

// newSnapshotExporter copies snapshots to the clipboard, or writes them next
// to the scenes when no clipboard is available.
func newSnapshotExporter() system.ExportFunc {
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable, snapshots go to %s: %v", scenes.DiskDir, err)
		return writeSnapshotFile
	}
	return func(name string, data []byte) error {
		clipboard.Write(clipboard.FmtText, data)
		return nil
	}
}

func writeSnapshotFile(name string, data []byte) error {
	if name == "" {
		return errors.New("snapshot: empty name")
	}
	if err := os.MkdirAll(scenes.DiskDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(scenes.DiskDir, name+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	log.Printf("snapshot written to %s", path)
	return nil
}
