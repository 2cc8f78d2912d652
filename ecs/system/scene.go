package system

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strings"

	"github.com/milk9111/ballpit/ecs"
	"github.com/milk9111/ballpit/ecs/component"
	"github.com/milk9111/ballpit/ecs/entity"
	"github.com/milk9111/ballpit/physics"
	"github.com/milk9111/ballpit/scenes"
)

// ExportFunc receives a YAML scene snapshot.
type ExportFunc func(name string, data []byte) error

// SceneSystem owns scene loading. It builds the world for the current scene,
// rebuilds it on ReloadRequest or when the watched scene file changes, and
// exports snapshots on SnapshotRequest.
type SceneSystem struct {
	sceneName string
	opts      entity.SceneOptions
	watcher   *scenes.Watcher
	export    ExportFunc

	initialized bool
	failed      bool
}

func NewSceneSystem(sceneName string, opts entity.SceneOptions, watcher *scenes.Watcher, export ExportFunc) *SceneSystem {
	return &SceneSystem{
		sceneName: sceneName,
		opts:      opts,
		watcher:   watcher,
		export:    export,
	}
}

func (s *SceneSystem) SceneName() string {
	if s == nil {
		return ""
	}
	return s.sceneName
}

// Load builds the current scene into w, replacing any previous one. On error
// the world is left untouched.
func (s *SceneSystem) Load(w *ecs.World) error {
	if s == nil || w == nil {
		return fmt.Errorf("scene system: nil world")
	}

	sc, err := scenes.LoadScene(s.sceneName)
	if err != nil {
		return err
	}

	opts := s.opts
	if _, sim, ok := ecs.First(w, component.SimulationComponent); ok {
		opts.Paused = sim.Paused
		opts.Debug = sim.Debug
		opts.ShowTrails = sim.ShowTrails
	}

	entity.ClearScene(w)
	if _, err := entity.BuildScene(w, sc, opts); err != nil {
		return err
	}
	s.initialized = true
	log.Printf("scene %s: %d bodies, %vx%v, g=%v, %d tps", sc.Name, len(sc.Bodies), sc.Params.Width, sc.Params.Height, sc.Params.Gravity, sc.TPS)
	return nil
}

func (s *SceneSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	// A failed first load leaves the world empty until a reload succeeds.
	if !s.initialized && !s.failed {
		if err := s.Load(w); err != nil {
			log.Printf("scene system: load %s: %v", s.sceneName, err)
			s.failed = true
		}
		return
	}

	if req, ok := s.takeReloadRequest(w); ok {
		prev := s.sceneName
		if req.Scene != "" {
			s.sceneName = req.Scene
		}
		if err := s.Load(w); err != nil {
			log.Printf("scene system: reload %s: %v", s.sceneName, err)
			s.sceneName = prev
		}
		return
	}

	if s.watcherTouchedScene() {
		if err := s.Load(w); err != nil {
			log.Printf("scene system: hot reload %s: %v", s.sceneName, err)
		}
		return
	}

	if _, _, ok := ecs.First(w, component.SnapshotRequestComponent); ok {
		for _, e := range w.Query(component.SnapshotRequestComponent.Kind()) {
			ecs.DestroyEntity(w, e)
		}
		if err := s.snapshot(w); err != nil {
			log.Printf("scene system: snapshot: %v", err)
		}
	}
}

func (s *SceneSystem) takeReloadRequest(w *ecs.World) (component.ReloadRequest, bool) {
	var (
		req   component.ReloadRequest
		found bool
	)
	ecs.ForEach(w, component.ReloadRequestComponent, func(e ecs.Entity, r *component.ReloadRequest) {
		if !found || r.Scene != "" {
			req = *r
		}
		found = true
		ecs.DestroyEntity(w, e)
	})
	return req, found
}

func (s *SceneSystem) watcherTouchedScene() bool {
	if s.watcher == nil {
		return false
	}
	select {
	case err, ok := <-s.watcher.Errors:
		if ok && err != nil {
			log.Printf("scene system: watcher: %v", err)
		}
	default:
	}

	touched := false
	for _, path := range s.watcher.Poll() {
		if scenes.SceneName(path) == scenes.SceneName(s.sceneName) || isScript(path) {
			log.Printf("scene system: %s changed", path)
			touched = true
		}
	}
	return touched
}

func (s *SceneSystem) snapshot(w *ecs.World) error {
	_, sim, ok := ecs.First(w, component.SimulationComponent)
	if !ok {
		return fmt.Errorf("no simulation")
	}

	colors := make([]color.Color, len(sim.Bodies))
	ecs.ForEach2(w, component.BodyRefComponent, component.AppearanceComponent, func(_ ecs.Entity, ref *component.BodyRef, app *component.Appearance) {
		if int(ref.Handle) < len(colors) {
			colors[ref.Handle] = app.Color
		}
	})

	name := fmt.Sprintf("%s-%d", sim.Scene, sim.Frame)
	data, err := scenes.Snapshot(name, sim.Params, sim.TPS, sim.Bodies, colors)
	if err != nil {
		return err
	}
	if s.export == nil {
		return nil
	}
	if err := s.export(name, data); err != nil {
		return err
	}
	log.Printf("scene system: exported snapshot %s (%d bodies, energy %.2f)", name, len(sim.Bodies), physics.KineticEnergy(sim.Bodies))
	return nil
}

func isScript(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tengo")
}
