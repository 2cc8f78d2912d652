package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ballpit/ecs"
	"github.com/milk9111/ballpit/ecs/component"
	"github.com/milk9111/ballpit/physics"
	"github.com/milk9111/ballpit/physics/chipmunk"
)

const (
	SolverNative   = "native"
	SolverChipmunk = "chipmunk"
)

// PhysicsSystem advances the simulation singleton by one fixed step per tick
// and turns solver callbacks into world events. It rebuilds its solver
// whenever a new simulation entity appears.
type PhysicsSystem struct {
	solverName string
	broadphase string

	simEntity ecs.Entity
	solver    physics.Solver
	chipmunk  *chipmunk.Solver

	contacts []ecs.ContactEvent
	walls    []ecs.WallEvent
}

func NewPhysicsSystem(solver, broadphase string) (*PhysicsSystem, error) {
	solver = strings.ToLower(strings.TrimSpace(solver))
	if solver == "" {
		solver = SolverNative
	}
	if solver != SolverNative && solver != SolverChipmunk {
		return nil, fmt.Errorf("physics system: unknown solver %q", solver)
	}
	if _, err := physics.NewBroadphase(broadphase); err != nil {
		return nil, err
	}
	return &PhysicsSystem{solverName: solver, broadphase: broadphase}, nil
}

func (ps *PhysicsSystem) SolverName() string {
	if ps == nil {
		return ""
	}
	return ps.solverName
}

// Space returns the Chipmunk space when the chipmunk solver is active.
func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil || ps.chipmunk == nil {
		return nil
	}
	return ps.chipmunk.Space()
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	simEnt, sim, ok := ecs.First(w, component.SimulationComponent)
	if !ok {
		ps.reset()
		return
	}
	if simEnt != ps.simEntity {
		ps.simEntity = simEnt
		if err := ps.rebuild(sim); err != nil {
			log.Printf("physics system: %s: %v", sim.Scene, err)
			sim.Paused = true
		}
	}
	if ps.solver == nil {
		return
	}

	if sim.Paused && !sim.StepOnce {
		return
	}
	sim.StepOnce = false

	ps.contacts = ps.contacts[:0]
	ps.walls = ps.walls[:0]
	if err := ps.solver.Step(sim.Bodies, physics.FixedStep(sim.TPS)); err != nil {
		log.Printf("physics system: step %d: %v", sim.Frame, err)
		sim.Paused = true
		return
	}
	sim.Frame++
	sim.Contacts = len(ps.contacts)
	sim.TotalContacts += uint64(len(ps.contacts))

	for _, c := range ps.contacts {
		w.Events().Push(ecs.Event{Type: ecs.EventContact, Data: c})
	}
	for _, wall := range ps.walls {
		w.Events().Push(ecs.Event{Type: ecs.EventWall, Data: wall})
	}
}

func (ps *PhysicsSystem) rebuild(sim *component.Simulation) error {
	ps.solver = nil
	ps.chipmunk = nil

	onContact := func(a, b physics.Handle) {
		ps.contacts = append(ps.contacts, ecs.ContactEvent{A: a, B: b})
	}

	switch ps.solverName {
	case SolverChipmunk:
		s, err := chipmunk.New(sim.Bodies, sim.Params)
		if err != nil {
			return err
		}
		s.OnContact = onContact
		ps.chipmunk = s
		ps.solver = s
	default:
		broad, err := physics.NewBroadphase(ps.broadphase)
		if err != nil {
			return err
		}
		s, err := physics.NewStepper(sim.Params, broad)
		if err != nil {
			return err
		}
		s.OnContact = onContact
		s.OnWall = func(h physics.Handle, walls physics.Walls, speed float64) {
			ps.walls = append(ps.walls, ecs.WallEvent{Body: h, Walls: walls, Speed: speed})
		}
		ps.solver = s
	}
	sim.Solver = ps.solverName
	return nil
}

func (ps *PhysicsSystem) reset() {
	ps.simEntity = 0
	ps.solver = nil
	ps.chipmunk = nil
}
