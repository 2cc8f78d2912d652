package component

import "github.com/milk9111/ballpit/physics"

// Simulation is the singleton that owns the body collection. Only the physics
// system writes Bodies; everything else reads them after the step.
type Simulation struct {
	Scene  string
	Solver string
	Params physics.Params
	Bodies []physics.Body
	TPS    int

	Frame         uint64
	Contacts      int
	TotalContacts uint64

	Paused     bool
	StepOnce   bool
	Debug      bool
	ShowTrails bool
}

var SimulationComponent = NewComponent[Simulation]()
