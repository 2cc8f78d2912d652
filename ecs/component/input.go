package component

// Input stores the per-tick control state read from the keyboard.
type Input struct {
	TogglePause  bool
	StepOnce     bool
	Reload       bool
	Snapshot     bool
	ToggleDebug  bool
	ToggleTrails bool
	Menu         bool

	// SelectScene is a 1-based index into the scene list, 0 for none.
	SelectScene int
}

var InputComponent = NewComponent[Input]()
