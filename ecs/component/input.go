package component

// Input stores per-frame input state for an entity. Directions are held
// states; the *Pressed fields are just-pressed edges for this frame only.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool

	RestartPressed  bool
	ExitPressed     bool
	ActivatePressed bool

	ClickPressed bool
	CursorX      float64
	CursorY      float64
}

var InputComponent = NewComponent[Input]()
