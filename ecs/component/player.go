package component

// Facing keys double as animation names on the character sheet.
const (
	FacingIdle  = "idle"
	FacingUp    = "walk-up"
	FacingDown  = "walk-down"
	FacingLeft  = "walk-left"
	FacingRight = "walk-right"
)

type Player struct {
	Speed  float64
	Facing string
}

var PlayerComponent = NewComponent[Player]()
