package component

// Hazard is a falling rock. It is absorbed by boundaries and costs a life on
// contact with the player.
type Hazard struct {
	FallSpeed float64
}

var HazardComponent = NewComponent[Hazard]()
