package component

type Point struct {
	X float64
	Y float64
}

// TriggerZone is a fixed set of world points. Near is recomputed every frame
// by the proximity system.
type TriggerZone struct {
	Target string
	Radius float64
	Points []Point
	Near   bool
}

var TriggerZoneComponent = NewComponent[TriggerZone]()

// Indicator follows the player while a trigger zone is near.
type Indicator struct {
	OffsetY float64
}

var IndicatorComponent = NewComponent[Indicator]()
