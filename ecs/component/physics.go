package component

import "github.com/jakecoffman/cp"

// BodyCategory classifies a body for collision outcome dispatch.
type BodyCategory int

const (
	CategoryOther BodyCategory = iota
	CategoryPlayer
	CategoryBoundary
	CategoryHazard
	CategorySolid
)

func (c BodyCategory) String() string {
	switch c {
	case CategoryPlayer:
		return "player"
	case CategoryBoundary:
		return "boundary"
	case CategoryHazard:
		return "hazard"
	case CategorySolid:
		return "solid"
	default:
		return "other"
	}
}

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// VX/VY is the commanded velocity in world units per frame; the physics
// system applies it to dynamic bodies before every step.
type PhysicsBody struct {
	Body     *cp.Body
	Shape    *cp.Shape
	Category BodyCategory

	Width    float64
	Height   float64
	Radius   float64
	Mass     float64
	Friction float64

	Static bool
	Sensor bool
	// AlignTopLeft treats Transform as the top-left corner of a box collider.
	AlignTopLeft bool

	VX float64
	VY float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// ParseBodyCategory maps a prefab category name to a BodyCategory. Unknown
// names are CategoryOther.
func ParseBodyCategory(s string) BodyCategory {
	switch s {
	case "player":
		return CategoryPlayer
	case "boundary":
		return CategoryBoundary
	case "hazard":
		return CategoryHazard
	case "solid":
		return CategorySolid
	default:
		return CategoryOther
	}
}
