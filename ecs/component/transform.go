package component

// Transform is the world position of an entity. For bodies and sprites X/Y
// is the center; for the camera it is the scroll (world top-left).
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

var TransformComponent = NewComponent[Transform]()
