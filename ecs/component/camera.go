package component

type CameraMode int

const (
	// CameraFixed keeps a world anchor centered and fits Extent into the
	// viewport.
	CameraFixed CameraMode = iota
	// CameraFollow tracks the player at a fixed zoom, clamped to LevelBounds.
	CameraFollow
)

type Camera struct {
	Mode    CameraMode
	Zoom    float64
	Extent  float64
	AnchorX float64
	AnchorY float64
	// CenterX/CenterY is the world point at the middle of the screen after
	// the last framing pass.
	CenterX float64
	CenterY float64
}

var CameraComponent = NewComponent[Camera]()

// Viewport is the size of the screen in pixels. Changed is set on resize and
// cleared by the camera framer once it has reframed.
type Viewport struct {
	Width   float64
	Height  float64
	Changed bool
}

var ViewportComponent = NewComponent[Viewport]()

func ParseCameraMode(s string) CameraMode {
	if s == "follow" {
		return CameraFollow
	}
	return CameraFixed
}
