package system

import (
	"github.com/milk9111/rockfall/common"
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
)

// FitZoom is the zoom at which a square of extent world units just fits in
// a vw x vh viewport.
func FitZoom(vw, vh, extent float64) float64 {
	if vw <= 0 || vh <= 0 || extent <= 0 {
		return 1
	}
	return min(vw/extent, vh/extent)
}

// CameraSystem frames the world. A fixed camera keeps its anchor centered and
// refits its zoom whenever the viewport changes; a follow camera tracks the
// player at a constant zoom and stays inside the level bounds.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (c *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach3(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(), component.ViewportComponent.Kind(), func(e ecs.Entity, cam *component.Camera, t *component.Transform, vp *component.Viewport) {
		switch cam.Mode {
		case component.CameraFollow:
			c.follow(w, cam, vp)
		default:
			if !vp.Changed {
				return
			}
			cam.Zoom = FitZoom(vp.Width, vp.Height, cam.Extent)
			cam.CenterX = cam.AnchorX
			cam.CenterY = cam.AnchorY
		}
		vp.Changed = false

		// The transform holds the scroll: the world point at the screen's
		// top-left corner.
		t.X = cam.CenterX - vp.Width/(2*cam.Zoom)
		t.Y = cam.CenterY - vp.Height/(2*cam.Zoom)
	})
}

func (c *CameraSystem) follow(w *ecs.World, cam *component.Camera, vp *component.Viewport) {
	if cam.Zoom <= 0 {
		cam.Zoom = 1
	}
	if player, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		if pt, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			cam.CenterX = pt.X
			cam.CenterY = pt.Y
		}
	}

	be, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, _ := ecs.Get(w, be, component.LevelBoundsComponent.Kind())
	halfW := vp.Width / (2 * cam.Zoom)
	halfH := vp.Height / (2 * cam.Zoom)
	cam.CenterX = clampAxis(cam.CenterX, halfW, bounds.Width)
	cam.CenterY = clampAxis(cam.CenterY, halfH, bounds.Height)
}

// clampAxis keeps a half-extent window inside [0, size], centering it when
// the level is smaller than the window.
func clampAxis(center, half, size float64) float64 {
	if size <= 2*half {
		return size / 2
	}
	return common.Clamp(center, half, size-half)
}

// WorldToScreen converts a world point to screen pixels for cam.
func WorldToScreen(cam *component.Camera, vp *component.Viewport, x, y float64) (float64, float64) {
	return (x-cam.CenterX)*cam.Zoom + vp.Width/2, (y-cam.CenterY)*cam.Zoom + vp.Height/2
}

// ScreenToWorld is the inverse of WorldToScreen.
func ScreenToWorld(cam *component.Camera, vp *component.Viewport, sx, sy float64) (float64, float64) {
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return (sx-vp.Width/2)/zoom + cam.CenterX, (sy-vp.Height/2)/zoom + cam.CenterY
}

// activeCamera returns the first camera with a viewport.
func activeCamera(w *ecs.World) (*component.Camera, *component.Viewport, bool) {
	for _, e := range w.Query(component.CameraComponent.Kind(), component.ViewportComponent.Kind()) {
		cam, _ := ecs.Get(w, e, component.CameraComponent.Kind())
		vp, _ := ecs.Get(w, e, component.ViewportComponent.Kind())
		return cam, vp, true
	}
	return nil, nil, false
}
