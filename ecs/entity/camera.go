package entity

import (
	"fmt"

	"github.com/milk9111/rockfall/common"
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
	"github.com/milk9111/rockfall/prefabs"
)

func cameraFromSpec(spec prefabs.CameraSettingsSpec) *component.Camera {
	cam := &component.Camera{
		Mode:    component.ParseCameraMode(spec.Mode),
		Zoom:    spec.Zoom,
		Extent:  spec.Extent,
		AnchorX: spec.AnchorX,
		AnchorY: spec.AnchorY,
	}
	if cam.Zoom <= 0 {
		cam.Zoom = 1
	}
	if cam.Extent <= 0 {
		cam.Extent = common.PlayExtent
	}
	return cam
}

// NewCamera builds the camera prefab, applies a scene's framing on top of it
// and attaches the viewport it frames against.
func NewCamera(w *ecs.World, settings prefabs.CameraSettingsSpec, viewW, viewH float64) (ecs.Entity, error) {
	camera, err := BuildEntity(w, "camera.yaml", nil)
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}

	if settings.Mode != "" {
		if err := ecs.Add(w, camera, component.CameraComponent.Kind(), cameraFromSpec(settings)); err != nil {
			return 0, fmt.Errorf("camera: override camera component: %w", err)
		}
	}

	if err := ecs.Add(w, camera, component.ViewportComponent.Kind(), &component.Viewport{
		Width:   viewW,
		Height:  viewH,
		Changed: true,
	}); err != nil {
		return 0, fmt.Errorf("camera: add viewport: %w", err)
	}
	return camera, nil
}
