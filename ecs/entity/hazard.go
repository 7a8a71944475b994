package entity

import (
	"fmt"

	"github.com/milk9111/rockfall/assets"
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
)

// NewHazard drops a hazard prefab at (x, y) falling at speed units per
// frame.
func NewHazard(w *ecs.World, art *assets.Library, prefab string, x, y, speed float64) (ecs.Entity, error) {
	if prefab == "" {
		prefab = "rock.yaml"
	}
	hazard, err := BuildEntity(w, prefab, art)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, hazard, x, y); err != nil {
		return 0, fmt.Errorf("hazard: override transform: %w", err)
	}

	h, ok := ecs.Get(w, hazard, component.HazardComponent.Kind())
	if !ok {
		w.DestroyEntity(hazard)
		return 0, fmt.Errorf("hazard: prefab %q has no hazard component", prefab)
	}
	h.FallSpeed = speed

	body, ok := ecs.Get(w, hazard, component.PhysicsBodyComponent.Kind())
	if !ok {
		w.DestroyEntity(hazard)
		return 0, fmt.Errorf("hazard: prefab %q has no physics body", prefab)
	}
	body.Category = component.CategoryHazard
	body.VX = 0
	body.VY = speed
	return hazard, nil
}
