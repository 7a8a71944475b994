package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/rockfall/assets"
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
	"github.com/milk9111/rockfall/prefabs"
)

// NewHUDText adds a camera-anchored label.
func NewHUDText(w *ecs.World, spec prefabs.HUDTextSpec) (ecs.Entity, error) {
	c := spec.Color.Color
	if c == nil {
		c = color.White
	}
	scale := spec.Scale
	if scale <= 0 {
		scale = 1
	}

	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("hud: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.TextComponent.Kind(), &component.Text{
		Value:   spec.Text,
		Role:    component.ParseTextRole(spec.Role),
		OffsetX: spec.OffsetX,
		OffsetY: spec.OffsetY,
		Color:   c,
		Scale:   scale,
		Hidden:  spec.Hidden,
	}); err != nil {
		return 0, fmt.Errorf("hud: add text: %w", err)
	}
	return e, nil
}

// NewIndicator builds the hidden proximity indicator.
func NewIndicator(w *ecs.World, art *assets.Library, prefab string) (ecs.Entity, error) {
	if prefab == "" {
		prefab = "indicator.yaml"
	}
	e, err := BuildEntity(w, prefab, art)
	if err != nil {
		return 0, fmt.Errorf("indicator: %w", err)
	}
	if !ecs.Has(w, e, component.IndicatorComponent.Kind()) {
		w.DestroyEntity(e)
		return 0, fmt.Errorf("indicator: prefab %q has no indicator component", prefab)
	}
	return e, nil
}
