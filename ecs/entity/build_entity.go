package entity

import (
	"fmt"
	"image"
	"sort"

	"github.com/milk9111/rockfall/assets"
	"github.com/milk9111/rockfall/common"
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
	"github.com/milk9111/rockfall/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

// buildContext carries what a prefab cannot know on its own. A nil Art
// builds the entity without images.
type buildContext struct {
	PrefabPath string
	Art        *assets.Library
	// Sheet replaces the animation sheet named by the prefab.
	Sheet string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"camera_tag":   addCameraTag,
	"player":       addPlayer,
	"input":        addInput,
	"transform":    addTransform,
	"sprite":       addSprite,
	"render_layer": addRenderLayer,
	"camera":       addCamera,
	"animation":    addAnimation,
	"physics_body": addPhysicsBody,
	"hazard":       addHazard,
	"indicator":    addIndicator,
}

// Transform comes before sprite and animation so later builders can read it.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"player",
	"input",
	"transform",
	"sprite",
	"render_layer",
	"camera",
	"animation",
	"physics_body",
	"hazard",
	"indicator",
}

func BuildEntity(w *ecs.World, prefabPath string, art *assets.Library) (ecs.Entity, error) {
	return buildEntity(w, &buildContext{PrefabPath: prefabPath, Art: art})
}

func buildEntity(w *ecs.World, ctx *buildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	prefabPath := ctx.PrefabPath

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := w.CreateEntity()

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		w.DestroyEntity(e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

// SetEntityTransform moves e, adding a transform when it has none.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		Speed:  spec.MoveSpeed,
		Facing: component.FacingIdle,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      spec.X,
		Y:      spec.Y,
		ScaleX: spec.ScaleX,
		ScaleY: spec.ScaleY,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	var sprite component.Sprite
	if spec.Image != "" && ctx.Art != nil {
		img, err := ctx.Art.Image(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
	}

	sprite.UseSource = spec.UseSource
	sprite.OriginX = spec.OriginX
	sprite.OriginY = spec.OriginY
	sprite.Hidden = spec.Hidden
	if sprite.OriginX == 0 && sprite.OriginY == 0 && spec.CenterOriginIfZero && sprite.Image != nil {
		b := sprite.Image.Bounds()
		sprite.OriginX = float64(b.Dx()) / 2
		sprite.OriginY = float64(b.Dy()) / 2
	}

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraSettingsSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), cameraFromSpec(spec))
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	sheetPath := spec.Sheet
	if ctx.Sheet != "" {
		sheetPath = ctx.Sheet
	}

	anim := &component.Animation{
		Defs:    make(map[string]component.AnimationDef, len(spec.Defs)),
		Current: spec.Current,
		Playing: spec.Playing,
	}
	for name, def := range spec.Defs {
		if def.FrameW <= 0 {
			def.FrameW = common.FrameWidth
		}
		if def.FrameH <= 0 {
			def.FrameH = common.FrameHeight
		}
		anim.Defs[name] = component.AnimationDef{
			Name:       name,
			Row:        def.Row,
			ColStart:   def.ColStart,
			FrameCount: def.FrameCount,
			FrameW:     def.FrameW,
			FrameH:     def.FrameH,
			FPS:        def.FPS,
			Loop:       def.Loop,
		}
	}

	if sheetPath != "" && ctx.Art != nil {
		sheet, err := ctx.Art.Image(sheetPath)
		if err != nil {
			return fmt.Errorf("load animation sheet %q: %w", sheetPath, err)
		}
		anim.Sheet = sheet
		// Show the first frame of the current animation before the
		// animation system has run.
		if def, ok := anim.Defs[anim.Current]; ok {
			if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
				x := def.ColStart * def.FrameW
				y := def.Row * def.FrameH
				sprite.Image = sheet
				sprite.Source = image.Rect(x, y, x+def.FrameW, y+def.FrameH)
				sprite.UseSource = true
			}
		}
	}

	return ecs.Add(w, e, component.AnimationComponent.Kind(), anim)
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Radius <= 0 {
		if spec.Width <= 0 {
			spec.Width = common.TileSize
		}
		if spec.Height <= 0 {
			spec.Height = common.TileSize
		}
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Category:     component.ParseBodyCategory(spec.Category),
		Width:        spec.Width,
		Height:       spec.Height,
		Radius:       spec.Radius,
		Mass:         spec.Mass,
		Friction:     spec.Friction,
		Static:       spec.Static,
		Sensor:       spec.Sensor,
		AlignTopLeft: spec.AlignTopLeft,
	})
}

type hazardSpec = prefabs.HazardComponentSpec

func addHazard(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[hazardSpec](raw)
	if err != nil {
		return fmt.Errorf("decode hazard spec: %w", err)
	}
	return ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{FallSpeed: spec.FallSpeed})
}

type indicatorSpec = prefabs.IndicatorComponentSpec

func addIndicator(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[indicatorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode indicator spec: %w", err)
	}
	return ecs.Add(w, e, component.IndicatorComponent.Kind(), &component.Indicator{OffsetY: spec.OffsetY})
}
