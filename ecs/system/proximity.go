package system

import (
	"github.com/milk9111/rockfall/common"
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
)

// Near reports whether any point lies within radius of (px, py). The
// boundary counts as near. An empty set is never near.
func Near(px, py float64, points []component.Point, radius float64) bool {
	for _, p := range points {
		if common.Distance(px, py, p.X, p.Y) <= radius {
			return true
		}
	}
	return false
}

// ProximitySystem checks the player against every trigger zone, moves the
// indicator above the player while near and turns a fresh activate press
// into a scene switch request.
type ProximitySystem struct{}

func NewProximitySystem() *ProximitySystem {
	return &ProximitySystem{}
}

func (p *ProximitySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	input, _ := ecs.Get(w, player, component.InputComponent.Kind())

	anyNear := false
	ecs.ForEach(w, component.TriggerZoneComponent.Kind(), func(e ecs.Entity, zone *component.TriggerZone) {
		zone.Near = Near(pt.X, pt.Y, zone.Points, zone.Radius)
		if !zone.Near {
			return
		}
		anyNear = true
		if input != nil && input.ActivatePressed {
			RequestScene(w, component.SceneRequest{Kind: component.RequestSwitch, Target: zone.Target})
		}
	})

	ecs.ForEach3(w, component.IndicatorComponent.Kind(), component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, ind *component.Indicator, t *component.Transform, s *component.Sprite) {
		s.Hidden = !anyNear
		if anyNear {
			t.X = pt.X
			t.Y = pt.Y + ind.OffsetY
		}
	})
}

// RequestScene queues a request for the scene host. Only the first request
// of a frame is kept.
func RequestScene(w *ecs.World, req component.SceneRequest) {
	if _, ok := w.First(component.SceneRequestComponent.Kind()); ok {
		return
	}
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.SceneRequestComponent.Kind(), &req)
}

// TakeSceneRequest removes and returns the pending request, if any.
func TakeSceneRequest(w *ecs.World) (component.SceneRequest, bool) {
	e, ok := w.First(component.SceneRequestComponent.Kind())
	if !ok {
		return component.SceneRequest{}, false
	}
	req, _ := ecs.Get(w, e, component.SceneRequestComponent.Kind())
	out := *req
	w.DestroyEntity(e)
	return out, true
}
