package system

import (
	"testing"

	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
)

func TestNear(t *testing.T) {
	points := []component.Point{{X: 100, Y: 100}}
	cases := []struct {
		name   string
		px, py float64
		points []component.Point
		want   bool
	}{
		{"exactly_on_radius", 140, 100, points, true},
		{"just_outside", 140.01, 100, points, false},
		{"diagonal_inside", 120, 120, points, true},
		{"empty_zone", 100, 100, nil, false},
		{"any_point_counts", 0, 0, []component.Point{{X: 500, Y: 500}, {X: 10, Y: 0}}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Near(c.px, c.py, c.points, 40); got != c.want {
				t.Fatalf("Near = %v, want %v", got, c.want)
			}
		})
	}
}

func newProximityWorld(t *testing.T, px, py float64) (*ecs.World, ecs.Entity, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()

	player := w.CreateEntity()
	must(t, ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	must(t, ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: px, Y: py}))
	must(t, ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}))

	zone := w.CreateEntity()
	must(t, ecs.Add(w, zone, component.TriggerZoneComponent.Kind(), &component.TriggerZone{
		Target: "falling_rocks",
		Radius: 40,
		Points: []component.Point{{X: 100, Y: 100}},
	}))

	ind := w.CreateEntity()
	must(t, ecs.Add(w, ind, component.IndicatorComponent.Kind(), &component.Indicator{OffsetY: -40}))
	must(t, ecs.Add(w, ind, component.TransformComponent.Kind(), &component.Transform{}))
	must(t, ecs.Add(w, ind, component.SpriteComponent.Kind(), &component.Sprite{Hidden: true}))
	return w, player, ind
}

func TestProximityIndicatorTracksPlayer(t *testing.T) {
	w, player, ind := newProximityWorld(t, 130, 100)
	sys := NewProximitySystem()
	sys.Update(w)

	sprite, _ := ecs.Get(w, ind, component.SpriteComponent.Kind())
	tr, _ := ecs.Get(w, ind, component.TransformComponent.Kind())
	if sprite.Hidden {
		t.Fatalf("indicator should show while near")
	}
	if tr.X != 130 || tr.Y != 60 {
		t.Fatalf("indicator at (%v, %v), want (130, 60)", tr.X, tr.Y)
	}

	pt, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	pt.X = 300
	sys.Update(w)
	if !sprite.Hidden {
		t.Fatalf("indicator should hide once the player walks away")
	}
	if _, ok := TakeSceneRequest(w); ok {
		t.Fatalf("no request expected without activate")
	}
}

func TestProximityActivateEdge(t *testing.T) {
	cases := []struct {
		name     string
		px       float64
		activate bool
		want     bool
	}{
		{"near_and_pressed", 100, true, true},
		{"near_not_pressed", 100, false, false},
		{"far_and_pressed", 300, true, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, player, _ := newProximityWorld(t, c.px, 100)
			input, _ := ecs.Get(w, player, component.InputComponent.Kind())
			input.ActivatePressed = c.activate

			NewProximitySystem().Update(w)
			req, ok := TakeSceneRequest(w)
			if ok != c.want {
				t.Fatalf("request = %v, want %v", ok, c.want)
			}
			if ok && (req.Kind != component.RequestSwitch || req.Target != "falling_rocks") {
				t.Fatalf("unexpected request %+v", req)
			}
		})
	}
}

func TestSceneRequestKeepsFirst(t *testing.T) {
	w := ecs.NewWorld()
	RequestScene(w, component.SceneRequest{Kind: component.RequestRestart})
	RequestScene(w, component.SceneRequest{Kind: component.RequestSwitch, Target: "hub"})

	req, ok := TakeSceneRequest(w)
	if !ok || req.Kind != component.RequestRestart {
		t.Fatalf("expected the first request, got %+v ok=%v", req, ok)
	}
	if _, ok := TakeSceneRequest(w); ok {
		t.Fatalf("request should be consumed")
	}
}
