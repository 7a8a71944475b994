package system

import (
	"fmt"
	"testing"

	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
)

func TestResolveMovementGrid(t *testing.T) {
	const speed = 3.0
	for mask := 0; mask < 16; mask++ {
		in := DirectionalInput{
			Left:  mask&1 != 0,
			Right: mask&2 != 0,
			Up:    mask&4 != 0,
			Down:  mask&8 != 0,
		}
		t.Run(fmt.Sprintf("%04b", mask), func(t *testing.T) {
			vx, vy, anim, moving := ResolveMovement(in, speed)

			wantVX := 0.0
			wantAnim := component.FacingIdle
			if in.Left {
				wantVX = -speed
				wantAnim = component.FacingLeft
			}
			if in.Right {
				wantVX = speed
				wantAnim = component.FacingRight
			}
			wantVY := 0.0
			if in.Up {
				wantVY = -speed
				wantAnim = component.FacingUp
			}
			if in.Down {
				wantVY = speed
				wantAnim = component.FacingDown
			}

			if vx != wantVX || vy != wantVY {
				t.Fatalf("velocity = (%v, %v), want (%v, %v)", vx, vy, wantVX, wantVY)
			}
			if moving != (mask != 0) {
				t.Fatalf("moving = %v for mask %04b", moving, mask)
			}
			if anim != wantAnim {
				t.Fatalf("anim = %q, want %q", anim, wantAnim)
			}
			if vx != 0 && vx != speed && vx != -speed {
				t.Fatalf("axis speed must be exactly speed, got %v", vx)
			}
		})
	}
}

func TestResolveMovementCases(t *testing.T) {
	cases := []struct {
		name     string
		in       DirectionalInput
		vx, vy   float64
		wantAnim string
	}{
		{"none", DirectionalInput{}, 0, 0, component.FacingIdle},
		{"left", DirectionalInput{Left: true}, -3, 0, component.FacingLeft},
		{"diagonal_not_normalized", DirectionalInput{Up: true, Right: true}, 3, -3, component.FacingUp},
		{"left_right_overwrites", DirectionalInput{Left: true, Right: true}, 3, 0, component.FacingRight},
		{"down_wins_animation", DirectionalInput{Left: true, Down: true}, -3, 3, component.FacingDown},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			vx, vy, anim, _ := ResolveMovement(c.in, 3)
			if vx != c.vx || vy != c.vy || anim != c.wantAnim {
				t.Fatalf("got (%v, %v, %q), want (%v, %v, %q)", vx, vy, anim, c.vx, c.vy, c.wantAnim)
			}
		})
	}
}

func newMovingPlayer(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	must(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{Speed: 3}))
	must(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	must(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Category: component.CategoryPlayer}))
	must(t, ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		Defs: map[string]component.AnimationDef{
			component.FacingLeft: {FrameCount: 4, FPS: 10, Loop: true},
		},
	}))
	return e
}

func TestMovementSystem(t *testing.T) {
	w := ecs.NewWorld()
	e := newMovingPlayer(t, w)
	sys := NewMovementSystem()

	input, _ := ecs.Get(w, e, component.InputComponent.Kind())
	input.Left = true
	sys.Update(w)

	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
	player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	if body.VX != -3 || body.VY != 0 {
		t.Fatalf("velocity = (%v, %v)", body.VX, body.VY)
	}
	if !anim.Playing || anim.Current != component.FacingLeft || player.Facing != component.FacingLeft {
		t.Fatalf("expected walk-left to play, got %+v facing %q", anim, player.Facing)
	}

	anim.Frame = 2
	input.Left = false
	sys.Update(w)
	if body.VX != 0 || body.VY != 0 {
		t.Fatalf("expected zero velocity")
	}
	if anim.Playing || anim.Frame != 2 {
		t.Fatalf("stop should keep the current frame, got playing=%v frame=%d", anim.Playing, anim.Frame)
	}
	if player.Facing != component.FacingIdle {
		t.Fatalf("facing = %q", player.Facing)
	}
}

func TestMovementFrozen(t *testing.T) {
	w := ecs.NewWorld()
	e := newMovingPlayer(t, w)
	freeze := w.CreateEntity()
	must(t, ecs.Add(w, freeze, component.FreezeComponent.Kind(), &component.Freeze{}))

	input, _ := ecs.Get(w, e, component.InputComponent.Kind())
	input.Right = true
	NewMovementSystem().Update(w)

	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if body.VX != 0 {
		t.Fatalf("frozen world must not move the player")
	}
}

func TestAnimationAdvance(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	anim := &component.Animation{
		Defs:    map[string]component.AnimationDef{"fall": {FrameCount: 3, FPS: 10, Loop: true}},
		Current: "fall",
		Playing: true,
	}
	must(t, ecs.Add(w, e, component.AnimationComponent.Kind(), anim))
	must(t, ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{}))

	sys := NewAnimationSystem()
	// 60 TPS at 10 FPS is one frame every 6 ticks.
	for i := 0; i < 18; i++ {
		sys.Update(w)
	}
	if anim.Frame != 0 {
		t.Fatalf("expected loop back to frame 0 after 18 ticks, got %d", anim.Frame)
	}
	for i := 0; i < 6; i++ {
		sys.Update(w)
	}
	if anim.Frame != 1 {
		t.Fatalf("expected frame 1, got %d", anim.Frame)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
