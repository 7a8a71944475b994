package system

import (
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
)

// DirectionalInput is the set of held directions after both key sets have
// been combined.
type DirectionalInput struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// ResolveMovement projects held directions onto a velocity and animation
// key. Directions are applied in the order left, right, up, down and later
// ones overwrite earlier ones, so left+right moves right and the vertical
// key wins the animation on diagonals. Diagonals are not normalized.
func ResolveMovement(in DirectionalInput, speed float64) (vx, vy float64, anim string, moving bool) {
	if in.Left {
		vx = -speed
		anim = component.FacingLeft
	}
	if in.Right {
		vx = speed
		anim = component.FacingRight
	}
	if in.Up {
		vy = -speed
		anim = component.FacingUp
	}
	if in.Down {
		vy = speed
		anim = component.FacingDown
	}
	moving = vx != 0 || vy != 0
	if !moving {
		anim = component.FacingIdle
	}
	return vx, vy, anim, moving
}

type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if w == nil || frozen(w) {
		return
	}

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, player *component.Player, input *component.Input, body *component.PhysicsBody) {
		vx, vy, anim, moving := ResolveMovement(DirectionalInput{
			Up:    input.Up,
			Down:  input.Down,
			Left:  input.Left,
			Right: input.Right,
		}, player.Speed)

		body.VX = vx
		body.VY = vy
		player.Facing = anim

		if a, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			if moving {
				a.Play(anim)
			} else {
				a.Stop()
			}
		}
	})
}

func frozen(w *ecs.World) bool {
	_, ok := w.First(component.FreezeComponent.Kind())
	return ok
}
