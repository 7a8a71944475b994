package system

import (
	"image"

	"github.com/milk9111/rockfall/common"
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil || frozen(w) {
		return
	}

	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		def, ok := anim.Defs[anim.Current]
		if !ok || def.FrameCount <= 0 {
			return
		}

		if anim.Playing {
			advanceFrame(anim, def)
		}

		if anim.Sheet == nil {
			return
		}
		x := def.ColStart*def.FrameW + anim.Frame*def.FrameW
		y := def.Row * def.FrameH
		sprite.Image = anim.Sheet
		sprite.Source = image.Rect(x, y, x+def.FrameW, y+def.FrameH)
		sprite.UseSource = true
	})
}

// advanceFrame steps the animation one tick. Frames advance every
// TPS/FPS ticks.
func advanceFrame(anim *component.Animation, def component.AnimationDef) {
	ticksPerFrame := 1
	if def.FPS > 0 {
		ticksPerFrame = int(common.TPS / def.FPS)
	}
	if ticksPerFrame < 1 {
		ticksPerFrame = 1
	}

	anim.FrameTimer++
	if anim.FrameTimer < ticksPerFrame {
		return
	}
	anim.FrameTimer = 0
	anim.Frame++
	if anim.Frame >= def.FrameCount {
		if def.Loop {
			anim.Frame = 0
		} else {
			anim.Frame = def.FrameCount - 1
			anim.Playing = false
		}
	}
}
