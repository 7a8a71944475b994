package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
	"github.com/milk9111/rockfall/ecs/system"
)

// stage is the ECS half of a world scene: the world, its systems and the
// camera the world is drawn through.
type stage struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	camera    ecs.Entity
}

func newStage(cfg Config) *stage {
	var face text.Face
	if cfg.Art != nil {
		face = cfg.Art.Face()
	}
	render := system.NewRenderSystem(face)
	render.Debug = cfg.Debug
	return &stage{world: ecs.NewWorld(), render: render}
}

func (s *stage) face() text.Face {
	return s.render.Face()
}

func (s *stage) update(cfg Config) {
	if s == nil || s.world == nil {
		return
	}
	s.scheduler.Update(s.world)
	if req, ok := system.TakeSceneRequest(s.world); ok {
		request(cfg, req)
	}
}

func (s *stage) draw(screen *ebiten.Image) {
	if s == nil || s.world == nil {
		return
	}
	s.render.Draw(s.world, screen)
}

func (s *stage) resize(width, height int) {
	if s == nil || s.world == nil {
		return
	}
	vp, ok := ecs.Get(s.world, s.camera, component.ViewportComponent.Kind())
	if !ok {
		return
	}
	w, h := float64(width), float64(height)
	if vp.Width != w || vp.Height != h {
		vp.Width, vp.Height = w, h
		vp.Changed = true
	}
}
