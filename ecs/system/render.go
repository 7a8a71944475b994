package system

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
)

// RenderSystem draws sprites in world space, sorted by render layer, then
// HUD text on top in screen space.
type RenderSystem struct {
	face  text.Face
	Debug bool
}

func NewRenderSystem(face text.Face) *RenderSystem {
	return &RenderSystem{face: face}
}

func (r *RenderSystem) Face() text.Face {
	return r.face
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	cam, vp, ok := activeCamera(w)
	if !ok {
		return
	}

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := renderLayer(w, entities[i])
		lj := renderLayer(w, entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		if s.Image == nil || s.Hidden {
			continue
		}

		img := s.Image
		if s.UseSource {
			if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
				img = sub
			}
		}

		sx, sy := t.ScaleX, t.ScaleY
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)
		op.GeoM.Scale(sx*cam.Zoom, sy*cam.Zoom)
		px, py := WorldToScreen(cam, vp, t.X, t.Y)
		op.GeoM.Translate(px, py)
		screen.DrawImage(img, op)
	}

	if r.Debug {
		r.drawBodies(w, screen, cam, vp)
	}
	r.drawTexts(w, screen, cam, vp)

	if r.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.0f  entities %d", ebiten.ActualFPS(), w.Len()), 8, 8)
	}
}

func renderLayer(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}

func (r *RenderSystem) drawTexts(w *ecs.World, screen *ebiten.Image, cam *component.Camera, vp *component.Viewport) {
	if r.face == nil {
		return
	}
	ecs.ForEach2(w, component.TextComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, txt *component.Text, t *component.Transform) {
		if txt.Hidden || txt.Value == "" {
			return
		}
		scale := txt.Scale
		if scale <= 0 {
			scale = 1
		}
		cx, cy := WorldToScreen(cam, vp, t.X, t.Y)

		op := &text.DrawOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(cx-txt.Width/2, cy-txt.Height/2)
		if txt.Color != nil {
			op.ColorScale.ScaleWithColor(txt.Color)
		}
		text.Draw(screen, txt.Value, r.face, op)
	})
}

var (
	debugBoundary = color.RGBA{R: 255, G: 80, B: 80, A: 200}
	debugHazard   = color.RGBA{R: 255, G: 200, B: 0, A: 200}
	debugOther    = color.RGBA{R: 80, G: 200, B: 255, A: 200}
)

func (r *RenderSystem) drawBodies(w *ecs.World, screen *ebiten.Image, cam *component.Camera, vp *component.Viewport) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		clr := debugOther
		switch body.Category {
		case component.CategoryBoundary:
			clr = debugBoundary
		case component.CategoryHazard:
			clr = debugHazard
		}

		if body.Radius > 0 {
			cx, cy := WorldToScreen(cam, vp, t.X, t.Y)
			vector.StrokeCircle(screen, float32(cx), float32(cy), float32(body.Radius*cam.Zoom), 1, clr, false)
			return
		}
		x, y := t.X, t.Y
		if !body.AlignTopLeft {
			x -= body.Width / 2
			y -= body.Height / 2
		}
		sx, sy := WorldToScreen(cam, vp, x, y)
		vector.StrokeRect(screen, float32(sx), float32(sy), float32(body.Width*cam.Zoom), float32(body.Height*cam.Zoom), 1, clr, false)
	})
}
