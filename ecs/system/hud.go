package system

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
)

// Glyph cell of basicfont.Face7x13, used when no face is attached.
const (
	glyphW = 7
	glyphH = 13
)

// HUDSystem anchors every Text to the camera center plus its offset and
// refreshes its measured screen size.
type HUDSystem struct {
	face text.Face
}

func NewHUDSystem(face text.Face) *HUDSystem {
	return &HUDSystem{face: face}
}

func (h *HUDSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	cam, _, ok := activeCamera(w)
	if !ok {
		return
	}
	ecs.ForEach2(w, component.TextComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, txt *component.Text, t *component.Transform) {
		t.X = cam.CenterX + txt.OffsetX
		t.Y = cam.CenterY + txt.OffsetY
		txt.Width, txt.Height = h.measure(txt)
	})
}

func (h *HUDSystem) measure(txt *component.Text) (float64, float64) {
	scale := txt.Scale
	if scale <= 0 {
		scale = 1
	}
	if h.face != nil {
		tw, th := text.Measure(txt.Value, h.face, 0)
		return tw * scale, th * scale
	}
	return float64(len(txt.Value)*glyphW) * scale, glyphH * scale
}

// textHit reports whether the screen point (sx, sy) is inside a visible
// text's box. Text is drawn centered on its transform.
func textHit(w *ecs.World, role component.TextRole, sx, sy float64) bool {
	cam, vp, ok := activeCamera(w)
	if !ok {
		return false
	}
	hit := false
	ecs.ForEach2(w, component.TextComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, txt *component.Text, t *component.Transform) {
		if hit || txt.Role != role || txt.Hidden {
			return
		}
		cx, cy := WorldToScreen(cam, vp, t.X, t.Y)
		hit = sx >= cx-txt.Width/2 && sx <= cx+txt.Width/2 && sy >= cy-txt.Height/2 && sy <= cy+txt.Height/2
	})
	return hit
}
