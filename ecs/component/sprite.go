package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite draws Image, or its Source sub-rect, with the origin point placed
// on the transform.
type Sprite struct {
	Image     *ebiten.Image
	Source    image.Rectangle
	UseSource bool
	OriginX   float64
	OriginY   float64
	Hidden    bool
}

var SpriteComponent = NewComponent[Sprite]()
