package component

import (
	"github.com/hajimehoshi/ebiten/v2"
)

type AnimationDef struct {
	Name       string
	Row        int
	ColStart   int // start column (frame 0)
	FrameCount int
	FrameW     int
	FrameH     int
	FPS        float64
	Loop       bool
}

// Animation plays frames out of a sheet. Stopping keeps the current frame as
// the static pose.
type Animation struct {
	Sheet      *ebiten.Image
	Defs       map[string]AnimationDef
	Current    string
	Frame      int
	FrameTimer int
	Playing    bool
}

// Play switches to name and starts it from its first frame unless it is
// already the running animation.
func (a *Animation) Play(name string) {
	if a.Playing && a.Current == name {
		return
	}
	if a.Current != name {
		a.Frame = 0
		a.FrameTimer = 0
	}
	a.Current = name
	a.Playing = true
}

func (a *Animation) Stop() {
	a.Playing = false
	a.FrameTimer = 0
}

var AnimationComponent = NewComponent[Animation]()
