package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
)

// InputSource abstracts the keyboard and mouse so systems can be driven from
// tests.
type InputSource interface {
	Held(keys ...ebiten.Key) bool
	JustPressed(keys ...ebiten.Key) bool
	Clicked() bool
	Cursor() (int, int)
}

// KeyboardSource reads ebiten's live input state.
type KeyboardSource struct{}

func (KeyboardSource) Held(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func (KeyboardSource) JustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func (KeyboardSource) Clicked() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func (KeyboardSource) Cursor() (int, int) {
	return ebiten.CursorPosition()
}

// Bindings maps actions to keys. Each direction accepts two key sets.
type Bindings struct {
	Up       []ebiten.Key
	Down     []ebiten.Key
	Left     []ebiten.Key
	Right    []ebiten.Key
	Restart  []ebiten.Key
	Exit     []ebiten.Key
	Activate []ebiten.Key
}

func DefaultBindings() Bindings {
	return Bindings{
		Up:       []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW},
		Down:     []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS},
		Left:     []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA},
		Right:    []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD},
		Restart:  []ebiten.Key{ebiten.KeyR},
		Exit:     []ebiten.Key{ebiten.KeyX},
		Activate: []ebiten.Key{ebiten.KeyX},
	}
}

type InputSystem struct {
	source   InputSource
	bindings Bindings
}

func NewInputSystem(source InputSource) *InputSystem {
	if source == nil {
		source = KeyboardSource{}
	}
	return &InputSystem{source: source, bindings: DefaultBindings()}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	b := i.bindings
	cx, cy := i.source.Cursor()
	snapshot := component.Input{
		Up:              i.source.Held(b.Up...),
		Down:            i.source.Held(b.Down...),
		Left:            i.source.Held(b.Left...),
		Right:           i.source.Held(b.Right...),
		RestartPressed:  i.source.JustPressed(b.Restart...),
		ExitPressed:     i.source.JustPressed(b.Exit...),
		ActivatePressed: i.source.JustPressed(b.Activate...),
		ClickPressed:    i.source.Clicked(),
		CursorX:         float64(cx),
		CursorY:         float64(cy),
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = snapshot
	})
}
