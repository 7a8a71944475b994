// Package scene hosts the game's scenes and moves between them.
package scene

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rockfall/assets"
	"github.com/milk9111/rockfall/ecs/component"
	"github.com/milk9111/rockfall/ecs/system"
	"github.com/milk9111/rockfall/prefabs"
	"github.com/milk9111/rockfall/records"
)

// Scene names.
const (
	Select       = "select"
	Hub          = "hub"
	FallingRocks = "falling_rocks"
)

var (
	ErrNoCharacter  = errors.New("scene: no character selected")
	ErrUnknownScene = errors.New("scene: unknown scene")
)

// Scene is one screen of the game. Enter builds everything the scene needs
// from scratch and Exit drops it.
type Scene interface {
	Enter(cfg Config) error
	Update() error
	Draw(screen *ebiten.Image)
	Resize(width, height int)
	Exit()
}

// Sleeper is implemented by scenes that keep their state while another scene
// runs. Sleeping scenes are woken instead of entered again.
type Sleeper interface {
	Sleep()
	Wake()
}

// Host is the side of the manager that scenes talk to.
type Host interface {
	Request(req component.SceneRequest)
	SetCharacter(name, sheet string)
}

// Config is handed to every scene on entry.
type Config struct {
	Character string
	// Sheet overrides the character's sprite sheet from characters.yaml.
	Sheet string

	// Art is nil when running headless.
	Art     *assets.Library
	Records *records.Store
	Input   system.InputSource
	Host    Host

	// Seed drives hazard placement. Zero seeds from the clock.
	Seed  uint64
	Debug bool
}

// characterSheet resolves the sprite sheet for the configured character.
func characterSheet(cfg Config) (string, error) {
	if cfg.Character == "" {
		return "", ErrNoCharacter
	}
	if cfg.Sheet != "" {
		return cfg.Sheet, nil
	}
	chars, err := prefabs.LoadCharactersSpec()
	if err != nil {
		return "", err
	}
	ch, ok := chars.Find(cfg.Character)
	if !ok {
		return "", fmt.Errorf("scene: unknown character %q: %w", cfg.Character, ErrNoCharacter)
	}
	return ch.Sheet, nil
}

func request(cfg Config, req component.SceneRequest) {
	if cfg.Host != nil {
		cfg.Host.Request(req)
	}
}
