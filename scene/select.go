package scene

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rockfall/ecs/component"
	"github.com/milk9111/rockfall/prefabs"
)

// SelectScene lets the player pick a character before entering the hub.
type SelectScene struct {
	cfg   Config
	chars *prefabs.CharactersSpec
	ui    *ebitenui.UI
}

func NewSelectScene() Scene {
	return &SelectScene{}
}

func (s *SelectScene) Enter(cfg Config) error {
	chars, err := prefabs.LoadCharactersSpec()
	if err != nil {
		return err
	}
	if len(chars.Characters) == 0 {
		return fmt.Errorf("select: characters.yaml lists no characters")
	}
	s.cfg = cfg
	s.chars = chars

	if cfg.Art == nil {
		return nil
	}
	last := cfg.Records.LastCharacter()
	buttons := make([]menuButton, 0, len(chars.Characters))
	for _, ch := range chars.Characters {
		buttons = append(buttons, menuButton{
			label:   characterLabel(ch, last),
			onClick: func() { s.Choose(ch.Name) },
		})
	}
	s.ui = newMenuUI(cfg.Art.Face(), "Choose your character", "", buttons)
	return nil
}

func characterLabel(ch prefabs.CharacterSpec, last string) string {
	label := ch.Name
	if ch.Description != "" {
		label += ": " + ch.Description
	}
	if last != "" && last == ch.Name {
		label += " (last played)"
	}
	return label
}

// Choose selects a character by name and heads to the hub.
func (s *SelectScene) Choose(name string) {
	ch, ok := s.chars.Find(name)
	if !ok {
		log.Printf("[select] unknown character %q", name)
		return
	}
	if s.cfg.Host != nil {
		s.cfg.Host.SetCharacter(ch.Name, ch.Sheet)
	}
	if err := s.cfg.Records.SetLastCharacter(ch.Name); err != nil {
		log.Printf("[select] %v", err)
	}
	request(s.cfg, component.SceneRequest{Kind: component.RequestSwitch, Target: Hub})
}

func (s *SelectScene) Update() error {
	if s.ui != nil {
		s.ui.Update()
	}
	return nil
}

func (s *SelectScene) Draw(screen *ebiten.Image) {
	if s.ui != nil {
		s.ui.Draw(screen)
	}
}

func (s *SelectScene) Resize(width, height int) {}

func (s *SelectScene) Exit() {
	s.ui = nil
}
