package system

import (
	"fmt"
	"log"

	"github.com/milk9111/rockfall/clock"
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
	"github.com/milk9111/rockfall/session"
)

// SessionTexts are the strings the session system writes into the HUD.
type SessionTexts struct {
	Win  string
	Lose string
}

// SessionSystem binds a survival session to the world: it owns the
// countdown, takes hits for the collision resolver, keeps the HUD in sync
// and turns restart and exit input into scene requests.
type SessionSystem struct {
	session    *session.Session
	clock      *clock.Clock
	countdown  *clock.Event
	world      *ecs.World
	texts      SessionTexts
	exitTarget string

	// OnFinish runs once when the session reaches Won or Lost.
	OnFinish func(phase session.Phase, lives int)
}

func NewSessionSystem(s *session.Session, clk *clock.Clock, exitTarget string, texts SessionTexts) *SessionSystem {
	if texts.Win == "" {
		texts.Win = "You Win!"
	}
	if texts.Lose == "" {
		texts.Lose = "Game Over"
	}
	sys := &SessionSystem{session: s, clock: clk, texts: texts, exitTarget: exitTarget}
	s.OnPhase(sys.phaseChanged)
	return sys
}

// Arm starts the countdown against w. Expiry while playing wins the game.
func (s *SessionSystem) Arm(w *ecs.World) *clock.Event {
	s.world = w
	s.countdown = s.clock.Schedule(s.session.Config().Duration, func() {
		s.session.Expire()
	}, false)
	return s.countdown
}

func (s *SessionSystem) Session() *session.Session {
	return s.session
}

func (s *SessionSystem) Countdown() *clock.Event {
	return s.countdown
}

// TakeHit applies a player hit with the countdown's remaining time, so a hit
// landing after expiry costs nothing.
func (s *SessionSystem) TakeHit() bool {
	return s.session.Hit(s.countdown.Remaining())
}

func (s *SessionSystem) phaseChanged(p session.Phase) {
	if !p.Terminal() {
		return
	}
	s.clock.RemoveAll()
	log.Printf("[session] %s with %d lives", p, s.session.Lives())

	if p == session.Lost && s.world != nil {
		e := s.world.CreateEntity()
		_ = ecs.Add(s.world, e, component.FreezeComponent.Kind(), &component.Freeze{})
	}
	if s.OnFinish != nil {
		s.OnFinish(p, s.session.Lives())
	}
}

func (s *SessionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.syncTexts(w)

	player, ok := w.First(component.InputComponent.Kind())
	if !ok {
		return
	}
	input, _ := ecs.Get(w, player, component.InputComponent.Kind())

	restart := input.RestartPressed
	exit := input.ExitPressed
	if input.ClickPressed {
		restart = restart || textHit(w, component.RoleRestart, input.CursorX, input.CursorY)
		exit = exit || textHit(w, component.RoleExit, input.CursorX, input.CursorY)
	}

	switch {
	case restart:
		RequestScene(w, component.SceneRequest{Kind: component.RequestRestart})
	case exit:
		RequestScene(w, component.SceneRequest{Kind: component.RequestSwitch, Target: s.exitTarget})
	}
}

func (s *SessionSystem) syncTexts(w *ecs.World) {
	phase := s.session.Phase()
	ecs.ForEach(w, component.TextComponent.Kind(), func(e ecs.Entity, txt *component.Text) {
		switch txt.Role {
		case component.RoleLives:
			txt.Value = fmt.Sprintf("Lives: %d", s.session.Lives())
		case component.RoleTimer:
			txt.Value = fmt.Sprintf("Time: %d", session.SecondsLeft(s.countdown.Remaining()))
		case component.RoleFinish:
			switch phase {
			case session.Won:
				txt.Value = s.texts.Win
				txt.Hidden = false
			case session.Lost:
				txt.Value = s.texts.Lose
				txt.Hidden = false
			default:
				txt.Hidden = true
			}
		}
	})
}
