package scene

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rockfall/common"
	"github.com/milk9111/rockfall/ecs/component"
)

// Factory creates a scene instance on first entry.
type Factory func() Scene

// Manager owns the registered scenes and the one that is running. Scene
// requests raised during an update are applied after that update returns.
type Manager struct {
	cfg       Config
	factories map[string]Factory
	instances map[string]Scene
	sleeping  map[string]bool

	active  string
	current Scene
	pending *component.SceneRequest

	width  int
	height int
}

func NewManager(cfg Config) *Manager {
	m := &Manager{
		factories: map[string]Factory{},
		instances: map[string]Scene{},
		sleeping:  map[string]bool{},
		width:     common.BaseWidth,
		height:    common.BaseHeight,
	}
	cfg.Host = m
	m.cfg = cfg
	return m
}

func (m *Manager) Register(name string, f Factory) {
	m.factories[name] = f
}

// Active returns the name of the running scene.
func (m *Manager) Active() string {
	return m.active
}

// Current returns the running scene, or nil before Start.
func (m *Manager) Current() Scene {
	return m.current
}

// Config returns the configuration scenes are entered with.
func (m *Manager) Config() Config {
	return m.cfg
}

// Start exits every scene, sleeping or not, and enters name fresh.
func (m *Manager) Start(name string) error {
	if _, ok := m.factories[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
	for n, s := range m.instances {
		s.Exit()
		delete(m.instances, n)
	}
	clear(m.sleeping)
	m.current = nil
	m.active = ""
	return m.enter(name)
}

// Switch leaves the running scene, sleeping it when it can sleep, and moves
// to name, waking it if it was asleep.
func (m *Manager) Switch(name string) error {
	if _, ok := m.factories[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
	if name == m.active {
		return m.Restart()
	}

	if m.current != nil {
		if sl, ok := m.current.(Sleeper); ok {
			sl.Sleep()
			m.sleeping[m.active] = true
		} else {
			m.current.Exit()
			delete(m.instances, m.active)
		}
	}
	log.Printf("[scene] %s -> %s", m.active, name)
	m.active, m.current = "", nil

	if m.sleeping[name] {
		s := m.instances[name]
		delete(m.sleeping, name)
		m.active, m.current = name, s
		s.(Sleeper).Wake()
		s.Resize(m.width, m.height)
		return nil
	}
	return m.enter(name)
}

// Restart runs Exit then Enter on the running scene. A scene that fails to
// enter again is dropped and nothing is left running.
func (m *Manager) Restart() error {
	if m.current == nil {
		return nil
	}
	name := m.active
	log.Printf("[scene] restart %s", name)
	m.current.Exit()
	if err := m.current.Enter(m.cfg); err != nil {
		delete(m.instances, name)
		m.active, m.current = "", nil
		return fmt.Errorf("scene: restart %s: %w", name, err)
	}
	m.current.Resize(m.width, m.height)
	return nil
}

func (m *Manager) enter(name string) error {
	s := m.factories[name]()
	if err := s.Enter(m.cfg); err != nil {
		return fmt.Errorf("scene: enter %s: %w", name, err)
	}
	m.instances[name] = s
	m.active, m.current = name, s
	s.Resize(m.width, m.height)
	return nil
}

// Request queues a switch or restart. Only the first request of a frame is
// kept.
func (m *Manager) Request(req component.SceneRequest) {
	if m.pending != nil {
		return
	}
	m.pending = &req
}

// SetCharacter changes the character used by every later entry.
func (m *Manager) SetCharacter(name, sheet string) {
	m.cfg.Character = name
	m.cfg.Sheet = sheet
}

func (m *Manager) Update() error {
	if m.current == nil {
		return nil
	}
	if err := m.current.Update(); err != nil {
		return err
	}

	if m.pending == nil {
		return nil
	}
	req := *m.pending
	m.pending = nil
	switch req.Kind {
	case component.RequestRestart:
		return m.Restart()
	default:
		return m.Switch(req.Target)
	}
}

func (m *Manager) Draw(screen *ebiten.Image) {
	if m.current != nil {
		m.current.Draw(screen)
	}
}

func (m *Manager) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == m.width && height == m.height) {
		return
	}
	m.width, m.height = width, height
	if m.current != nil {
		m.current.Resize(width, height)
	}
}

// Size is the last known screen size.
func (m *Manager) Size() (int, int) {
	return m.width, m.height
}
