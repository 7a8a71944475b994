package scene

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rockfall/ecs/component"
)

// fakeScene records lifecycle calls.
type fakeScene struct {
	name  string
	log   *[]string
	cfg   Config
	err   error
	onUpd func(cfg Config)
	w, h  int
}

func (f *fakeScene) Enter(cfg Config) error {
	*f.log = append(*f.log, "enter "+f.name)
	f.cfg = cfg
	return f.err
}

func (f *fakeScene) Update() error {
	*f.log = append(*f.log, "update "+f.name)
	if f.onUpd != nil {
		f.onUpd(f.cfg)
	}
	return nil
}

func (f *fakeScene) Draw(screen *ebiten.Image) {}
func (f *fakeScene) Resize(w, h int) { f.w, f.h = w, h }
func (f *fakeScene) Exit() { *f.log = append(*f.log, "exit "+f.name) }

type fakeSleeper struct {
	fakeScene
}

func (f *fakeSleeper) Sleep() { *f.log = append(*f.log, "sleep "+f.name) }
func (f *fakeSleeper) Wake() { *f.log = append(*f.log, "wake "+f.name) }

func newFakeManager(t *testing.T) (*Manager, *[]string, map[string]Scene) {
	t.Helper()
	var calls []string
	made := map[string]Scene{}
	m := NewManager(Config{Character: "Jack"})
	m.Register("a", func() Scene {
		s := &fakeScene{name: "a", log: &calls}
		made["a"] = s
		return s
	})
	m.Register("sleepy", func() Scene {
		s := &fakeSleeper{fakeScene{name: "sleepy", log: &calls}}
		made["sleepy"] = s
		return s
	})
	return m, &calls, made
}

func equalCalls(got []string, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestManagerSwitchSleepsAndWakes(t *testing.T) {
	m, calls, made := newFakeManager(t)
	if err := m.Start("sleepy"); err != nil {
		t.Fatal(err)
	}
	first := made["sleepy"]

	steps := []struct {
		name   string
		target string
		active string
		want   []string
	}{
		{"sleep_then_enter", "a", "a", []string{"enter sleepy", "sleep sleepy", "enter a"}},
		{"exit_then_wake", "sleepy", "sleepy", []string{"enter sleepy", "sleep sleepy", "enter a", "exit a", "wake sleepy"}},
	}
	for _, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			if err := m.Switch(s.target); err != nil {
				t.Fatal(err)
			}
			if m.Active() != s.active {
				t.Fatalf("active = %q", m.Active())
			}
			if !equalCalls(*calls, s.want...) {
				t.Fatalf("calls = %v, want %v", *calls, s.want)
			}
		})
	}
	if m.Current() != first {
		t.Fatalf("waking must reuse the sleeping instance")
	}
}

func TestManagerRestartReentersSameScene(t *testing.T) {
	m, calls, _ := newFakeManager(t)
	if err := m.Start("a"); err != nil {
		t.Fatal(err)
	}
	if err := m.Restart(); err != nil {
		t.Fatal(err)
	}
	if !equalCalls(*calls, "enter a", "exit a", "enter a") {
		t.Fatalf("calls = %v", *calls)
	}

	// Switching to the running scene is a restart.
	if err := m.Switch("a"); err != nil {
		t.Fatal(err)
	}
	if !equalCalls(*calls, "enter a", "exit a", "enter a", "exit a", "enter a") {
		t.Fatalf("calls = %v", *calls)
	}
}

func TestManagerUnknownAndFailingScenes(t *testing.T) {
	m, _, _ := newFakeManager(t)
	if err := m.Start("nope"); !errors.Is(err, ErrUnknownScene) {
		t.Fatalf("start unknown = %v", err)
	}
	if err := m.Switch("nope"); !errors.Is(err, ErrUnknownScene) {
		t.Fatalf("switch unknown = %v", err)
	}

	var calls []string
	m.Register("broken", func() Scene { return &fakeScene{name: "broken", log: &calls, err: ErrNoCharacter} })
	if err := m.Start("broken"); !errors.Is(err, ErrNoCharacter) {
		t.Fatalf("enter error should be wrapped, got %v", err)
	}
	if m.Current() != nil {
		t.Fatalf("a scene that fails to enter must not become active")
	}
}

func TestManagerFailedReentryLeavesNothingRunning(t *testing.T) {
	m, calls, made := newFakeManager(t)
	if err := m.Start("a"); err != nil {
		t.Fatal(err)
	}
	made["a"].(*fakeScene).err = ErrNoCharacter

	if err := m.Restart(); !errors.Is(err, ErrNoCharacter) {
		t.Fatalf("restart error = %v", err)
	}
	if m.Current() != nil || m.Active() != "" {
		t.Fatalf("failed restart left %q running", m.Active())
	}
	if err := m.Update(); err != nil {
		t.Fatal(err)
	}
	if !equalCalls(*calls, "enter a", "exit a", "enter a") {
		t.Fatalf("calls = %v", *calls)
	}

	// A later start builds a fresh instance.
	if err := m.Start("a"); err != nil {
		t.Fatal(err)
	}
	if m.Active() != "a" || m.Current() != made["a"] {
		t.Fatalf("start after failure: active = %q", m.Active())
	}
}

func TestManagerFailedSwitchKeepsSleeper(t *testing.T) {
	m, calls, made := newFakeManager(t)
	m.Register("broken", func() Scene { return &fakeScene{name: "broken", log: calls, err: ErrNoCharacter} })
	if err := m.Start("sleepy"); err != nil {
		t.Fatal(err)
	}
	hub := made["sleepy"]

	if err := m.Switch("broken"); !errors.Is(err, ErrNoCharacter) {
		t.Fatalf("switch error = %v", err)
	}
	if m.Current() != nil || m.Active() != "" {
		t.Fatalf("failed switch left %q running", m.Active())
	}

	if err := m.Switch("sleepy"); err != nil {
		t.Fatal(err)
	}
	if m.Current() != hub {
		t.Fatalf("the sleeping scene should be woken, not rebuilt")
	}
	if !equalCalls(*calls, "enter sleepy", "sleep sleepy", "enter broken", "wake sleepy") {
		t.Fatalf("calls = %v", *calls)
	}
}

func TestManagerAppliesRequestsAfterUpdate(t *testing.T) {
	m, calls, made := newFakeManager(t)
	if err := m.Start("a"); err != nil {
		t.Fatal(err)
	}
	a := made["a"].(*fakeScene)
	a.onUpd = func(cfg Config) {
		cfg.Host.Request(component.SceneRequest{Kind: component.RequestSwitch, Target: "sleepy"})
		cfg.Host.Request(component.SceneRequest{Kind: component.RequestRestart})
	}

	if err := m.Update(); err != nil {
		t.Fatal(err)
	}
	if m.Active() != "sleepy" {
		t.Fatalf("first request should win, active = %q", m.Active())
	}
	if !equalCalls(*calls, "enter a", "update a", "exit a", "enter sleepy") {
		t.Fatalf("calls = %v", *calls)
	}

	if err := m.Update(); err != nil {
		t.Fatal(err)
	}
	if m.Active() != "sleepy" {
		t.Fatalf("requests are consumed, active = %q", m.Active())
	}
}

func TestManagerResizeAndCharacter(t *testing.T) {
	m, _, made := newFakeManager(t)
	m.Resize(800, 600)
	if err := m.Start("a"); err != nil {
		t.Fatal(err)
	}
	a := made["a"].(*fakeScene)
	if a.w != 800 || a.h != 600 {
		t.Fatalf("entered scene should get the current size, got %dx%d", a.w, a.h)
	}
	m.Resize(1024, 768)
	if a.w != 1024 || a.h != 768 {
		t.Fatalf("resize not forwarded, got %dx%d", a.w, a.h)
	}

	m.SetCharacter("Alex", "characters/alex.png")
	if err := m.Restart(); err != nil {
		t.Fatal(err)
	}
	if a.cfg.Character != "Alex" || a.cfg.Sheet != "characters/alex.png" {
		t.Fatalf("restart should carry the new character, got %+v", a.cfg)
	}
}
