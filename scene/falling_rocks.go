package scene

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rockfall/clock"
	"github.com/milk9111/rockfall/common"
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
	"github.com/milk9111/rockfall/ecs/entity"
	"github.com/milk9111/rockfall/ecs/system"
	"github.com/milk9111/rockfall/levels"
	"github.com/milk9111/rockfall/prefabs"
	"github.com/milk9111/rockfall/session"
)

// FallingRocksScene is the survival mini-game. Every Enter builds a fresh
// world, clock, session and spawner, so a restart is just Exit then Enter.
type FallingRocksScene struct {
	cfg     Config
	spec    *prefabs.FallingRocksSpec
	stage   *stage
	clock   *clock.Clock
	session *system.SessionSystem
	spawner *system.HazardSpawner
	player  ecs.Entity

	overlay *ebitenui.UI
}

func NewFallingRocksScene() Scene {
	return &FallingRocksScene{}
}

func (f *FallingRocksScene) Enter(cfg Config) error {
	sheet, err := characterSheet(cfg)
	if err != nil {
		return err
	}
	spec, err := prefabs.LoadFallingRocksSpec()
	if err != nil {
		return err
	}
	lvl, err := levels.Load(spec.Level)
	if err != nil {
		return fmt.Errorf("falling rocks: %w", err)
	}

	st := newStage(cfg)
	w := st.world
	spawnX, spawnY, err := entity.LoadLevelToWorld(w, cfg.Art, lvl)
	if err != nil {
		return fmt.Errorf("falling rocks: %w", err)
	}
	player, err := entity.NewPlayerAt(w, cfg.Art, sheet, spawnX, spawnY)
	if err != nil {
		return fmt.Errorf("falling rocks: %w", err)
	}
	if st.camera, err = entity.NewCamera(w, spec.Camera, common.BaseWidth, common.BaseHeight); err != nil {
		return fmt.Errorf("falling rocks: %w", err)
	}
	for _, hud := range spec.HUD {
		if _, err := entity.NewHUDText(w, hud); err != nil {
			return fmt.Errorf("falling rocks: %w", err)
		}
	}

	clk := clock.New()
	sess := session.New(session.Config{Lives: spec.Session.Lives, Duration: spec.Session.Duration})
	sessionSys := system.NewSessionSystem(sess, clk, spec.ExitTarget, system.SessionTexts{Win: spec.WinText, Lose: spec.LoseText})
	sessionSys.OnFinish = f.recordOutcome

	policy := system.NewSpawnPolicy(spec.Spawn, newRand(cfg.Seed))
	art := cfg.Art
	spawner := system.NewHazardSpawner(spec.Spawn.Interval, policy, func(w *ecs.World, p system.SpawnParams) (ecs.Entity, error) {
		return entity.NewHazard(w, art, spec.Spawn.Prefab, p.X, p.Y, p.Speed)
	})

	// The countdown is scheduled first so it fires ahead of a spawn due on
	// the same tick.
	sessionSys.Arm(w)
	spawner.Start(w, clk)

	st.scheduler = ecs.NewScheduler(
		system.NewInputSystem(cfg.Input),
		system.NewMovementSystem(),
		system.NewPhysicsSystem(),
		system.NewCollisionResolver(sessionSys),
		sessionSys,
		system.NewAnimationSystem(),
		system.NewCameraSystem(),
		system.NewHUDSystem(st.face()),
	)

	f.cfg = cfg
	f.spec = spec
	f.stage = st
	f.clock = clk
	f.session = sessionSys
	f.spawner = spawner
	f.player = player
	f.overlay = nil
	log.Printf("[falling_rocks] entered as %s: %d lives, %s", cfg.Character, sess.Lives(), sess.Config().Duration)
	return nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (f *FallingRocksScene) recordOutcome(phase session.Phase, lives int) {
	var err error
	switch phase {
	case session.Won:
		err = f.cfg.Records.RecordWin(f.cfg.Character, lives)
	case session.Lost:
		err = f.cfg.Records.RecordLoss(f.cfg.Character)
	}
	if err != nil {
		log.Printf("[falling_rocks] record %s: %v", phase, err)
	}
}

func (f *FallingRocksScene) Update() error {
	if f.stage == nil {
		return nil
	}
	f.clock.Advance(clock.FrameDuration)
	f.stage.update(f.cfg)

	if f.session.Session().Phase().Terminal() && f.cfg.Art != nil {
		if f.overlay == nil {
			f.overlay = f.newFinishOverlay()
		}
		f.overlay.Update()
	}
	return nil
}

func (f *FallingRocksScene) newFinishOverlay() *ebitenui.UI {
	sess := f.session.Session()
	title := f.spec.LoseText
	if sess.Phase() == session.Won {
		title = f.spec.WinText
	}
	subtitle := ""
	if f.cfg.Records != nil {
		r := f.cfg.Records.Result(f.cfg.Character)
		subtitle = fmt.Sprintf("%s: %d wins, %d losses, best %d lives", f.cfg.Character, r.Wins, r.Losses, r.BestLives)
	}
	return newMenuUI(f.stage.face(), title, subtitle, []menuButton{
		{label: "Restart", onClick: func() {
			request(f.cfg, component.SceneRequest{Kind: component.RequestRestart})
		}},
		{label: "Return", onClick: func() {
			request(f.cfg, component.SceneRequest{Kind: component.RequestSwitch, Target: f.spec.ExitTarget})
		}},
	})
}

func (f *FallingRocksScene) Draw(screen *ebiten.Image) {
	f.stage.draw(screen)
	if f.overlay != nil {
		f.overlay.Draw(screen)
	}
}

func (f *FallingRocksScene) Resize(width, height int) {
	f.stage.resize(width, height)
}

func (f *FallingRocksScene) Exit() {
	if f.clock != nil {
		f.clock.RemoveAll()
	}
	f.stage = nil
	f.clock = nil
	f.session = nil
	f.spawner = nil
	f.overlay = nil
}

// World exposes the running world, or nil after Exit.
func (f *FallingRocksScene) World() *ecs.World {
	if f.stage == nil {
		return nil
	}
	return f.stage.world
}

func (f *FallingRocksScene) Session() *system.SessionSystem {
	return f.session
}

func (f *FallingRocksScene) Clock() *clock.Clock {
	return f.clock
}

func (f *FallingRocksScene) Spawner() *system.HazardSpawner {
	return f.spawner
}

func (f *FallingRocksScene) Player() ecs.Entity {
	return f.player
}
