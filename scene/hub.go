package scene

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rockfall/common"
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/entity"
	"github.com/milk9111/rockfall/ecs/system"
	"github.com/milk9111/rockfall/levels"
	"github.com/milk9111/rockfall/prefabs"
)

// HubScene is the walkable overworld. It sleeps while a mini-game runs so the
// player comes back to where they left.
type HubScene struct {
	cfg    Config
	stage  *stage
	player ecs.Entity
	asleep bool
}

func NewHubScene() Scene {
	return &HubScene{}
}

func (h *HubScene) Enter(cfg Config) error {
	sheet, err := characterSheet(cfg)
	if err != nil {
		return err
	}
	spec, err := prefabs.LoadHubSpec()
	if err != nil {
		return err
	}
	lvl, err := levels.Load(spec.Level)
	if err != nil {
		return fmt.Errorf("hub: %w", err)
	}

	st := newStage(cfg)
	w := st.world
	spawnX, spawnY, err := entity.LoadLevelToWorld(w, cfg.Art, lvl)
	if err != nil {
		return fmt.Errorf("hub: %w", err)
	}
	player, err := entity.NewPlayerAt(w, cfg.Art, sheet, spawnX, spawnY)
	if err != nil {
		return fmt.Errorf("hub: %w", err)
	}
	if st.camera, err = entity.NewCamera(w, spec.Camera, common.BaseWidth, common.BaseHeight); err != nil {
		return fmt.Errorf("hub: %w", err)
	}
	radius := spec.Trigger.RadiusTiles * float64(lvl.Tile())
	if _, err := entity.NewTriggerZone(w, lvl, spec.Trigger.Layer, spec.Trigger.Target, radius); err != nil {
		return fmt.Errorf("hub: %w", err)
	}
	if _, err := entity.NewIndicator(w, cfg.Art, spec.Trigger.Indicator); err != nil {
		return fmt.Errorf("hub: %w", err)
	}

	st.scheduler = ecs.NewScheduler(
		system.NewInputSystem(cfg.Input),
		system.NewMovementSystem(),
		system.NewPhysicsSystem(),
		system.NewProximitySystem(),
		system.NewAnimationSystem(),
		system.NewCameraSystem(),
	)

	h.cfg = cfg
	h.stage = st
	h.player = player
	h.asleep = false
	log.Printf("[hub] entered as %s at (%.0f, %.0f)", cfg.Character, spawnX, spawnY)
	return nil
}

func (h *HubScene) Update() error {
	if h.asleep {
		return nil
	}
	h.stage.update(h.cfg)
	return nil
}

func (h *HubScene) Draw(screen *ebiten.Image) {
	h.stage.draw(screen)
}

func (h *HubScene) Resize(width, height int) {
	h.stage.resize(width, height)
}

func (h *HubScene) Exit() {
	h.stage = nil
	h.asleep = false
}

func (h *HubScene) Sleep() {
	h.asleep = true
}

func (h *HubScene) Wake() {
	h.asleep = false
}

// World exposes the hub world for inspection.
func (h *HubScene) World() *ecs.World {
	if h.stage == nil {
		return nil
	}
	return h.stage.world
}

// Player returns the hub's player entity.
func (h *HubScene) Player() ecs.Entity {
	return h.player
}
