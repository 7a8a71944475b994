package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rockfall/assets"
	"github.com/milk9111/rockfall/common"
	"github.com/milk9111/rockfall/ecs/system"
	"github.com/milk9111/rockfall/prefabs"
	"github.com/milk9111/rockfall/records"
	"github.com/milk9111/rockfall/scene"
)

func main() {
	character := flag.String("character", "", "character name from prefabs/characters.yaml; skips character select")
	start := flag.String("scene", "", "scene to start in: select, hub or falling_rocks")
	debug := flag.Bool("debug", false, "draw physics shapes and FPS")
	watch := flag.Bool("watch", false, "restart the running scene when prefabs or scripts change")
	seed := flag.Uint64("seed", 0, "hazard placement seed (0 seeds from the clock)")
	persist := flag.Bool("records", true, "persist results between runs")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	var store *records.Store
	if *persist {
		store = records.Open(records.AppName)
	} else {
		store = records.New(nil)
	}

	cfg := scene.Config{
		Art:     assets.NewLibrary(),
		Records: store,
		Input:   system.KeyboardSource{},
		Seed:    *seed,
		Debug:   *debug,
	}
	if *character != "" {
		chars, err := prefabs.LoadCharactersSpec()
		if err != nil {
			log.Fatal(err)
		}
		ch, ok := chars.Find(*character)
		if !ok {
			log.Fatalf("unknown character %q", *character)
		}
		cfg.Character, cfg.Sheet = ch.Name, ch.Sheet
		if err := store.SetLastCharacter(ch.Name); err != nil {
			log.Printf("[records] %v", err)
		}
	}

	name := *start
	if name == "" {
		name = scene.Select
		if cfg.Character != "" {
			name = scene.Hub
		}
	}
	if name != scene.Select && cfg.Character == "" {
		log.Fatalf("scene %q needs a character; pass -character", name)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("rockfall")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(cfg, name, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
