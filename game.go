package main

import (
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rockfall/prefabs"
	"github.com/milk9111/rockfall/scene"
)

var backgroundColor = color.NRGBA{R: 0x1b, G: 0x1b, B: 0x24, A: 0xff}

type Game struct {
	scenes  *scene.Manager
	watcher *prefabs.Watcher

	// broken is the scene a reload failed to restart. The next reload
	// starts it again.
	broken string
}

// NewGame registers every scene and enters start. With watch set, edits to
// prefabs and spawn scripts restart the running scene.
func NewGame(cfg scene.Config, start string, watch bool) (*Game, error) {
	m := scene.NewManager(cfg)
	m.Register(scene.Select, scene.NewSelectScene)
	m.Register(scene.Hub, scene.NewHubScene)
	m.Register(scene.FallingRocks, scene.NewFallingRocksScene)

	if err := m.Start(start); err != nil {
		return nil, err
	}

	g := &Game{scenes: m}
	if watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("[game] hot reload disabled: %v", err)
		} else {
			g.watcher = w
			log.Printf("[game] watching %s for changes", prefabs.Dir)
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	if g.reloadRequested() {
		if err := g.reload(); err != nil {
			log.Printf("[game] reload: %v", err)
		}
	}
	return g.scenes.Update()
}

func (g *Game) reload() error {
	if g.scenes.Current() == nil && g.broken != "" {
		if err := g.scenes.Start(g.broken); err != nil {
			return err
		}
		g.broken = ""
		return nil
	}
	name := g.scenes.Active()
	if err := g.scenes.Restart(); err != nil {
		g.broken = name
		return err
	}
	return nil
}

// reloadRequested drains the watcher without blocking.
func (g *Game) reloadRequested() bool {
	if g.watcher == nil {
		return false
	}
	changed := false
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return changed
			}
			log.Printf("[game] %s changed", path)
			changed = true
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return changed
			}
			log.Printf("[game] watcher: %v", err)
		default:
			return changed
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.scenes.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	g.scenes.Resize(int(outsideWidth), int(outsideHeight))
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
