package entity

import (
	"fmt"
	"image"

	"github.com/milk9111/rockfall/assets"
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/ecs/component"
	"github.com/milk9111/rockfall/levels"
)

// LoadLevelToWorld creates tile sprites for every layer, merged static
// colliders for physics and boundary layers, and the level bounds. It
// returns the player spawn point, falling back to the map center.
func LoadLevelToWorld(world *ecs.World, art *assets.Library, lvl *levels.Level) (float64, float64, error) {
	if lvl == nil {
		return 0, 0, fmt.Errorf("level: nil level")
	}
	tileSize := float64(lvl.Tile())
	mapW, mapH := lvl.PixelSize()

	boundsEntity := world.CreateEntity()
	if err := ecs.Add(world, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  mapW,
		Height: mapH,
	}); err != nil {
		return 0, 0, fmt.Errorf("level: add bounds: %w", err)
	}

	for i := 0; i < lvl.LayerCount(); i++ {
		layer := lvl.LayerAt(i)
		if art != nil && lvl.Tileset != "" {
			if err := addTileSprites(world, art, lvl.Tileset, layer); err != nil {
				return 0, 0, err
			}
		}

		if layer.Meta.Zone || !(layer.Meta.Physics || layer.Meta.Boundary) {
			continue
		}
		category := component.CategorySolid
		if layer.Meta.Boundary {
			category = component.CategoryBoundary
		}
		if err := addMergedTileColliders(world, layer.Data(), lvl.Width, lvl.Height, tileSize, category); err != nil {
			return 0, 0, fmt.Errorf("level: layer %q colliders: %w", layer.Meta.Name, err)
		}
	}

	if x, y, ok := lvl.Spawn(); ok {
		return x, y, nil
	}
	return mapW / 2, mapH / 2, nil
}

func addTileSprites(world *ecs.World, art *assets.Library, tileset string, layer levels.Layer) error {
	img, err := art.Image(tileset)
	if err != nil {
		return fmt.Errorf("level: tileset: %w", err)
	}
	imgW := img.Bounds().Dx()

	var addErr error
	layer.ForEachTile(func(tile levels.Tile) {
		if addErr != nil {
			return
		}
		tilesX := imgW / tile.Size
		if tilesX <= 0 {
			return
		}
		srcX := (tile.Index % tilesX) * tile.Size
		srcY := (tile.Index / tilesX) * tile.Size

		e := world.CreateEntity()
		if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{
			X:      tile.X(),
			Y:      tile.Y(),
			ScaleX: 1,
			ScaleY: 1,
		}); err != nil {
			addErr = err
			return
		}
		if err := ecs.Add(world, e, component.SpriteComponent.Kind(), &component.Sprite{
			Image:     img,
			Source:    image.Rect(srcX, srcY, srcX+tile.Size, srcY+tile.Size),
			UseSource: true,
		}); err != nil {
			addErr = err
			return
		}
		addErr = ecs.Add(world, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer.Index()})
	})
	return addErr
}

// addMergedTileColliders covers the filled tiles of a layer with as few
// static boxes as possible by growing each rectangle right, then down.
func addMergedTileColliders(world *ecs.World, layer []int, width, height int, tileSize float64, category component.BodyCategory) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	filled := func(idx int) bool { return idx < len(layer) && !visited[idx] && layer[idx] > 0 }

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !filled(index(x, y)) {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width && filled(index(x2, y)); x2++ {
				maxW++
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					if !filled(index(x2, y2)) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					visited[index(xx, yy)] = true
				}
			}

			e := world.CreateEntity()
			if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{
				X:      float64(x) * tileSize,
				Y:      float64(y) * tileSize,
				ScaleX: 1,
				ScaleY: 1,
			}); err != nil {
				return err
			}
			if err := ecs.Add(world, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Category:     category,
				Width:        float64(maxW) * tileSize,
				Height:       float64(maxH) * tileSize,
				Friction:     0.9,
				Static:       true,
				AlignTopLeft: true,
			}); err != nil {
				return err
			}
		}
	}

	return nil
}

// NewTriggerZone collects the centers of the colliding tiles on layerName.
func NewTriggerZone(world *ecs.World, lvl *levels.Level, layerName, target string, radius float64) (ecs.Entity, error) {
	layer, err := lvl.Layer(layerName)
	if err != nil {
		return 0, fmt.Errorf("trigger zone: %w", err)
	}

	zone := &component.TriggerZone{Target: target, Radius: radius}
	layer.ForEachTile(func(tile levels.Tile) {
		if !tile.Collides {
			return
		}
		zone.Points = append(zone.Points, component.Point{X: tile.CenterX(), Y: tile.CenterY()})
	})

	e := world.CreateEntity()
	if err := ecs.Add(world, e, component.TriggerZoneComponent.Kind(), zone); err != nil {
		return 0, fmt.Errorf("trigger zone: add: %w", err)
	}
	return e, nil
}
