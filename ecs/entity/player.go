package entity

import (
	"fmt"

	"github.com/milk9111/rockfall/assets"
	"github.com/milk9111/rockfall/ecs"
)

// NewPlayerAt builds the player prefab at (x, y) wearing the given character
// sheet.
func NewPlayerAt(w *ecs.World, art *assets.Library, sheet string, x, y float64) (ecs.Entity, error) {
	player, err := buildEntity(w, &buildContext{PrefabPath: "player.yaml", Art: art, Sheet: sheet})
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, player, x, y); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return player, nil
}
