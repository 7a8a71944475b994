package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/rockfall/common"
)

//go:embed *.json
var LevelsFS embed.FS

// EntitySpawn is the entity type used for the player start point.
const EntitySpawn = "player_spawn"

var ErrLayerNotFound = errors.New("levels: layer not found")

// Level is a tile map. Each layer is a flat row-major slice of Width*Height
// tile values where 0 is empty and n is tile n-1 of the tileset.
type Level struct {
	Width     int         `json:"width" jsonschema:"minimum=1"`
	Height    int         `json:"height" jsonschema:"minimum=1"`
	TileSize  int         `json:"tile_size,omitempty" jsonschema:"description=Tile edge in world units. Defaults to 16."`
	Tileset   string      `json:"tileset" jsonschema:"description=Assets-relative tileset image."`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

// LayerMeta flags a layer. Tiles on physics, boundary and zone layers
// collide.
type LayerMeta struct {
	Name     string `json:"name"`
	Physics  bool   `json:"physics,omitempty"`
	Boundary bool   `json:"boundary,omitempty" jsonschema:"description=Boundary tiles absorb hazards."`
	Zone     bool   `json:"zone,omitempty" jsonschema:"description=Zone tiles are trigger points and have no body."`
}

type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// Load reads a level, preferring a copy on disk under levels/ so maps can be
// edited without a rebuild.
func Load(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean)))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(data)
}

// LoadLevelFromFS reads a level from the embedded maps only.
func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, cleanLevelPath(name))
	if err != nil {
		return nil, fmt.Errorf("levels: read level: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("levels: invalid level dimensions: %dx%d", l.Width, l.Height)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("levels: layer %d has %d tiles, want %d", i, len(layer), l.Width*l.Height)
		}
	}
	return nil
}

func (l *Level) Tile() int {
	if l.TileSize <= 0 {
		return common.TileSize
	}
	return l.TileSize
}

// PixelSize is the map size in world units.
func (l *Level) PixelSize() (float64, float64) {
	ts := float64(l.Tile())
	return float64(l.Width) * ts, float64(l.Height) * ts
}

// Spawn returns the player start point, if the map has one.
func (l *Level) Spawn() (float64, float64, bool) {
	for _, ent := range l.Entities {
		if ent.Type == EntitySpawn {
			return float64(ent.X), float64(ent.Y), true
		}
	}
	return 0, 0, false
}

func (l *Level) LayerCount() int {
	return len(l.Layers)
}

// LayerAt returns layer i with its metadata. Missing metadata is zero.
func (l *Level) LayerAt(i int) Layer {
	var meta LayerMeta
	if i < len(l.LayerMeta) {
		meta = l.LayerMeta[i]
	}
	return Layer{level: l, index: i, Meta: meta, data: l.Layers[i]}
}

// Layer finds a layer by name.
func (l *Level) Layer(name string) (Layer, error) {
	for i := range l.Layers {
		if i < len(l.LayerMeta) && l.LayerMeta[i].Name == name {
			return l.LayerAt(i), nil
		}
	}
	return Layer{}, fmt.Errorf("%w: %q", ErrLayerNotFound, name)
}

type Layer struct {
	level *Level
	index int
	Meta  LayerMeta
	data  []int
}

func (ly Layer) Index() int { return ly.index }

// Data is the raw row-major tile values.
func (ly Layer) Data() []int { return ly.data }

// ForEachTile visits every non-empty tile in row-major order.
func (ly Layer) ForEachTile(fn func(Tile)) {
	if ly.level == nil {
		return
	}
	collides := ly.Meta.Physics || ly.Meta.Boundary || ly.Meta.Zone
	size := ly.level.Tile()
	for i, v := range ly.data {
		if v <= 0 {
			continue
		}
		fn(Tile{
			Col:      i % ly.level.Width,
			Row:      i / ly.level.Width,
			Index:    v - 1,
			Size:     size,
			Collides: collides,
		})
	}
}

// Tile is one non-empty cell of a layer.
type Tile struct {
	Col      int
	Row      int
	Index    int
	Size     int
	Collides bool
}

func (t Tile) X() float64 { return float64(t.Col * t.Size) }
func (t Tile) Y() float64 { return float64(t.Row * t.Size) }

func (t Tile) CenterX() float64 { return t.X() + float64(t.Size)/2 }
func (t Tile) CenterY() float64 { return t.Y() + float64(t.Size)/2 }

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
