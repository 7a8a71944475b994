package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// CameraSettingsSpec frames a scene. Mode is "fixed" or "follow".
type CameraSettingsSpec struct {
	Mode    string  `yaml:"mode"`
	Zoom    float64 `yaml:"zoom"`
	Extent  float64 `yaml:"extent"`
	AnchorX float64 `yaml:"anchor_x"`
	AnchorY float64 `yaml:"anchor_y"`
}

type SessionSpec struct {
	Lives    int           `yaml:"lives"`
	Duration time.Duration `yaml:"duration"`
}

// SpawnSpec bounds are inclusive integers.
type SpawnSpec struct {
	Interval time.Duration `yaml:"interval"`
	MinX     int           `yaml:"min_x"`
	MaxX     int           `yaml:"max_x"`
	StartY   int           `yaml:"start_y"`
	MinSpeed int           `yaml:"min_speed"`
	MaxSpeed int           `yaml:"max_speed"`
	Prefab   string        `yaml:"prefab"`
	Script   string        `yaml:"script"`
}

// HUDTextSpec places a label relative to the camera center.
type HUDTextSpec struct {
	Role    string    `yaml:"role"`
	Text    string    `yaml:"text"`
	OffsetX float64   `yaml:"offset_x"`
	OffsetY float64   `yaml:"offset_y"`
	Color   YAMLColor `yaml:"color"`
	Scale   float64   `yaml:"scale"`
	Hidden  bool      `yaml:"hidden"`
}

type FallingRocksSpec struct {
	Level      string             `yaml:"level"`
	ExitTarget string             `yaml:"exit_target"`
	Camera     CameraSettingsSpec `yaml:"camera"`
	Session    SessionSpec        `yaml:"session"`
	Spawn      SpawnSpec          `yaml:"spawn"`
	HUD        []HUDTextSpec      `yaml:"hud"`
	WinText    string             `yaml:"win_text"`
	LoseText   string             `yaml:"lose_text"`
}

func LoadFallingRocksSpec() (*FallingRocksSpec, error) {
	spec, err := LoadSpec[FallingRocksSpec]("falling_rocks.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type TriggerSpec struct {
	Layer       string  `yaml:"layer"`
	Target      string  `yaml:"target"`
	RadiusTiles float64 `yaml:"radius_tiles"`
	Indicator   string  `yaml:"indicator"`
}

type HubSpec struct {
	Level   string             `yaml:"level"`
	Camera  CameraSettingsSpec `yaml:"camera"`
	Trigger TriggerSpec        `yaml:"trigger"`
}

func LoadHubSpec() (*HubSpec, error) {
	spec, err := LoadSpec[HubSpec]("hub.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CharacterSpec struct {
	Name        string `yaml:"name"`
	Sheet       string `yaml:"sheet"`
	Description string `yaml:"description"`
}

type CharactersSpec struct {
	Characters []CharacterSpec `yaml:"characters"`
}

func LoadCharactersSpec() (*CharactersSpec, error) {
	spec, err := LoadSpec[CharactersSpec]("characters.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Find looks a character up by name, case-insensitively.
func (c *CharactersSpec) Find(name string) (CharacterSpec, bool) {
	if c == nil {
		return CharacterSpec{}, false
	}
	for _, ch := range c.Characters {
		if strings.EqualFold(ch.Name, name) {
			return ch, true
		}
	}
	return CharacterSpec{}, false
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
