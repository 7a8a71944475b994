package system

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/rockfall/clock"
	"github.com/milk9111/rockfall/ecs"
	"github.com/milk9111/rockfall/prefabs"
)

// SpawnParams is where one hazard starts and how fast it falls.
type SpawnParams struct {
	X     float64
	Y     float64
	Speed float64
}

// SpawnPolicy picks the parameters of the next hazard.
type SpawnPolicy interface {
	Next() (SpawnParams, error)
}

// SpawnRange bounds are inclusive integers.
type SpawnRange struct {
	MinX     int
	MaxX     int
	StartY   int
	MinSpeed int
	MaxSpeed int
}

func SpawnRangeFromSpec(spec prefabs.SpawnSpec) SpawnRange {
	return SpawnRange{
		MinX:     spec.MinX,
		MaxX:     spec.MaxX,
		StartY:   spec.StartY,
		MinSpeed: spec.MinSpeed,
		MaxSpeed: spec.MaxSpeed,
	}
}

// UniformPolicy draws x and speed uniformly from their inclusive ranges.
type UniformPolicy struct {
	Range SpawnRange
	Rand  *rand.Rand
}

func NewUniformPolicy(r SpawnRange, rng *rand.Rand) *UniformPolicy {
	return &UniformPolicy{Range: r, Rand: rng}
}

func (p *UniformPolicy) Next() (SpawnParams, error) {
	return SpawnParams{
		X:     float64(between(p.Rand, p.Range.MinX, p.Range.MaxX)),
		Y:     float64(p.Range.StartY),
		Speed: float64(between(p.Rand, p.Range.MinSpeed, p.Range.MaxSpeed)),
	}, nil
}

func between(rng *rand.Rand, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	if rng == nil {
		return lo + rand.IntN(hi-lo+1)
	}
	return lo + rng.IntN(hi-lo+1)
}

func roll(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}

// ScriptPolicy runs a tengo script per spawn. The script sees roll_x and
// roll_speed in [0, 1) plus the range bounds, and must define x, y and
// speed.
type ScriptPolicy struct {
	Range    SpawnRange
	Rand     *rand.Rand
	compiled *tengo.Compiled
}

func NewScriptPolicy(scriptPath string, r SpawnRange, rng *rand.Rand) (*ScriptPolicy, error) {
	src, err := prefabs.LoadScript(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("spawner: load script %s: %w", scriptPath, err)
	}
	return compileScriptPolicy(src, r, rng)
}

func compileScriptPolicy(src []byte, r SpawnRange, rng *rand.Rand) (*ScriptPolicy, error) {
	script := tengo.NewScript(src)
	globals := map[string]any{
		"roll_x":     0.0,
		"roll_speed": 0.0,
		"min_x":      r.MinX,
		"max_x":      r.MaxX,
		"start_y":    r.StartY,
		"min_speed":  r.MinSpeed,
		"max_speed":  r.MaxSpeed,
	}
	for name, v := range globals {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("spawner: script global %s: %w", name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("spawner: compile script: %w", err)
	}
	return &ScriptPolicy{Range: r, Rand: rng, compiled: compiled}, nil
}

func (p *ScriptPolicy) Next() (SpawnParams, error) {
	if err := p.compiled.Set("roll_x", roll(p.Rand)); err != nil {
		return SpawnParams{}, err
	}
	if err := p.compiled.Set("roll_speed", roll(p.Rand)); err != nil {
		return SpawnParams{}, err
	}
	if err := p.compiled.Run(); err != nil {
		return SpawnParams{}, fmt.Errorf("spawner: run script: %w", err)
	}
	for _, name := range []string{"x", "y", "speed"} {
		if !p.compiled.IsDefined(name) {
			return SpawnParams{}, fmt.Errorf("spawner: script did not define %q", name)
		}
	}
	return SpawnParams{
		X:     p.compiled.Get("x").Float(),
		Y:     p.compiled.Get("y").Float(),
		Speed: p.compiled.Get("speed").Float(),
	}, nil
}

// fallbackPolicy uses the uniform draw whenever the primary policy fails.
type fallbackPolicy struct {
	primary  SpawnPolicy
	fallback SpawnPolicy
	warned   bool
}

func (p *fallbackPolicy) Next() (SpawnParams, error) {
	params, err := p.primary.Next()
	if err == nil {
		return params, nil
	}
	if !p.warned {
		log.Printf("[spawner] script failed, using uniform spawn: %v", err)
		p.warned = true
	}
	return p.fallback.Next()
}

// NewSpawnPolicy prefers the prefab's spawn script and falls back to a uniform draw
// when there is none or it does not compile.
func NewSpawnPolicy(spec prefabs.SpawnSpec, rng *rand.Rand) SpawnPolicy {
	r := SpawnRangeFromSpec(spec)
	uniform := NewUniformPolicy(r, rng)
	if spec.Script == "" {
		return uniform
	}
	scripted, err := NewScriptPolicy(spec.Script, r, rng)
	if err != nil {
		log.Printf("[spawner] %v; using uniform spawn", err)
		return uniform
	}
	return &fallbackPolicy{primary: scripted, fallback: uniform}
}

// SpawnFunc creates one hazard.
type SpawnFunc func(w *ecs.World, p SpawnParams) (ecs.Entity, error)

// HazardSpawner drops a hazard on every tick of a repeating clock event. It
// never looks at the session; cancelling the clock is what stops it.
type HazardSpawner struct {
	Interval time.Duration
	Policy   SpawnPolicy
	Spawn    SpawnFunc

	event   *clock.Event
	spawned int
}

func NewHazardSpawner(interval time.Duration, policy SpawnPolicy, spawn SpawnFunc) *HazardSpawner {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &HazardSpawner{Interval: interval, Policy: policy, Spawn: spawn}
}

// Start arms the repeating spawn event on clk.
func (s *HazardSpawner) Start(w *ecs.World, clk *clock.Clock) *clock.Event {
	s.event = clk.Schedule(s.Interval, func() { s.tick(w) }, true)
	return s.event
}

func (s *HazardSpawner) tick(w *ecs.World) {
	params, err := s.Policy.Next()
	if err != nil {
		log.Printf("[spawner] next: %v", err)
		return
	}
	if _, err := s.Spawn(w, params); err != nil {
		log.Printf("[spawner] spawn: %v", err)
		return
	}
	s.spawned++
}

func (s *HazardSpawner) Event() *clock.Event {
	return s.event
}

// Spawned is the number of hazards created so far.
func (s *HazardSpawner) Spawned() int {
	return s.spawned
}
