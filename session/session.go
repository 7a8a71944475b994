// Package session holds the survival challenge state machine: lives, the
// countdown contract and the Playing/Won/Lost phases.
package session

import (
	"math"
	"time"
)

type Phase int

const (
	Playing Phase = iota
	Won
	Lost
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further lives or time can change.
func (p Phase) Terminal() bool {
	return p == Won || p == Lost
}

type Config struct {
	Lives    int           `yaml:"lives"`
	Duration time.Duration `yaml:"duration"`
}

func DefaultConfig() Config {
	return Config{Lives: 3, Duration: 60 * time.Second}
}

// Session is owned by exactly one survival scene instance. Lives and phase
// only change through Hit and Expire. Restart builds a new Session.
type Session struct {
	cfg   Config
	lives int
	phase Phase

	hooks []func(Phase)
}

func New(cfg Config) *Session {
	def := DefaultConfig()
	if cfg.Lives <= 0 {
		cfg.Lives = def.Lives
	}
	if cfg.Duration <= 0 {
		cfg.Duration = def.Duration
	}
	return &Session{cfg: cfg, lives: cfg.Lives, phase: Playing}
}

func (s *Session) Config() Config { return s.cfg }
func (s *Session) Lives() int     { return s.lives }
func (s *Session) Phase() Phase   { return s.phase }

// OnPhase registers fn to run after every phase change.
func (s *Session) OnPhase(fn func(Phase)) {
	if fn == nil {
		return
	}
	s.hooks = append(s.hooks, fn)
}

// Hit takes one life when the session is still playing and the countdown has
// time left. A collision that lands after the countdown reached zero is
// ignored. Returns true when a life was taken.
func (s *Session) Hit(remaining time.Duration) bool {
	if s.phase != Playing || remaining <= 0 || s.lives <= 0 {
		return false
	}
	s.lives--
	if s.lives == 0 {
		s.setPhase(Lost)
	}
	return true
}

// Expire is called when the countdown fires. Only a playing session can win.
func (s *Session) Expire() bool {
	if s.phase != Playing {
		return false
	}
	s.setPhase(Won)
	return true
}

func (s *Session) setPhase(p Phase) {
	s.phase = p
	for _, fn := range s.hooks {
		fn(p)
	}
}

// SecondsLeft is the whole-second countdown display for a remaining time.
func SecondsLeft(remaining time.Duration) int {
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(float64(remaining) / float64(time.Second)))
}
