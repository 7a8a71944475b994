package records

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application directory used by the game.
const AppName = "rockfall"

const (
	resultsObject = "results"
	profileObject = "profile"
	lastCharProp  = "last_character"
)

// Result is the survival history of one character.
type Result struct {
	Wins      int `yaml:"wins"`
	Losses    int `yaml:"losses"`
	BestLives int `yaml:"best_lives"`
}

type profile struct {
	LastCharacter string `yaml:"last_character"`
}

// Store keeps per-character results and the last selected character.
// A Store without a gdata manager only remembers things in memory.
type Store struct {
	mu      sync.Mutex
	manager *gdata.Manager
	results map[string]Result
	last    string
}

// Open opens a persistent store under appName. When the platform storage
// cannot be opened the store degrades to memory-only and the error is logged.
func Open(appName string) *Store {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[records] storage unavailable, keeping results in memory: %v", err)
		return New(nil)
	}
	return New(m)
}

// New creates a store on top of m, which may be nil.
func New(m *gdata.Manager) *Store {
	s := &Store{manager: m, results: map[string]Result{}}
	if m != nil {
		var p profile
		if err := s.load(profileObject, lastCharProp, &p); err != nil {
			log.Printf("[records] load profile: %v", err)
		}
		s.last = p.LastCharacter
	}
	return s
}

// Persistent reports whether results survive a restart.
func (s *Store) Persistent() bool {
	return s != nil && s.manager != nil
}

func (s *Store) Result(character string) Result {
	if s == nil {
		return Result{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultLocked(character)
}

func (s *Store) resultLocked(character string) Result {
	key := propKey(character)
	if r, ok := s.results[key]; ok {
		return r
	}
	var r Result
	if err := s.load(resultsObject, key, &r); err != nil {
		log.Printf("[records] load %s: %v", key, err)
	}
	s.results[key] = r
	return r
}

// RecordWin counts a survived session and keeps the best lives remaining.
func (s *Store) RecordWin(character string, lives int) error {
	return s.update(character, func(r *Result) {
		r.Wins++
		r.BestLives = max(r.BestLives, lives)
	})
}

func (s *Store) RecordLoss(character string) error {
	return s.update(character, func(r *Result) { r.Losses++ })
}

func (s *Store) update(character string, fn func(*Result)) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.resultLocked(character)
	fn(&r)
	key := propKey(character)
	s.results[key] = r
	if err := s.save(resultsObject, key, r); err != nil {
		return fmt.Errorf("records: save %s: %w", key, err)
	}
	return nil
}

func (s *Store) SetLastCharacter(character string) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = character
	if err := s.save(profileObject, lastCharProp, profile{LastCharacter: character}); err != nil {
		return fmt.Errorf("records: save last character: %w", err)
	}
	return nil
}

func (s *Store) LastCharacter() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Store) load(object, prop string, out any) error {
	if s.manager == nil || !s.manager.ObjectPropExists(object, prop) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(object, prop)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

func (s *Store) save(object, prop string, v any) error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return s.manager.SaveObjectProp(object, prop, data)
}

// propKey maps a display name to a storage key: "Jack" -> "jack".
func propKey(character string) string {
	key := strings.ToLower(strings.TrimSpace(character))
	key = strings.ReplaceAll(key, " ", "_")
	if key == "" {
		return "unknown"
	}
	return key
}
