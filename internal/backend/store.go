// Package backend is a development server for onboarding screens. It serves
// screens from a YAML fixture and counts reported conversions.
package backend

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"onborder/internal/screen"
)

// ErrScreenNotFound is returned for ids missing from the fixture.
var ErrScreenNotFound = errors.New("screen not found")

//go:embed default.yaml
var defaultFixture []byte

// fixture is the on-disk layout. Screens are kept untyped so they are served
// exactly as written.
type fixture struct {
	Onboarding int                      `yaml:"onboarding"`
	Screens    []map[string]interface{} `yaml:"screens"`
}

type entry struct {
	raw    []byte
	screen screen.Screen
}

// Store holds the fixture screens and per-screen conversion counts.
type Store struct {
	onboarding int
	screens    map[int]entry

	mu          sync.Mutex
	conversions map[int]int
}

// Load parses a YAML fixture. Every screen must decode as a client would
// decode it, ids must be unique, and the onboarding id must name one of them.
func Load(data []byte) (*Store, error) {
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("could not parse fixture: %w", err)
	}

	s := &Store{
		onboarding:  f.Onboarding,
		screens:     make(map[int]entry, len(f.Screens)),
		conversions: make(map[int]int),
	}
	for i, doc := range f.Screens {
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("screen %d: could not encode: %w", i, err)
		}
		decoded, err := screen.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("screen %d: %w", i, err)
		}
		if _, ok := s.screens[decoded.ID]; ok {
			return nil, fmt.Errorf("screen %d: duplicate id %d", i, decoded.ID)
		}
		s.screens[decoded.ID] = entry{raw: raw, screen: decoded}
	}
	if _, ok := s.screens[s.onboarding]; !ok {
		return nil, fmt.Errorf("onboarding screen %d: %w", s.onboarding, ErrScreenNotFound)
	}
	return s, nil
}

// LoadFile loads a fixture from path.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read fixture: %w", err)
	}
	return Load(data)
}

// Default loads the built-in fixture.
func Default() (*Store, error) {
	return Load(defaultFixture)
}

// OnboardingScreen returns the onboarding screen and its wire encoding.
func (s *Store) OnboardingScreen() (screen.Screen, []byte) {
	e := s.screens[s.onboarding]
	return e.screen, e.raw
}

// Screen returns the screen with the given id.
func (s *Store) Screen(id int) (screen.Screen, error) {
	e, ok := s.screens[id]
	if !ok {
		return screen.Screen{}, ErrScreenNotFound
	}
	return e.screen, nil
}

// LogConversion counts one conversion for the screen and returns the new total.
func (s *Store) LogConversion(id int) (int, error) {
	if _, ok := s.screens[id]; !ok {
		return 0, ErrScreenNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversions[id]++
	return s.conversions[id], nil
}

// Conversions returns the number of conversions counted for the screen.
func (s *Store) Conversions(id int) (int, error) {
	if _, ok := s.screens[id]; !ok {
		return 0, ErrScreenNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversions[id], nil
}
