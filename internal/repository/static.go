package repository

import (
	"context"
	"sync"

	"onborder/internal/screen"
)

// Static is an in-memory repository. It serves a fixed screen (or a fixed
// error) and records conversions instead of sending them anywhere.
type Static struct {
	screen screen.Screen
	err    error

	mu          sync.Mutex
	conversions []int
}

// EmptyScreen is the screen served by NewStatic when none is given.
func EmptyScreen() screen.Screen {
	return screen.Screen{
		ID:   1,
		Name: "Test",
		Content: screen.Content{
			Time:    1,
			Blocks:  []screen.Block{},
			Version: "",
		},
	}
}

// NewStatic returns a repository serving s.
func NewStatic(s screen.Screen) *Static {
	return &Static{screen: s}
}

// NewFailing returns a repository whose fetch always fails with err.
func NewFailing(err error) *Static {
	return &Static{err: err}
}

// OnboardingScreen returns the configured screen or error.
func (s *Static) OnboardingScreen(ctx context.Context) (screen.Screen, error) {
	if err := ctx.Err(); err != nil {
		return screen.Screen{}, err
	}
	if s.err != nil {
		return screen.Screen{}, s.err
	}
	return s.screen, nil
}

// LogConversion records screenID.
func (s *Static) LogConversion(_ context.Context, screenID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversions = append(s.conversions, screenID)
	return nil
}

// Conversions returns the recorded screen ids in call order.
func (s *Static) Conversions() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.conversions...)
}
