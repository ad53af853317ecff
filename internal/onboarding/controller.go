// Package onboarding owns the state of one onboarding session: whether the
// user is still onboarding, the screen-load state machine, and the dispatch
// of button actions.
//
// A Controller is driven from a single goroutine (the UI loop). The only work
// that leaves that goroutine is the screen fetch, which runs as a Fetch and
// comes back through Apply, and the conversion report, which is detached.
package onboarding

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"onborder/internal/screen"
)

// DefaultConversionTimeout bounds a detached conversion report.
const DefaultConversionTimeout = 5 * time.Second

// Repository is the collaborator the controller fetches screens from and
// reports conversions to.
type Repository interface {
	OnboardingScreen(ctx context.Context) (screen.Screen, error)
	LogConversion(ctx context.Context, screenID int) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostics logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// WithExitHook registers fn to run once when the session leaves onboarding.
func WithExitHook(fn func()) Option {
	return func(c *Controller) {
		c.onExit = fn
	}
}

// WithConversionTimeout bounds each detached conversion report.
func WithConversionTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.conversionTimeout = d
	}
}

// Controller holds the session state. It is not safe for concurrent use;
// Fetch.Run is the part meant to run elsewhere.
type Controller struct {
	repo              Repository
	log               zerolog.Logger
	onExit            func()
	conversionTimeout time.Duration

	session    uint64
	fetched    bool
	onboarding bool
	state      State

	tasks sync.WaitGroup
}

// New creates a controller for a fresh session: onboarding, loading, nothing
// fetched yet.
func New(repo Repository, opts ...Option) *Controller {
	c := &Controller{
		repo:              repo,
		log:               zerolog.Nop(),
		conversionTimeout: DefaultConversionTimeout,
		session:           1,
		onboarding:        true,
		state:             loading(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch is a pending screen fetch bound to the session that started it.
type Fetch struct {
	session uint64
	repo    Repository
}

// Result is the outcome of a Fetch, to be handed back to Controller.Apply.
type Result struct {
	session uint64
	Screen  screen.Screen
	Err     error
}

// Run performs the fetch. It does not touch the controller and may run on
// any goroutine.
func (f Fetch) Run(ctx context.Context) Result {
	s, err := f.repo.OnboardingScreen(ctx)
	return Result{session: f.session, Screen: s, Err: err}
}

// Fetch starts the session's screen fetch. It returns false if a fetch was
// already started or the session is over; a session fetches at most once.
func (c *Controller) Fetch() (Fetch, bool) {
	if c.fetched || !c.onboarding {
		return Fetch{}, false
	}
	c.fetched = true
	c.log.Debug().Uint64("session", c.session).Msg("fetching onboarding screen")
	return Fetch{session: c.session, repo: c.repo}, true
}

// Apply moves the load state from loading to loaded or error. Results from
// a discarded or finished session, or arriving after the state is already
// terminal, are ignored; Apply reports whether r was applied.
func (c *Controller) Apply(r Result) bool {
	if r.session != c.session || !c.onboarding || c.state.Status.Terminal() {
		c.log.Debug().
			Uint64("session", c.session).
			Uint64("result_session", r.session).
			Msg("ignoring stale screen result")
		return false
	}
	if r.Err != nil {
		c.log.Warn().Err(r.Err).Msg("could not load onboarding screen")
		c.state = failed(r.Err)
		return true
	}
	c.log.Info().
		Int("screen_id", r.Screen.ID).
		Int("blocks", len(r.Screen.Content.Blocks)).
		Str("version", r.Screen.Content.Version).
		Msg("onboarding screen loaded")
	c.state = loaded(r.Screen)
	return true
}

// State returns the current screen-load state.
func (c *Controller) State() State {
	return c.state
}

// Onboarding reports whether the session is still in onboarding mode.
func (c *Controller) Onboarding() bool {
	return c.onboarding
}

// Dispatch runs the action named by a button's link for the given screen.
// Unknown links are inert: nothing is reported and the session does not
// change. It reports whether the link named a known action.
func (c *Controller) Dispatch(screenID int, link string) bool {
	action, ok := ParseAction(link)
	if !ok {
		c.log.Debug().Str("link", link).Int("screen_id", screenID).Msg("ignoring unknown button action")
		return false
	}
	if !c.onboarding {
		return true
	}

	switch action {
	case ActionCompleteOnboarding:
		c.logConversion(screenID)
		c.ExitOnboarding()
	}
	return true
}

// ExitOnboarding ends onboarding unconditionally. Later calls do nothing.
func (c *Controller) ExitOnboarding() {
	if !c.onboarding {
		return
	}
	c.onboarding = false
	c.log.Info().Uint64("session", c.session).Msg("leaving onboarding")
	if c.onExit != nil {
		c.onExit()
	}
}

// Discard abandons the session without running the exit hook. Any fetch
// still in flight will be ignored by Apply.
func (c *Controller) Discard() {
	c.session++
	c.onboarding = false
}

// Wait blocks until detached conversion reports finish or ctx is done. It
// exists for process shutdown; report outcomes are never returned.
func (c *Controller) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.tasks.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// logConversion reports a conversion in the background. Its failure is only
// logged and never delays the caller.
func (c *Controller) logConversion(screenID int) {
	repo, log, timeout := c.repo, c.log, c.conversionTimeout
	c.tasks.Add(1)
	go func() {
		defer c.tasks.Done()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := repo.LogConversion(ctx, screenID); err != nil {
			log.Warn().Err(err).Int("screen_id", screenID).Msg("could not log conversion")
			return
		}
		log.Debug().Int("screen_id", screenID).Msg("conversion logged")
	}()
}
