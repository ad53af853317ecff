package ui

import (
	"time"

	"onborder/internal/onboarding"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// AppModel is the root model. It starts in onboarding mode and switches to
// the main view once the controller leaves onboarding.
type AppModel struct {
	Mode       AppMode
	Ctrl       *onboarding.Controller
	Onboarding *OnboardingView
	Main       *MainView
	Keys       KeyMap

	// FetchTimeout bounds the screen fetch; zero leaves it to the repository.
	FetchTimeout time.Duration

	log zerolog.Logger
}

// Option configures an AppModel.
type Option func(*AppModel)

// WithFetchTimeout bounds the onboarding screen fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(m *AppModel) {
		m.FetchTimeout = d
	}
}

// WithLogger sets the logger used for mode changes.
func WithLogger(log zerolog.Logger) Option {
	return func(m *AppModel) {
		m.log = log
	}
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Init implements tea.Model. It starts the session's single screen fetch.
func (a *appModelAdapter) Init() tea.Cmd {
	cmds := []tea.Cmd{a.currentView().Init()}
	if f, ok := a.Ctrl.Fetch(); ok {
		cmds = append(cmds, fetchScreenCmd(f, a.FetchTimeout))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Both views track the size so a mode switch renders at the right size.
		a.Onboarding.Update(msg)
		a.Main.Update(msg)
		return a, nil
	case ScreenLoadedMsg:
		if a.Ctrl.Apply(msg.Result) {
			a.Onboarding.SetState(a.Ctrl.State())
		}
		return a, nil
	case ButtonPressedMsg:
		a.Ctrl.Dispatch(msg.ScreenID, msg.Link)
		return a, a.syncMode()
	case ExitOnboardingMsg:
		a.Ctrl.ExitOnboarding()
		return a, a.syncMode()
	case tea.KeyMsg:
		if key.Matches(msg, a.Keys.Quit) {
			a.Ctrl.Discard()
			return a, tea.Quit
		}
	}

	v, cmd := a.currentView().Update(msg)
	a.setCurrentView(v)
	return a, cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	return a.currentView().View()
}

// syncMode switches to the main view once onboarding has ended.
func (a *appModelAdapter) syncMode() tea.Cmd {
	if a.Mode != ModeOnboarding || a.Ctrl.Onboarding() {
		return nil
	}
	a.Mode = ModeMain
	a.log.Debug().Stringer("mode", a.Mode).Msg("switching mode")
	return a.Main.Init()
}

func (a *appModelAdapter) currentView() View {
	if a.Mode == ModeMain {
		return a.Main
	}
	return a.Onboarding
}

func (a *appModelAdapter) setCurrentView(v View) {
	switch a.Mode {
	case ModeOnboarding:
		if o, ok := v.(*OnboardingView); ok {
			a.Onboarding = o
		}
	case ModeMain:
		if m, ok := v.(*MainView); ok {
			a.Main = m
		}
	}
}

// NewAppModel creates the root application model around ctrl.
func NewAppModel(ctrl *onboarding.Controller, opts ...Option) *AppModel {
	keys := DefaultKeyMap()
	m := &AppModel{
		Mode:       ModeOnboarding,
		Ctrl:       ctrl,
		Onboarding: NewOnboardingView(keys),
		Main:       NewMainView(keys),
		Keys:       keys,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if !ctrl.Onboarding() {
		m.Mode = ModeMain
	}
	return m
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}
