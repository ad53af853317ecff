package ui

import (
	"onborder/internal/onboarding"
	"onborder/internal/screen"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Fallback entry screen shown when the onboarding screen could not be loaded.
const (
	fallbackTitle  = "OnBorder App"
	fallbackButton = "Lets Go →"
)

// OnboardingView renders the screen-load state: a spinner while loading,
// the screen's blocks once loaded, and the fallback entry screen on error.
// It never mutates the state itself; button presses are sent to the app as
// messages.
type OnboardingView struct {
	State onboarding.State

	keys     KeyMap
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	focus    FocusManager
	layout   renderedScreen
	width    int
	height   int
}

// Ensure OnboardingView implements View.
var _ View = (*OnboardingView)(nil)

// NewOnboardingView creates a view in the loading state.
func NewOnboardingView(keys KeyMap) *OnboardingView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	vp := viewport.New(defaultWidth, defaultHeight)
	vp.KeyMap = viewportKeyMap(keys)

	o := &OnboardingView{
		State:    onboarding.State{Status: onboarding.StatusLoading},
		keys:     keys,
		spinner:  s,
		viewport: vp,
		help:     newHelp(),
		focus:    NewFocusManager(nil),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	o.fitViewport()
	return o
}

// Init implements View.
func (o *OnboardingView) Init() tea.Cmd {
	return o.spinner.Tick
}

// SetState replaces the rendered state. A loaded screen starts scrolled to
// the top with its first button focused.
func (o *OnboardingView) SetState(st onboarding.State) {
	o.State = st
	if st.Status != onboarding.StatusLoaded {
		return
	}
	var order []int
	for i, b := range st.Screen.Blocks() {
		if _, ok := b.Data.(screen.Button); ok {
			order = append(order, i)
		}
	}
	o.focus = NewFocusManager(order)
	o.refresh()
	o.viewport.GotoTop()
}

// Focused returns the focused button, if any.
func (o *OnboardingView) Focused() (screen.Button, bool) {
	i := o.focus.Focused()
	blocks := o.State.Screen.Blocks()
	if o.State.Status != onboarding.StatusLoaded || i < 0 || i >= len(blocks) {
		return screen.Button{}, false
	}
	b, ok := blocks[i].Data.(screen.Button)
	return b, ok
}

// Update implements View.
func (o *OnboardingView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		o.width = msg.Width
		o.height = msg.Height
		o.viewport.Width = msg.Width
		o.help.Width = msg.Width
		o.fitViewport()
		if o.State.Status == onboarding.StatusLoaded {
			o.refresh()
		}
		return o, nil
	case spinner.TickMsg:
		if o.State.Status != onboarding.StatusLoading {
			return o, nil
		}
		var cmd tea.Cmd
		o.spinner, cmd = o.spinner.Update(msg)
		return o, cmd
	case tea.KeyMsg:
		switch o.State.Status {
		case onboarding.StatusLoaded:
			return o.updateLoaded(msg)
		case onboarding.StatusError:
			if key.Matches(msg, o.keys.Press) {
				return o, exitOnboardingCmd
			}
		}
		return o, nil
	}

	if o.State.Status == onboarding.StatusLoaded {
		var cmd tea.Cmd
		o.viewport, cmd = o.viewport.Update(msg)
		return o, cmd
	}
	return o, nil
}

func (o *OnboardingView) updateLoaded(msg tea.KeyMsg) (View, tea.Cmd) {
	switch {
	case key.Matches(msg, o.keys.Next):
		o.focus.Next()
		o.refresh()
		o.scrollToFocus()
		return o, nil
	case key.Matches(msg, o.keys.Prev):
		o.focus.Prev()
		o.refresh()
		o.scrollToFocus()
		return o, nil
	case key.Matches(msg, o.keys.Press):
		if b, ok := o.Focused(); ok {
			return o, buttonPressedCmd(o.State.Screen.ID, b.Link)
		}
		return o, nil
	case key.Matches(msg, o.keys.Help):
		o.help.ShowAll = !o.help.ShowAll
		o.fitViewport()
		o.scrollToFocus()
		return o, nil
	}

	var cmd tea.Cmd
	o.viewport, cmd = o.viewport.Update(msg)
	return o, cmd
}

// fitViewport gives the viewport every row the help footer does not use.
func (o *OnboardingView) fitViewport() {
	footer := lipgloss.Height(o.help.View(o.keys))
	o.viewport.Height = max(o.height-footer-1, 1)
}

// refresh re-renders the loaded screen into the viewport, keeping the scroll
// position.
func (o *OnboardingView) refresh() {
	o.layout = renderScreen(o.State.Screen, o.focus, o.viewport.Width)
	y := o.viewport.YOffset
	o.viewport.SetContent(o.layout.Content)
	o.viewport.SetYOffset(y)
}

// scrollToFocus scrolls the least amount that brings the focused button
// fully into view.
func (o *OnboardingView) scrollToFocus() {
	i := o.focus.Focused()
	if i < 0 || i >= len(o.layout.Offsets) {
		return
	}
	top := o.layout.Offsets[i]
	bottom := top + o.layout.Heights[i]
	switch {
	case top < o.viewport.YOffset:
		o.viewport.SetYOffset(top)
	case bottom > o.viewport.YOffset+o.viewport.Height:
		o.viewport.SetYOffset(bottom - o.viewport.Height)
	}
}

// View implements View.
func (o *OnboardingView) View() string {
	switch o.State.Status {
	case onboarding.StatusLoaded:
		return o.viewport.View() + "\n" + o.help.View(o.keys)
	case onboarding.StatusError:
		return o.fallbackView()
	default:
		return lipgloss.Place(o.width, o.height, lipgloss.Center, lipgloss.Center,
			o.spinner.View()+" "+Styles.Muted.Render("Loading…"))
	}
}

// fallbackView is the entry screen shown instead of a failed onboarding
// screen. The cause of the failure is not shown.
func (o *OnboardingView) fallbackView() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		Styles.Title.Render(fallbackTitle),
		"",
		Styles.ButtonFocused.Render(fallbackButton),
		"",
		o.help.ShortHelpView([]key.Binding{o.keys.Press, o.keys.Quit}),
	)
	return lipgloss.Place(o.width, o.height, lipgloss.Center, lipgloss.Center, content)
}
