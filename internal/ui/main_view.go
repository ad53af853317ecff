package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MainView is the application content shown once onboarding is over.
type MainView struct {
	keys   KeyMap
	help   help.Model
	width  int
	height int
}

// Ensure MainView implements View.
var _ View = (*MainView)(nil)

// NewMainView creates the main content view.
func NewMainView(keys KeyMap) *MainView {
	return &MainView{
		keys:   keys,
		help:   newHelp(),
		width:  defaultWidth,
		height: defaultHeight,
	}
}

// Init implements View.
func (m *MainView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *MainView) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// View implements View.
func (m *MainView) View() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		Styles.Title.Render(fallbackTitle),
		"",
		Styles.Body.Render("You're all set."),
		"",
		m.help.ShortHelpView([]key.Binding{m.keys.Quit}),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
