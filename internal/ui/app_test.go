package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"onborder/internal/onboarding"
	"onborder/internal/repository"
	"onborder/internal/screen"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScreen() screen.Screen {
	return screen.Screen{
		ID:   42,
		Name: "Welcome",
		Content: screen.Content{
			Time:    1700000000,
			Version: "2.19.0",
			Blocks: []screen.Block{
				{ID: "h", Type: screen.BlockHeader, Data: screen.Header{Text: "Welcome aboard", Level: 1}},
				{ID: "l", Type: screen.BlockList, Data: screen.List{Style: "unordered", Items: []string{"Plan trips", "Share routes"}}},
				{ID: "skip", Type: screen.BlockButton, Data: screen.Button{Text: "Maybe later", Link: "later"}},
				{ID: "done", Type: screen.BlockButton, Data: screen.Button{Text: "Get started", Link: "onboardingComplete"}},
			},
		},
	}
}

// collect runs cmd and flattens batches into the messages they produce.
// Commands that block (spinner ticks after the first) must not be passed.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func loadedMsg(t *testing.T, cmd tea.Cmd) ScreenLoadedMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if m, ok := msg.(ScreenLoadedMsg); ok {
			return m
		}
	}
	t.Fatal("no ScreenLoadedMsg produced")
	return ScreenLoadedMsg{}
}

// press sends key k and feeds any message it produces back into the app,
// the way the Bubble Tea runtime would.
func press(a *appModelAdapter, k string) tea.Cmd {
	_, cmd := a.Update(keyMsg(k))
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg.(type) {
	case ButtonPressedMsg, ExitOnboardingMsg:
		_, next := a.Update(msg)
		return next
	}
	return cmd
}

func newTestApp(repo onboarding.Repository) *appModelAdapter {
	ctrl := onboarding.New(repo)
	return &appModelAdapter{AppModel: NewAppModel(ctrl, WithFetchTimeout(time.Second))}
}

func TestApp_LoadsScreen(t *testing.T) {
	a := newTestApp(repository.NewStatic(testScreen()))
	assert.Equal(t, ModeOnboarding, a.Mode)
	assert.Contains(t, a.View(), "Loading")

	a.Update(loadedMsg(t, a.Init()))

	assert.Equal(t, onboarding.StatusLoaded, a.Ctrl.State().Status)
	assert.Equal(t, onboarding.StatusLoaded, a.Onboarding.State.Status)
	view := a.View()
	assert.Contains(t, view, "Welcome aboard")
	assert.Contains(t, view, "✔ Plan trips")
	assert.Contains(t, view, "Maybe later")
	assert.Contains(t, view, "Get started")

	b, ok := a.Onboarding.Focused()
	require.True(t, ok)
	assert.Equal(t, "Maybe later", b.Text, "first button starts focused")
}

func TestApp_CompleteOnboarding(t *testing.T) {
	repo := repository.NewStatic(testScreen())
	a := newTestApp(repo)
	a.Update(loadedMsg(t, a.Init()))

	press(a, "tab")
	b, _ := a.Onboarding.Focused()
	require.Equal(t, "Get started", b.Text)

	press(a, "enter")

	assert.Equal(t, ModeMain, a.Mode)
	assert.False(t, a.Ctrl.Onboarding())
	assert.Contains(t, a.View(), "You're all set.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, a.Ctrl.Wait(ctx))
	assert.Equal(t, []int{42}, repo.Conversions())
}

func TestApp_UnknownActionIsInert(t *testing.T) {
	repo := repository.NewStatic(testScreen())
	a := newTestApp(repo)
	a.Update(loadedMsg(t, a.Init()))

	press(a, "enter")

	assert.Equal(t, ModeOnboarding, a.Mode)
	assert.True(t, a.Ctrl.Onboarding())
	assert.Equal(t, onboarding.StatusLoaded, a.Ctrl.State().Status)
	require.NoError(t, a.Ctrl.Wait(context.Background()))
	assert.Empty(t, repo.Conversions())
}

func TestApp_FocusWrapsBothWays(t *testing.T) {
	a := newTestApp(repository.NewStatic(testScreen()))
	a.Update(loadedMsg(t, a.Init()))

	press(a, "shift+tab")
	b, _ := a.Onboarding.Focused()
	assert.Equal(t, "Get started", b.Text)

	press(a, "j")
	b, _ = a.Onboarding.Focused()
	assert.Equal(t, "Maybe later", b.Text)
}

func TestApp_FetchFailureShowsEntryScreen(t *testing.T) {
	repo := repository.NewFailing(errors.New("connection refused"))
	a := newTestApp(repo)
	a.Update(loadedMsg(t, a.Init()))

	assert.Equal(t, onboarding.StatusError, a.Ctrl.State().Status)
	view := a.View()
	assert.Contains(t, view, "OnBorder App")
	assert.Contains(t, view, "Lets Go →")
	assert.NotContains(t, view, "connection refused")

	press(a, "tab")
	assert.Equal(t, ModeOnboarding, a.Mode, "only enter leaves the entry screen")

	press(a, "enter")
	assert.Equal(t, ModeMain, a.Mode)
	require.NoError(t, a.Ctrl.Wait(context.Background()))
	assert.Empty(t, repo.Conversions(), "the entry screen reports no conversion")
}

func TestApp_KeysIgnoredWhileLoading(t *testing.T) {
	a := newTestApp(repository.NewStatic(testScreen()))
	pending := loadedMsg(t, a.Init())

	assert.Nil(t, press(a, "enter"))
	assert.Nil(t, press(a, "tab"))
	assert.Equal(t, onboarding.StatusLoading, a.Ctrl.State().Status)

	a.Update(pending)
	assert.Equal(t, onboarding.StatusLoaded, a.Ctrl.State().Status)
}

func TestApp_QuitDiscardsPendingFetch(t *testing.T) {
	a := newTestApp(repository.NewStatic(testScreen()))
	pending := loadedMsg(t, a.Init())

	_, cmd := a.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, a.Ctrl.Onboarding())

	a.Update(pending)
	assert.Equal(t, onboarding.StatusLoading, a.Ctrl.State().Status, "late result is ignored")
	assert.Equal(t, onboarding.StatusLoading, a.Onboarding.State.Status)
}

func TestApp_FetchStartsOnce(t *testing.T) {
	a := newTestApp(repository.NewStatic(testScreen()))

	first := collect(a.Init())
	second := collect(a.Init())

	count := func(msgs []tea.Msg) int {
		n := 0
		for _, m := range msgs {
			if _, ok := m.(ScreenLoadedMsg); ok {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 1, count(first))
	assert.Equal(t, 0, count(second))
}

func TestApp_ScrollsToFocusedButton(t *testing.T) {
	a := newTestApp(repository.NewStatic(longScreen()))
	a.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	a.Update(loadedMsg(t, a.Init()))
	assert.Equal(t, 0, a.Onboarding.viewport.YOffset)
	assert.NotContains(t, a.View(), "Bottom")

	press(a, "tab")
	assert.Greater(t, a.Onboarding.viewport.YOffset, 0)
	assert.Contains(t, a.View(), "Bottom")

	press(a, "tab")
	assert.Equal(t, 0, a.Onboarding.viewport.YOffset)
	assert.Contains(t, a.View(), "Top")
}

// longScreen has a button at each end of a screen taller than the terminal.
func longScreen() screen.Screen {
	blocks := []screen.Block{
		{ID: "top", Type: screen.BlockButton, Data: screen.Button{Text: "Top", Link: "x"}},
	}
	for i := 0; i < 20; i++ {
		blocks = append(blocks, screen.Block{ID: "p", Type: screen.BlockParagraph, Data: screen.Paragraph{Text: "filler"}})
	}
	blocks = append(blocks, screen.Block{ID: "bottom", Type: screen.BlockButton, Data: screen.Button{Text: "Bottom", Link: "y"}})
	return screen.Screen{ID: 7, Content: screen.Content{Blocks: blocks}}
}

func TestApp_ScrollKeysMoveViewportOnly(t *testing.T) {
	tests := []struct {
		desc string
		key  string
	}{
		{desc: "down arrow", key: "down"},
		{desc: "page down", key: "pgdown"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			a := newTestApp(repository.NewStatic(longScreen()))
			a.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
			a.Update(loadedMsg(t, a.Init()))

			press(a, test.key)
			assert.Greater(t, a.Onboarding.viewport.YOffset, 0)
			b, ok := a.Onboarding.Focused()
			require.True(t, ok)
			assert.Equal(t, "Top", b.Text, "scrolling leaves focus alone")
		})
	}
}

func TestApp_FocusKeysDoNotScrollViewport(t *testing.T) {
	blocks := []screen.Block{
		{ID: "a", Type: screen.BlockButton, Data: screen.Button{Text: "First", Link: "x"}},
		{ID: "b", Type: screen.BlockButton, Data: screen.Button{Text: "Second", Link: "y"}},
	}
	for i := 0; i < 20; i++ {
		blocks = append(blocks, screen.Block{ID: "p", Type: screen.BlockParagraph, Data: screen.Paragraph{Text: "filler"}})
	}
	s := screen.Screen{ID: 8, Content: screen.Content{Blocks: blocks}}

	a := newTestApp(repository.NewStatic(s))
	a.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	a.Update(loadedMsg(t, a.Init()))

	press(a, "j")
	assert.Equal(t, 0, a.Onboarding.viewport.YOffset)
	b, ok := a.Onboarding.Focused()
	require.True(t, ok)
	assert.Equal(t, "Second", b.Text)

	press(a, "down")
	assert.Equal(t, 1, a.Onboarding.viewport.YOffset)
}

func TestApp_HelpToggle(t *testing.T) {
	a := newTestApp(repository.NewStatic(longScreen()))
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	a.Update(loadedMsg(t, a.Init()))

	short := a.Onboarding.viewport.Height
	assert.Equal(t, 8, short)
	assert.NotContains(t, a.View(), "page down")

	press(a, "?")
	view := a.View()
	assert.Contains(t, view, "page down")
	assert.Contains(t, view, "scroll up")
	assert.Less(t, a.Onboarding.viewport.Height, short, "full help takes rows from the viewport")
	assert.LessOrEqual(t, len(strings.Split(view, "\n")), 10)

	press(a, "?")
	assert.NotContains(t, a.View(), "page down")
	assert.Equal(t, short, a.Onboarding.viewport.Height)
}

func TestAppMode_String(t *testing.T) {
	assert.Equal(t, "Onboarding", ModeOnboarding.String())
	assert.Equal(t, "Main", ModeMain.String())
	assert.Equal(t, "Unknown", AppMode(9).String())
}
