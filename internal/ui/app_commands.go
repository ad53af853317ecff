package ui

import (
	"context"
	"time"

	"onborder/internal/onboarding"

	tea "github.com/charmbracelet/bubbletea"
)

// fetchScreenCmd returns a command that runs the session's screen fetch off
// the update loop and delivers its result as a ScreenLoadedMsg. A timeout of
// zero leaves the deadline to the repository.
func fetchScreenCmd(f onboarding.Fetch, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return ScreenLoadedMsg{Result: f.Run(ctx)}
	}
}

func buttonPressedCmd(screenID int, link string) tea.Cmd {
	return func() tea.Msg {
		return ButtonPressedMsg{ScreenID: screenID, Link: link}
	}
}

func exitOnboardingCmd() tea.Msg {
	return ExitOnboardingMsg{}
}
