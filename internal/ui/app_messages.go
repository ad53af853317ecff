package ui

import "onborder/internal/onboarding"

// ScreenLoadedMsg carries the outcome of the session's screen fetch.
type ScreenLoadedMsg struct {
	Result onboarding.Result
}

// ButtonPressedMsg is sent when the user presses a screen button (Enter on the focused button).
type ButtonPressedMsg struct {
	ScreenID int
	Link     string
}

// ExitOnboardingMsg is sent by the fallback entry screen's button. It leaves
// onboarding without reporting a conversion.
type ExitOnboardingMsg struct{}
