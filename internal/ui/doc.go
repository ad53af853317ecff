// Package ui renders the onboarding flow in the terminal with Bubble Tea.
//
// Core pieces:
//   - View: a screen with its own model, update, and view (Elm-style)
//   - OnboardingView: the loading spinner, the server-defined blocks, or the fallback entry screen
//   - MainView: the application content shown once onboarding is over
//   - AppModel: routes messages to the onboarding controller and switches modes
package ui
