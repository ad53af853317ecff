package onboarding

// Action is a known button action identifier.
type Action string

const (
	// ActionCompleteOnboarding reports a conversion for the screen and leaves
	// onboarding.
	ActionCompleteOnboarding Action = "onboardingComplete"
)

// ParseAction maps a button link to a known action. Unknown identifiers
// report false.
func ParseAction(link string) (Action, bool) {
	switch Action(link) {
	case ActionCompleteOnboarding:
		return ActionCompleteOnboarding, true
	default:
		return "", false
	}
}

func (a Action) String() string {
	return string(a)
}
