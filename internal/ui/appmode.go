package ui

// AppMode represents the top-level application mode.
type AppMode int

const (
	ModeOnboarding AppMode = iota
	ModeMain
)

func (m AppMode) String() string {
	switch m {
	case ModeOnboarding:
		return "Onboarding"
	case ModeMain:
		return "Main"
	default:
		return "Unknown"
	}
}
