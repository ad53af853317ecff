package onboarding

import "onborder/internal/screen"

// Status is the screen-load state of a session.
type Status int

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen for this fetch.
func (s Status) Terminal() bool {
	return s == StatusLoaded || s == StatusError
}

// State is a snapshot of the screen-load state. Screen is set only when
// Status is StatusLoaded and Err only when Status is StatusError.
type State struct {
	Status Status
	Screen screen.Screen
	Err    error
}

func loading() State {
	return State{Status: StatusLoading}
}

func loaded(s screen.Screen) State {
	return State{Status: StatusLoaded, Screen: s}
}

func failed(err error) State {
	return State{Status: StatusError, Err: err}
}
