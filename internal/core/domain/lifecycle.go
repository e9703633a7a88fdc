package domain

import "fmt"

// Transition is an organizer-driven lifecycle change.
type Transition string

const (
	TransitionActivate Transition = "activate"
	TransitionPause    Transition = "pause"
	TransitionClose    Transition = "close"
	TransitionReopen   Transition = "reopen"
)

func ParseTransition(s string) (Transition, error) {
	switch t := Transition(s); t {
	case TransitionActivate, TransitionPause, TransitionClose, TransitionReopen:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown lifecycle transition %q", ErrValidation, s)
}
