// Package wizard holds the verification flow as an explicit state machine,
// independent of the Discord component model.
package wizard

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	apperr "github.com/KirkDiggler/guild-verification-bot/internal/errors"
)

// Step is where a member currently is in the verification flow
type Step int

const (
	StepIdle Step = iota
	StepNameCapture
	StepClassSelect
	StepRoleSelect
	StepComplete
	StepExpired
)

func (s Step) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepNameCapture:
		return "name_capture"
	case StepClassSelect:
		return "class_select"
	case StepRoleSelect:
		return "role_select"
	case StepComplete:
		return "complete"
	case StepExpired:
		return "expired"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Terminal reports whether no further transition is possible
func (s Step) Terminal() bool {
	return s == StepComplete || s == StepExpired
}

// Expires reports whether the step shows a selection view with a timeout
func (s Step) Expires() bool {
	return s == StepClassSelect || s == StepRoleSelect
}

// Event is an input that can move the wizard forward
type Event int

const (
	EventStartClicked Event = iota
	EventNameSubmitted
	EventClassChosen
	EventRoleChosen
	EventTimedOut
)

func (e Event) String() string {
	switch e {
	case EventStartClicked:
		return "start_clicked"
	case EventNameSubmitted:
		return "name_submitted"
	case EventClassChosen:
		return "class_chosen"
	case EventRoleChosen:
		return "role_chosen"
	case EventTimedOut:
		return "timed_out"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// ErrInvalidTransition is returned when an event does not apply to a step
var ErrInvalidTransition = errors.New("invalid wizard transition")

var transitions = map[Step]map[Event]Step{
	StepIdle: {
		EventStartClicked: StepNameCapture,
	},
	StepNameCapture: {
		EventNameSubmitted: StepClassSelect,
	},
	StepClassSelect: {
		EventClassChosen: StepRoleSelect,
		EventTimedOut:    StepExpired,
	},
	StepRoleSelect: {
		EventRoleChosen: StepComplete,
		EventTimedOut:   StepExpired,
	},
}

// Next returns the step reached by applying event to current. There is no
// way back: every valid transition moves forward or expires.
func Next(current Step, event Event) (Step, error) {
	if next, ok := transitions[current][event]; ok {
		return next, nil
	}
	return current, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, event, current)
}

// MaxCharacterNameLength matches Discord's nickname limit
const MaxCharacterNameLength = 32

// ValidateCharacterName checks the submitted name is between 1 and
// MaxCharacterNameLength characters and not only whitespace. The name is
// returned unchanged so the nickname matches what the member typed.
func ValidateCharacterName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", apperr.Validation("Character name is required")
	}
	if utf8.RuneCountInString(name) > MaxCharacterNameLength {
		return "", apperr.Validationf("Character name must be at most %d characters", MaxCharacterNameLength)
	}

	return name, nil
}
