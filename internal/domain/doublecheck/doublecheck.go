// Package doublecheck implements a two-step confirmation for destructive or
// quota-consuming actions: the first activation arms the control, the second
// one fires the action. Losing focus or pressing Escape disarms it.
package doublecheck

import "fmt"

// State is the confirmation state of a control.
type State int

const (
	Idle State = iota
	Armed
)

// String returns the form/wire representation of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ParseState parses the output of State.String. The empty string is Idle.
func ParseState(s string) (State, error) {
	switch s {
	case "", "idle":
		return Idle, nil
	case "armed":
		return Armed, nil
	default:
		return Idle, fmt.Errorf("unknown double-check state %q", s)
	}
}

// DoubleCheck is the confirmation state machine. The zero value is Idle.
// Transitions return a new value and never mutate the receiver.
type DoubleCheck struct {
	state State
}

// New returns a DoubleCheck in the given state.
func New(state State) DoubleCheck {
	return DoubleCheck{state: state}
}

// State returns the current state.
func (d DoubleCheck) State() State {
	return d.state
}

// Armed reports whether the next activation will fire the action.
func (d DoubleCheck) Armed() bool {
	return d.state == Armed
}

// Activate handles a click. From Idle it arms and suppresses the action;
// from Armed it returns to Idle and reports that the action fires.
func (d DoubleCheck) Activate() (DoubleCheck, bool) {
	if d.state == Armed {
		return DoubleCheck{state: Idle}, true
	}
	return DoubleCheck{state: Armed}, false
}

// Blur disarms the control.
func (d DoubleCheck) Blur() DoubleCheck {
	return DoubleCheck{state: Idle}
}

// KeyUp disarms the control when key is Escape; other keys leave it unchanged.
func (d DoubleCheck) KeyUp(key string) DoubleCheck {
	if IsEscape(key) {
		return DoubleCheck{state: Idle}
	}
	return d
}

// IsEscape reports whether key names the Escape key, in either DOM ("Escape")
// or terminal ("esc") spelling.
func IsEscape(key string) bool {
	return key == "Escape" || key == "esc"
}
