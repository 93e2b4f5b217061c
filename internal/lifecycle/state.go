// Package lifecycle defines the ordered states a node instance passes through
// during one graph run and the transition table between them.
//
//	Uninitialized -> Initialized          [Initialize]
//	Initialized   -> ContentLoaded        [ContentLoaded]
//	ContentLoaded -> Initialized          [ContentFlushed]
//	Initialized/ContentLoaded -> Active   [Activate]
//	Finished      -> Active               [Activate] (re-entry, node type permitting)
//	Initialized/ContentLoaded/Active -> Finished [Finish]
//	any           -> Deinitialized        [Deinitialize]
//
// The table is pure; callers decide which no-op cases (finishing a finished
// node, deinitializing twice) to absorb before asking for a transition.
package lifecycle

import "fmt"

// State is the lifecycle state of a node instance. It is transient per run.
type State int32

const (
	Uninitialized State = iota
	Initialized
	ContentLoaded
	Active
	Finished
	Deinitialized
)

var stateNames = [...]string{"Uninitialized", "Initialized", "ContentLoaded", "Active", "Finished", "Deinitialized"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int32(s))
	}
	return stateNames[s]
}

// IsLive reports whether the node has been initialized and not yet torn down.
func (s State) IsLive() bool {
	return s >= Initialized && s <= Finished
}

// CanActivate reports whether an input may start a fresh activation from s.
// Finished is included; whether a finished node is re-enterable is a node
// type decision.
func (s State) CanActivate() bool {
	return s == Initialized || s == ContentLoaded || s == Finished
}

// Event names a requested transition.
type Event int

const (
	EventInitialize Event = iota
	EventContentLoaded
	EventContentFlushed
	EventActivate
	EventFinish
	EventDeinitialize
)

var eventNames = [...]string{"Initialize", "ContentLoaded", "ContentFlushed", "Activate", "Finish", "Deinitialize"}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return fmt.Sprintf("Event(%d)", int(e))
	}
	return eventNames[e]
}

// Next returns the state reached by applying ev to from, or an *OrderError if
// the transition is not in the table.
func Next(from State, ev Event) (State, error) {
	switch ev {
	case EventInitialize:
		if from == Uninitialized {
			return Initialized, nil
		}
	case EventContentLoaded:
		if from == Initialized {
			return ContentLoaded, nil
		}
	case EventContentFlushed:
		if from == ContentLoaded {
			return Initialized, nil
		}
	case EventActivate:
		if from.CanActivate() {
			return Active, nil
		}
	case EventFinish:
		if from == Initialized || from == ContentLoaded || from == Active {
			return Finished, nil
		}
	case EventDeinitialize:
		if from != Deinitialized {
			return Deinitialized, nil
		}
	}
	return from, &OrderError{Op: ev.String(), State: from}
}
