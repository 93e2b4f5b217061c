package node

import "errors"

var (
	// ErrUnsupportedInputPin is returned by ExecuteInput for a pin the node
	// does not accept. It is a configuration error; the run continues.
	ErrUnsupportedInputPin = errors.New("unsupported input pin")
	// ErrUnknownOutputPin is returned when a node triggers an output it does
	// not declare.
	ErrUnknownOutputPin = errors.New("unknown output pin")
	// ErrAddOnRejected is returned when a parent refuses an add-on.
	ErrAddOnRejected = errors.New("add-on rejected by parent")
	// ErrNotReEnterable is returned when a finished single-shot node is
	// triggered again.
	ErrNotReEnterable = errors.New("node is not re-enterable")
	// ErrInvalidHandle is returned for handles that do not name a live node
	// in the arena.
	ErrInvalidHandle = errors.New("invalid node handle")
	// ErrAlreadyOwned is returned when attaching an add-on that has a parent.
	ErrAlreadyOwned = errors.New("add-on already has a parent")
	// ErrOwnershipCycle is returned when an attach would make a node its own
	// ancestor.
	ErrOwnershipCycle = errors.New("add-on ownership cycle")
	// ErrDetached is returned when an add-on with no owning node tries to
	// reach one.
	ErrDetached = errors.New("add-on is not attached to a node")
	// ErrBadLogic is returned when a node type factory produces a value that
	// is not a Logic.
	ErrBadLogic = errors.New("node type factory returned invalid logic")
)
