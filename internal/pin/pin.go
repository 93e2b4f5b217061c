// Package pin defines the identity of the connection points on a flow node.
//
// A pin is addressed by its Name, an exact, case-sensitive identifier. The
// convenience constructors (FromString, FromText) never trim or fold case, so
// every spelling of a pin resolves to the same canonical Name or to none.
package pin

import (
	"fmt"
	"strings"
)

// Name is the canonical identifier of a pin.
type Name string

// None is the zero Name. It never matches a declared pin.
const None Name = ""

// FromString converts a plain string into a pin Name.
func FromString(s string) Name {
	return Name(s)
}

// FromText converts any display text into a pin Name using its String form.
// A nil Stringer yields None.
func FromText(t fmt.Stringer) Name {
	if t == nil {
		return None
	}
	return Name(t.String())
}

// String implements fmt.Stringer.
func (n Name) String() string {
	return string(n)
}

// IsNone reports whether the name is empty.
func (n Name) IsNone() bool {
	return n == None
}

// InputHandle addresses an input pin at trigger time.
type InputHandle struct {
	Name Name
}

// OutputHandle addresses an output pin at trigger time.
type OutputHandle struct {
	Name Name
}

// Input creates a handle for the named input pin.
func Input(name Name) InputHandle {
	return InputHandle{Name: name}
}

// Output creates a handle for the named output pin.
func Output(name Name) OutputHandle {
	return OutputHandle{Name: name}
}

func (h InputHandle) String() string  { return string(h.Name) }
func (h OutputHandle) String() string { return string(h.Name) }

// FlowPin is the declared metadata of a pin on a node type.
type FlowPin struct {
	Name Name
	// DisplayText is optional; editors fall back to Name when empty.
	DisplayText string
}

// New declares a pin with no display text.
func New(name Name) FlowPin {
	return FlowPin{Name: name}
}

// Label returns the text to show for the pin.
func (p FlowPin) Label() string {
	if p.DisplayText != "" {
		return p.DisplayText
	}
	return string(p.Name)
}

// FindByName returns the first pin in pins whose name equals name.
func FindByName(name Name, pins []FlowPin) (FlowPin, bool) {
	for _, p := range pins {
		if p.Name == name {
			return p, true
		}
	}
	return FlowPin{}, false
}

// Contains reports whether a pin named name is declared in pins.
func Contains(name Name, pins []FlowPin) bool {
	_, ok := FindByName(name, pins)
	return ok
}

// Names renders the pin names as a comma separated list, for messages.
func Names(pins []FlowPin) string {
	parts := make([]string, len(pins))
	for i, p := range pins {
		parts[i] = string(p.Name)
	}
	return strings.Join(parts, ", ")
}

// ActivationType tells the graph container how a triggered output should be
// propagated.
type ActivationType int

const (
	// Default propagation, subject to the container's deferral policy.
	Default ActivationType = iota
	// Forced propagation is always delivered immediately.
	Forced
	// PassThrough marks a trigger routed through a node that did not run its
	// own logic.
	PassThrough
)

func (a ActivationType) String() string {
	switch a {
	case Default:
		return "Default"
	case Forced:
		return "Forced"
	case PassThrough:
		return "PassThrough"
	default:
		return fmt.Sprintf("ActivationType(%d)", int(a))
	}
}
