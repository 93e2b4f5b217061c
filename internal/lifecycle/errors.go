package lifecycle

import (
	"errors"
	"fmt"
)

// ErrOrder matches every *OrderError through errors.Is.
var ErrOrder = errors.New("lifecycle order violation")

// OrderError reports an entry point called in a state that does not allow it,
// such as a second Initialize or an input delivered before Initialize. These
// are construction bugs in the graph container, not data errors.
type OrderError struct {
	Op    string
	State State
	// Node is filled in by the node layer when known.
	Node string
}

func (e *OrderError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("lifecycle: %s not allowed in state %s (node %q)", e.Op, e.State, e.Node)
	}
	return fmt.Sprintf("lifecycle: %s not allowed in state %s", e.Op, e.State)
}

// Is lets errors.Is(err, ErrOrder) match.
func (e *OrderError) Is(target error) bool {
	return target == ErrOrder
}
