// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRegex matches a single node or pin name.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidName reports whether s can be used as a node or pin name.
func ValidName(s string) bool {
	if s == "-" || s == "_" {
		return false
	}
	return nameRegex.MatchString(s)
}

// Parse creates a Ref from its canonical "node.Pin" representation.
func Parse(raw string) (Ref, error) {
	if raw == "" {
		return Ref{}, fmt.Errorf("pin reference cannot be empty")
	}

	nodeName, pinName, ok := strings.Cut(raw, ".")
	if !ok {
		return Ref{}, fmt.Errorf("pin reference %q must have the form node.Pin", raw)
	}
	if strings.Contains(pinName, ".") {
		return Ref{}, fmt.Errorf("pin reference %q has more than two segments", raw)
	}
	if !ValidName(nodeName) {
		return Ref{}, fmt.Errorf("invalid node name %q in pin reference %q", nodeName, raw)
	}
	if !ValidName(pinName) {
		return Ref{}, fmt.Errorf("invalid pin name %q in pin reference %q", pinName, raw)
	}
	return Ref{Node: nodeName, Pin: pinName}, nil
}
