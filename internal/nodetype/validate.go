package nodetype

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/pin"
)

// ErrInvalidRegistry wraps every problem reported by Validate.
var ErrInvalidRegistry = errors.New("invalid node type registry")

// Validate checks every registered definition for mistakes that would only
// surface at run time: missing factories, duplicate or empty pin names, and
// pins shared between the input and output lists.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, typeName := range r.Types() {
		def := r.types[typeName]
		if def.New == nil {
			errs = append(errs, fmt.Sprintf("type '%s': no factory", typeName))
		}
		errs = append(errs, checkPins(typeName, "input", def.Inputs)...)
		errs = append(errs, checkPins(typeName, "output", def.Outputs)...)

		for _, in := range def.Inputs {
			if pin.Contains(in.Name, def.Outputs) {
				errs = append(errs, fmt.Sprintf("type '%s': pin '%s' declared as both input and output", typeName, in.Name))
			}
		}

		if def.Kind == Primary && def.Traits.AcceptParent != nil {
			logger.Warn("Primary node type declares an AcceptParent policy; it is never consulted.", "type", typeName)
		}
		if def.Kind == AddOn && def.Traits.AcceptAnyInput && len(def.Inputs) > 0 {
			logger.Warn("Add-on declares inputs and AcceptAnyInput; declared inputs take precedence.", "type", typeName)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalidRegistry, strings.Join(errs, "\n  - "))
	}
	logger.Debug("Node type registry validated.", "types", len(r.types))
	return nil
}

func checkPins(typeName, direction string, pins []pin.FlowPin) []string {
	var errs []string
	seen := make(map[pin.Name]struct{}, len(pins))
	for _, p := range pins {
		if p.Name.IsNone() {
			errs = append(errs, fmt.Sprintf("type '%s': empty %s pin name", typeName, direction))
			continue
		}
		if _, dup := seen[p.Name]; dup {
			errs = append(errs, fmt.Sprintf("type '%s': duplicate %s pin '%s'", typeName, direction, p.Name))
		}
		seen[p.Name] = struct{}{}
	}
	return errs
}
