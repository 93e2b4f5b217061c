// Package script provides the Script node, whose behavior is written as
// expressions in the graph asset and run through the external bridge.
package script

import (
	"fmt"

	"github.com/specialistvlad/flowgridgo/internal/nodetype"
	"github.com/specialistvlad/flowgridgo/internal/pin"
	"github.com/specialistvlad/flowgridgo/internal/script"
)

const Type = "Script"

// Module implements the nodetype.Module interface for this package.
type Module struct{}

// Register registers the Script node type.
func (m *Module) Register(r *nodetype.Registry) {
	r.RegisterType(&nodetype.Definition{
		Type:        Type,
		Description: "Runs on_activate / on_input / on_cleanup expressions; other properties are readable via prop().",
		Inputs:      []pin.FlowPin{pin.New("In"), pin.New("Alt")},
		Outputs:     []pin.FlowPin{pin.New("Out"), pin.New("Done"), pin.New("Error")},
		New:         newLogic,
	})
}

func newLogic(props nodetype.Properties) (any, error) {
	values, err := props.Map()
	if err != nil {
		return nil, err
	}
	src := script.Source{}
	for _, hook := range script.Hooks {
		raw, ok := values[string(hook)]
		if !ok {
			continue
		}
		text, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("property %q must be a string, got %T", hook, raw)
		}
		src[hook] = text
		delete(values, string(hook))
	}
	program, err := script.Compile(src)
	if err != nil {
		return nil, err
	}
	return script.New(program, values), nil
}
