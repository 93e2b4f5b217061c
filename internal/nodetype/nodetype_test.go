package nodetype

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/flowgridgo/internal/pin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func noop(Properties) (any, error) { return struct{}{}, nil }

type testModule struct{ defs []*Definition }

func (m testModule) Register(r *Registry) {
	for _, d := range m.defs {
		r.RegisterType(d)
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := New(testModule{defs: []*Definition{
		{Type: "Branch", New: noop},
		{Type: "Constant", Kind: AddOn, New: noop},
	}})

	def, ok := r.Lookup("Branch")
	require.True(t, ok)
	assert.Equal(t, Primary, def.Kind)
	assert.Equal(t, []string{"Branch", "Constant"}, r.Types())
	assert.Equal(t, 2, r.Len())

	_, ok = r.Lookup("branch")
	assert.False(t, ok)
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := New()
	r.RegisterType(&Definition{Type: "Start", New: noop})
	assert.Panics(t, func() { r.RegisterType(&Definition{Type: "Start", New: noop}) })
	assert.Panics(t, func() { r.RegisterType(&Definition{}) })
}

func TestRegistry_Validate(t *testing.T) {
	r := New()
	r.RegisterType(&Definition{
		Type:    "Broken",
		Inputs:  []pin.FlowPin{pin.New("In"), pin.New("In"), pin.New("")},
		Outputs: []pin.FlowPin{pin.New("In")},
	})
	r.RegisterType(&Definition{Type: "Fine", Inputs: []pin.FlowPin{pin.New("In")}, New: noop})

	err := r.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRegistry))
	assert.Contains(t, err.Error(), "type 'Broken': no factory")
	assert.Contains(t, err.Error(), "duplicate input pin 'In'")
	assert.Contains(t, err.Error(), "empty input pin name")
	assert.Contains(t, err.Error(), "declared as both input and output")
	assert.NotContains(t, err.Error(), "'Fine'")

	ok := New()
	ok.RegisterType(&Definition{Type: "Fine", New: noop})
	assert.NoError(t, ok.Validate(context.Background()))
}

func TestDefinition_SupportsInput(t *testing.T) {
	primary := &Definition{Type: "P", Inputs: []pin.FlowPin{pin.New("In")}}
	assert.True(t, primary.SupportsInput("In"))
	assert.False(t, primary.SupportsInput("in"))

	anyInput := &Definition{Type: "A", Kind: AddOn, Traits: Traits{AcceptAnyInput: true}}
	assert.True(t, anyInput.SupportsInput("Whatever"))

	strict := &Definition{Type: "S", Kind: AddOn}
	assert.False(t, strict.SupportsInput("Whatever"))

	primaryAny := &Definition{Type: "PA", Traits: Traits{AcceptAnyInput: true}}
	assert.False(t, primaryAny.SupportsInput("Whatever"), "primary nodes never accept undeclared inputs")
}

func TestDefinition_Implements(t *testing.T) {
	def := &Definition{Type: "Constant", Capabilities: []string{"predicate"}}
	assert.True(t, def.Implements("Constant"))
	assert.True(t, def.Implements("predicate"))
	assert.False(t, def.Implements("observer"))

	var nilDef *Definition
	assert.False(t, nilDef.Implements("predicate"))
}

func TestCheckAcceptChild(t *testing.T) {
	predicate := &Definition{Type: "Constant", Kind: AddOn, Capabilities: []string{"predicate"}}
	observer := &Definition{Type: "Trace", Kind: AddOn, Capabilities: []string{"observer"}}
	primary := &Definition{Type: "Start"}

	open := &Definition{Type: "Open"}
	assert.Equal(t, Accept, CheckAcceptChild(open, predicate))
	assert.Equal(t, Reject, CheckAcceptChild(open, primary), "primary nodes are never add-ons")
	assert.Equal(t, Reject, CheckAcceptChild(nil, predicate))

	restricted := &Definition{Type: "Branch", Traits: Traits{AddOnCapabilities: []string{"predicate"}}}
	assert.Equal(t, Accept, CheckAcceptChild(restricted, predicate))
	assert.Equal(t, Reject, CheckAcceptChild(restricted, observer))

	tentative := &Definition{Type: "Maybe", Traits: Traits{
		AcceptAddOn: func(_, _ *Definition) AcceptResult { return TentativeAccept },
	}}
	assert.Equal(t, TentativeAccept, CheckAcceptChild(tentative, observer))

	picky := &Definition{Type: "Picky", Kind: AddOn, Traits: Traits{
		AcceptParent: func(_, parent *Definition) AcceptResult {
			if parent.Type == "Branch" {
				return Accept
			}
			return Reject
		},
	}}
	assert.Equal(t, Reject, CheckAcceptChild(open, picky))
	assert.Equal(t, Accept, CheckAcceptChild(restricted, &Definition{
		Type: "PickyPredicate", Kind: AddOn, Capabilities: []string{"predicate"}, Traits: picky.Traits,
	}))

	rejecting := &Definition{Type: "Closed", Traits: Traits{
		AcceptAddOn: func(_, _ *Definition) AcceptResult { return Reject },
	}}
	eager := &Definition{Type: "Eager", Kind: AddOn, Traits: Traits{
		AcceptParent: func(_, _ *Definition) AcceptResult { return Accept },
	}}
	assert.Equal(t, Reject, CheckAcceptChild(rejecting, eager), "an add-on cannot force itself onto a rejecting parent")
}

func TestCombine(t *testing.T) {
	assert.Equal(t, Reject, Combine(Accept, Reject))
	assert.Equal(t, Accept, Combine(TentativeAccept, Accept))
	assert.Equal(t, TentativeAccept, Combine(TentativeAccept, TentativeAccept))
	assert.True(t, TentativeAccept.Allows())
	assert.False(t, Reject.Allows())
}

func TestProperties(t *testing.T) {
	props, err := PropertiesFromObject(cty.ObjectVal(map[string]cty.Value{
		"message": cty.StringVal("hi"),
		"count":   cty.NumberIntVal(3),
		"flag":    cty.StringVal("true"),
		"nested":  cty.ObjectVal(map[string]cty.Value{"a": cty.TupleVal([]cty.Value{cty.True})}),
		"empty":   cty.NullVal(cty.String),
	}))
	require.NoError(t, err)

	s, err := props.String("message", "")
	require.NoError(t, err)
	assert.Equal(t, "hi", s)

	n, err := props.Int("count", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	b, err := props.Bool("flag", false)
	require.NoError(t, err)
	assert.True(t, b, "string 'true' converts to bool")

	s, err = props.String("empty", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", s)

	_, err = props.Int("message", 0)
	assert.Error(t, err)

	m, err := props.Map()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": []any{true}}, m["nested"])
	assert.Equal(t, 3.0, m["count"])
	assert.Equal(t, []string{"count", "empty", "flag", "message", "nested"}, props.Keys())
}

func TestPropertiesFromObject_Rejects(t *testing.T) {
	_, err := PropertiesFromObject(cty.StringVal("nope"))
	assert.Error(t, err)

	props, err := PropertiesFromObject(cty.NullVal(cty.DynamicPseudoType))
	require.NoError(t, err)
	assert.Empty(t, props)
}

func TestFromGo_RoundTrip(t *testing.T) {
	in := map[string]any{
		"name":  "gate",
		"count": 2,
		"ratio": 0.5,
		"ok":    true,
		"list":  []any{"a", 1},
		"none":  nil,
	}
	v, err := FromGo(in)
	require.NoError(t, err)

	out, err := ToGo(v)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":  "gate",
		"count": 2.0,
		"ratio": 0.5,
		"ok":    true,
		"list":  []any{"a", 1.0},
		"none":  nil,
	}, out)

	_, err = FromGo(struct{}{})
	assert.Error(t, err)
}
