package pin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type label string

func (l label) String() string { return string(l) }

func TestNormalization_AllFormsResolveToSameName(t *testing.T) {
	raw := Name("Success")

	assert.Equal(t, raw, FromString("Success"))
	assert.Equal(t, raw, FromText(label("Success")))
	assert.Equal(t, Output(raw), Output(FromString("Success")))
}

func TestNormalization_IsExact(t *testing.T) {
	assert.NotEqual(t, Name("Success"), FromString("success"))
	assert.NotEqual(t, Name("Success"), FromString(" Success"))
	assert.Equal(t, None, FromText(nil))
}

func TestHandles_AreComparableAndHashable(t *testing.T) {
	seen := map[OutputHandle]int{}
	seen[Output("Out")]++
	seen[Output(FromString("Out"))]++

	require.Len(t, seen, 1)
	assert.Equal(t, 2, seen[Output("Out")])
	assert.Equal(t, Input("In"), Input("In"))
	assert.NotEqual(t, Input("In"), Input("in"))
}

func TestFindByName(t *testing.T) {
	pins := []FlowPin{
		{Name: "Success", DisplayText: "On Success"},
		New("Failure"),
		{Name: "Success", DisplayText: "duplicate"},
	}

	p, ok := FindByName("Success", pins)
	require.True(t, ok)
	assert.Equal(t, "On Success", p.Label(), "first match wins")

	p, ok = FindByName("Failure", pins)
	require.True(t, ok)
	assert.Equal(t, "Failure", p.Label())

	_, ok = FindByName("Missing", pins)
	assert.False(t, ok)

	_, ok = FindByName("Success", nil)
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "A, B", Names([]FlowPin{New("A"), New("B")}))
	assert.Equal(t, "", Names(nil))
}

func TestActivationType_String(t *testing.T) {
	assert.Equal(t, "Default", Default.String())
	assert.Equal(t, "Forced", Forced.String())
	assert.Equal(t, "PassThrough", PassThrough.String())
	assert.Equal(t, "ActivationType(9)", ActivationType(9).String())
}
