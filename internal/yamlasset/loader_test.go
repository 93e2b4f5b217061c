package yamlasset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/flowgridgo/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const questYAML = `
graph: quest
entry: [start]
nodes:
  - name: start
    type: Start
  - name: gate
    type: Branch
    addons:
      - name: ready
        type: Constant
        properties:
          value: true
        addons:
          - name: watch
            type: Trace
  - name: say
    type: Print
    properties:
      message: hello
      repeat: 2
connections:
  - {from: start.Out, to: gate.Check}
  - {from: gate.True, to: say.In}
`

func TestLoader_ParseSource(t *testing.T) {
	model, err := NewLoader().ParseSource(context.Background(), []byte(questYAML), "quest.yaml")
	require.NoError(t, err)
	require.NoError(t, model.Validate())

	assert.Equal(t, "quest", model.Name)
	assert.Equal(t, []string{"start"}, model.Entry)

	gate, ok := model.FindNode("gate")
	require.True(t, ok)
	require.Len(t, gate.AddOns, 1)
	assert.True(t, gate.AddOns[0].Properties.GetAttr("value").True())
	assert.Equal(t, "watch", gate.AddOns[0].AddOns[0].Name)

	say, _ := model.FindNode("say")
	assert.Equal(t, cty.StringVal("hello"), say.Properties.GetAttr("message"))
	assert.True(t, say.Properties.GetAttr("repeat").Equals(cty.NumberIntVal(2)).True())

	assert.Equal(t, config.Endpoint{Node: "gate", Pin: "True"}, model.Connections[1].From)
}

func TestLoader_LoadMergesFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("entry: [start]\nnodes:\n  - {name: start, type: Start}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("nodes:\n  - {name: end, type: Finish}\nconnections:\n  - {from: start.Out, to: end.In}\n"), 0o644))

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "a", model.Name)
	assert.Len(t, model.Nodes, 2)
	assert.Len(t, model.Connections, 1)
	require.NoError(t, model.Validate())
}

func TestLoader_Errors(t *testing.T) {
	l := NewLoader()
	ctx := context.Background()

	_, err := l.ParseSource(ctx, []byte("nodes:\n  - {name: a, type: Start, colour: red}\n"), "bad.yaml")
	assert.ErrorContains(t, err, "failed to decode")

	_, err = l.ParseSource(ctx, []byte("connections:\n  - {from: a, to: b.In}\n"), "bad.yaml")
	assert.ErrorContains(t, err, "connection from")

	model, err := l.ParseSource(ctx, nil, "empty.yaml")
	require.NoError(t, err)
	assert.Equal(t, "empty", model.Name)
	assert.Empty(t, model.Nodes)
}
