package app

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/specialistvlad/flowgridgo/internal/lifecycle"
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
	"github.com/specialistvlad/flowgridgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const successHCL = `
	graph "quest" {
	  entry = ["start"]
	}

	node "start" {
	  type = "Start"
	}

	node "gate" {
	  type = "Branch"

	  addon "ready" {
	    type       = "Constant"
	    properties = { value = true }
	  }

	  addon "watch" {
	    type = "Trace"
	  }
	}

	node "won" {
	  type       = "Print"
	  properties = { message = "quest complete" }
	}

	node "lost" {
	  type       = "Print"
	  properties = { message = "quest failed" }
	}

	node "end" {
	  type = "Finish"
	}

	connection {
	  from = "start.Out"
	  to   = "gate.Check"
	}
	connection {
	  from = "gate.True"
	  to   = "won.In"
	}
	connection {
	  from = "gate.False"
	  to   = "lost.In"
	}
	connection {
	  from = "won.Out"
	  to   = "end.In"
	}
`

// setupApp writes files into a temp dir and builds an App over them with
// debug text logging captured in the returned buffer.
func setupApp(t *testing.T, files map[string]string, mutate func(*Config)) (*App, *testutil.SafeBuffer) {
	t.Helper()
	dir := testutil.WriteFiles(t, files)
	cfg := &Config{GraphPaths: []string{dir}, LogLevel: "debug", LogFormat: "text"}
	if mutate != nil {
		mutate(cfg)
	}
	out := &testutil.SafeBuffer{}
	return NewApp(out, cfg), out
}

func TestApp_RunSuccessRoute(t *testing.T) {
	// --- Arrange ---
	// The Constant predicate is true, so Branch takes the True route.
	a, out := setupApp(t, map[string]string{"quest.hcl": successHCL}, nil)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "quest complete")
	assert.NotContains(t, out.String(), "      quest failed", "The False route must never fire")
	assert.Contains(t, out.String(), "Finish reached.")

	// The run is kept for inspection after Stop deinitialized every node.
	run := a.LastRun()
	require.NotNil(t, run)
	assert.True(t, run.Finished())
	won, ok := run.Node("won")
	require.True(t, ok)
	assert.Equal(t, lifecycle.Deinitialized, won.State())
}

func TestApp_EntryOverrideAndDeferred(t *testing.T) {
	// --- Arrange ---
	// Overriding the entry skips the branch entirely.
	a, out := setupApp(t, map[string]string{"quest.hcl": successHCL}, func(c *Config) {
		c.Entry = []string{"lost"}
		c.Deferred = true
	})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "      quest failed")
	assert.NotContains(t, out.String(), "      quest complete")
}

func TestApp_LoadsYAMLAlongsideHCL(t *testing.T) {
	// --- Arrange ---
	// Nodes declared in one format can be wired from the other.
	files := map[string]string{
		"a.hcl": `
			node "start" {
			  type = "Start"
			}
		`,
		"b.yaml": `
			nodes:
			  - name: hello
			    type: Print
			    properties: {message: from yaml}
			connections:
			  - {from: start.Out, to: hello.In}
		`,
	}
	a, out := setupApp(t, files, nil)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "      from yaml")
}

func TestApp_ErrorsFailTheRun(t *testing.T) {
	// --- Arrange ---
	// The script triggers an output pin Script does not declare.
	files := map[string]string{"bad.hcl": `
		node "start" {
		  type = "Start"
		}
		node "boom" {
		  type       = "Script"
		  properties = { on_input = "trigger(\"Nowhere\", true)" }
		}
		connection {
		  from = "start.Out"
		  to   = "boom.In"
		}
	`}
	a, out := setupApp(t, files, nil)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	assert.True(t, errors.Is(err, ErrRunFailed), "Error diagnostics should fail the run")
	assert.Contains(t, out.String(), "unknown output pin")
}

func TestApp_NoGraphFiles(t *testing.T) {
	// --- Arrange ---
	a, _ := setupApp(t, map[string]string{"README.md": "nothing here"}, nil)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	assert.True(t, errors.Is(err, ErrNoGraph))
}

func TestApp_CompileError(t *testing.T) {
	// --- Arrange ---
	a, _ := setupApp(t, map[string]string{"x.hcl": `
		node "a" {
		  type = "DoesNotExist"
		}
	`}, nil)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	assert.ErrorContains(t, err, "failed to compile graph")
}

// brokenModule registers a type without a factory, which the registry
// rejects during validation.
type brokenModule struct{}

func (brokenModule) Register(r *nodetype.Registry) {
	r.RegisterType(&nodetype.Definition{Type: "Broken"})
}

func TestNewApp_PanicsOnInvalidRegistry(t *testing.T) {
	// --- Act & Assert ---
	// An invalid registry is a programming error, so NewApp panics and
	// cmd/cli recovers it into an error.
	assert.Panics(t, func() {
		NewApp(&bytes.Buffer{}, &Config{GraphPaths: []string{"."}}, brokenModule{})
	})
}

func TestNewConfig(t *testing.T) {
	// At least one graph path is required.
	_, err := NewConfig(Config{})
	assert.Error(t, err)

	// A negative depth limit makes no sense.
	_, err = NewConfig(Config{GraphPaths: []string{"g"}, MaxDepth: -1})
	assert.Error(t, err)

	cfg, err := NewConfig(Config{GraphPaths: []string{"g"}, MaxDepth: 8})
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MaxDepth)
}

func TestApp_HealthAndTraceEndpoints(t *testing.T) {
	// --- Arrange ---
	// Serve the handlers through httptest instead of a real port.
	a, _ := setupApp(t, map[string]string{"quest.hcl": successHCL}, nil)
	srv := httptest.NewServer(a.healthMux())
	defer srv.Close()

	// Before any run there is no trace to show.
	resp, err := http.Get(srv.URL + "/trace")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// --- Act ---
	require.NoError(t, a.Run(context.Background()))

	// --- Assert ---
	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/trace")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "output gate.True")
}
