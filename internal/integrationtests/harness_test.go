package integrationtests

import (
	"context"
	"os"
	"testing"

	"github.com/specialistvlad/flowgridgo/internal/app"
	"github.com/specialistvlad/flowgridgo/internal/testutil"
)

// harnessResult holds the outcomes of an integration test run.
type harnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// runGraph writes files into a temp dir, runs them through the full app and
// returns everything the app printed.
func runGraph(t *testing.T, files map[string]string, mutate func(*app.Config)) *harnessResult {
	t.Helper()
	dir := testutil.WriteFiles(t, files)
	cfg := &app.Config{GraphPaths: []string{dir}, LogLevel: "debug", LogFormat: "text"}
	if mutate != nil {
		mutate(cfg)
	}

	out := &testutil.SafeBuffer{}
	a := app.NewApp(out, cfg)
	err := a.Run(context.Background())

	if os.Getenv("FGGO_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), out.String())
	}
	return &harnessResult{Output: out.String(), Err: err, App: a}
}
