package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		exit     bool
		errCode  int
		validate func(t *testing.T, paths, entry []string, deferred bool, depth int)
	}{
		{
			name: "positional and repeated flags",
			args: []string{"-g", "a.hcl", "--graph", "b.yaml", "--entry", "start, other", "--deferred", "--max-depth", "5", "c"},
			validate: func(t *testing.T, paths, entry []string, deferred bool, depth int) {
				assert.Equal(t, []string{"a.hcl", "b.yaml", "c"}, paths)
				assert.Equal(t, []string{"start", "other"}, entry)
				assert.True(t, deferred)
				assert.Equal(t, 5, depth)
			},
		},
		{
			name: "defaults",
			args: []string{"graph.hcl"},
			validate: func(t *testing.T, paths, entry []string, deferred bool, depth int) {
				assert.Equal(t, []string{"graph.hcl"}, paths)
				assert.Empty(t, entry)
				assert.False(t, deferred)
				assert.Equal(t, 64, depth)
			},
		},
		{name: "help", args: []string{"-h"}, exit: true},
		{name: "no path", args: nil, exit: true},
		{name: "unknown flag", args: []string{"--nope"}, errCode: 2},
		{name: "bad log format", args: []string{"--log-format", "xml", "g.hcl"}, errCode: 2},
		{name: "bad log level", args: []string{"--log-level", "loud", "g.hcl"}, errCode: 2},
		{name: "negative depth", args: []string{"--max-depth", "-1", "g.hcl"}, errCode: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg, exit, err := Parse(tc.args, &out)
			if tc.errCode != 0 {
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr))
				assert.Equal(t, tc.errCode, exitErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.exit, exit)
			if tc.exit {
				assert.Contains(t, out.String(), "Usage:")
				return
			}
			tc.validate(t, cfg.GraphPaths, cfg.Entry, cfg.Deferred, cfg.MaxDepth)
		})
	}
}
