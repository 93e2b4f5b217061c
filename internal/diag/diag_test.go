package diag

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_AddRecordsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var l Log
	l.Add(context.Background(), logger, Message{Severity: Error, Asset: "quest", Node: "gate", Text: "boom"})
	l.Add(context.Background(), nil, Message{Severity: Note, Text: "fyi"})

	msgs := l.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, 1, l.Count(Error))
	assert.Equal(t, 1, l.Count(Note))
	assert.Equal(t, 0, l.Count(Warning))

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "node=gate")
	assert.Contains(t, out, "asset=quest")
}

func TestMessage_String(t *testing.T) {
	assert.Equal(t, "boom --- node gate in asset quest", Message{Asset: "quest", Node: "gate", Text: "boom"}.String())
	assert.Equal(t, "boom --- node gate", Message{Node: "gate", Text: "boom"}.String())
	assert.Equal(t, "boom", Message{Text: "boom"}.String())
}

func TestSeverity_Level(t *testing.T) {
	assert.Equal(t, slog.LevelError, Error.Level())
	assert.Equal(t, slog.LevelWarn, Warning.Level())
	assert.Equal(t, slog.LevelInfo, Note.Level())
	assert.Equal(t, "warning", Warning.String())
}
