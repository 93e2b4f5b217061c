// Package diag is the developer-facing diagnostics channel of a graph run.
// Configuration problems found while a graph runs (unknown pins, rejected
// add-ons) land here instead of aborting the run.
package diag

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Severity ranks a diagnostic message.
type Severity int

const (
	Note Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Level maps the severity onto a slog level.
func (s Severity) Level() slog.Level {
	switch s {
	case Error:
		return slog.LevelError
	case Warning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Message is a single diagnostic.
type Message struct {
	Severity Severity
	Asset    string
	Node     string
	Text     string
}

// String renders the message with its node context, e.g.
// "unsupported input pin \"X\" --- node gate in asset quest".
func (m Message) String() string {
	switch {
	case m.Node != "" && m.Asset != "":
		return fmt.Sprintf("%s --- node %s in asset %s", m.Text, m.Node, m.Asset)
	case m.Node != "":
		return fmt.Sprintf("%s --- node %s", m.Text, m.Node)
	default:
		return m.Text
	}
}

// Log collects messages. The zero value is ready to use.
type Log struct {
	mu       sync.Mutex
	messages []Message
}

// Add records m and writes it to logger at the matching level.
func (l *Log) Add(ctx context.Context, logger *slog.Logger, m Message) {
	l.mu.Lock()
	l.messages = append(l.messages, m)
	l.mu.Unlock()

	if logger != nil {
		logger.Log(ctx, m.Severity.Level(), m.Text, "node", m.Node, "asset", m.Asset, "severity", m.Severity.String())
	}
}

// Messages returns a snapshot of the recorded messages.
func (l *Log) Messages() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Count returns how many messages of severity s were recorded.
func (l *Log) Count(s Severity) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, m := range l.messages {
		if m.Severity == s {
			n++
		}
	}
	return n
}
