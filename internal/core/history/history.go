// Package history records the commands run in a shell session.
package history

import (
	"slices"
	"strings"
	"sync"
	"time"
)

// Entry represents a recorded command execution.
type Entry struct {
	ID        int       `json:"id"`
	Command   string    `json:"command"`
	Args      []string  `json:"args"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Failed returns true if the command returned an error.
func (e *Entry) Failed() bool {
	return e.Error != ""
}

// Line renders the entry as it was typed, with secrets redacted.
func (e *Entry) Line() string {
	return strings.TrimSpace(e.Command + " " + strings.Join(quoteArgs(e.Args), " "))
}

func quoteArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if strings.ContainsAny(a, " \t'\"") {
			a = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		}
		out[i] = a
	}
	return out
}

const redacted = "********"

// secretFlags are flags whose value is never recorded.
var secretFlags = []string{"--password"}

// Redact replaces the values of secret flags in args.
func Redact(args []string) []string {
	out := slices.Clone(args)
	for i := 0; i < len(out); i++ {
		for _, flag := range secretFlags {
			switch {
			case out[i] == flag && i+1 < len(out):
				out[i+1] = redacted
				i++
			case strings.HasPrefix(out[i], flag+"="):
				out[i] = flag + "=" + redacted
			}
		}
	}
	return out
}

// Log keeps the most recent entries up to a limit. It is safe for
// concurrent use.
type Log struct {
	mu      sync.Mutex
	limit   int
	nextID  int
	entries []Entry
}

// NewLog creates a log holding at most limit entries.
func NewLog(limit int) *Log {
	if limit < 1 {
		limit = 1
	}
	return &Log{limit: limit, nextID: 1}
}

// Record appends an entry for command with redacted args.
func (l *Log) Record(command string, args []string, err error, at time.Time) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := Entry{
		ID:        l.nextID,
		Command:   command,
		Args:      Redact(args),
		Timestamp: at,
	}
	if err != nil {
		e.Error = err.Error()
	}
	l.nextID++

	l.entries = append(l.entries, e)
	if len(l.entries) > l.limit {
		l.entries = slices.Delete(l.entries, 0, len(l.entries)-l.limit)
	}
	return e
}

// Recent returns up to n entries, oldest first. n <= 0 returns all.
func (l *Log) Recent(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := 0
	if n > 0 && n < len(l.entries) {
		start = len(l.entries) - n
	}
	return slices.Clone(l.entries[start:])
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
