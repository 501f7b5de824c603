package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Entry is a single record captured by Recorder.
type Entry struct {
	Level slog.Level
	Msg   string
	Args  []any
}

// Recorder is an in-memory Logger that keeps every record in emission
// order. Children created with With share the parent's buffer.
type Recorder struct {
	mu      *sync.Mutex
	entries *[]Entry
	attrs   []any
}

func NewRecorder() *Recorder {
	return &Recorder{mu: &sync.Mutex{}, entries: &[]Entry{}}
}

func (r *Recorder) record(level slog.Level, msg string, args []any) {
	all := make([]any, 0, len(r.attrs)+len(args))
	all = append(all, r.attrs...)
	all = append(all, args...)

	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = append(*r.entries, Entry{Level: level, Msg: msg, Args: all})
}

func (r *Recorder) Debug(_ context.Context, msg string, args ...any) {
	r.record(slog.LevelDebug, msg, args)
}

func (r *Recorder) Info(_ context.Context, msg string, args ...any) {
	r.record(slog.LevelInfo, msg, args)
}

func (r *Recorder) Warn(_ context.Context, msg string, args ...any) {
	r.record(slog.LevelWarn, msg, args)
}

func (r *Recorder) Error(_ context.Context, msg string, args ...any) {
	r.record(slog.LevelError, msg, args)
}

func (r *Recorder) With(args ...any) Logger {
	attrs := make([]any, 0, len(r.attrs)+len(args))
	attrs = append(attrs, r.attrs...)
	attrs = append(attrs, args...)
	return &Recorder{mu: r.mu, entries: r.entries, attrs: attrs}
}

// Entries returns a copy of all records.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(*r.entries))
	copy(out, *r.entries)
	return out
}

// Count returns how many records were emitted at level.
func (r *Recorder) Count(level slog.Level) int {
	n := 0
	for _, e := range r.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Contains reports whether a record at level has msg containing substr.
func (r *Recorder) Contains(level slog.Level, substr string) bool {
	for _, e := range r.Entries() {
		if e.Level == level && strings.Contains(e.Msg, substr) {
			return true
		}
	}
	return false
}

// Reset drops all captured records.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = (*r.entries)[:0]
}
