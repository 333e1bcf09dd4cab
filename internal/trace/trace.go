// Package trace provides leveled, low-overhead tracing for the analyzer.
//
// The fail-open resolution policy logs at warn level instead of emitting
// diagnostics; this package is where those records go. Hosts pick the
// backend: nop when tracing is off, or a stream writer for CLI/debug runs.
package trace

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff Level = iota
	// LevelWarn emits only resolution failures and recovered rule panics.
	LevelWarn
	// LevelInfo adds pass and document boundaries.
	LevelInfo
	// LevelDebug emits everything including per-node resolution steps.
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "off", "OFF":
		return LevelOff, nil
	case "warn", "WARN":
		return LevelWarn, nil
	case "info", "INFO":
		return LevelInfo, nil
	case "debug", "DEBUG":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|warn|info|debug)", s)
	}
}

// Event is a single trace record.
type Event struct {
	Time   time.Time
	Level  Level
	Name   string // e.g. "resolver", "rules", "index"
	Detail string
}

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev Event)

	// Level returns the current tracing level.
	Level() Level

	// Enabled reports whether tracing is active.
	Enabled() bool
}

// Warnf emits a warn-level event through t.
func Warnf(t Tracer, name, format string, args ...any) {
	emitf(t, LevelWarn, name, format, args...)
}

// Infof emits an info-level event through t.
func Infof(t Tracer, name, format string, args ...any) {
	emitf(t, LevelInfo, name, format, args...)
}

// Debugf emits a debug-level event through t.
func Debugf(t Tracer, name, format string, args ...any) {
	emitf(t, LevelDebug, name, format, args...)
}

func emitf(t Tracer, level Level, name, format string, args ...any) {
	if t == nil || !t.Enabled() || t.Level() < level {
		return
	}
	t.Emit(Event{
		Time:   time.Now(),
		Level:  level,
		Name:   name,
		Detail: fmt.Sprintf(format, args...),
	})
}

// nopTracer is a no-op implementation for zero overhead when tracing is
// disabled.
type nopTracer struct{}

func (nopTracer) Emit(Event)   {}
func (nopTracer) Level() Level { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop is the package-level singleton nop tracer.
var Nop Tracer = nopTracer{}

// StreamTracer writes events immediately to an io.Writer as text lines.
type StreamTracer struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

// NewStreamTracer creates a StreamTracer at the given level.
func NewStreamTracer(w io.Writer, level Level) *StreamTracer {
	return &StreamTracer{w: w, level: level}
}

// Emit writes one event. Write errors are swallowed: tracing must never
// disrupt an analysis pass.
func (t *StreamTracer) Emit(ev Event) {
	if ev.Level > t.level {
		return
	}
	line := fmt.Sprintf("%s [%s] %s: %s\n",
		ev.Time.Format("15:04:05.000"), ev.Level, ev.Name, ev.Detail)

	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = io.WriteString(t.w, line)
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
