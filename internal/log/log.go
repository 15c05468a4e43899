package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Fault classifies a recovered failure.
type Fault uint8

const (
	// FaultSubscriber is an error or panic raised by a subscriber during dispatch.
	FaultSubscriber Fault = iota
	// FaultSerialization is a canonical-format read or write failure.
	FaultSerialization
	// FaultCorruptState means no reader could decode a persisted file.
	FaultCorruptState
	// FaultVersionParse is a malformed host version string.
	FaultVersionParse
	// FaultDependencyResolution is a lookup for a dependency nobody provides.
	FaultDependencyResolution
)

// String returns the fault name used in log records.
func (f Fault) String() string {
	switch f {
	case FaultSubscriber:
		return "subscriber"
	case FaultSerialization:
		return "serialization"
	case FaultCorruptState:
		return "corrupt_state"
	case FaultVersionParse:
		return "version_parse"
	case FaultDependencyResolution:
		return "dependency_resolution"
	default:
		return "unknown"
	}
}

// Logger is the leveled key/value logging interface. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Sink is the error-log collaborator. Callers report recovered faults here
// instead of propagating them.
type Sink interface {
	Logger

	// Fault records a recovered failure of the given kind.
	Fault(kind Fault, msg string, err error, keysAndValues ...any)
}

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// New builds a slog logger writing to w. The level is read from lv on every
// record so it can be changed after settings load.
func New(w io.Writer, format Format, lv *slog.LevelVar) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if lv == nil {
		lv = new(slog.LevelVar)
	}
	opts := &slog.HandlerOptions{
		Level:       lv,
		ReplaceAttr: replaceLevel,
	}

	var h slog.Handler
	if strings.EqualFold(string(format), string(FormatJSON)) {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// replaceLevel renders the fine level by name instead of "DEBUG-4".
func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelFineSlog {
		a.Value = slog.StringValue("FINE")
	}
	return a
}

// SlogSink adapts a slog.Logger to Sink.
type SlogSink struct {
	*slog.Logger
}

// NewSink wraps l. A nil logger uses slog.Default().
func NewSink(l *slog.Logger) *SlogSink {
	if l == nil {
		l = slog.Default()
	}
	return &SlogSink{Logger: l}
}

// Fault implements Sink.
func (s *SlogSink) Fault(kind Fault, msg string, err error, keysAndValues ...any) {
	args := make([]any, 0, len(keysAndValues)+4)
	args = append(args, "fault", kind.String())
	if err != nil {
		args = append(args, "error", err)
	}
	args = append(args, keysAndValues...)
	s.Logger.Error(msg, args...)
}

// Fine logs below debug level.
func (s *SlogSink) Fine(msg string, keysAndValues ...any) {
	s.Logger.Log(context.Background(), LevelFineSlog, msg, keysAndValues...)
}

// WithComponent returns a sink whose records carry the component field.
func (s *SlogSink) WithComponent(name string) *SlogSink {
	return &SlogSink{Logger: s.Logger.With(slog.String("component", name))}
}

type nopSink struct{}

func (nopSink) Debug(string, ...any)               {}
func (nopSink) Info(string, ...any)                {}
func (nopSink) Error(string, ...any)               {}
func (nopSink) Fault(Fault, string, error, ...any) {}

// Nop returns a Sink that discards everything.
func Nop() Sink { return nopSink{} }

// Entry is one fault captured by a Recorder.
type Entry struct {
	Kind    Fault
	Message string
	Err     error
}

// Recorder is a Sink that keeps faults in memory. Plain log lines are
// discarded.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Debug(string, ...any) {}
func (r *Recorder) Info(string, ...any)  {}
func (r *Recorder) Error(string, ...any) {}

// Fault implements Sink.
func (r *Recorder) Fault(kind Fault, msg string, err error, _ ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Kind: kind, Message: msg, Err: err})
}

// Entries returns a copy of the recorded faults.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns the number of faults of kind.
func (r *Recorder) Count(kind Fault) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the total number of recorded faults.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Reset drops all recorded faults.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
