package logx

import (
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeLayout matches the familiar "2024-05-01 12:00:00,123" stamp.
const DefaultTimeLayout = "2006-01-02 15:04:05,000"

// Registry owns the named sinks of a process (or of a test).
//
// All sinks of a registry share one writer; lines are written whole, so
// concurrent sinks never interleave within a line.
type Registry struct {
	mu    sync.Mutex
	sinks map[string]*Sink

	wmu sync.Mutex
	out io.Writer

	now        func() time.Time
	timeLayout string
	level      Level
}

type Option func(*Registry)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithTimeLayout overrides the layout used for {time}.
func WithTimeLayout(layout string) Option {
	return func(r *Registry) {
		if layout != "" {
			r.timeLayout = layout
		}
	}
}

// WithLevel sets the threshold given to newly created sinks (default info).
func WithLevel(l Level) Option {
	return func(r *Registry) { r.level = l }
}

func NewRegistry(w io.Writer, opts ...Option) *Registry {
	if w == nil {
		w = Stderr()
	}
	r := &Registry{
		sinks:      map[string]*Sink{},
		out:        w,
		now:        time.Now,
		timeLayout: DefaultTimeLayout,
		level:      LevelInfo,
	}
	for _, o := range opts {
		if o != nil {
			o(r)
		}
	}
	return r
}

// GetOrCreate returns the sink registered under name, creating it with
// policy on first use. On later calls policy is ignored.
func (r *Registry) GetOrCreate(name string, policy Policy) *Sink {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sinks[name]; ok {
		return s
	}
	s := newSink(r, name, policy)
	r.sinks[name] = s
	return s
}

func (r *Registry) Lookup(name string) (*Sink, bool) {
	r.mu.Lock()
	s, ok := r.sinks[name]
	r.mu.Unlock()
	return s, ok
}

// Names returns the registered sink names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	out := make([]string, 0, len(r.sinks))
	for name := range r.sinks {
		out = append(out, name)
	}
	r.mu.Unlock()
	sort.Strings(out)
	return out
}

// Reset forgets every sink. Sinks handed out earlier keep working but are no
// longer returned by GetOrCreate.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.sinks = map[string]*Sink{}
	r.mu.Unlock()
}

func (r *Registry) writeLine(line string) error {
	r.wmu.Lock()
	defer r.wmu.Unlock()
	_, err := io.WriteString(r.out, line+"\n")
	return err
}

func (r *Registry) stamp() string {
	return r.now().Format(r.timeLayout)
}

func newZerolog(w zerolog.LevelWriter) zerolog.Logger {
	// Filtering is done by Sink so its threshold can change at runtime.
	return zerolog.New(w).Level(zerolog.TraceLevel)
}

// Stdout returns the stdout sink.
func Stdout() io.Writer { return os.Stdout }

// Stderr returns the stderr sink. Console loggers write here by default.
func Stderr() io.Writer { return os.Stderr }
