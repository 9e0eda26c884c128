package logx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Sink is a named console logger.
//
// The zero value and the result of Nop are safe no-op sinks.
type Sink struct {
	name   string
	reg    *Registry
	policy Policy
	level  atomic.Int32
	zl     zerolog.Logger
}

// Nop returns a sink that never writes anything.
func Nop() *Sink { return &Sink{} }

func newSink(r *Registry, name string, policy Policy) *Sink {
	s := &Sink{name: name, reg: r, policy: policy}
	s.level.Store(int32(r.level))
	s.zl = newZerolog(&policyWriter{sink: s})
	return s
}

func (s *Sink) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Policy returns the policy the sink was created with.
func (s *Sink) Policy() Policy {
	if s == nil {
		return Policy{}
	}
	return s.policy
}

// SetLevel changes the minimum severity written by the sink.
func (s *Sink) SetLevel(l Level) {
	if s == nil {
		return
	}
	s.level.Store(int32(l))
}

func (s *Sink) Level() Level {
	if s == nil {
		return zerolog.Disabled
	}
	return Level(s.level.Load())
}

// Enabled reports whether a line at level would be written.
func (s *Sink) Enabled(level Level) bool {
	if s == nil || s.reg == nil {
		return false
	}
	return level >= s.Level()
}

func (s *Sink) Debug(msg string, fields ...Field) { s.Output(2, LevelDebug, msg, fields...) }
func (s *Sink) Info(msg string, fields ...Field)  { s.Output(2, LevelInfo, msg, fields...) }
func (s *Sink) Warn(msg string, fields ...Field)  { s.Output(2, LevelWarn, msg, fields...) }
func (s *Sink) Error(msg string, fields ...Field) { s.Output(2, LevelError, msg, fields...) }

// Output writes one line at level. calldepth counts the frames to skip when
// resolving {caller}: 1 is the caller of Output, 2 the caller of a wrapper
// around Output, and so on.
func (s *Sink) Output(calldepth int, level Level, msg string, fields ...Field) {
	if !s.Enabled(level) {
		return
	}
	e := s.zl.WithLevel(level)
	if e == nil {
		return
	}

	// Reserved keys go first so decodeEvent can tell them apart from
	// user fields that reuse the same names.
	e.Str(zerolog.TimestampFieldName, s.reg.stamp())
	caller := ""
	if _, file, line, ok := runtime.Caller(calldepth); ok && file != "" {
		caller = file + ":" + strconv.Itoa(line)
	}
	e.Str(zerolog.CallerFieldName, caller)
	e.Str(zerolog.MessageFieldName, msg)
	for _, f := range fields {
		if f != nil {
			f(e)
		}
	}
	e.Send()
}

// policyWriter turns zerolog's JSON events back into text using the sink's
// policy.
type policyWriter struct {
	sink *Sink
}

func (w *policyWriter) Write(p []byte) (int, error) {
	rec, ok := decodeEvent(p)
	if !ok {
		return len(p), w.sink.reg.writeLine(strings.TrimSpace(string(p)))
	}
	return len(p), w.sink.reg.writeLine(w.sink.policy.Format(rec))
}

func (w *policyWriter) WriteLevel(level Level, p []byte) (int, error) {
	rec, ok := decodeEvent(p)
	if !ok {
		return len(p), w.sink.reg.writeLine(strings.TrimSpace(string(p)))
	}
	rec.Level = level
	return len(p), w.sink.reg.writeLine(w.sink.policy.Format(rec))
}

// renamedPrefix is prepended to user fields named like a reserved key.
const renamedPrefix = "field."

func reservedKey(k string) bool {
	switch k {
	case zerolog.LevelFieldName, zerolog.TimestampFieldName, zerolog.CallerFieldName, zerolog.MessageFieldName:
		return true
	}
	return false
}

// decodeEvent reads one zerolog line. The first occurrence of a reserved
// key belongs to the record; later ones are user fields and get renamed.
func decodeEvent(p []byte) (Record, bool) {
	dec := json.NewDecoder(bytes.NewReader(p))
	dec.UseNumber()
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return Record{}, false
	}

	var rec Record
	seen := map[string]bool{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Record{}, false
		}
		key, ok := tok.(string)
		if !ok {
			return Record{}, false
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return Record{}, false
		}

		if reservedKey(key) && !seen[key] {
			seen[key] = true
			s, _ := v.(string)
			switch key {
			case zerolog.LevelFieldName:
				if l, err := zerolog.ParseLevel(s); err == nil {
					rec.Level = l
				}
			case zerolog.TimestampFieldName:
				rec.Time = s
			case zerolog.CallerFieldName:
				rec.Caller = s
			case zerolog.MessageFieldName:
				rec.Message = s
			}
			continue
		}
		if reservedKey(key) {
			key = renamedPrefix + key
		}
		rec.Fields = append(rec.Fields, KV{Key: key, Value: valString(v)})
	}
	sort.SliceStable(rec.Fields, func(i, j int) bool { return rec.Fields[i].Key < rec.Fields[j].Key })
	return rec, true
}

func valString(v any) string {
	switch x := v.(type) {
	case string:
		if x == "" || strings.ContainsAny(x, " \t\r\n\"=") {
			return strconv.Quote(x)
		}
		return x
	case json.Number:
		return x.String()
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}
