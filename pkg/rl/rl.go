// Package rl logs reinforcement-learning training progress.
//
// Verbosity controls what is printed:
//   - 0 (or less): nothing
//   - 1 and above: one line per finished episode
package rl

import (
	"fmt"
	"sync/atomic"

	"shaberax/pkg/logx"
)

const (
	SinkName = "RL"

	DefaultVerbosity = 10
)

var Policy = logx.Policy{
	Templates: map[logx.Level]logx.Template{
		logx.LevelDebug: "RL - " + logx.Template(logx.DebugTag) + " {caller} => {message}",
		logx.LevelInfo:  "RL - {time} : {message}",
	},
}

type Logger struct {
	sink      *logx.Sink
	verbosity atomic.Int64
}

func New(reg *logx.Registry) *Logger {
	l := &Logger{sink: logx.Nop()}
	if reg != nil {
		l.sink = reg.GetOrCreate(SinkName, Policy)
	}
	l.verbosity.Store(DefaultVerbosity)
	return l
}

func (l *Logger) Sink() *logx.Sink { return l.sink }

func (l *Logger) SetVerbosity(v int) { l.verbosity.Store(int64(v)) }

func (l *Logger) Verbosity() int { return int(l.verbosity.Load()) }

// LogEpisodeEnd prints the return of a finished episode.
func (l *Logger) LogEpisodeEnd(step int, episodeReturn float64) {
	if l.Verbosity() < 1 {
		return
	}
	l.sink.Output(2, logx.LevelInfo, FormatEpisode(step, episodeReturn))
}

// Debug logs with the caller's file:line. Debug lines only show once the
// sink level is lowered to logx.LevelDebug.
func (l *Logger) Debug(msg string, fields ...logx.Field) {
	l.sink.Output(2, logx.LevelDebug, msg, fields...)
}

func FormatEpisode(step int, episodeReturn float64) string {
	return fmt.Sprintf("STEP %d : %.3f", step, episodeReturn)
}
