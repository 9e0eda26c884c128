// Package general provides the general-purpose console logger.
package general

import "shaberax/pkg/logx"

const SinkName = "GENERAL"

// Policy renders debug lines with their source location and warnings with a
// timestamp.
var Policy = logx.Policy{
	Templates: map[logx.Level]logx.Template{
		logx.LevelDebug: "GENERAL - " + logx.Template(logx.DebugTag) + " {caller} => {message}",
		logx.LevelInfo:  "GENERAL - {time} : {message}",
		logx.LevelWarn:  "GENERAL - {time} / " + logx.Template(logx.WarningTag) + " : {message}",
		logx.LevelError: "GENERAL - {time} / " + logx.Template(logx.ErrorTag) + " : {message}",
	},
}

type Logger struct {
	sink *logx.Sink
}

// New returns the logger bound to the registry's GENERAL sink.
func New(reg *logx.Registry) *Logger {
	if reg == nil {
		return &Logger{sink: logx.Nop()}
	}
	return &Logger{sink: reg.GetOrCreate(SinkName, Policy)}
}

func (l *Logger) Sink() *logx.Sink { return l.sink }

func (l *Logger) SetLevel(level logx.Level) { l.sink.SetLevel(level) }

func (l *Logger) Debug(msg string, fields ...logx.Field) {
	l.sink.Output(2, logx.LevelDebug, msg, fields...)
}

func (l *Logger) Info(msg string, fields ...logx.Field) {
	l.sink.Output(2, logx.LevelInfo, msg, fields...)
}

func (l *Logger) Warning(msg string, fields ...logx.Field) {
	l.sink.Output(2, logx.LevelWarn, msg, fields...)
}

func (l *Logger) Error(msg string, fields ...logx.Field) {
	l.sink.Output(2, logx.LevelError, msg, fields...)
}
