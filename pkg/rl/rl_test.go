package rl

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"shaberax/pkg/logx"
)

var episodeLine = regexp.MustCompile(`^RL - 2024-01-02 03:04:05,000 : STEP -?\d+ : -?\d+\.\d{3}$`)

func newLogger(buf *bytes.Buffer) *Logger {
	reg := logx.NewRegistry(buf, logx.WithClock(func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	}))
	return New(reg)
}

func TestLogEpisodeEndSilentBelowOne(t *testing.T) {
	t.Parallel()
	for _, v := range []int{0, -1, -100} {
		var buf bytes.Buffer
		l := newLogger(&buf)
		l.SetVerbosity(v)
		l.LogEpisodeEnd(10, 1.5)
		if buf.Len() != 0 {
			t.Fatalf("verbosity %d produced output %q", v, buf.String())
		}
	}
}

func TestLogEpisodeEndOneLine(t *testing.T) {
	t.Parallel()
	tests := []struct {
		verbosity int
		step      int
		ret       float64
		want      string
	}{
		{verbosity: 1, step: 100, ret: 12.5, want: "STEP 100 : 12.500"},
		{verbosity: 10, step: 7, ret: -0.12345, want: "STEP 7 : -0.123"},
		{verbosity: 3, step: 0, ret: 2.0006, want: "STEP 0 : 2.001"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		l := newLogger(&buf)
		l.SetVerbosity(tt.verbosity)
		l.LogEpisodeEnd(tt.step, tt.ret)

		got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		if len(got) != 1 {
			t.Fatalf("expected one line, got %q", got)
		}
		if !episodeLine.MatchString(got[0]) {
			t.Fatalf("line %q does not match %s", got[0], episodeLine)
		}
		if !strings.HasSuffix(got[0], tt.want) {
			t.Fatalf("line = %q, want suffix %q", got[0], tt.want)
		}
	}
}

func TestDefaultVerbosity(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := newLogger(&buf)
	if l.Verbosity() != DefaultVerbosity {
		t.Fatalf("Verbosity() = %d, want %d", l.Verbosity(), DefaultVerbosity)
	}
}

func TestDebugHasCaller(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := newLogger(&buf)
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug shown at info threshold")
	}
	l.Sink().SetLevel(logx.LevelDebug)
	l.Debug("policy diverged")
	out := buf.String()
	if !strings.HasPrefix(out, "RL - "+logx.BackYellow+"DEBUG"+logx.Reset) || !strings.Contains(out, "rl_test.go:") {
		t.Fatalf("debug line = %q", out)
	}
}
