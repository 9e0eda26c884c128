package general

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"shaberax/pkg/logx"
)

func TestGeneralLoggerTemplates(t *testing.T) {
	var buf bytes.Buffer
	reg := logx.NewRegistry(&buf, logx.WithClock(func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	}))
	l := New(reg)
	l.SetLevel(logx.LevelDebug)

	l.Debug("step one")
	l.Warning("disk almost full")

	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %q", got)
	}

	debugPrefix := "GENERAL - " + logx.BackYellow + "DEBUG" + logx.Reset + " "
	if !strings.HasPrefix(got[0], debugPrefix) {
		t.Fatalf("debug line = %q", got[0])
	}
	if !strings.Contains(got[0], "general_test.go:") || !strings.HasSuffix(got[0], " => step one") {
		t.Fatalf("debug line lacks caller: %q", got[0])
	}

	want := "GENERAL - 2024-01-02 03:04:05,000 / " + logx.BackMagenta + "WARNING" + logx.Reset + " : disk almost full"
	if got[1] != want {
		t.Fatalf("warning line = %q, want %q", got[1], want)
	}
}

func TestGeneralLoggerSharesSink(t *testing.T) {
	var buf bytes.Buffer
	reg := logx.NewRegistry(&buf)
	a := New(reg)
	b := New(reg)
	if a.Sink() != b.Sink() {
		t.Fatalf("expected both loggers to share the GENERAL sink")
	}
	b.Info("once")
	if n := strings.Count(buf.String(), "once"); n != 1 {
		t.Fatalf("expected one line, got %d", n)
	}
}

func TestGeneralLoggerWithoutRegistry(t *testing.T) {
	l := New(nil)
	l.Warning("dropped")
}
