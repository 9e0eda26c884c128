package chatid

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tele "gopkg.in/telebot.v4"

	"shaberax/pkg/logx"
)

type fakeContext struct {
	tele.Context

	chat   *tele.Chat
	sender *tele.User
	args   []string
	sent   []string
}

func (f *fakeContext) Chat() *tele.Chat   { return f.chat }
func (f *fakeContext) Sender() *tele.User { return f.sender }
func (f *fakeContext) Args() []string     { return f.args }
func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	f.sent = append(f.sent, what.(string))
	return nil
}

func newStart(chatID int64, args ...string) *fakeContext {
	return &fakeContext{
		chat:   &tele.Chat{ID: chatID},
		sender: &tele.User{ID: chatID, Username: "op"},
		args:   args,
	}
}

func newHandler(password string, out *bytes.Buffer, log *bytes.Buffer, opts ...Option) *Handler {
	reg := logx.NewRegistry(log)
	return New(password, out, reg.GetOrCreate(SinkName, Policy), opts...)
}

func TestOnStartCorrectPassword(t *testing.T) {
	var out, log bytes.Buffer
	h := newHandler("s3cret", &out, &log)
	c := newStart(123456, "s3cret")

	if err := h.OnStart(c); err != nil {
		t.Fatalf("OnStart: %v", err)
	}
	if out.String() != "123456\n" {
		t.Fatalf("stdout = %q, want chat id", out.String())
	}
	if len(c.sent) != 1 || c.sent[0] != SuccessText {
		t.Fatalf("replies = %q", c.sent)
	}
}

func TestOnStartWrongPassword(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "wrong", args: []string{"guess"}},
		{name: "missing", args: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, log bytes.Buffer
			h := newHandler("s3cret", &out, &log)
			c := newStart(-100200, tt.args...)

			if err := h.OnStart(c); err != nil {
				t.Fatalf("OnStart: %v", err)
			}
			if out.Len() != 0 {
				t.Fatalf("chat id leaked on failure: %q", out.String())
			}
			if len(c.sent) != 1 || c.sent[0] != FailureText {
				t.Fatalf("replies = %q", c.sent)
			}
			if !strings.Contains(log.String(), "Failed attempt to connect.") {
				t.Fatalf("failure not logged: %q", log.String())
			}
		})
	}
}

func TestOnStartWithoutPasswordAcceptsAnyone(t *testing.T) {
	var out, log bytes.Buffer
	h := newHandler("", &out, &log)
	c := newStart(7)
	if err := h.OnStart(c); err != nil {
		t.Fatalf("OnStart: %v", err)
	}
	if out.String() != "7\n" {
		t.Fatalf("stdout = %q", out.String())
	}
}

func TestFailureRepliesAreThrottled(t *testing.T) {
	var out, log bytes.Buffer
	h := newHandler("s3cret", &out, &log, WithFailureRate(time.Hour, 2))

	replies := 0
	for i := 0; i < 5; i++ {
		c := newStart(1, "nope")
		if err := h.OnStart(c); err != nil {
			t.Fatalf("OnStart: %v", err)
		}
		replies += len(c.sent)
	}
	if replies != 2 {
		t.Fatalf("replies = %d, want 2", replies)
	}
	if n := strings.Count(log.String(), "Failed attempt to connect."); n != 5 {
		t.Fatalf("logged attempts = %d, want 5", n)
	}
}

func TestOnStartIgnoresUpdatesWithoutChat(t *testing.T) {
	var out, log bytes.Buffer
	h := newHandler("", &out, &log)
	if err := h.OnStart(&fakeContext{}); err != nil {
		t.Fatalf("OnStart: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}
}
