// Package chatid answers /start on a bot and prints the sender's chat id, so
// operators can find the destination to configure the Telegram notifier.
package chatid

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"time"

	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"

	"shaberax/pkg/logx"
)

const (
	SinkName = "CHATID"

	SuccessText = "Success! Check the chat_id on the console."
	FailureText = "Failed! Provide the correct password."
)

var Policy = logx.Policy{
	Templates: map[logx.Level]logx.Template{
		logx.LevelInfo:  "CHATID - {time} : {message}",
		logx.LevelWarn:  "CHATID - {time} / " + logx.Template(logx.WarningTag) + " : {message}",
		logx.LevelError: "CHATID - {time} / " + logx.Template(logx.ErrorTag) + " : {message}",
	},
	Fallback: "CHATID - {time} : {message}",
}

type Handler struct {
	password string
	out      io.Writer
	log      *logx.Sink
	limiter  *rate.Limiter
}

type Option func(*Handler)

// WithFailureRate throttles "wrong password" replies. Throttled attempts are
// still logged, only the reply is skipped.
func WithFailureRate(every time.Duration, burst int) Option {
	return func(h *Handler) {
		if every <= 0 || burst <= 0 {
			h.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		h.limiter = rate.NewLimiter(rate.Every(every), burst)
	}
}

// New returns a /start handler. An empty password accepts any /start.
// Discovered chat ids are written to out, one per line.
func New(password string, out io.Writer, log *logx.Sink, opts ...Option) *Handler {
	if log == nil {
		log = logx.Nop()
	}
	h := &Handler{
		password: password,
		out:      out,
		log:      log,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 3),
	}
	for _, o := range opts {
		if o != nil {
			o(h)
		}
	}
	return h
}

func (h *Handler) accepts(args []string) bool {
	if h.password == "" {
		return true
	}
	if len(args) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(args[0]), []byte(h.password)) == 1
}

// OnStart handles the /start command.
func (h *Handler) OnStart(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}
	from := ""
	if u := c.Sender(); u != nil {
		from = u.Username
	}

	if h.accepts(c.Args()) {
		if _, err := fmt.Fprintln(h.out, chat.ID); err != nil {
			return fmt.Errorf("print chat id: %w", err)
		}
		h.log.Info("chat id discovered", logx.Int64("chat_id", chat.ID), logx.String("from", from))
		return c.Send(SuccessText)
	}

	h.log.Warn("Failed attempt to connect.", logx.Int64("chat_id", chat.ID), logx.String("from", from))
	if !h.limiter.Allow() {
		return nil
	}
	return c.Send(FailureText)
}

// Run polls the bot until ctx is cancelled.
func Run(ctx context.Context, token string, pollTimeout time.Duration, h *Handler) error {
	if pollTimeout <= 0 {
		pollTimeout = 10 * time.Second
	}
	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: pollTimeout},
		OnError: func(err error, _ tele.Context) {
			h.log.Error("bot error", logx.Err(err))
		},
	})
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}
	b.Handle("/start", h.OnStart)

	// Ensure we stop telebot when context is cancelled.
	go func() {
		<-ctx.Done()
		b.Stop()
	}()

	h.log.Info("polling started; send /start <password> to the bot", logx.String("bot", b.Me.Username))
	b.Start() // blocks until Stop() called
	h.log.Info("polling stopped")
	return nil
}
