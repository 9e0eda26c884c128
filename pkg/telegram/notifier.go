package telegram

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"shaberax/pkg/logx"
)

const SinkName = "TELEGRAM"

var tag = logx.Colorize("TELEGRAM", logx.ForeBlue)

var Policy = logx.Policy{
	Templates: map[logx.Level]logx.Template{
		logx.LevelDebug: logx.Template(tag) + " - {time} : {message}",
		logx.LevelInfo:  logx.Template(tag) + " - {time} : {message}",
		logx.LevelWarn:  logx.Template(tag) + " - {time} / " + logx.Template(logx.WarningTag) + " : {message}",
		logx.LevelError: logx.Template(tag) + " - {time} / " + logx.Template(logx.ErrorTag) + " : {message}",
	},
}

var ErrAlreadyConfigured = errors.New("telegram notifier already configured")

type destination struct {
	chatID    int64
	transport Transport
}

// Notifier sends text, images and mappings to one chat.
//
// It is safe for concurrent use, but sends are not ordered with respect to
// each other.
type Notifier struct {
	log          *logx.Sink
	newTransport TransportFactory

	mu   sync.RWMutex
	dest *destination
}

type Option func(*Notifier)

// WithTransportFactory replaces the telebot-backed transport.
func WithTransportFactory(f TransportFactory) Option {
	return func(n *Notifier) {
		if f != nil {
			n.newTransport = f
		}
	}
}

// New returns an unconfigured Notifier logging to reg's TELEGRAM sink.
func New(reg *logx.Registry, opts ...Option) *Notifier {
	if reg == nil {
		reg = logx.NewRegistry(logx.Stderr())
	}
	n := &Notifier{
		log:          reg.GetOrCreate(SinkName, Policy),
		newTransport: defaultTransport,
	}
	for _, o := range opts {
		if o != nil {
			o(n)
		}
	}
	return n
}

func (n *Notifier) Sink() *logx.Sink { return n.log }

// Setup binds the notifier to a bot token and chat id. It succeeds at most
// once; the destination cannot be changed afterwards.
func (n *Notifier) Setup(token string, chatID int64) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.dest != nil {
		n.log.Warn("Telegram notifier is already configured; keeping the first destination.")
		return ErrAlreadyConfigured
	}
	tr, err := n.newTransport(token)
	if err != nil {
		n.log.Error("Telegram setup failed.", logx.Err(err))
		return fmt.Errorf("telegram setup: %w", err)
	}
	n.dest = &destination{chatID: chatID, transport: tr}
	return nil
}

func (n *Notifier) Configured() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.dest != nil
}

// SendText sends text with the given parse mode.
func (n *Notifier) SendText(ctx context.Context, text string, mode ParseMode) {
	d, ok := n.destination("SendText")
	if !ok {
		return
	}
	n.deliver(ctx, "SendText", func(ctx context.Context) (int, error) {
		return d.transport.SendMessage(ctx, d.chatID, text, mode)
	})
}

// SendImage sends a photo given by path or stream.
func (n *Notifier) SendImage(ctx context.Context, photo Photo) {
	d, ok := n.destination("SendImage")
	if !ok {
		return
	}
	n.deliver(ctx, "SendImage", func(ctx context.Context) (int, error) {
		return d.transport.SendPhoto(ctx, d.chatID, photo)
	})
}

// SendMapping renders m as a YAML code block and sends it as MarkdownV2.
func (n *Notifier) SendMapping(ctx context.Context, m map[string]any) {
	if _, ok := n.destination("SendMapping"); !ok {
		return
	}
	text, err := RenderMapping(m)
	if err != nil {
		n.log.Error("Telegram SendMapping failed. Process will continue.", logx.Err(err))
		return
	}
	n.SendText(ctx, text, MarkdownV2)
}

func (n *Notifier) destination(op string) (*destination, bool) {
	n.mu.RLock()
	d := n.dest
	n.mu.RUnlock()
	if d == nil {
		n.log.Warn("Telegram " + op + " skipped: notifier is not configured.")
		return nil, false
	}
	return d, true
}

// deliver makes exactly one attempt and reports the outcome on the sink.
func (n *Notifier) deliver(ctx context.Context, op string, send func(context.Context) (int, error)) {
	if ctx == nil {
		ctx = context.Background()
	}

	id, err := func() (id int, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
				n.log.Debug("transport panic", logx.String("stack", string(debug.Stack())))
			}
		}()
		return send(ctx)
	}()

	if err == nil && id == 0 {
		err = ErrNoConfirmation
	}
	if err != nil {
		n.log.Error("Telegram "+op+" failed. Process will continue.", logx.Err(err))
		return
	}
	n.log.Debug("Successfully sent log.", logx.Int("message_id", id))
}
