package telegram

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"
)

// ParseMode selects how Telegram interprets message text. The zero value
// sends plain text.
type ParseMode string

const (
	Plain      ParseMode = ""
	Markdown   ParseMode = ParseMode(tele.ModeMarkdown)
	MarkdownV2 ParseMode = ParseMode(tele.ModeMarkdownV2)
	HTML       ParseMode = ParseMode(tele.ModeHTML)
)

// DefaultTimeout bounds a single Bot API round-trip.
const DefaultTimeout = 30 * time.Second

var (
	ErrEmptyToken     = errors.New("telegram token is empty")
	ErrEmptyPhoto     = errors.New("telegram photo has neither path nor reader")
	ErrNoConfirmation = errors.New("telegram returned no message id")
)

// Photo is an image given either by file path or as a stream.
type Photo struct {
	Path   string
	Reader io.Reader
}

func PhotoFromFile(path string) Photo { return Photo{Path: path} }

func PhotoFromReader(r io.Reader) Photo { return Photo{Reader: r} }

func (p Photo) file() (tele.File, error) {
	switch {
	case p.Reader != nil:
		return tele.FromReader(p.Reader), nil
	case strings.TrimSpace(p.Path) != "":
		return tele.FromDisk(p.Path), nil
	default:
		return tele.File{}, ErrEmptyPhoto
	}
}

// Transport is the slice of the Bot API the Notifier needs. Both calls
// return the id of the delivered message.
type Transport interface {
	SendMessage(ctx context.Context, chatID int64, text string, mode ParseMode) (int, error)
	SendPhoto(ctx context.Context, chatID int64, photo Photo) (int, error)
}

// TransportFactory builds a Transport for a bot token.
type TransportFactory func(token string) (Transport, error)

// BotTransport implements Transport on top of telebot.
type BotTransport struct {
	bot *tele.Bot
}

// NewBotTransport creates a send-only bot. No request is made until the
// first send.
func NewBotTransport(token string, timeout time.Duration) (*BotTransport, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrEmptyToken
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	b, err := tele.NewBot(tele.Settings{
		Token:   token,
		Offline: true,
		Client:  &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, err
	}
	return &BotTransport{bot: b}, nil
}

func defaultTransport(token string) (Transport, error) {
	return NewBotTransport(token, DefaultTimeout)
}

func (t *BotTransport) SendMessage(ctx context.Context, chatID int64, text string, mode ParseMode) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	msg, err := t.bot.Send(tele.ChatID(chatID), text, &tele.SendOptions{ParseMode: tele.ParseMode(mode)})
	return messageID(msg, err)
}

func (t *BotTransport) SendPhoto(ctx context.Context, chatID int64, photo Photo) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f, err := photo.file()
	if err != nil {
		return 0, err
	}
	msg, err := t.bot.Send(tele.ChatID(chatID), &tele.Photo{File: f})
	return messageID(msg, err)
}

func messageID(msg *tele.Message, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	if msg == nil || msg.ID == 0 {
		return 0, ErrNoConfirmation
	}
	return msg.ID, nil
}
