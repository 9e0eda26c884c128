// Command notify sends a text, an image and/or a YAML mapping to the chat
// configured in a config file.
//
//	notify --config shaberax.yaml --text "training done" --image plot.png --mapping metrics.yaml
//
// --text is escaped for the configured parse mode (MarkdownV2 by default) so
// it arrives verbatim; pass --raw to send markup as-is. Delivery failures are
// logged and do not change the exit status.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	yaml "go.yaml.in/yaml/v3"

	"shaberax/internal/config"
	"shaberax/pkg/logx"
	"shaberax/pkg/telegram"
)

type options struct {
	Config  string `short:"c" long:"config" default:"./shaberax.yaml" description:"path to config (yaml or json)"`
	Text    string `short:"t" long:"text" description:"text to send"`
	Image   string `short:"i" long:"image" description:"path of an image to send"`
	Mapping string `short:"m" long:"mapping" description:"path of a YAML mapping to send as a code block"`
	Raw     bool   `long:"raw" description:"send --text without escaping it for the parse mode"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}
	os.Exit(run(opts))
}

func run(opts options) int {
	boot := logx.NewRegistry(logx.Stderr()).GetOrCreate("NOTIFY", logx.Policy{Fallback: "NOTIFY - {time} : {message}"})

	cfg, err := config.Load(opts.Config)
	if err != nil {
		boot.Error("load config", logx.Err(err))
		return 1
	}
	timeout := cfg.Telegram.Timeout.OrDefault(telegram.DefaultTimeout)

	var mapping map[string]any
	if opts.Mapping != "" {
		b, err := os.ReadFile(opts.Mapping)
		if err != nil {
			boot.Error("read mapping", logx.Err(err))
			return 1
		}
		if err := yaml.Unmarshal(b, &mapping); err != nil {
			boot.Error("parse mapping", logx.String("path", opts.Mapping), logx.Err(err))
			return 1
		}
	}
	if opts.Text == "" && opts.Image == "" && mapping == nil {
		boot.Error("nothing to send: use --text, --image or --mapping")
		return 2
	}

	reg := logx.NewRegistry(logx.Stderr(), logx.WithLevel(logx.ParseLevel(cfg.Logging.Level, logx.LevelInfo)))
	n := telegram.New(reg, telegram.WithTransportFactory(func(token string) (telegram.Transport, error) {
		return telegram.NewBotTransport(token, timeout)
	}))
	if err := n.Setup(cfg.Telegram.Token, cfg.Telegram.ChatID); err != nil {
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if opts.Text != "" {
		mode := telegram.ParseMode(cfg.Telegram.Mode())
		text := opts.Text
		if !opts.Raw {
			text = telegram.EscapeText(mode, text)
		}
		n.SendText(ctx, text, mode)
	}
	if opts.Image != "" {
		n.SendImage(ctx, telegram.PhotoFromFile(opts.Image))
	}
	if mapping != nil {
		n.SendMapping(ctx, mapping)
	}
	return 0
}
