// Command chatid prints the chat id of whoever sends /start to the bot.
//
//	chatid <token> [--password secret]
//
// Send "/start secret" to the bot from the chat that should receive
// notifications; the id is printed on stdout.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"shaberax/internal/chatid"
	"shaberax/pkg/logx"
)

type options struct {
	Password    string        `long:"password" description:"secret that must follow /start, so no one else uses your bot"`
	PollTimeout time.Duration `long:"poll-timeout" default:"10s" description:"long-poll timeout"`
	LogLevel    string        `long:"log-level" default:"info" description:"log level"`

	Args struct {
		Token string `positional-arg-name:"token" description:"the token of your bot" required:"yes"`
	} `positional-args:"yes"`
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

	reg := logx.NewRegistry(logx.Stderr(), logx.WithLevel(logx.ParseLevel(opts.LogLevel, logx.LevelInfo)))
	log := reg.GetOrCreate(chatid.SinkName, chatid.Policy)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	h := chatid.New(opts.Password, logx.Stdout(), log)
	if err := chatid.Run(ctx, opts.Args.Token, opts.PollTimeout, h); err != nil {
		log.Error("fatal", logx.Err(err))
		os.Exit(1)
	}
}
