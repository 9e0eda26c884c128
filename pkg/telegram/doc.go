// Package telegram pushes log messages to a Telegram chat.
//
// Create a bot with @BotFather (https://core.telegram.org/bots/features#botfather)
// and obtain the chat id with the chatid command shipped in this repository.
//
// A Notifier starts unconfigured. Setup binds it to a bot token and a chat
// id exactly once; sends issued before that only log a warning. Delivery is
// best-effort: every send makes a single attempt and failures are logged on
// the TELEGRAM console sink, never returned, so a broken network never takes
// the host process down.
package telegram
