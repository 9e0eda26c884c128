package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the file read by cmd/notify.
//
// Example (YAML):
//
//	telegram:
//	  token: "123:abc"        # or leave empty and set SHABERAX_TELEGRAM_TOKEN
//	  chat_id: 123456789
//	  parse_mode: MarkdownV2  # default; "Plain" sends raw text
//	  timeout: 30s
//	logging:
//	  level: debug
type Config struct {
	Telegram TelegramConfig `json:"telegram" yaml:"telegram"`
	Logging  LoggingConfig  `json:"logging" yaml:"logging"`
}

type TelegramConfig struct {
	Token  string `json:"token" yaml:"token"`
	ChatID int64  `json:"chat_id" yaml:"chat_id"`
	// ParseMode is one of "Plain", "Markdown", "MarkdownV2" (default), "HTML".
	ParseMode string `json:"parse_mode,omitempty" yaml:"parse_mode,omitempty"`
	// Timeout bounds one Bot API call. Zero means the notifier default.
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// DefaultParseMode matches what the notifier uses for mappings.
const DefaultParseMode = "MarkdownV2"

// Mode returns the Bot API parse mode; "" means plain text.
func (t TelegramConfig) Mode() string {
	switch t.ParseMode {
	case "":
		return DefaultParseMode
	case "Plain":
		return ""
	default:
		return t.ParseMode
	}
}

type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`
}

// Duration reads Go duration strings ("500ms", "30s", "1m") from both JSON
// and YAML. Negative values are rejected.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

// OrDefault returns def when d is zero.
func (d Duration) OrDefault(def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return time.Duration(d)
}

func (d *Duration) UnmarshalText(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	if v < 0 {
		return fmt.Errorf("invalid duration %q: must be >= 0", raw)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}
