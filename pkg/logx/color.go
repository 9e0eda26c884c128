package logx

import "strings"

// ANSI SGR sequences used by the built-in templates.
const (
	Reset = "\x1b[0m"

	ForeRed    = "\x1b[31m"
	ForeYellow = "\x1b[33m"
	ForeBlue   = "\x1b[34m"

	BackRed     = "\x1b[41m"
	BackYellow  = "\x1b[43m"
	BackMagenta = "\x1b[45m"
)

// Colorize wraps text in the given codes and resets the style afterwards.
func Colorize(text string, codes ...string) string {
	if len(codes) == 0 {
		return text
	}
	var b strings.Builder
	for _, c := range codes {
		b.WriteString(c)
	}
	b.WriteString(text)
	b.WriteString(Reset)
	return b.String()
}

// Colored severity tags. They expand to the record's level name.
var (
	DebugTag   = Colorize(PlaceholderLevel, BackYellow)
	WarningTag = Colorize(PlaceholderLevel, BackMagenta)
	ErrorTag   = Colorize(PlaceholderLevel, BackRed)
)
