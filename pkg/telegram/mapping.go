package telegram

import (
	"fmt"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

const (
	fenceOpen  = "```yaml\n"
	fenceClose = "\n```"
)

// RenderMapping formats m as a fenced YAML block ready for MarkdownV2.
// Values yaml cannot encode (funcs, channels, ...) yield an error.
func RenderMapping(m map[string]any) (text string, err error) {
	// yaml.Marshal panics on unsupported types instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("render mapping: %v", r)
		}
	}()
	body, err := yaml.Marshal(m)
	if err != nil {
		return "", err
	}
	return fenceOpen + escapePre(strings.TrimRight(string(body), "\n")) + fenceClose, nil
}

// ParseMapping reverses RenderMapping.
func ParseMapping(text string) (map[string]any, error) {
	body := strings.TrimPrefix(text, fenceOpen)
	body = strings.TrimSuffix(body, fenceClose)
	out := map[string]any{}
	if err := yaml.Unmarshal([]byte(unescapePre(body)), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Inside pre/code entities MarkdownV2 only requires ` and \ to be escaped.
var (
	preEscaper   = strings.NewReplacer(`\`, `\\`, "`", "\\`")
	preUnescaper = strings.NewReplacer(`\\`, `\`, "\\`", "`")
)

func escapePre(s string) string   { return preEscaper.Replace(s) }
func unescapePre(s string) string { return preUnescaper.Replace(s) }

var mdV2Escaper = strings.NewReplacer(
	`\`, `\\`,
	"_", `\_`, "*", `\*`, "[", `\[`, "]", `\]`, "(", `\(`, ")", `\)`,
	"~", `\~`, "`", "\\`", ">", `\>`, "#", `\#`, "+", `\+`, "-", `\-`,
	"=", `\=`, "|", `\|`, "{", `\{`, "}", `\}`, ".", `\.`, "!", `\!`,
)

// EscapeMarkdownV2 escapes every character MarkdownV2 reserves, so s is sent
// verbatim.
func EscapeMarkdownV2(s string) string { return mdV2Escaper.Replace(s) }

// EscapeText escapes s so it is delivered verbatim under mode.
func EscapeText(mode ParseMode, s string) string {
	switch mode {
	case MarkdownV2:
		return EscapeMarkdownV2(s)
	case HTML:
		return EscapeHTML(s).String()
	case Markdown:
		return legacyMarkdownEscaper.Replace(s)
	default:
		return s
	}
}

// Legacy Markdown only reserves these four.
var legacyMarkdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)
