package telegram

import (
	"fmt"
	"html"
	"strings"
)

// HTMLText is markup that is safe to send with ParseMode HTML. Values of this
// type are treated as already escaped.
type HTMLText string

func (h HTMLText) String() string { return string(h) }

// EscapeHTML escapes s for the HTML parse mode.
func EscapeHTML(s string) HTMLText { return HTMLText(html.EscapeString(s)) }

func wrap(tag string, inner HTMLText) HTMLText {
	return HTMLText("<" + tag + ">" + inner.String() + "</" + tag + ">")
}

func Bold(s string) HTMLText   { return wrap("b", EscapeHTML(s)) }
func Italic(s string) HTMLText { return wrap("i", EscapeHTML(s)) }
func Code(s string) HTMLText   { return wrap("code", EscapeHTML(s)) }

// Pre renders a preformatted block, optionally tagged with a language.
func Pre(s, lang string) HTMLText {
	if lang == "" {
		return HTMLText("<pre>" + html.EscapeString(s) + "</pre>")
	}
	return HTMLText(fmt.Sprintf(`<pre><code class="language-%s">%s</code></pre>`, html.EscapeString(lang), html.EscapeString(s)))
}

func Link(text, url string) HTMLText {
	return HTMLText(fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(url), html.EscapeString(text)))
}

// JoinHTML joins non-blank parts with sep.
func JoinHTML(sep string, parts ...HTMLText) HTMLText {
	ss := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p.String()) == "" {
			continue
		}
		ss = append(ss, p.String())
	}
	return HTMLText(strings.Join(ss, sep))
}
