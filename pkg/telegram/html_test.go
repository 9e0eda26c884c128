package telegram

import "testing"

func TestHTMLHelpers(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		got  HTMLText
		want string
	}{
		{name: "escape", got: EscapeHTML("a<b & c>"), want: "a&lt;b &amp; c&gt;"},
		{name: "bold", got: Bold("x<y"), want: "<b>x&lt;y</b>"},
		{name: "code", got: Code("ls -l"), want: "<code>ls -l</code>"},
		{name: "pre", got: Pre("a: 1", ""), want: "<pre>a: 1</pre>"},
		{name: "pre lang", got: Pre("a: 1", "yaml"), want: `<pre><code class="language-yaml">a: 1</code></pre>`},
		{name: "link", got: Link("run", `https://x/?a=1&b="2"`), want: `<a href="https://x/?a=1&amp;b=&#34;2&#34;">run</a>`},
		{name: "join", got: JoinHTML(" | ", Bold("a"), "", Italic("b")), want: "<b>a</b> | <i>b</i>"},
	}
	for _, tt := range tests {
		if tt.got.String() != tt.want {
			t.Fatalf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
