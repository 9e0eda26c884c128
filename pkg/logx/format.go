package logx

import (
	"strings"
)

const (
	PlaceholderLevel   = "{level}"
	PlaceholderTime    = "{time}"
	PlaceholderCaller  = "{caller}"
	PlaceholderMessage = "{message}"
)

// Template is a line layout. Placeholders not present in the template are
// simply not rendered.
type Template string

// PlainTemplate renders only the message.
const PlainTemplate Template = PlaceholderMessage

// KV is one extra field attached to a record, already rendered to text.
type KV struct {
	Key   string
	Value string
}

// Record is a single decoded log event.
type Record struct {
	Level   Level
	Time    string
	Caller  string
	Message string
	Fields  []KV
}

// Policy maps severities to templates.
//
// Format is a pure function of the policy and the record: it never mutates
// the policy, so one Policy can be shared by any number of goroutines.
type Policy struct {
	Templates map[Level]Template
	// Fallback is used when no template matches. Empty means PlainTemplate.
	Fallback Template
}

// Template returns the template selected for level.
func (p Policy) Template(level Level) Template {
	if t, ok := p.Templates[level]; ok {
		return t
	}
	if p.Fallback != "" {
		return p.Fallback
	}
	return PlainTemplate
}

// Format renders r as a single line without the trailing newline.
func (p Policy) Format(r Record) string {
	rep := strings.NewReplacer(
		PlaceholderLevel, LevelName(r.Level),
		PlaceholderTime, r.Time,
		PlaceholderCaller, r.Caller,
		PlaceholderMessage, r.Message,
	)

	var b strings.Builder
	b.WriteString(rep.Replace(string(p.Template(r.Level))))
	for _, kv := range r.Fields {
		b.WriteByte(' ')
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(kv.Value)
	}
	return b.String()
}
