// Package prompt renders the system prompts served by the prompt library.
package prompt

import (
	_ "embed"
	"strings"
)

// DefaultWorkingDirectory is the project root the Bolt runtime mounts user code at.
const DefaultWorkingDirectory = "/home/project"

const (
	cwdPlaceholder  = "{{cwd}}"
	tagsPlaceholder = "{{allowed_html_elements}}"
)

//go:embed v0_inspired.md
var v0InspiredTemplate string

var defaultAllowedTags = []string{
	"a", "b", "blockquote", "br", "code", "dd", "del", "details", "div", "dl", "dt", "em",
	"h1", "h2", "h3", "h4", "h5", "h6", "hr", "i", "ins", "kbd", "li", "ol", "p", "pre",
	"q", "rp", "rt", "ruby", "s", "samp", "source", "span", "strike", "strong", "sub",
	"summary", "sup", "table", "tbody", "td", "tfoot", "th", "thead", "tr", "ul", "var", "think",
}

// Options holds the values interpolated into a prompt.
type Options struct {
	// WorkingDirectory is inserted verbatim. It is not normalized or checked.
	WorkingDirectory string
	// AllowedTags lists the HTML element names the model may use, in caller order.
	AllowedTags []string
}

// DefaultAllowedTags returns a fresh copy of the HTML elements Bolt permits in
// assistant messages.
func DefaultAllowedTags() []string {
	return append([]string(nil), defaultAllowedTags...)
}

// DefaultOptions returns Options populated with the Bolt defaults.
func DefaultOptions() Options {
	return Options{
		WorkingDirectory: DefaultWorkingDirectory,
		AllowedTags:      DefaultAllowedTags(),
	}
}

// FormatAllowedTags renders tags as "<a>, <b>, ..." preserving order.
// An empty list yields the empty string.
func FormatAllowedTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	var b strings.Builder
	for i, t := range tags {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('<')
		b.WriteString(t)
		b.WriteByte('>')
	}
	return b.String()
}

// Render returns the v0-inspired Bolt system prompt for opts.
//
// Render never fails and has no side effects: the same Options always produce
// byte-identical output, and opts is neither modified nor retained.
func Render(opts Options) string {
	// strings.Replacer makes a single pass over the template, so substituted
	// values are never re-scanned for placeholders.
	r := strings.NewReplacer(
		cwdPlaceholder, opts.WorkingDirectory,
		tagsPlaceholder, FormatAllowedTags(opts.AllowedTags),
	)
	return r.Replace(v0InspiredTemplate)
}
