package widget

import "strings"

// htmlEscaper maps the five markup-significant characters to entities.
// strings.Replacer makes a single pass, so the entities it emits are never
// escaped again; the result equals replacing "&" first and the rest after.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes & < > " and ' for insertion into markup.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
