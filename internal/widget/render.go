package widget

import (
	"strings"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

// Render produces the HTML fragment for the result container.
// It is a pure function of the state; Idle and Loading render nothing.
func Render(s State) string {
	switch {
	case s.IsResult():
		return renderResult(s.Result())
	case s.IsError():
		return renderError(s.Message())
	}
	return ""
}

func renderResult(r *domain.LookupResult) string {
	var b strings.Builder

	b.WriteString(`<h2 class="word">`)
	b.WriteString(EscapeHTML(r.Word))
	b.WriteString("</h2>\n")

	if r.HasPhonetic() {
		b.WriteString(`<p class="phonetic">`)
		b.WriteString(EscapeHTML(r.Phonetic))
		b.WriteString("</p>\n")
	}

	for _, m := range r.Meanings {
		b.WriteString(`<div class="meaning">`)
		b.WriteString("\n")
		b.WriteString(`<h3 class="part-of-speech">`)
		b.WriteString(EscapeHTML(m.PartOfSpeech))
		b.WriteString("</h3>\n")
		b.WriteString("<ol class=\"definitions\">\n")
		for _, d := range m.Definitions {
			b.WriteString(`<li class="definition">`)
			b.WriteString(`<p><strong>Definition:</strong> `)
			b.WriteString(EscapeHTML(d.Text))
			b.WriteString("</p>")
			if d.HasExample() {
				b.WriteString(`<p class="example">Example: <em>`)
				b.WriteString(EscapeHTML(d.Example))
				b.WriteString("</em></p>")
			}
			b.WriteString("</li>\n")
		}
		b.WriteString("</ol>\n</div>\n")
	}

	return b.String()
}

func renderError(msg string) string {
	return `<div class="error"><p>` + EscapeHTML(msg) + "</p></div>\n"
}
