package finbrief

import (
	"regexp"
	"strings"
)

// Span is a text fragment with an emphasis flag. Concatenating the Text of
// all spans returned by FormatInline reconstructs the input with the markup
// removed.
type Span struct {
	Text string
	Bold bool
}

var (
	inlineCode = regexp.MustCompile("`(.+?)`")
	inlineLink = regexp.MustCompile(`\[(.+?)\]\(.+?\)`)
)

var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var markupUnescaper = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">")

// FormatInline converts a raw text run into styled spans. The steps run in a
// fixed order: inline code markers are stripped, link markup is reduced to
// its label, the markup-reserved characters are escaped, and only then are
// **bold** delimiters converted into emphasis spans. Escaping first keeps
// literal markup inside the text from corrupting span boundaries. An
// unterminated ** is literal text, not emphasis.
func FormatInline(text string) []Span {
	text = inlineCode.ReplaceAllString(text, "$1")
	text = inlineLink.ReplaceAllString(text, "$1")
	text = markupEscaper.Replace(text)

	spans := splitBold(text)
	for i := range spans {
		spans[i].Text = markupUnescaper.Replace(spans[i].Text)
	}
	return spans
}

// splitBold scans for paired ** delimiters. A delimiter with no closing pair
// before end of input stays in the surrounding plain span.
func splitBold(text string) []Span {
	var spans []Span
	for len(text) > 0 {
		open := strings.Index(text, "**")
		if open < 0 {
			spans = append(spans, Span{Text: text})
			break
		}
		inner := text[open+2:]
		close := strings.Index(inner, "**")
		if close < 1 {
			// No closing marker, or an empty **** pair: literal text.
			if close == 0 {
				if open+4 <= len(text) {
					spans = append(spans, Span{Text: text[:open+4]})
					text = text[open+4:]
					continue
				}
			}
			spans = append(spans, Span{Text: text})
			break
		}
		if open > 0 {
			spans = append(spans, Span{Text: text[:open]})
		}
		spans = append(spans, Span{Text: inner[:close], Bold: true})
		text = inner[close+2:]
	}
	if spans == nil {
		spans = []Span{{Text: ""}}
	}
	return spans
}

// PlainText reduces a text run to its unstyled form: markup stripped, bold
// markers removed. Used where a single measured string is enough.
func PlainText(text string) string {
	var b strings.Builder
	for _, s := range FormatInline(text) {
		b.WriteString(s.Text)
	}
	return b.String()
}
