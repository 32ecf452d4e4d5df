package pdf

import (
	"strings"

	"github.com/finbrief/finbrief"
)

// measureFunc returns the rendered width of s in the body font, bold or
// regular. Wrapping is expressed against this instead of a *gofpdf.Fpdf so
// it can be tested with synthetic metrics.
type measureFunc func(s string, bold bool) float64

// word is a run of non-space text. A word keeps its emphasis boundaries as
// separate fragments so a face change mid-word survives wrapping.
type word []finbrief.Span

func (w word) width(measure measureFunc) float64 {
	var total float64
	for _, frag := range w {
		total += measure(frag.Text, frag.Bold)
	}
	return total
}

// splitWords breaks spans on spaces. Consecutive spaces collapse, so wrapped
// lines rejoin words with a single space.
func splitWords(spans []finbrief.Span) []word {
	var words []word
	var current word
	flush := func() {
		if len(current) > 0 {
			words = append(words, current)
			current = nil
		}
	}
	for _, span := range spans {
		parts := strings.Split(span.Text, " ")
		for i, part := range parts {
			if i > 0 {
				flush()
			}
			if part != "" {
				current = append(current, finbrief.Span{Text: part, Bold: span.Bold})
			}
		}
	}
	flush()
	return words
}

// wrapSpans fills lines greedily at word boundaries. A word wider than maxW
// is placed on a line of its own and allowed to overflow rather than being
// broken mid-word.
func wrapSpans(spans []finbrief.Span, maxW float64, measure measureFunc) [][]finbrief.Span {
	words := splitWords(spans)
	if len(words) == 0 {
		return nil
	}
	spaceW := measure(" ", false)
	var lines [][]finbrief.Span
	var line word
	var lineW float64
	for _, w := range words {
		wW := w.width(measure)
		switch {
		case len(line) == 0:
			line = append(word{}, w...)
			lineW = wW
		case lineW+spaceW+wW > maxW:
			lines = append(lines, mergeFragments(line))
			line = append(word{}, w...)
			lineW = wW
		default:
			line = append(line, finbrief.Span{Text: " "})
			line = append(line, w...)
			lineW += spaceW + wW
		}
	}
	return append(lines, mergeFragments(line))
}

// mergeFragments joins adjacent fragments of the same face into one span to
// keep the draw call count down.
func mergeFragments(frags []finbrief.Span) []finbrief.Span {
	var out []finbrief.Span
	for _, f := range frags {
		if n := len(out); n > 0 && out[n-1].Bold == f.Bold {
			out[n-1].Text += f.Text
			continue
		}
		out = append(out, f)
	}
	return out
}
