// Package finbrief models the constrained Markdown dialect used by
// finbrief reports.
//
// The dialect is deliberately small: ATX headings of levels 1-4, bullet and
// numbered list items, pipe tables with a separator row, horizontal rules,
// bold emphasis, inline code (stripped) and links (reduced to their label).
// ParseBlocks segments a report into an ordered block sequence and
// FormatInline converts a text run into styled spans; the pdf subpackage
// consumes both to produce paginated Letter pages.
//
// Example:
//
//	blocks := finbrief.ParseBlocks("# Summary\n\nRevenue grew **12%**.\n")
//	for _, b := range blocks {
//		fmt.Println(b.Kind, b.Text)
//	}
//
// Parsing is line-based and single-pass; it never reinterprets earlier
// input. Numbered item indices are kept verbatim from the source and are
// not renumbered.
package finbrief
