// Package pdf renders finbrief report Markdown to paginated Letter PDFs.
//
// The renderer is single-pass and append-only: blocks are measured against
// the remaining space on the current page, a page break is inserted when a
// block does not fit, and tables are always drawn as a unit. Chart images
// are appended as a trailing gallery after the last text block.
//
// Example:
//
//	out, err := pdf.CreatePDF(markdown, chartImages)
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.WriteFile("report.pdf", out, 0o644)
//
// CreatePDF resolves a Korean-capable TTF from a fixed search list and fails
// with ErrFontNotFound when none is installed. Use Render with an explicit
// Config to supply font paths or a core font family.
package pdf
