package pdf

import "github.com/finbrief/finbrief"

// cellMeasure returns the rendered width of cell text at a font size.
type cellMeasure func(s string, size float64, bold bool) float64

// cellSidePad is the horizontal cell inset. Vertical padding varies with the
// tier; the side inset does not.
const cellSidePad = 5.0

// tableRow holds one row's cells, each a slice of wrapped span lines, and
// the row's resolved height.
type tableRow struct {
	cells  [][][]finbrief.Span
	height float64
}

// tableLayout is the fully measured form of a table block: column widths,
// wrapped cells and per-row heights. Its total height is known before any
// drawing happens, which is what lets a table be placed as a unit.
type tableLayout struct {
	widths     []float64
	header     tableRow
	rows       []tableRow
	height     float64
	headerSize float64
	dataSize   float64
	cellPad    float64
}

// layoutTable measures a parsed table against the content width. The header
// row fixes the column count: shorter data rows are padded with empty cells
// and longer ones are truncated. Cell text runs through the same inline
// pipeline as body text, so emphasis renders and markup never prints raw;
// it wraps inside the column width minus the side insets, with a leading of
// font size plus two points per line.
func layoutTable(rows [][]string, contentW float64, measure cellMeasure) tableLayout {
	cols := len(rows[0])
	headerSize, dataSize, cellPad := tableTier(cols)
	layout := tableLayout{
		widths:     columnWidths(contentW, cols),
		headerSize: headerSize,
		dataSize:   dataSize,
		cellPad:    cellPad,
	}

	layout.header = layoutTableRow(rows[0], layout.widths, headerSize, true, cellPad, measure)
	layout.height = layout.header.height
	for _, cells := range rows[1:] {
		row := layoutTableRow(cells, layout.widths, dataSize, false, cellPad, measure)
		layout.rows = append(layout.rows, row)
		layout.height += row.height
	}
	return layout
}

func layoutTableRow(cells []string, widths []float64, size float64, bold bool, pad float64, measure cellMeasure) tableRow {
	row := tableRow{cells: make([][][]finbrief.Span, len(widths))}
	maxLines := 1
	for i := range widths {
		var text string
		if i < len(cells) {
			text = cells[i]
		}
		spans := finbrief.FormatInline(text)
		lines := wrapSpans(spans, widths[i]-2*cellSidePad, func(s string, spanBold bool) float64 {
			return measure(s, size, bold || spanBold)
		})
		if len(lines) == 0 {
			lines = [][]finbrief.Span{nil}
		}
		row.cells[i] = lines
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}
	row.height = float64(maxLines)*(size+2) + 2*pad
	return row
}
