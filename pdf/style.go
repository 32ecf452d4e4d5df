package pdf

// rgb is an 8-bit color triple for gofpdf's Set*Color calls.
type rgb struct {
	r, g, b int
}

// Report palette. The heading ramp runs deep indigo to light indigo.
var (
	colorH1          = rgb{0x1a, 0x23, 0x7e}
	colorH2          = rgb{0x30, 0x3f, 0x9f}
	colorH3          = rgb{0x39, 0x49, 0xab}
	colorH4          = rgb{0x5c, 0x6b, 0xc0}
	colorText        = rgb{0, 0, 0}
	colorBullet      = rgb{0x79, 0x86, 0xcb}
	colorRule        = rgb{0xe0, 0xe0, 0xe0}
	colorTableHeader = rgb{0x30, 0x3f, 0x9f}
	colorTableStripe = rgb{0xf5, 0xf5, 0xf5}
	colorTableGrid   = rgb{0xbd, 0xbd, 0xbd}
	colorWhite       = rgb{255, 255, 255}
)

// blockStyle is one row of the static style table: font size, leading and
// text color for a block kind. The table is fixed, not user-configurable.
type blockStyle struct {
	size       float64
	lineHeight float64
	color      rgb
}

var headingStyles = [5]blockStyle{
	{}, // headings are 1-based
	{size: 22, lineHeight: 28, color: colorH1},
	{size: 18, lineHeight: 24, color: colorH2},
	{size: 15, lineHeight: 20, color: colorH3},
	{size: 13, lineHeight: 18, color: colorH4},
}

var bodyStyle = blockStyle{size: 11, lineHeight: 15, color: colorText}

func headingStyle(level int) blockStyle {
	if level < 1 || level > 4 {
		return headingStyles[4]
	}
	return headingStyles[level]
}

// tableTier selects font sizes and cell padding from the column count.
// Denser tables step down to smaller type so they keep fitting the content
// width instead of spilling past it.
func tableTier(cols int) (headerSize, dataSize, cellPad float64) {
	switch {
	case cols >= 6:
		return 7, 6, 4
	case cols >= 4:
		return 8, 7, 6
	default:
		return 10, 9, 8
	}
}

// columnWidths distributes the content width over cols columns. With more
// than two columns the last column gets a double share, the conventional
// slot for a trailing notes/remarks column; otherwise the split is even.
// The widths always sum to contentW.
func columnWidths(contentW float64, cols int) []float64 {
	widths := make([]float64, cols)
	if cols > 2 {
		base := contentW / float64(cols+1)
		for i := 0; i < cols-1; i++ {
			widths[i] = base
		}
		widths[cols-1] = base * 2
		return widths
	}
	for i := range widths {
		widths[i] = contentW / float64(cols)
	}
	return widths
}
