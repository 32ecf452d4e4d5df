package pdf

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"

	"github.com/jung-kurt/gofpdf"

	"github.com/finbrief/finbrief"
)

// Vertical spacing in points between blocks.
const (
	gapBlank     = 8
	gapParagraph = 2
	gapList      = 4
	gapTable     = 15
	gapRule      = 15
	gapImage     = 10
	headingLead  = 10
)

// uiRemnants match leftover web-UI artifacts that occasionally survive in
// generated report text, such as download-button captions. They are removed
// before parsing.
var uiRemnants = []*regexp.Regexp{
	regexp.MustCompile(`\[.*?버튼.*?\]`),
	regexp.MustCompile(`\[.*?PDF.*?\]`),
}

// RenderRequest contains inputs for PDF rendering.
type RenderRequest struct {
	// Markdown is the report source text.
	Markdown string
	// Images are chart image buffers (PNG or JPEG), appended as a trailing
	// gallery in order. An image that fails to decode is skipped with a
	// warning; it never aborts the render.
	Images [][]byte
	Writer io.Writer
	Config Config
	// OnWarning receives recoverable render problems. Optional.
	OnWarning func(error)
}

// Render converts report Markdown to a paginated PDF.
func Render(req RenderRequest) error {
	if req.Writer == nil {
		return fmt.Errorf("pdf render: writer is nil")
	}
	doc, err := render(req)
	if err != nil {
		return err
	}
	if err := doc.Output(req.Writer); err != nil {
		return fmt.Errorf("pdf render: output: %w", err)
	}
	return nil
}

// CreatePDF renders markdown and chart images with the default configuration
// and returns the document bytes.
func CreatePDF(markdown string, images [][]byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(RenderRequest{Markdown: markdown, Images: images, Writer: &buf}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func render(req RenderRequest) (*gofpdf.Fpdf, error) {
	cfg := DefaultConfig()
	applyConfig(&cfg, req.Config)

	doc := gofpdf.New("P", "pt", cfg.PageSize, "")
	doc.SetCreationDate(cfg.CreationDate)
	doc.SetMargins(cfg.MarginSide, cfg.MarginTop, cfg.MarginSide)
	doc.SetAutoPageBreak(false, cfg.MarginBottom)

	family, err := registerFonts(doc, cfg)
	if err != nil {
		return nil, err
	}
	doc.SetFont(family, "", bodyStyle.size)
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("pdf render: font setup failed: %w", err)
	}

	pageW, pageH := doc.GetPageSize()
	e := &engine{
		doc:      doc,
		cfg:      cfg,
		family:   family,
		pageW:    pageW,
		pageH:    pageH,
		contentW: pageW - 2*cfg.MarginSide,
		contentH: pageH - cfg.MarginTop - cfg.MarginBottom,
		warn:     req.OnWarning,
	}
	if e.warn == nil {
		e.warn = func(error) {}
	}
	e.newPage()

	for _, b := range finbrief.ParseBlocks(cleanupMarkdown(req.Markdown)) {
		switch b.Kind {
		case finbrief.BlockBlank:
			e.renderBlank()
		case finbrief.BlockHeading:
			e.renderHeading(b.Level, b.Text)
		case finbrief.BlockParagraph:
			e.renderParagraph(b.Text)
		case finbrief.BlockBullet:
			e.renderBullet(b.Text)
		case finbrief.BlockNumbered:
			e.renderNumbered(b.Index, b.Text)
		case finbrief.BlockTable:
			e.renderTable(b.Rows)
		case finbrief.BlockRule:
			e.renderRule()
		}
	}
	e.renderGallery(req.Images)

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("pdf render: %w", err)
	}
	return doc, nil
}

func cleanupMarkdown(src string) string {
	for _, re := range uiRemnants {
		src = re.ReplaceAllString(src, "")
	}
	return src
}

// registerFonts loads the body font family and returns its name. Explicit
// paths win; a bare core font family skips TTF registration; otherwise a
// Korean-capable font is resolved from the search list.
func registerFonts(doc *gofpdf.Fpdf, cfg Config) (string, error) {
	switch {
	case cfg.RegularFont != "":
		bold := cfg.BoldFont
		if bold == "" {
			bold = cfg.RegularFont
		}
		dir := filepath.Dir(cfg.RegularFont)
		if filepath.Dir(bold) != dir {
			return "", fmt.Errorf("pdf render: font paths must be in the same directory")
		}
		family := cfg.FontFamily
		if family == "" {
			family = koreanFontFamily
		}
		doc.SetFontLocation(dir)
		doc.AddUTF8Font(family, "", filepath.Base(cfg.RegularFont))
		doc.AddUTF8Font(family, "B", filepath.Base(bold))
		return family, nil
	case cfg.BoldFont != "":
		return "", fmt.Errorf("pdf render: bold font path set without a regular font path")
	case cfg.FontFamily != "":
		if !isCoreFont(cfg.FontFamily) {
			return "", fmt.Errorf("pdf render: core font family required when font paths are empty")
		}
		return cfg.FontFamily, nil
	default:
		regular, bold, err := resolveKoreanFonts(cfg.FontDirs)
		if err != nil {
			return "", fmt.Errorf("pdf render: %w", err)
		}
		doc.SetFontLocation(filepath.Dir(regular))
		doc.AddUTF8Font(koreanFontFamily, "", filepath.Base(regular))
		doc.AddUTF8Font(koreanFontFamily, "B", filepath.Base(bold))
		return koreanFontFamily, nil
	}
}

// engine tracks the page cursor while blocks are drawn top to bottom. The
// cursor y is the top edge of the next block; gofpdf's origin is the page's
// top-left corner with y growing downward.
type engine struct {
	doc      *gofpdf.Fpdf
	cfg      Config
	family   string
	pageW    float64
	pageH    float64
	contentW float64
	contentH float64
	y        float64
	warn     func(error)
}

func (e *engine) newPage() {
	e.doc.AddPage()
	e.y = e.cfg.MarginTop
}

func (e *engine) remaining() float64 {
	return e.pageH - e.cfg.MarginBottom - e.y
}

// ensure starts a new page when h does not fit in the remaining space and
// reports whether it did. Heights beyond a full page are capped so that an
// oversized block starts on a fresh page instead of looping; its overflow is
// then handled at line granularity by the caller.
func (e *engine) ensure(h float64) bool {
	if h > e.contentH {
		h = e.contentH
	}
	if h <= e.remaining() {
		return false
	}
	e.newPage()
	return true
}

func (e *engine) setFont(size float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	e.doc.SetFont(e.family, style, size)
}

func (e *engine) textMeasure(size float64) measureFunc {
	return func(s string, bold bool) float64 {
		e.setFont(size, bold)
		return e.doc.GetStringWidth(s)
	}
}

func (e *engine) cellMeasure(s string, size float64, bold bool) float64 {
	e.setFont(size, bold)
	return e.doc.GetStringWidth(s)
}

// drawSpans draws one wrapped line at the given baseline, switching faces at
// span boundaries.
func (e *engine) drawSpans(x, baseline float64, spans []finbrief.Span, size float64, bold bool, color rgb) {
	e.doc.SetTextColor(color.r, color.g, color.b)
	for _, span := range spans {
		e.setFont(size, bold || span.Bold)
		e.doc.Text(x, baseline, span.Text)
		x += e.doc.GetStringWidth(span.Text)
	}
}

// drawTextLines draws wrapped lines from the cursor down, breaking pages per
// line so text blocks taller than the remaining space continue on the next
// page.
func (e *engine) drawTextLines(x float64, lines [][]finbrief.Span, style blockStyle, bold bool) {
	for _, line := range lines {
		e.ensure(style.lineHeight)
		e.drawSpans(x, e.y+style.size, line, style.size, bold, style.color)
		e.y += style.lineHeight
	}
}

// renderBlank advances the cursor by a small gap. A blank never forces a
// page break; the gap is clamped to the space left.
func (e *engine) renderBlank() {
	gap := float64(gapBlank)
	if r := e.remaining(); r < gap {
		gap = r
	}
	if gap > 0 {
		e.y += gap
	}
}

func (e *engine) renderHeading(level int, text string) {
	style := headingStyle(level)
	spans := finbrief.FormatInline(text)
	lines := wrapSpans(spans, e.contentW, e.textMeasure(style.size))
	if len(lines) == 0 {
		return
	}

	lead := 0.0
	if level <= 2 {
		lead = headingLead
	}
	gap := float64(gapList)
	if level <= 2 {
		gap = gapBlank
	}
	underline := 0.0
	if level == 1 || level == 2 {
		underline = 5
	}

	h := lead + float64(len(lines))*style.lineHeight + underline + gap
	if e.ensure(h) {
		// A fresh page already provides the visual separation the lead-in
		// exists for.
		lead = 0
	}
	e.y += lead
	e.drawTextLines(e.cfg.MarginSide, lines, style, true)

	// The underline sits just below the last wrapped line, so multi-line
	// headings never overlap it.
	switch level {
	case 1:
		e.doc.SetDrawColor(style.color.r, style.color.g, style.color.b)
		e.doc.SetLineWidth(2)
		e.doc.Line(e.cfg.MarginSide, e.y+3, e.cfg.MarginSide+e.contentW, e.y+3)
		e.y += underline
	case 2:
		e.doc.SetDrawColor(style.color.r, style.color.g, style.color.b)
		e.doc.SetLineWidth(1)
		e.doc.Line(e.cfg.MarginSide, e.y+3, e.cfg.MarginSide+200, e.y+3)
		e.y += underline
	}
	e.y += gap
}

func (e *engine) renderParagraph(text string) {
	spans := finbrief.FormatInline(text)
	lines := wrapSpans(spans, e.contentW, e.textMeasure(bodyStyle.size))
	if len(lines) == 0 {
		return
	}
	e.ensure(float64(len(lines))*bodyStyle.lineHeight + gapParagraph)
	e.drawTextLines(e.cfg.MarginSide, lines, bodyStyle, false)
	e.y += gapParagraph
}

func (e *engine) renderBullet(text string) {
	spans := finbrief.FormatInline(text)
	textX := e.cfg.MarginSide + 15
	lines := wrapSpans(spans, e.contentW-20, e.textMeasure(bodyStyle.size))
	if len(lines) == 0 {
		return
	}
	e.ensure(float64(len(lines))*bodyStyle.lineHeight + gapList)
	e.doc.SetFillColor(colorBullet.r, colorBullet.g, colorBullet.b)
	e.doc.Circle(e.cfg.MarginSide+5, e.y+bodyStyle.size/2+1, 2, "F")
	e.drawTextLines(textX, lines, bodyStyle, false)
	e.y += gapList
}

func (e *engine) renderNumbered(index, text string) {
	spans := finbrief.FormatInline(text)
	textX := e.cfg.MarginSide + 20
	lines := wrapSpans(spans, e.contentW-25, e.textMeasure(bodyStyle.size))
	if len(lines) == 0 {
		return
	}
	e.ensure(float64(len(lines))*bodyStyle.lineHeight + gapList)
	e.setFont(bodyStyle.size, true)
	e.doc.SetTextColor(colorH3.r, colorH3.g, colorH3.b)
	e.doc.Text(e.cfg.MarginSide, e.y+bodyStyle.size, index+".")
	e.drawTextLines(textX, lines, bodyStyle, false)
	e.y += gapList
}

func (e *engine) renderRule() {
	e.ensure(gapRule)
	e.doc.SetDrawColor(colorRule.r, colorRule.g, colorRule.b)
	e.doc.SetLineWidth(1)
	e.doc.Line(e.cfg.MarginSide, e.y+gapRule/2, e.cfg.MarginSide+e.contentW, e.y+gapRule/2)
	e.y += gapRule
}

// renderTable draws a table as one unit. If it does not fit the remaining
// space a page break comes first; a table taller than a whole page is drawn
// from the top of a fresh page and allowed to overflow rather than split.
func (e *engine) renderTable(rows [][]string) {
	layout := layoutTable(rows, e.contentW, e.cellMeasure)
	e.ensure(layout.height + gapTable)

	e.doc.SetLineWidth(0.5)
	e.doc.SetDrawColor(colorTableGrid.r, colorTableGrid.g, colorTableGrid.b)

	e.doc.SetFillColor(colorTableHeader.r, colorTableHeader.g, colorTableHeader.b)
	e.drawTableRow(layout.header, layout.widths, layout.headerSize, true, colorWhite, layout.cellPad)
	for i, row := range layout.rows {
		if i%2 == 0 {
			e.doc.SetFillColor(colorTableStripe.r, colorTableStripe.g, colorTableStripe.b)
		} else {
			e.doc.SetFillColor(colorWhite.r, colorWhite.g, colorWhite.b)
		}
		e.drawTableRow(row, layout.widths, layout.dataSize, false, colorText, layout.cellPad)
	}
	e.y += gapTable
}

func (e *engine) drawTableRow(row tableRow, widths []float64, size float64, bold bool, color rgb, pad float64) {
	x := e.cfg.MarginSide
	for i, lines := range row.cells {
		e.doc.Rect(x, e.y, widths[i], row.height, "FD")
		baseline := e.y + pad + size
		for _, line := range lines {
			e.drawSpans(x+cellSidePad, baseline, line, size, bold, color)
			baseline += size + 2
		}
		x += widths[i]
	}
	e.y += row.height
}

// renderGallery appends chart images after the last text block, headed by a
// rule and a title. Undecodable images are reported and skipped; the header
// is only drawn when at least one image will be placed.
func (e *engine) renderGallery(images [][]byte) {
	type chart struct {
		index int
		data  []byte
		info  imageInfo
	}
	charts := make([]chart, 0, len(images))
	for i, data := range images {
		info, err := decodeImage(data)
		if err != nil {
			e.warn(fmt.Errorf("chart %d: %w", i+1, err))
			continue
		}
		charts = append(charts, chart{index: i, data: data, info: info})
	}
	if len(charts) == 0 {
		return
	}

	e.renderRule()
	e.renderHeading(2, e.cfg.GalleryTitle)

	maxH := e.contentH * 0.8
	for _, c := range charts {
		name := fmt.Sprintf("chart-%d", c.index+1)
		if err := e.placeImage(name, c.data, c.info, maxH); err != nil {
			e.warn(fmt.Errorf("chart %d: %w", c.index+1, err))
		}
	}
}

// placeImage registers and draws one chart. The canvas panics on some
// malformed inputs instead of setting its error, so registration is isolated
// behind recover; either failure mode becomes a returned error and the
// render continues.
func (e *engine) placeImage(name string, data []byte, info imageInfo, maxH float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e.doc.ClearError()
			err = fmt.Errorf("register image: %v", r)
		}
	}()
	w, h := fitImage(info.width, info.height, e.contentW, maxH)
	e.ensure(h + gapImage)
	opts := gofpdf.ImageOptions{ImageType: info.format}
	e.doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if err := e.doc.Error(); err != nil {
		e.doc.ClearError()
		return fmt.Errorf("register image: %w", err)
	}
	x := e.cfg.MarginSide + (e.contentW-w)/2
	e.doc.ImageOptions(name, x, e.y, w, h, false, opts, 0, "")
	if err := e.doc.Error(); err != nil {
		e.doc.ClearError()
		return fmt.Errorf("draw image: %w", err)
	}
	e.y += h + gapImage
	return nil
}
