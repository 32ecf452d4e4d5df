package pdf

import "time"

// Config holds page geometry, font selection and rendering settings.
type Config struct {
	// PageSize is a gofpdf page size name. Reports are Letter by default.
	PageSize     string
	MarginSide   float64
	MarginTop    float64
	MarginBottom float64

	// FontFamily names the font registered for body text. Leave empty to
	// resolve a Korean-capable font from the search list; set a gofpdf core
	// font (Helvetica, Courier, Times) to skip TTF registration entirely.
	FontFamily string
	// RegularFont and BoldFont are explicit TTF paths. Both files must live
	// in the same directory. BoldFont falls back to RegularFont when empty.
	RegularFont string
	BoldFont    string
	// FontDirs are extra directories searched before the built-in list.
	FontDirs []string

	// GalleryTitle heads the trailing chart gallery section.
	GalleryTitle string

	// CreationDate is pinned so identical input yields identical bytes.
	CreationDate time.Time
}

// DefaultConfig returns the report baseline: Letter pages, 0.75in side
// margins, 1in top and bottom margins.
func DefaultConfig() Config {
	return Config{
		PageSize:     "Letter",
		MarginSide:   54,
		MarginTop:    72,
		MarginBottom: 72,
		GalleryTitle: "Charts",
		CreationDate: time.Unix(0, 0).UTC(),
	}
}

func applyConfig(dst *Config, src Config) {
	if src.PageSize != "" {
		dst.PageSize = src.PageSize
	}
	if src.MarginSide > 0 {
		dst.MarginSide = src.MarginSide
	}
	if src.MarginTop > 0 {
		dst.MarginTop = src.MarginTop
	}
	if src.MarginBottom > 0 {
		dst.MarginBottom = src.MarginBottom
	}
	if src.FontFamily != "" {
		dst.FontFamily = src.FontFamily
	}
	if src.RegularFont != "" {
		dst.RegularFont = src.RegularFont
	}
	if src.BoldFont != "" {
		dst.BoldFont = src.BoldFont
	}
	if len(src.FontDirs) > 0 {
		dst.FontDirs = src.FontDirs
	}
	if src.GalleryTitle != "" {
		dst.GalleryTitle = src.GalleryTitle
	}
	if !src.CreationDate.IsZero() {
		dst.CreationDate = src.CreationDate
	}
}
