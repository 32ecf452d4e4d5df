package pdf

import (
	"bytes"
	"fmt"
	"image"

	_ "image/jpeg"
	_ "image/png"
)

// imageInfo is a decoded chart image ready for placement: its gofpdf image
// type and intrinsic pixel dimensions.
type imageInfo struct {
	format string
	width  int
	height int
}

// decodeImage decodes the full buffer, not just the header: a truncated file
// can carry an intact header and still blow up the PDF canvas later. Only
// PNG and JPEG are accepted, which is what the chart generators emit.
func decodeImage(data []byte) (imageInfo, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return imageInfo{}, fmt.Errorf("decode image: %w", err)
	}
	var pdfFormat string
	switch format {
	case "png":
		pdfFormat = "PNG"
	case "jpeg":
		pdfFormat = "JPG"
	default:
		return imageInfo{}, fmt.Errorf("decode image: unsupported format %q", format)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return imageInfo{}, fmt.Errorf("decode image: empty %s image", format)
	}
	return imageInfo{format: pdfFormat, width: bounds.Dx(), height: bounds.Dy()}, nil
}

// fitImage scales intrinsic pixel dimensions to display points, preserving
// aspect ratio. The target width is 80% of the content width; when the
// resulting height would exceed maxH the height is capped there and the
// width re-derived, so neither bound is ever exceeded.
func fitImage(pxW, pxH int, contentW, maxH float64) (w, h float64) {
	w = contentW * 0.8
	h = w * float64(pxH) / float64(pxW)
	if h > maxH {
		h = maxH
		w = h * float64(pxW) / float64(pxH)
	}
	return w, h
}
