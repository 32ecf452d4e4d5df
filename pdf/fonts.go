package pdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrFontNotFound is returned when no Korean-capable font can be resolved
// from the search list. Rendering never falls back to a font that cannot
// shape Hangul.
var ErrFontNotFound = errors.New("korean font not found")

const koreanFontFamily = "Korean"

var regularFontNames = []string{
	"NanumGothic.ttf",
	"MALGUN.TTF",
	"malgun.ttf",
}

var boldFontNames = []string{
	"NanumGothicBold.ttf",
	"MALGUNBD.TTF",
	"malgunbd.ttf",
}

// defaultFontDirs lists where Korean fonts are expected, bundled directory
// first, then common OS install locations.
func defaultFontDirs() []string {
	return []string{
		"fonts",
		`C:/Windows/Fonts`,
		"/usr/share/fonts/truetype/nanum",
		"/usr/share/fonts/nanum",
		"/Library/Fonts",
	}
}

// resolveKoreanFonts walks the search directories for a regular face and a
// matching bold face. The bold face is only taken from the directory of the
// resolved regular face (gofpdf loads all styles of a family from one font
// location); when absent, the regular face doubles as bold.
func resolveKoreanFonts(extraDirs []string) (regular, bold string, err error) {
	dirs := append(append([]string{}, extraDirs...), defaultFontDirs()...)
	for _, dir := range dirs {
		for _, name := range regularFontNames {
			path := filepath.Join(dir, name)
			if !isRegularFile(path) {
				continue
			}
			regular = path
			bold = regular
			for _, boldName := range boldFontNames {
				boldPath := filepath.Join(dir, boldName)
				if isRegularFile(boldPath) {
					bold = boldPath
					break
				}
			}
			return regular, bold, nil
		}
	}
	return "", "", fmt.Errorf(
		"%w: expected %s under %s (or an OS malgun.ttf); download NanumGothic from https://hangeul.naver.com/font, copy it into the fonts directory and restart",
		ErrFontNotFound, regularFontNames[0], dirs[0])
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isCoreFont(name string) bool {
	switch name {
	case "Courier", "Helvetica", "Times", "Symbol", "ZapfDingbats":
		return true
	default:
		return false
	}
}
