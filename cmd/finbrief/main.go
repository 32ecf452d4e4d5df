package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/version"

	"github.com/finbrief/finbrief/pdf"
)

func init() {
	version.SetDefaultModule("github.com/finbrief/finbrief")
}

func main() {
	var (
		outPath      string
		imagePaths   []string
		fontFamily   string
		regularFont  string
		boldFont     string
		fontDirs     []string
		galleryTitle string
		pageSize     string
		marginSide   float64
		marginTop    float64
		marginBottom float64
	)

	defaults := pdf.DefaultConfig()
	flags := pflag.NewFlagSet("finbrief", pflag.ExitOnError)
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringArrayVar(&imagePaths, "image", nil, "Chart image (PNG or JPEG) appended to the gallery; repeatable")
	flags.StringVar(&fontFamily, "font-family", "", "Core font family (Helvetica, Times, Courier) instead of a Korean TTF")
	flags.StringVar(&regularFont, "regular-font", "", "TTF path for the regular font")
	flags.StringVar(&boldFont, "bold-font", "", "TTF path for the bold font (same directory as --regular-font)")
	flags.StringArrayVar(&fontDirs, "font-dir", nil, "Extra directory searched for Korean fonts; repeatable")
	flags.StringVar(&galleryTitle, "gallery-title", defaults.GalleryTitle, "Heading over the chart gallery")
	flags.StringVar(&pageSize, "page-size", defaults.PageSize, "Page size")
	flags.Float64Var(&marginSide, "margin-side", defaults.MarginSide, "Side margins in points")
	flags.Float64Var(&marginTop, "margin-top", defaults.MarginTop, "Top margin in points")
	flags.Float64Var(&marginBottom, "margin-bottom", defaults.MarginBottom, "Bottom margin in points")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: finbrief [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nInputs are Markdown files or http(s) URLs; with none, stdin is read.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	markdown, err := readInputs(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	images, err := readImages(imagePaths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read image: %v\n", err)
		os.Exit(1)
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}
	if isTerminal(writer) {
		fmt.Fprintln(os.Stderr, "refusing to write PDF to terminal; use -o/--output")
		os.Exit(2)
	}

	err = pdf.Render(pdf.RenderRequest{
		Markdown: markdown,
		Images:   images,
		Writer:   writer,
		Config: pdf.Config{
			PageSize:     pageSize,
			MarginSide:   marginSide,
			MarginTop:    marginTop,
			MarginBottom: marginBottom,
			FontFamily:   fontFamily,
			RegularFont:  normalizeIfSet(regularFont),
			BoldFont:     normalizeIfSet(boldFont),
			FontDirs:     fontDirs,
			GalleryTitle: galleryTitle,
		},
		OnWarning: func(err error) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
}

// readInputs concatenates all input sources into one Markdown document,
// separated by blank lines so blocks never merge across files.
func readInputs(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		data, err := readInput(arg)
		if err != nil {
			return "", err
		}
		parts = append(parts, string(data))
	}
	return strings.Join(parts, "\n\n"), nil
}

func readInput(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty input argument")
	}
	if u, err := url.Parse(raw); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return fetchURL(raw)
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return os.ReadFile(normalizePath(path))
		}
	}
	return os.ReadFile(normalizePath(raw))
}

func fetchURL(raw string) ([]byte, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func readImages(paths []string) ([][]byte, error) {
	images := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(normalizePath(path))
		if err != nil {
			return nil, err
		}
		images = append(images, data)
	}
	return images, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizeIfSet(path string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	return normalizePath(path)
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
