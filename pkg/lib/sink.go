package lib

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported chart format")

// formats maps file extensions to the format names gonum/plot understands.
var formats = map[string]string{
	"png":  "png",
	"svg":  "svg",
	"pdf":  "pdf",
	"eps":  "eps",
	"jpg":  "jpg",
	"jpeg": "jpg",
	"tif":  "tif",
	"tiff": "tif",
}

// FormatFor returns the chart format for path, picked by extension. "-" and
// paths without an extension get png.
func FormatFor(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if path == "-" || ext == "" {
		return "png", nil
	}
	f, ok := formats[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return f, nil
}

// ChartSink is where a rendered chart is written.
type ChartSink struct {
	io.Writer
	Format string

	file *os.File
}

// Close closes the underlying file. Stdout is left open.
func (s *ChartSink) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// Discard closes and removes a partly written file. Stdout is left alone.
func (s *ChartSink) Discard() {
	if s.file == nil {
		return
	}
	s.file.Close()
	os.Remove(s.file.Name())
	s.file = nil
}

// OpenChartSink creates the file at path, or uses stdout when path is "-".
func OpenChartSink(path string) (*ChartSink, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	if path == "-" {
		return &ChartSink{Writer: os.Stdout, Format: format}, nil
	}

	writer, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &ChartSink{Writer: writer, Format: format, file: writer}, nil
}
