// Package extract turns transcript source files of varying formats into a
// raw UTF-8 text blob for the cleaning pipeline.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat marks a file extension the loader cannot handle.
// Fatal for that document only; the caller logs and skips.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Load dispatches on the file extension and returns the document's text.
func Load(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return pdfText(path)
	case ".txt":
		return textFile(path)
	case ".html", ".htm":
		return htmlText(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
