package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ErrUndecodable is returned when every encoding in the fallback list fails
// to decode a plain-text file.
var ErrUndecodable = errors.New("could not decode file")

// decodeFallbacks is tried in order. UTF-8 is checked for validity rather
// than decoded; Windows-1252 and Latin-1 accept any byte sequence, so the
// heuristic there is the absence of control garbage after decoding.
var decodeFallbacks = []struct {
	name string
	dec  *encoding.Decoder
}{
	{"windows-1252", charmap.Windows1252.NewDecoder()},
	{"latin-1", charmap.ISO8859_1.NewDecoder()},
	{"utf-16", unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()},
}

// textFile reads a plain-text transcript, resolving the encoding across the
// fallback list UTF-8, Windows-1252, Latin-1, UTF-16.
func textFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	for _, fallback := range decodeFallbacks {
		decoded, err := fallback.dec.Bytes(data)
		if err != nil {
			continue
		}
		if utf8.Valid(decoded) {
			return string(decoded), nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrUndecodable, filepath.Base(path))
}
