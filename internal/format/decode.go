// Package format decodes the three supported crossword file formats into
// the unified puzzle model. Decoders are pure and reentrant: bytes in,
// puzzle or typed failure out, no state kept between calls.
package format

import (
	"bytes"
	"path/filepath"
	"strings"

	"puzzlefile/internal/puzzle"
)

// Decode picks a decoder by format hint. Hints are case-insensitive; "jpz"
// and "xml" share the archive/XML decoder. Unknown hints fail with an
// UnsupportedFormatError carrying the token verbatim.
func Decode(data []byte, format string) (*puzzle.Puzzle, error) {
	switch strings.ToLower(format) {
	case "puz":
		return DecodePuz(data)
	case "ipuz":
		return DecodeIpuz(data)
	case "jpz", "xml":
		return DecodeJpz(data)
	default:
		return nil, &UnsupportedFormatError{Format: format}
	}
}

// DecodeFile derives the format hint from the file name's extension. Files
// without a usable extension fall back to a magic-byte check for the binary
// format.
func DecodeFile(filename string, data []byte) (*puzzle.Puzzle, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch ext {
	case "puz", "ipuz", "jpz", "xml":
		return Decode(data, ext)
	}

	if len(data) >= offsetMagic+12 && bytes.Equal(data[offsetMagic:offsetMagic+12], puzMagic) {
		return DecodePuz(data)
	}

	return nil, &UnsupportedFormatError{Format: ext}
}
