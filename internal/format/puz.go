package format

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"puzzlefile/internal/puzzle"
)

// Across Lite (.puz) binary format. Fixed 0x34-byte header, solution and
// player-state grids back to back, a null-terminated string table, then
// optional named extension sections.
//
// Format reference:
// https://code.google.com/archive/p/puz/wikis/FileFormat.wiki

var puzMagic = []byte("ACROSS&DOWN\x00")

const (
	offsetMagic        = 0x02
	offsetWidth        = 0x2C
	offsetHeight       = 0x2D
	offsetNumClues     = 0x2E
	offsetScrambledTag = 0x32
	puzHeaderSize      = 0x34
)

// Extension section names.
var (
	extGRBS = []byte("GRBS")
	extRTBL = []byte("RTBL")
	extGEXT = []byte("GEXT")
	extLTIM = []byte("LTIM")
)

// GEXT per-cell flag bits.
const (
	gextCircled      = 0x80
	gextWasIncorrect = 0x10
	gextRevealed     = 0x40
)

// DecodePuz parses an Across Lite binary file.
func DecodePuz(data []byte) (*puzzle.Puzzle, error) {
	if len(data) < puzHeaderSize {
		return nil, &FileTooShortError{Expected: puzHeaderSize, Actual: len(data)}
	}

	if !bytes.Equal(data[offsetMagic:offsetMagic+12], puzMagic) {
		return nil, ErrInvalidMagic
	}

	width := int(data[offsetWidth])
	height := int(data[offsetHeight])
	if width == 0 || height == 0 {
		return nil, &InvalidDimensionsError{Width: width, Height: height}
	}

	numClues := int(binary.LittleEndian.Uint16(data[offsetNumClues:]))
	scrambledTag := binary.LittleEndian.Uint16(data[offsetScrambledTag:])
	isScrambled := scrambledTag != 0

	gridSize := width * height

	solutionStart := puzHeaderSize
	solutionEnd := solutionStart + gridSize
	stateEnd := solutionEnd + gridSize
	if len(data) < stateEnd {
		return nil, &FileTooShortError{Expected: stateEnd, Actual: len(data)}
	}

	solutionGrid := data[solutionStart:solutionEnd]
	stateGrid := data[solutionEnd:stateEnd]

	// String table: title, author, copyright, one per clue, notes.
	strs := parsePuzStrings(data[stateEnd:], numClues+4)
	title := strAt(strs, 0)
	author := strAt(strs, 1)
	copyright := strAt(strs, 2)
	clueTexts := strs[3:min(3+numClues, len(strs))]
	notes := strAt(strs, 3+numClues)

	var exts puzExtensions
	if off, ok := findExtensionsStart(data[stateEnd:], numClues+4); ok {
		exts = parseExtensions(data[stateEnd+off:])
	}

	grid, across, down := buildPuzGrid(width, height, solutionGrid, stateGrid, clueTexts, &exts)

	return &puzzle.Puzzle{
		Title:       title,
		Author:      author,
		Copyright:   copyright,
		Notes:       notes,
		Width:       width,
		Height:      height,
		Grid:        grid,
		Clues:       puzzle.Clues{Across: across, Down: down},
		HasSolution: !isScrambled,
		IsScrambled: isScrambled,
		Timer:       exts.ltim,
	}, nil
}

// parsePuzStrings reads count null-terminated strings and always returns
// exactly count of them. The final string may lack its terminator when the
// buffer ends exactly there; remaining bytes are taken as its content.
// Missing strings come back empty.
func parsePuzStrings(data []byte, count int) []string {
	strs := make([]string, 0, count)
	pos := 0

	for i := 0; i < count; i++ {
		end := bytes.IndexByte(data[pos:], 0)
		if end >= 0 {
			strs = append(strs, decodePuzString(data[pos:pos+end]))
			pos += end + 1
			continue
		}
		if pos < len(data) {
			strs = append(strs, decodePuzString(data[pos:]))
			pos = len(data)
			continue
		}
		strs = append(strs, "")
	}

	return strs
}

// decodePuzString interprets bytes as UTF-8 when well-formed, falling back
// to the legacy Windows-1252 encoding older producers used.
func decodePuzString(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}

// findExtensionsStart skips past the whole string table. No extensions if
// the table consumed the buffer or its last string was unterminated.
func findExtensionsStart(data []byte, stringCount int) (int, bool) {
	pos := 0
	for i := 0; i < stringCount; i++ {
		end := bytes.IndexByte(data[pos:], 0)
		if end < 0 {
			return 0, false
		}
		pos += end + 1
	}
	if pos < len(data) {
		return pos, true
	}
	return 0, false
}

type puzExtensions struct {
	// grbs: per-cell rebus index, 0 = none, N>0 = key N-1 in rtbl.
	grbs []byte
	// rtbl: rebus table keyed by small integers.
	rtbl map[int]string
	// gext: per-cell flag bitmask.
	gext []byte
	// ltim: timer state, exposed verbatim.
	ltim string
}

// parseExtensions walks the chained sections: 4-byte name, 2-byte length,
// 2-byte checksum (unverified), payload, trailing null. Unknown names are
// skipped; a length overrunning the buffer ends the walk without failing
// the decode.
func parseExtensions(data []byte) puzExtensions {
	var ext puzExtensions
	pos := 0

	for pos+8 <= len(data) {
		name := data[pos : pos+4]
		length := int(binary.LittleEndian.Uint16(data[pos+4:]))
		payloadStart := pos + 8
		payloadEnd := payloadStart + length
		if payloadEnd > len(data) {
			break
		}
		payload := data[payloadStart:payloadEnd]

		switch {
		case bytes.Equal(name, extGRBS):
			ext.grbs = payload
		case bytes.Equal(name, extRTBL):
			ext.rtbl = parseRebusTable(payload)
		case bytes.Equal(name, extGEXT):
			ext.gext = payload
		case bytes.Equal(name, extLTIM):
			ext.ltim = decodePuzString(payload)
		}

		pos = payloadEnd + 1
	}

	return ext
}

// parseRebusTable decodes the RTBL payload, a single string of
// "key:VALUE;" entries, e.g. " 0:HEART; 1:SPADE;".
func parseRebusTable(payload []byte) map[int]string {
	table := make(map[int]string)
	for _, entry := range strings.Split(decodePuzString(payload), ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		keyStr, value, found := strings.Cut(entry, ":")
		if !found {
			continue
		}
		key, err := strconv.Atoi(strings.TrimSpace(keyStr))
		if err != nil {
			continue
		}
		table[key] = strings.ToUpper(value)
	}
	return table
}

func buildPuzGrid(width, height int, solutionGrid, stateGrid []byte, clueTexts []string, exts *puzExtensions) ([][]puzzle.Cell, []puzzle.Clue, []puzzle.Clue) {
	grid := make([][]puzzle.Cell, height)
	var across, down []puzzle.Clue
	clueNumber := 1
	clueIdx := 0

	nextClueText := func() string {
		if clueIdx < len(clueTexts) {
			t := clueTexts[clueIdx]
			clueIdx++
			return t
		}
		return ""
	}

	for row := 0; row < height; row++ {
		gridRow := make([]puzzle.Cell, width)
		for col := 0; col < width; col++ {
			idx := row*width + col
			solByte := solutionGrid[idx]
			stateByte := stateGrid[idx]

			if solByte == puzzle.BlackByte {
				gridRow[col] = puzzle.Cell{Kind: puzzle.Black}
				continue
			}

			cell := puzzle.Cell{Kind: puzzle.Letter}

			startsAcross := puzzle.StartsAcross(solutionGrid, width, height, row, col)
			startsDown := puzzle.StartsDown(solutionGrid, width, height, row, col)

			if startsAcross || startsDown {
				n := clueNumber
				clueNumber++
				cell.Number = n

				// The across clue consumes its text slot before
				// the down clue when both start here.
				if startsAcross {
					across = append(across, puzzle.Clue{
						Number: n,
						Text:   nextClueText(),
						Row:    row,
						Col:    col,
						Length: puzzle.WordLengthAcross(solutionGrid, width, row, col),
					})
				}
				if startsDown {
					down = append(down, puzzle.Clue{
						Number: n,
						Text:   nextClueText(),
						Row:    row,
						Col:    col,
						Length: puzzle.WordLengthDown(solutionGrid, width, height, row, col),
					})
				}
			}

			// '-' and ':' mark an unsolved square.
			if solByte != '-' && solByte != ':' {
				cell.Solution = strings.ToUpper(string(rune(solByte)))
			}

			if len(exts.grbs) > idx {
				if key := int(exts.grbs[idx]); key > 0 {
					cell.RebusSolution = exts.rtbl[key-1]
				}
			}

			if stateByte != '-' && stateByte != puzzle.BlackByte && stateByte != 0 {
				cell.PlayerValue = strings.ToUpper(string(rune(stateByte)))
			}

			if len(exts.gext) > idx {
				flags := exts.gext[idx]
				cell.IsCircled = flags&gextCircled != 0
				cell.WasIncorrect = flags&gextWasIncorrect != 0
				cell.IsRevealed = flags&gextRevealed != 0
			}

			gridRow[col] = cell
		}
		grid[row] = gridRow
	}

	return grid, across, down
}

func strAt(strs []string, i int) string {
	if i < len(strs) {
		return strs[i]
	}
	return ""
}
