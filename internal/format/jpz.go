package format

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"puzzlefile/internal/puzzle"
)

// jpz format: Crossword Compiler XML, usually wrapped in a single-member
// ZIP archive. Unlike puz/ipuz, word spans are explicit <word> elements, so
// no topology-derived numbering happens here.

var zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// DecodeJpz parses a jpz file, unwrapping the ZIP container when present.
func DecodeJpz(data []byte) (*puzzle.Puzzle, error) {
	xmlData := data
	if bytes.HasPrefix(data, zipMagic) {
		extracted, err := extractFromZip(data)
		if err != nil {
			return nil, err
		}
		xmlData = extracted
	}
	return decodeJpzXML(xmlData)
}

func extractFromZip(data []byte) ([]byte, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ArchiveError{Reason: "opening zip", Err: err}
	}
	if len(archive.File) == 0 {
		return nil, &ArchiveError{Reason: "zip archive is empty"}
	}

	f, err := archive.File[0].Open()
	if err != nil {
		return nil, &ArchiveError{Reason: "reading zip entry", Err: err}
	}
	defer f.Close()

	contents, err := io.ReadAll(f)
	if err != nil {
		return nil, &ArchiveError{Reason: "decompressing zip entry", Err: err}
	}
	return contents, nil
}

// jpzWord is a span from a <word> element, 0-indexed.
type jpzWord struct {
	id     string
	row    int
	col    int
	length int
}

// jpzCell is a <cell> element, still 1-indexed as in the XML.
type jpzCell struct {
	x, y      int
	solution  string
	number    int
	isBlock   bool
	isCircled bool
}

type jpzRawClue struct {
	wordID string
	number int
	text   string
}

// jpzState tracks the streaming context. Several tag names repeat with
// different meaning: <title> under <metadata> is the puzzle title, while
// <title> under <clues> is a direction header whose text decides where
// following <clue> elements are filed.
type jpzState struct {
	title       string
	creator     string
	copyright   string
	description string

	width  int
	height int

	cells []jpzCell
	words []jpzWord

	acrossClues []jpzRawClue
	downClues   []jpzRawClue

	inMetadata    bool
	inTitle       bool
	inCreator     bool
	inCopyright   bool
	inDescription bool
	inClues       bool
	inClueTitle   bool
	inClue        bool

	clueDirection puzzle.Direction
	clueWordID    string
	clueNumber    int
	clueText      strings.Builder
}

func decodeJpzXML(data []byte) (*puzzle.Puzzle, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	st := &jpzState{}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &XMLError{Reason: "reading xml", Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := st.handleStart(t); err != nil {
				return nil, err
			}
		case xml.CharData:
			st.handleText(string(t))
		case xml.EndElement:
			st.handleEnd(t)
		}
	}

	if st.width == 0 || st.height == 0 {
		return nil, &InvalidDimensionsError{Width: st.width, Height: st.height}
	}

	return st.assemble()
}

func (st *jpzState) handleStart(e xml.StartElement) error {
	switch e.Name.Local {
	case "metadata":
		st.inMetadata = true
	case "title":
		if st.inMetadata {
			st.inTitle = true
		} else if st.inClues {
			st.inClueTitle = true
		}
	case "creator":
		if st.inMetadata {
			st.inCreator = true
		}
	case "copyright":
		if st.inMetadata {
			st.inCopyright = true
		}
	case "description":
		if st.inMetadata {
			st.inDescription = true
		}
	case "grid":
		for _, attr := range e.Attr {
			switch attr.Name.Local {
			case "width":
				st.width, _ = strconv.Atoi(attr.Value)
			case "height":
				st.height, _ = strconv.Atoi(attr.Value)
			}
		}
	case "cell":
		st.cells = append(st.cells, parseJpzCell(e))
	case "word":
		word, ok, err := parseJpzWord(e)
		if err != nil {
			return err
		}
		if ok {
			st.words = append(st.words, word)
		}
	case "clues":
		st.inClues = true
		st.clueDirection = ""
	case "clue":
		if !st.inClues {
			break
		}
		st.inClue = true
		st.clueText.Reset()
		st.clueWordID = ""
		st.clueNumber = 0
		for _, attr := range e.Attr {
			switch attr.Name.Local {
			case "word":
				st.clueWordID = attr.Value
			case "number":
				st.clueNumber, _ = strconv.Atoi(attr.Value)
			}
		}
	}
	return nil
}

func (st *jpzState) handleText(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	switch {
	case st.inTitle && st.inMetadata:
		st.title += text
	case st.inCreator:
		st.creator += text
	case st.inCopyright:
		st.copyright += text
	case st.inDescription:
		st.description += text
	case st.inClueTitle && st.inClues:
		// Direction header: its text decides where following clues go.
		lower := strings.ToLower(text)
		if strings.Contains(lower, "across") {
			st.clueDirection = puzzle.DirectionAcross
		} else if strings.Contains(lower, "down") {
			st.clueDirection = puzzle.DirectionDown
		}
	case st.inClue:
		st.clueText.WriteString(text)
	}
}

func (st *jpzState) handleEnd(e xml.EndElement) {
	switch e.Name.Local {
	case "metadata":
		st.inMetadata = false
	case "title":
		if st.inMetadata {
			st.inTitle = false
		} else if st.inClues {
			st.inClueTitle = false
		}
	case "creator":
		st.inCreator = false
	case "copyright":
		st.inCopyright = false
	case "description":
		st.inDescription = false
	case "clues":
		st.inClues = false
		st.clueDirection = ""
	case "clue":
		if st.inClue && st.clueNumber > 0 {
			raw := jpzRawClue{
				wordID: st.clueWordID,
				number: st.clueNumber,
				text:   stripMarkupTags(st.clueText.String()),
			}
			// A clue with no direction header seen yet is dropped.
			switch st.clueDirection {
			case puzzle.DirectionAcross:
				st.acrossClues = append(st.acrossClues, raw)
			case puzzle.DirectionDown:
				st.downClues = append(st.downClues, raw)
			}
		}
		st.inClue = false
	}
}

// assemble builds the final puzzle: cells placed into a pre-sized grid
// (out-of-range coordinates dropped), then clues joined to word spans by
// identifier (unknown identifiers dropped).
func (st *jpzState) assemble() (*puzzle.Puzzle, error) {
	grid := make([][]puzzle.Cell, st.height)
	for r := range grid {
		grid[r] = make([]puzzle.Cell, st.width)
		for c := range grid[r] {
			grid[r][c] = puzzle.Cell{Kind: puzzle.Letter}
		}
	}

	hasSolution := false
	for _, cell := range st.cells {
		row := cell.y - 1
		col := cell.x - 1
		if row < 0 || col < 0 || row >= st.height || col >= st.width {
			continue
		}

		if cell.isBlock {
			grid[row][col] = puzzle.Cell{Kind: puzzle.Black}
			continue
		}

		placed := puzzle.Cell{
			Kind:      puzzle.Letter,
			Number:    cell.number,
			IsCircled: cell.isCircled,
		}
		if cell.solution != "" {
			hasSolution = true
			upper := strings.ToUpper(cell.solution)
			runes := []rune(upper)
			if len(runes) > 1 {
				placed.Solution = string(runes[0])
				placed.RebusSolution = upper
			} else {
				placed.Solution = upper
			}
		}
		grid[row][col] = placed
	}

	wordsByID := make(map[string]jpzWord, len(st.words))
	for _, w := range st.words {
		wordsByID[w.id] = w
	}

	return &puzzle.Puzzle{
		Title:     st.title,
		Author:    st.creator,
		Copyright: st.copyright,
		Notes:     st.description,
		Width:     st.width,
		Height:    st.height,
		Grid:      grid,
		Clues: puzzle.Clues{
			Across: buildJpzClues(st.acrossClues, wordsByID),
			Down:   buildJpzClues(st.downClues, wordsByID),
		},
		HasSolution: hasSolution,
		IsScrambled: false,
	}, nil
}

func parseJpzCell(e xml.StartElement) jpzCell {
	var cell jpzCell
	for _, attr := range e.Attr {
		switch attr.Name.Local {
		case "x":
			cell.x, _ = strconv.Atoi(attr.Value)
		case "y":
			cell.y, _ = strconv.Atoi(attr.Value)
		case "solution":
			cell.solution = attr.Value
		case "number":
			cell.number, _ = strconv.Atoi(attr.Value)
		case "type":
			if attr.Value == "block" {
				cell.isBlock = true
			}
		case "background-shape":
			if attr.Value == "circle" {
				cell.isCircled = true
			}
		}
	}
	return cell
}

// parseJpzWord reads a <word> span: a dash range on x means an across span
// on row y, a range on y means a down span on column x. Words with neither
// axis ranged are single cells and skipped.
func parseJpzWord(e xml.StartElement) (jpzWord, bool, error) {
	var id, xAttr, yAttr string
	for _, attr := range e.Attr {
		switch attr.Name.Local {
		case "id":
			id = attr.Value
		case "x":
			xAttr = attr.Value
		case "y":
			yAttr = attr.Value
		}
	}

	if id == "" {
		return jpzWord{}, false, nil
	}

	switch {
	case strings.Contains(xAttr, "-"):
		start, end, err := parseJpzRange(xAttr)
		if err != nil {
			return jpzWord{}, false, err
		}
		row, err := strconv.Atoi(yAttr)
		if err != nil {
			return jpzWord{}, false, &XMLError{Reason: fmt.Sprintf("invalid word y: %q", yAttr)}
		}
		return jpzWord{id: id, row: toGridIndex(row), col: toGridIndex(start), length: end - start + 1}, true, nil
	case strings.Contains(yAttr, "-"):
		start, end, err := parseJpzRange(yAttr)
		if err != nil {
			return jpzWord{}, false, err
		}
		col, err := strconv.Atoi(xAttr)
		if err != nil {
			return jpzWord{}, false, &XMLError{Reason: fmt.Sprintf("invalid word x: %q", xAttr)}
		}
		return jpzWord{id: id, row: toGridIndex(start), col: toGridIndex(col), length: end - start + 1}, true, nil
	default:
		return jpzWord{}, false, nil
	}
}

// toGridIndex converts a 1-indexed document coordinate, clamping at zero so
// a malformed "0" never yields a negative index.
func toGridIndex(n int) int {
	if n < 1 {
		return 0
	}
	return n - 1
}

func parseJpzRange(s string) (start, end int, err error) {
	first, second, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, &XMLError{Reason: fmt.Sprintf("invalid range: %q", s)}
	}
	start, err = strconv.Atoi(first)
	if err != nil {
		return 0, 0, &XMLError{Reason: fmt.Sprintf("invalid range start: %q", s)}
	}
	end, err = strconv.Atoi(second)
	if err != nil {
		return 0, 0, &XMLError{Reason: fmt.Sprintf("invalid range end: %q", s)}
	}
	return start, end, nil
}

func buildJpzClues(raw []jpzRawClue, wordsByID map[string]jpzWord) []puzzle.Clue {
	var clues []puzzle.Clue
	for _, rc := range raw {
		word, ok := wordsByID[rc.wordID]
		if !ok {
			continue
		}
		clues = append(clues, puzzle.Clue{
			Number: rc.number,
			Text:   rc.text,
			Row:    word.row,
			Col:    word.col,
			Length: word.length,
		})
	}
	return clues
}

// stripMarkupTags drops characters between '<' and '>' inclusive. Clue text
// sometimes carries entity-encoded markup that survives XML unescaping.
func stripMarkupTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
