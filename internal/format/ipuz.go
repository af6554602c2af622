package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"puzzlefile/internal/puzzle"
)

// ipuz (JSON) format. The puzzle array tolerates several encodings of the
// same cell: "#" block, 0 unnumbered, positive number, null (treated as
// block), or an object with an explicit cell value and style annotations.

const ipuzCrosswordKind = "http://ipuz.org/crossword"

type ipuzFile struct {
	Kind       []string `json:"kind"`
	Dimensions *struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"dimensions"`
	Puzzle   [][]interface{} `json:"puzzle"`
	Solution [][]interface{} `json:"solution"`
	Clues    *struct {
		Across []interface{} `json:"Across"`
		Down   []interface{} `json:"Down"`
	} `json:"clues"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Copyright string `json:"copyright"`
	Notes     string `json:"notes"`
}

// DecodeIpuz parses an ipuz JSON file.
func DecodeIpuz(data []byte) (*puzzle.Puzzle, error) {
	var f ipuzFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding ipuz: %w", err)
	}

	isCrossword := false
	for _, k := range f.Kind {
		if strings.HasPrefix(k, ipuzCrosswordKind) {
			isCrossword = true
			break
		}
	}
	if !isCrossword {
		return nil, &InvalidDataError{Reason: "ipuz file is not a crossword puzzle (missing crossword kind)"}
	}

	if f.Dimensions == nil {
		return nil, &InvalidDataError{Reason: "missing dimensions"}
	}
	width := f.Dimensions.Width
	height := f.Dimensions.Height
	if width == 0 || height == 0 {
		return nil, &InvalidDimensionsError{Width: width, Height: height}
	}

	if f.Puzzle == nil {
		return nil, &InvalidDataError{Reason: "missing puzzle grid"}
	}
	if len(f.Puzzle) != height {
		return nil, &InvalidDataError{Reason: fmt.Sprintf("puzzle grid has %d rows, expected %d", len(f.Puzzle), height)}
	}

	grid := make([][]puzzle.Cell, height)
	for row, puzzleRow := range f.Puzzle {
		if len(puzzleRow) != width {
			return nil, &InvalidDataError{Reason: fmt.Sprintf("row %d has %d cells, expected %d", row, len(puzzleRow), width)}
		}

		gridRow := make([]puzzle.Cell, width)
		for col, cellVal := range puzzleRow {
			isBlack, number, circled := parseIpuzPuzzleCell(cellVal)
			if isBlack {
				gridRow[col] = puzzle.Cell{Kind: puzzle.Black}
				continue
			}

			cell := puzzle.Cell{Kind: puzzle.Letter, Number: number, IsCircled: circled}
			if f.Solution != nil && row < len(f.Solution) && col < len(f.Solution[row]) {
				cell.Solution, cell.RebusSolution = parseIpuzSolutionCell(f.Solution[row][col])
			}
			gridRow[col] = cell
		}
		grid[row] = gridRow
	}

	if f.Clues == nil {
		return nil, &InvalidDataError{Reason: "missing clues"}
	}
	across, err := buildIpuzClues(f.Clues.Across, grid, puzzle.DirectionAcross)
	if err != nil {
		return nil, err
	}
	down, err := buildIpuzClues(f.Clues.Down, grid, puzzle.DirectionDown)
	if err != nil {
		return nil, err
	}

	return &puzzle.Puzzle{
		Title:       f.Title,
		Author:      f.Author,
		Copyright:   f.Copyright,
		Notes:       f.Notes,
		Width:       width,
		Height:      height,
		Grid:        grid,
		Clues:       puzzle.Clues{Across: across, Down: down},
		HasSolution: f.Solution != nil,
		IsScrambled: false,
	}, nil
}

// parseIpuzPuzzleCell interprets one value from the puzzle array.
func parseIpuzPuzzleCell(val interface{}) (isBlack bool, number int, circled bool) {
	switch v := val.(type) {
	case string:
		if v == "#" {
			return true, 0, false
		}
		// Non-"#" string cell values stay playable and unnumbered.
		return false, 0, false
	case float64:
		if v > 0 {
			return false, int(v), false
		}
		return false, 0, false
	case nil:
		// Omitted cell, treated as a block.
		return true, 0, false
	case map[string]interface{}:
		if s, ok := v["cell"].(string); ok && s == "#" {
			return true, 0, false
		}
		if n, ok := v["cell"].(float64); ok && n > 0 {
			number = int(n)
		}
		if style, ok := v["style"].(map[string]interface{}); ok {
			if shape, ok := style["shapebg"].(string); ok && shape == "circle" {
				circled = true
			}
		}
		return false, number, circled
	default:
		return false, 0, false
	}
}

// parseIpuzSolutionCell interprets one value from the solution array. A
// string longer than one character is a rebus: the primary solution is its
// first character, the full string lands in RebusSolution.
func parseIpuzSolutionCell(val interface{}) (solution, rebus string) {
	s := ""
	switch v := val.(type) {
	case string:
		s = v
	case map[string]interface{}:
		s, _ = v["value"].(string)
	default:
		return "", ""
	}

	if s == "" || s == "#" {
		return "", ""
	}
	upper := strings.ToUpper(s)
	runes := []rune(upper)
	if len(runes) > 1 {
		return string(runes[0]), upper
	}
	return upper, ""
}

// buildIpuzClues converts [number, text, ...] entries, locating each clue's
// start by its number in the already-built grid and measuring its length
// with the shared run rule. Entries not shaped as an array of at least two
// elements are skipped.
func buildIpuzClues(clueValues []interface{}, grid [][]puzzle.Cell, dir puzzle.Direction) ([]puzzle.Clue, error) {
	var clues []puzzle.Clue

	for _, val := range clueValues {
		arr, ok := val.([]interface{})
		if !ok || len(arr) < 2 {
			continue
		}
		numVal, ok := arr[0].(float64)
		if !ok {
			return nil, &InvalidDataError{Reason: "clue number is not a number"}
		}
		number := int(numVal)
		text, _ := arr[1].(string)

		row, col, found := findCluePosition(grid, number)
		if !found {
			return nil, &InvalidDataError{Reason: fmt.Sprintf("clue %d not found in grid", number)}
		}

		length := 0
		if dir == puzzle.DirectionAcross {
			length = puzzle.CellsWordLengthAcross(grid, row, col)
		} else {
			length = puzzle.CellsWordLengthDown(grid, row, col)
		}

		clues = append(clues, puzzle.Clue{
			Number: number,
			Text:   text,
			Row:    row,
			Col:    col,
			Length: length,
		})
	}

	return clues, nil
}

func findCluePosition(grid [][]puzzle.Cell, number int) (row, col int, found bool) {
	// Black and unnumbered cells hold number 0; a non-positive clue number
	// must never match them.
	if number <= 0 {
		return 0, 0, false
	}
	for r := range grid {
		for c := range grid[r] {
			if grid[r][c].Number == number {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
