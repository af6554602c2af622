// Package puzzle holds the format-independent crossword representation that
// every decoder produces and every consumer reads.
package puzzle

// CellKind distinguishes playable squares from blocks.
type CellKind string

const (
	Black  CellKind = "black"
	Letter CellKind = "letter"
)

type Direction string

const (
	DirectionAcross Direction = "across"
	DirectionDown   Direction = "down"
)

// Puzzle is a fully decoded crossword. Decoders build it once per call and
// never mutate it afterwards.
type Puzzle struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Copyright string `json:"copyright"`
	Notes     string `json:"notes"`

	Width  int `json:"width"`
	Height int `json:"height"`

	// Grid is row-major, Height rows of Width cells.
	Grid [][]Cell `json:"grid"`

	Clues Clues `json:"clues"`

	// HasSolution is true iff solution letters were present in the source.
	HasSolution bool `json:"has_solution"`
	// IsScrambled is true iff the binary scramble tag was set; solution
	// bytes are then ciphered and must not be read as plaintext.
	IsScrambled bool `json:"is_scrambled"`

	// Timer carries the binary format's LTIM payload verbatim, if any.
	Timer string `json:"timer,omitempty"`
}

// Cell is one grid square. Zero values mean "absent": Number 0 is an
// unnumbered cell, empty Solution means no solution letter was supplied.
type Cell struct {
	Kind CellKind `json:"kind"`

	// Number is the clue number shown in the square, if it starts an
	// across or down entry.
	Number int `json:"number,omitempty"`
	// Solution is the single correct character for this square.
	Solution string `json:"solution,omitempty"`
	// RebusSolution holds the full multi-character answer when the true
	// answer spans more than one character; Solution then carries just
	// its first character.
	RebusSolution string `json:"rebus_solution,omitempty"`
	// PlayerValue is prior solving progress, for formats that persist it.
	PlayerValue string `json:"player_value,omitempty"`

	IsCircled    bool `json:"is_circled,omitempty"`
	WasIncorrect bool `json:"was_incorrect,omitempty"`
	IsRevealed   bool `json:"is_revealed,omitempty"`
}

type Clues struct {
	Across []Clue `json:"across"`
	Down   []Clue `json:"down"`
}

// Clue ties a clue text to the grid: Row/Col are the 0-indexed starting
// cell, Length the answer length in cells.
type Clue struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Length int    `json:"length"`
}
