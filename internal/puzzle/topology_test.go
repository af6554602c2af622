package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// CAT / .O. / DOG
var testGrid = []byte("CAT.O.DOG")

func TestStartsAcross(t *testing.T) {
	assert.True(t, StartsAcross(testGrid, 3, 3, 0, 0))  // C begins CAT
	assert.False(t, StartsAcross(testGrid, 3, 3, 0, 1)) // A has letter to its left
	assert.False(t, StartsAcross(testGrid, 3, 3, 1, 0)) // block
	assert.False(t, StartsAcross(testGrid, 3, 3, 1, 1)) // O is boxed in horizontally
	assert.True(t, StartsAcross(testGrid, 3, 3, 2, 0))  // D begins DOG
}

func TestStartsDown(t *testing.T) {
	assert.False(t, StartsDown(testGrid, 3, 3, 0, 0)) // block below C
	assert.True(t, StartsDown(testGrid, 3, 3, 0, 1))  // A begins AOO
	assert.False(t, StartsDown(testGrid, 3, 3, 0, 2)) // block below T
	assert.False(t, StartsDown(testGrid, 3, 3, 1, 1)) // letter above O
	assert.False(t, StartsDown(testGrid, 3, 3, 2, 0)) // bottom edge below D
}

func TestWordLengths(t *testing.T) {
	assert.Equal(t, 3, WordLengthAcross(testGrid, 3, 0, 0))
	assert.Equal(t, 1, WordLengthAcross(testGrid, 3, 1, 1))
	assert.Equal(t, 3, WordLengthDown(testGrid, 3, 3, 0, 1))
	assert.Equal(t, 1, WordLengthDown(testGrid, 3, 3, 2, 0))
}

func TestWordLengthsSaturateAtEdge(t *testing.T) {
	// Single row, no blocks: the run stops at the grid edge.
	grid := []byte("ABCDE")
	assert.Equal(t, 5, WordLengthAcross(grid, 5, 0, 0))
	assert.Equal(t, 2, WordLengthAcross(grid, 5, 0, 3))
	assert.Equal(t, 1, WordLengthDown(grid, 5, 1, 0, 4))
}

func TestCellsWordLengths(t *testing.T) {
	grid := [][]Cell{
		{{Kind: Letter}, {Kind: Letter}, {Kind: Letter}},
		{{Kind: Black}, {Kind: Letter}, {Kind: Black}},
		{{Kind: Letter}, {Kind: Letter}, {Kind: Letter}},
	}
	assert.Equal(t, 3, CellsWordLengthAcross(grid, 0, 0))
	assert.Equal(t, 1, CellsWordLengthAcross(grid, 1, 1))
	assert.Equal(t, 3, CellsWordLengthDown(grid, 0, 1))
	assert.Equal(t, 1, CellsWordLengthDown(grid, 2, 0))
}
