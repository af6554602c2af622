package puzzle

// BlackByte marks a blocked square in a flat byte grid.
const BlackByte = byte('.')

// The topology functions are pure queries over a row-major byte grid, one
// byte per cell, BlackByte meaning block. Decoders that derive clue numbers
// (puz, ipuz lengths) must use exactly these so numbering stays consistent
// across formats: scan row-major and bump one shared counter whenever
// StartsAcross or StartsDown holds.

// StartsAcross reports whether (row, col) begins a horizontal entry: the
// cell is playable, the cell to its left is a block or the grid edge, and a
// playable cell follows to the right.
func StartsAcross(grid []byte, width, height, row, col int) bool {
	idx := row*width + col
	if grid[idx] == BlackByte {
		return false
	}
	leftIsBoundary := col == 0 || grid[idx-1] == BlackByte
	rightIsLetter := col+1 < width && grid[idx+1] != BlackByte
	return leftIsBoundary && rightIsLetter
}

// StartsDown is the vertical counterpart of StartsAcross.
func StartsDown(grid []byte, width, height, row, col int) bool {
	idx := row*width + col
	if grid[idx] == BlackByte {
		return false
	}
	aboveIsBoundary := row == 0 || grid[(row-1)*width+col] == BlackByte
	belowIsLetter := row+1 < height && grid[(row+1)*width+col] != BlackByte
	return aboveIsBoundary && belowIsLetter
}

// WordLengthAcross counts contiguous playable cells rightward from
// (row, col), stopping at a block or the grid edge.
func WordLengthAcross(grid []byte, width, row, col int) int {
	length := 0
	for c := col; c < width && grid[row*width+c] != BlackByte; c++ {
		length++
	}
	return length
}

// WordLengthDown counts contiguous playable cells downward from (row, col).
func WordLengthDown(grid []byte, width, height, row, col int) int {
	length := 0
	for r := row; r < height && grid[r*width+col] != BlackByte; r++ {
		length++
	}
	return length
}

// CellsWordLengthAcross is WordLengthAcross over an already-typed grid, for
// decoders that build cells before measuring entries.
func CellsWordLengthAcross(grid [][]Cell, row, col int) int {
	length := 0
	for c := col; c < len(grid[row]) && grid[row][c].Kind != Black; c++ {
		length++
	}
	return length
}

// CellsWordLengthDown is WordLengthDown over an already-typed grid.
func CellsWordLengthDown(grid [][]Cell, row, col int) int {
	length := 0
	for r := row; r < len(grid) && grid[r][col].Kind != Black; r++ {
		length++
	}
	return length
}
