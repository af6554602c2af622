package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puzzlefile/internal/puzzle"
)

func TestDecode_CaseInsensitiveHints(t *testing.T) {
	data := makeTestPuz()

	for _, hint := range []string{"puz", "PUZ", "Puz"} {
		p, err := Decode(data, hint)
		require.NoError(t, err, hint)
		assert.Equal(t, "Test Puzzle", p.Title)
	}
}

func TestDecode_JpzAndXMLShareDecoder(t *testing.T) {
	viaJpz, err := Decode([]byte(testJpzXML), "jpz")
	require.NoError(t, err)
	viaXML, err := Decode([]byte(testJpzXML), "xml")
	require.NoError(t, err)
	assert.Equal(t, viaJpz, viaXML)
}

func TestDecode_UnsupportedFormat(t *testing.T) {
	_, err := Decode([]byte("whatever"), "pdf")

	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "pdf", unsupported.Format)
	assert.Contains(t, err.Error(), "pdf")
}

func TestDecodeFile_ByExtension(t *testing.T) {
	p, err := DecodeFile("daily.PUZ", makeTestPuz())
	require.NoError(t, err)
	assert.Equal(t, "Test Puzzle", p.Title)

	p, err = DecodeFile("daily.ipuz", makeTestIpuz())
	require.NoError(t, err)
	assert.Equal(t, "Test Puzzle", p.Title)
}

func TestDecodeFile_MagicFallback(t *testing.T) {
	p, err := DecodeFile("download.bin", makeTestPuz())
	require.NoError(t, err)
	assert.Equal(t, "Test Puzzle", p.Title)
}

func TestDecodeFile_UnknownExtension(t *testing.T) {
	_, err := DecodeFile("puzzle.docx", []byte("nope"))
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "docx", unsupported.Format)
}

// All three decoders must assign the same numbers to the same topology.
func TestDecode_NumberingConsistentAcrossFormats(t *testing.T) {
	fromPuz, err := DecodePuz(makeTestPuz())
	require.NoError(t, err)
	fromIpuz, err := DecodeIpuz([]byte(`{
		"kind": ["http://ipuz.org/crossword#1"],
		"dimensions": { "width": 3, "height": 3 },
		"puzzle": [[1, 2, 0], ["#", 0, "#"], [3, 0, 0]],
		"solution": [["C", "A", "T"], ["#", "O", "#"], ["D", "O", "G"]],
		"clues": {
			"Across": [[1, "Feline friend"], [3, "Canine friend"]],
			"Down": [[2, "Letter between N and P"]]
		}
	}`))
	require.NoError(t, err)
	fromJpz, err := DecodeJpz([]byte(testJpzXML))
	require.NoError(t, err)

	for _, p := range []*puzzle.Puzzle{fromPuz, fromIpuz, fromJpz} {
		assert.Equal(t, 1, p.Grid[0][0].Number)
		assert.Equal(t, 2, p.Grid[0][1].Number)
		assert.Zero(t, p.Grid[0][2].Number)
		assert.Zero(t, p.Grid[1][1].Number)
		assert.Equal(t, 3, p.Grid[2][0].Number)
	}

	// Numbers of word-start cells increase by exactly one in row-major order.
	for _, p := range []*puzzle.Puzzle{fromPuz, fromIpuz, fromJpz} {
		next := 1
		for _, row := range p.Grid {
			for _, cell := range row {
				if cell.Number == 0 {
					continue
				}
				assert.Equal(t, next, cell.Number)
				next++
			}
		}
	}
}
