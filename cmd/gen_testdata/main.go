// Regenerates the sample fixtures under internal/app/testdata. Run from
// the repository root.
package main

import (
	"archive/zip"
	"encoding/binary"
	"os"
)

func main() {
	writePuz()
	writeIpuz()
	writeJpz()
}

func writePuz() {
	f, err := os.Create("internal/app/testdata/sample.puz")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	// Header (0x34 bytes)
	binary.Write(f, binary.LittleEndian, uint16(0)) // Checksum
	f.Write([]byte("ACROSS&DOWN\x00"))              // Magic
	binary.Write(f, binary.LittleEndian, uint16(0)) // CIB Checksum
	f.Write(make([]byte, 8))                        // Masked Checksums
	f.Write(make([]byte, 4))                        // Version
	binary.Write(f, binary.LittleEndian, uint16(0)) // Reserved
	binary.Write(f, binary.LittleEndian, uint16(0)) // Scrambled Checksum
	f.Write(make([]byte, 12))                       // Reserved
	f.Write([]byte{3, 3})                           // Width, Height
	binary.Write(f, binary.LittleEndian, uint16(3)) // Num Clues
	binary.Write(f, binary.LittleEndian, uint16(0)) // MaskBit
	binary.Write(f, binary.LittleEndian, uint16(0)) // Scrambled Tag

	f.Write([]byte("CAT" + ".O." + "DOG")) // Solution
	f.Write([]byte("---" + "---" + "---")) // State

	for _, s := range []string{
		"Sample Title",
		"Sample Author",
		"2024",
		"Feline friend",
		"Letter between N and P",
		"Canine friend",
		"Notes",
	} {
		f.Write([]byte(s + "\x00"))
	}
}

func writeIpuz() {
	doc := `{
  "version": "http://ipuz.org/v2",
  "kind": ["http://ipuz.org/crossword#1"],
  "dimensions": { "width": 3, "height": 3 },
  "title": "Sample Title",
  "author": "Sample Author",
  "puzzle": [
    [1, 2, 0],
    ["#", 0, "#"],
    [3, 0, 0]
  ],
  "solution": [
    ["C", "A", "T"],
    ["#", "O", "#"],
    ["D", "O", "G"]
  ],
  "clues": {
    "Across": [[1, "Feline friend"], [3, "Canine friend"]],
    "Down": [[2, "Letter between N and P"]]
  }
}
`
	if err := os.WriteFile("internal/app/testdata/sample.ipuz", []byte(doc), 0o644); err != nil {
		panic(err)
	}
}

func writeJpz() {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<crossword-compiler-applet>
  <rectangular-puzzle>
    <metadata>
      <title>Sample Title</title>
      <creator>Sample Author</creator>
      <copyright>2024</copyright>
      <description>Notes</description>
    </metadata>
    <crossword>
      <grid width="3" height="3">
        <cell x="1" y="1" solution="C" number="1"/>
        <cell x="2" y="1" solution="A" number="2"/>
        <cell x="3" y="1" solution="T"/>
        <cell x="1" y="2" type="block"/>
        <cell x="2" y="2" solution="O"/>
        <cell x="3" y="2" type="block"/>
        <cell x="1" y="3" solution="D" number="3"/>
        <cell x="2" y="3" solution="O"/>
        <cell x="3" y="3" solution="G"/>
      </grid>
      <word id="1" x="1-3" y="1"/>
      <word id="2" x="2" y="1-3"/>
      <word id="3" x="1-3" y="3"/>
      <clues ordering="normal">
        <title>Across</title>
        <clue word="1" number="1">Feline friend</clue>
        <clue word="3" number="3">Canine friend</clue>
      </clues>
      <clues ordering="normal">
        <title>Down</title>
        <clue word="2" number="2">Letter between N and P</clue>
      </clues>
    </crossword>
  </rectangular-puzzle>
</crossword-compiler-applet>
`
	f, err := os.Create("internal/app/testdata/sample.jpz")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	entry, err := zw.Create("sample.xml")
	if err != nil {
		panic(err)
	}
	if _, err := entry.Write([]byte(doc)); err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
}
