package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"puzzlefile/internal/format"
	"puzzlefile/internal/puzzle"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: puzzlefile <file.puz|file.ipuz|file.jpz>")
		os.Exit(2)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	p, err := format.DecodeFile(os.Args[1], data)
	if err != nil {
		log.Fatalf("could not read %s: %v", os.Args[1], err)
	}

	printPuzzle(p)
}

func printPuzzle(p *puzzle.Puzzle) {
	fmt.Printf("%s\n", p.Title)
	if p.Author != "" {
		fmt.Printf("by %s\n", p.Author)
	}
	fmt.Printf("%dx%d", p.Width, p.Height)
	if p.IsScrambled {
		fmt.Print(" (scrambled)")
	}
	fmt.Print("\n\n")

	for _, row := range p.Grid {
		var line strings.Builder
		for _, cell := range row {
			switch {
			case cell.Kind == puzzle.Black:
				line.WriteString("### ")
			case cell.Number > 0:
				line.WriteString(fmt.Sprintf("%-3d ", cell.Number))
			default:
				line.WriteString(".   ")
			}
		}
		fmt.Println(line.String())
	}

	fmt.Println("\nAcross:")
	for _, c := range p.Clues.Across {
		fmt.Printf("  %d. %s\n", c.Number, c.Text)
	}
	fmt.Println("\nDown:")
	for _, c := range p.Clues.Down {
		fmt.Printf("  %d. %s\n", c.Number, c.Text)
	}
}
