package db

import "time"

// Puzzle is a stored library entry: searchable metadata columns plus the
// canonical JSON document of the decoded puzzle.
type Puzzle struct {
	ID        string
	Title     string
	Author    string
	Format    string
	Width     int64
	Height    int64
	Document  []byte
	CreatedAt time.Time
}
