// Package db holds the query layer over the sqlite puzzle library.
package db

import (
	"context"
	"database/sql"
	"time"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const createPuzzle = `
INSERT INTO puzzles (id, title, author, format, width, height, document, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, title, author, format, width, height, document, created_at
`

type CreatePuzzleParams struct {
	ID        string
	Title     string
	Author    string
	Format    string
	Width     int64
	Height    int64
	Document  []byte
	CreatedAt time.Time
}

func (q *Queries) CreatePuzzle(ctx context.Context, arg CreatePuzzleParams) (Puzzle, error) {
	row := q.db.QueryRowContext(ctx, createPuzzle,
		arg.ID,
		arg.Title,
		arg.Author,
		arg.Format,
		arg.Width,
		arg.Height,
		arg.Document,
		arg.CreatedAt,
	)
	var p Puzzle
	err := row.Scan(&p.ID, &p.Title, &p.Author, &p.Format, &p.Width, &p.Height, &p.Document, &p.CreatedAt)
	return p, err
}

const getPuzzle = `
SELECT id, title, author, format, width, height, document, created_at
FROM puzzles WHERE id = ?
`

func (q *Queries) GetPuzzle(ctx context.Context, id string) (Puzzle, error) {
	row := q.db.QueryRowContext(ctx, getPuzzle, id)
	var p Puzzle
	err := row.Scan(&p.ID, &p.Title, &p.Author, &p.Format, &p.Width, &p.Height, &p.Document, &p.CreatedAt)
	return p, err
}

const listPuzzles = `
SELECT id, title, author, format, width, height, document, created_at
FROM puzzles ORDER BY created_at DESC, id LIMIT ? OFFSET ?
`

type ListPuzzlesParams struct {
	Limit  int64
	Offset int64
}

func (q *Queries) ListPuzzles(ctx context.Context, arg ListPuzzlesParams) ([]Puzzle, error) {
	rows, err := q.db.QueryContext(ctx, listPuzzles, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Puzzle
	for rows.Next() {
		var p Puzzle
		if err := rows.Scan(&p.ID, &p.Title, &p.Author, &p.Format, &p.Width, &p.Height, &p.Document, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const deletePuzzle = `DELETE FROM puzzles WHERE id = ?`

func (q *Queries) DeletePuzzle(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deletePuzzle, id)
	return err
}

const countPuzzles = `SELECT COUNT(*) FROM puzzles`

func (q *Queries) CountPuzzles(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPuzzles).Scan(&count)
	return count, err
}
