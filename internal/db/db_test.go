package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbConn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { dbConn.Close() })

	goose.SetDialect("sqlite3")
	if err := goose.Up(dbConn, "../../sql/schema"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return dbConn
}

func TestCreateAndGetPuzzle(t *testing.T) {
	q := New(openTestDB(t))
	ctx := context.Background()

	now := time.Now().UTC().Round(0)

	created, err := q.CreatePuzzle(ctx, CreatePuzzleParams{
		ID:        "puzzle-1",
		Title:     "Monday",
		Author:    "Setter",
		Format:    "puz",
		Width:     15,
		Height:    15,
		Document:  []byte(`{"title":"Monday"}`),
		CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if created.ID != "puzzle-1" {
		t.Errorf("expected id puzzle-1, got: %v", created.ID)
	}
	if created.Title != "Monday" {
		t.Errorf("expected title Monday, got: %v", created.Title)
	}

	got, err := q.GetPuzzle(ctx, "puzzle-1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got.Format != "puz" {
		t.Errorf("expected format puz, got: %v", got.Format)
	}
	if string(got.Document) != `{"title":"Monday"}` {
		t.Errorf("document did not round-trip, got: %s", got.Document)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("expected created_at %v, got: %v", now, got.CreatedAt)
	}
}

func TestGetPuzzle_NotFound(t *testing.T) {
	q := New(openTestDB(t))

	_, err := q.GetPuzzle(context.Background(), "missing")
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
}

func TestListPuzzles(t *testing.T) {
	q := New(openTestDB(t))
	ctx := context.Background()

	base := time.Now().UTC().Round(0)
	for i, id := range []string{"p1", "p2", "p3"} {
		_, err := q.CreatePuzzle(ctx, CreatePuzzleParams{
			ID:        id,
			Title:     "Puzzle " + id,
			Format:    "ipuz",
			Width:     5,
			Height:    5,
			Document:  []byte("{}"),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	items, err := q.ListPuzzles(ctx, ListPuzzlesParams{Limit: 2, Offset: 0})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 puzzles, got: %d", len(items))
	}
	if items[0].ID != "p3" {
		t.Errorf("expected newest first, got: %v", items[0].ID)
	}

	count, err := q.CountPuzzles(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got: %d", count)
	}
}

func TestDeletePuzzle(t *testing.T) {
	q := New(openTestDB(t))
	ctx := context.Background()

	_, err := q.CreatePuzzle(ctx, CreatePuzzleParams{
		ID: "gone", Title: "t", Author: "a", Format: "jpz", Width: 1, Height: 1,
		Document: []byte("{}"), CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := q.DeletePuzzle(ctx, "gone"); err != nil {
		t.Fatal(err)
	}
	if _, err := q.GetPuzzle(ctx, "gone"); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows after delete, got: %v", err)
	}
}
