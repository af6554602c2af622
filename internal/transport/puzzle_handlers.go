package transport

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"puzzlefile/internal/db"
	"puzzlefile/internal/format"
)

const recentPuzzlesKey = "recentPuzzles"

type puzzleSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Format    string    `json:"format"`
	Width     int64     `json:"width"`
	Height    int64     `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}

func summarize(p db.Puzzle) puzzleSummary {
	return puzzleSummary{
		ID:        p.ID,
		Title:     p.Title,
		Author:    p.Author,
		Format:    p.Format,
		Width:     p.Width,
		Height:    p.Height,
		CreatedAt: p.CreatedAt,
	}
}

// decodeStatus maps a decoder failure to an HTTP status. Unsupported
// formats are their own thing; everything else is a bad puzzle file.
func decodeStatus(err error) int {
	var unsupported *format.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		return http.StatusUnsupportedMediaType
	}
	return http.StatusUnprocessableEntity
}

func (s *Server) readUpload(r *http.Request) (string, []byte, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, err
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return "", nil, err
		}
		return header.Filename, data, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, err
	}
	return "", data, nil
}

// handleDecode decodes an uploaded puzzle without storing it. The format
// hint comes from ?format= or, for multipart uploads, the file name.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	filename, data, err := s.readUpload(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	hint := r.URL.Query().Get("format")

	var decodeErr error
	switch {
	case hint != "":
		p, err := format.Decode(data, hint)
		if err == nil {
			s.respondJSON(w, http.StatusOK, p)
			return
		}
		decodeErr = err
	case filename != "":
		p, err := s.Service.DecodePuzzleFile(filename, data)
		if err == nil {
			s.respondJSON(w, http.StatusOK, p)
			return
		}
		decodeErr = err
	default:
		s.respondError(w, http.StatusBadRequest, errors.New("format hint or file name required"))
		return
	}

	s.respondError(w, decodeStatus(decodeErr), decodeErr)
}

func (s *Server) handleImportPuzzle(w http.ResponseWriter, r *http.Request) {
	filename, data, err := s.readUpload(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	if filename == "" {
		s.respondError(w, http.StatusBadRequest, errors.New("multipart file upload required"))
		return
	}

	stored, err := s.Service.ImportPuzzle(r.Context(), filename, data)
	if err != nil {
		s.respondError(w, decodeStatus(err), err)
		return
	}

	s.rememberPuzzle(r, stored.ID)

	s.respondJSON(w, http.StatusCreated, summarize(*stored))
}

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	puzzles, err := s.Service.ListPuzzles(r.Context(), limit, offset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}

	summaries := make([]puzzleSummary, 0, len(puzzles))
	for _, p := range puzzles {
		summaries = append(summaries, summarize(p))
	}
	s.respondJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	stored, decoded, err := s.Service.GetDecodedPuzzle(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		s.respondError(w, http.StatusNotFound, errors.New("puzzle not found"))
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}

	s.rememberPuzzle(r, id)

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"record": summarize(*stored),
		"puzzle": decoded,
	})
}

// handleRecentPuzzles lists the entries this session has imported or
// opened, newest first.
func (s *Server) handleRecentPuzzles(w http.ResponseWriter, r *http.Request) {
	summaries := make([]puzzleSummary, 0)
	for _, id := range s.recentPuzzleIDs(r) {
		stored, err := s.Service.Queries.GetPuzzle(r.Context(), id)
		if err != nil {
			continue // deleted since; drop silently
		}
		summaries = append(summaries, summarize(stored))
	}
	s.respondJSON(w, http.StatusOK, summaries)
}

func (s *Server) recentPuzzleIDs(r *http.Request) []string {
	raw := s.SessionManager.GetString(r.Context(), recentPuzzlesKey)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func (s *Server) rememberPuzzle(r *http.Request, id string) {
	ids := []string{id}
	for _, existing := range s.recentPuzzleIDs(r) {
		if existing != id && len(ids) < 10 {
			ids = append(ids, existing)
		}
	}
	s.SessionManager.Put(r.Context(), recentPuzzlesKey, strings.Join(ids, ","))
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
