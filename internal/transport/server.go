// Package transport exposes the puzzle library over HTTP. All responses
// are JSON; the decoded puzzle document is served exactly as stored.
package transport

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"puzzlefile/internal/app"
)

type Server struct {
	Service        *app.Service
	Router         *chi.Mux
	SessionManager *scs.SessionManager

	maxUploadBytes int64
}

func NewServer(svc *app.Service, db *sql.DB, maxUploadBytes int64, isProd bool) *Server {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.New(db)
	sessionManager.Lifetime = time.Hour * 24 * 30
	sessionManager.Cookie.Secure = isProd

	s := &Server{
		Service:        svc,
		Router:         chi.NewRouter(),
		SessionManager: sessionManager,
		maxUploadBytes: maxUploadBytes,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.Use(middleware.Logger)
	s.Router.Use(s.SessionManager.LoadAndSave)
	s.Router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Size ceiling in front of the decoders; a hostile archive
			// never gets to claim more than this.
			r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
			next.ServeHTTP(w, r)
		})
	})

	s.Router.Post("/decode", s.handleDecode)

	s.Router.Post("/puzzles", s.handleImportPuzzle)
	s.Router.Get("/puzzles", s.handleListPuzzles)
	s.Router.Get("/puzzles/recent", s.handleRecentPuzzles)
	s.Router.Get("/puzzles/{id}", s.handleGetPuzzle)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writing response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.respondJSON(w, status, map[string]string{"error": err.Error()})
}
