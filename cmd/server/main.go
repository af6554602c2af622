package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"puzzlefile/internal/app"
	"puzzlefile/internal/config"
	"puzzlefile/internal/db"
	"puzzlefile/internal/transport"
	"puzzlefile/sql/schema"
)

func main() {
	// A missing .env is fine; the config layer has defaults for everything.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	dbConn, err := sql.Open("sqlite", cfg.DBPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		log.Fatal(err)
	}
	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal(err)
	}

	// Run migrations from embedded FS
	goose.SetBaseFS(schema.Migrations)
	if err := goose.Up(dbConn, "."); err != nil {
		log.Fatal(err)
	}

	queries := db.New(dbConn)
	service := app.NewService(queries, dbConn)
	defer service.Shutdown()
	server := transport.NewServer(service, dbConn, cfg.MaxUploadBytes, cfg.IsProd())

	log.Printf("Server starting in %s mode on http://localhost:%s\n", cfg.Env, cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, server.Router); err != nil {
		log.Fatal(err)
	}
}
