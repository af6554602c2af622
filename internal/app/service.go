package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"

	"puzzlefile/internal/db"
	"puzzlefile/internal/puzzle"
)

// decodeCacheSize bounds the number of decoded puzzles kept in memory.
const decodeCacheSize = 128

type Service struct {
	Queries *db.Queries

	db *sql.DB

	NatsServer *server.Server

	NC *nats.Conn

	StartTime int64

	// decoded caches decode results by content hash so re-importing the
	// same bytes skips the decoder.
	decoded *lru.Cache[string, *puzzle.Puzzle]
}

func NewService(queries *db.Queries, dbConn *sql.DB) *Service {
	cache, _ := lru.New[string, *puzzle.Puzzle](decodeCacheSize)

	s := &Service{
		Queries:   queries,
		db:        dbConn,
		StartTime: time.Now().UnixMilli(),
		decoded:   cache,
	}

	s.startNats()

	return s
}

func (s *Service) startNats() {
	opts := &server.Options{
		Port:  -1,
		NoLog: true,
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		log.Printf("Failed to create NATS server: %v", err)
		return
	}

	go ns.Start()

	if !ns.ReadyForConnections(2 * time.Second) {
		log.Printf("NATS server failed to become ready")
		return
	}

	log.Printf("NATS server ready at %s", ns.ClientURL())
	s.NatsServer = ns

	nc, err := nats.Connect(ns.ClientURL())
	if err != nil {
		log.Printf("NATS client failed to connect: %v", err)
		return
	}

	log.Printf("NATS client connected")
	s.NC = nc
}

func (s *Service) Shutdown() {
	if s.NC != nil {
		s.NC.Close()
	}

	if s.NatsServer != nil {
		s.NatsServer.Shutdown()
		s.NatsServer.WaitForShutdown()
	}
}

// BroadcastImport tells watching consumers a new puzzle landed in the
// library. The message body is the source format.
func (s *Service) BroadcastImport(puzzleID, sourceFormat string) {
	if s.NC == nil {
		log.Printf("Broadcast skipped: NATS connection is nil")
		return
	}

	subject := fmt.Sprintf("library.imports.%s", puzzleID)

	log.Printf("Publishing to NATS: %s -> %s", subject, sourceFormat)

	_ = s.NC.Publish(subject, []byte(sourceFormat))
}
