package repos

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/larokaa/projeto-acoes/queries"
)

// Store owns the single-file SQLite database holding assets and prices. One
// Store is constructed per process with an explicit path and shared by every
// request handler.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so chart reads do not block a running collection.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	return &Store{db: db}, nil
}

// Init executes the embedded schema statements. Idempotent: every statement
// is CREATE ... IF NOT EXISTS, so calling it on an initialized database is a
// no-op.
func (s *Store) Init(ctx context.Context) error {
	for _, path := range queries.SchemaStatements() {
		if _, err := s.db.ExecContext(ctx, queries.Get(path)); err != nil {
			return fmt.Errorf("exec %s: %w", path, err)
		}
	}
	log.Debug().Msg("database schema ready")
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
