package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists the journal in a SQLite database. Use ":memory:"
// as the path for an ephemeral store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and migrates) a journal database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		type TEXT NOT NULL,
		payload TEXT NOT NULL,
		at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_type ON entries(type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append stores an entry and assigns its sequence number.
func (s *SQLiteStore) Append(ctx context.Context, e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (id, type, payload, at) VALUES (?, ?, ?, ?)`,
		e.ID, e.Type, string(e.Payload), e.At.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("entry sequence: %w", err)
	}
	e.Seq = seq
	return nil
}

// Read returns all entries with Seq >= fromSeq in order.
func (s *SQLiteStore) Read(ctx context.Context, fromSeq int64) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, id, type, payload, at FROM entries WHERE seq >= ? ORDER BY seq`,
		fromSeq)
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	defer rows.Close()

	var out []*Entry
	for rows.Next() {
		var (
			e       Entry
			payload string
			at      string
		)
		if err := rows.Scan(&e.Seq, &e.ID, &e.Type, &payload, &at); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Payload = []byte(payload)
		if ts, err := time.Parse(time.RFC3339Nano, at); err == nil {
			e.At = ts
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
