// Package history records which notebook type was used to open each
// resource, so past decisions can be inspected and favored.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one remembered open.
type Entry struct {
	URI          string
	NotebookType string
	OpenCount    int
	FirstOpened  time.Time
	LastOpened   time.Time
}

// Store persists open history in a sqlite database under the data dir.
type Store struct {
	db *sql.DB
}

// NewStore opens (and if needed creates) the history database.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		return nil, fmt.Errorf("initialize history: %w", err)
	}

	return s, nil
}

// init creates the database schema
func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS opens (
		uri TEXT PRIMARY KEY,
		notebook_type TEXT NOT NULL,
		open_count INTEGER NOT NULL DEFAULT 1,
		first_opened TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		last_opened TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_opens_type ON opens(notebook_type);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record notes that uri was opened with the given notebook type. Repeat
// opens bump the count and timestamp; a different type resets the entry.
func (s *Store) Record(uri, notebookType string) error {
	now := time.Now()
	query := `
	INSERT INTO opens (uri, notebook_type, open_count, first_opened, last_opened)
	VALUES (?, ?, 1, ?, ?)
	ON CONFLICT(uri) DO UPDATE SET
		open_count = CASE WHEN opens.notebook_type = excluded.notebook_type THEN opens.open_count + 1 ELSE 1 END,
		first_opened = CASE WHEN opens.notebook_type = excluded.notebook_type THEN opens.first_opened ELSE excluded.first_opened END,
		notebook_type = excluded.notebook_type,
		last_opened = excluded.last_opened
	`
	_, err := s.db.Exec(query, uri, notebookType, now, now)
	return err
}

// Get retrieves the entry for a resource.
func (s *Store) Get(uri string) (*Entry, error) {
	query := `
	SELECT uri, notebook_type, open_count, first_opened, last_opened
	FROM opens WHERE uri = ?
	`

	e := &Entry{}
	err := s.db.QueryRow(query, uri).Scan(
		&e.URI, &e.NotebookType, &e.OpenCount, &e.FirstOpened, &e.LastOpened,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no history for: %s", uri)
	}
	if err != nil {
		return nil, err
	}

	return e, nil
}

// List returns all entries, most recently opened first.
func (s *Store) List() ([]*Entry, error) {
	query := `
	SELECT uri, notebook_type, open_count, first_opened, last_opened
	FROM opens ORDER BY last_opened DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.URI, &e.NotebookType, &e.OpenCount, &e.FirstOpened, &e.LastOpened); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Remove deletes the entry for a resource.
func (s *Store) Remove(uri string) error {
	_, err := s.db.Exec("DELETE FROM opens WHERE uri = ?", uri)
	return err
}

// Close closes the history database.
func (s *Store) Close() error {
	return s.db.Close()
}
