// Package sqlitedb is the default storage backend, a single sqlite file.
package sqlitedb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/plugins/db"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	body TEXT NOT NULL,
	is_inspiration INTEGER NOT NULL DEFAULT 0,
	is_analyzed INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS folders (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	color TEXT,
	created_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS note_folders (
	note_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
	folder_id TEXT NOT NULL REFERENCES folders(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	PRIMARY KEY (note_id, folder_id)
);
CREATE TABLE IF NOT EXISTS chat_sessions (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS chat_messages (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	session_id TEXT NOT NULL REFERENCES chat_sessions(id) ON DELETE CASCADE,
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	thinking TEXT,
	referenced_note_ids TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS chat_messages_session ON chat_messages(session_id, seq);
`

// Store implements db.Store on top of sqlite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ db.Store = (*Store)(nil)

// New opens (creating if needed) the sqlite database at path.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "creating database directory")
		}
	}

	conn, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	// sqlite serializes writers; one connection avoids SQLITE_BUSY between our own statements.
	conn.SetMaxOpenConns(1)

	if _, err = conn.Exec(schemaSQL); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "creating tables")
	}
	return &Store{db: conn, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Ping checks the database file is still usable.
func (s *Store) Ping(ctx context.Context) error {
	return errors.Wrap(s.db.PingContext(ctx), "pinging database")
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func newID() string {
	return uuid.NewString()
}

// checkAffected turns a zero-row write into domain.ErrNotFound.
func checkAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "reading affected rows")
	}
	if n == 0 {
		return errors.Wrapf(domain.ErrNotFound, "%s %s", what, id)
	}
	return nil
}
