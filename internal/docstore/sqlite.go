package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/evcraddock/realstate-api/internal/objectid"
)

// SQLiteStore is a Store that keeps JSON documents in an embedded SQLite
// database. Every collection shares the documents table.
type SQLiteStore struct {
	db *sql.DB
}

// schema creates the documents table. Statements are idempotent and run on
// every open.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		collection TEXT     NOT NULL,
		id         TEXT     NOT NULL CHECK (length(id) = 24),
		body       TEXT     NOT NULL CHECK (json_valid(body)),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (collection, id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents (collection)`,
}

// OpenSQLite opens (or creates) the database file at path, creating its
// parent directory, and prepares the documents table. Connections use WAL
// journaling and wait up to five seconds on a locked database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.prepare(ctx); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("%w (also failed to close: %v)", err, cerr)
		}
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) prepare(ctx context.Context) (err error) {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging sqlite database: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("preparing schema: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i, stmt := range schema {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("preparing schema: %w", err)
	}
	return nil
}

// Collection returns the named collection.
func (s *SQLiteStore) Collection(name string) Collection {
	return &sqliteCollection{db: s.db, name: name}
}

// Ping checks the database is usable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SQLiteStore) Close(_ context.Context) error {
	return s.db.Close()
}

type sqliteCollection struct {
	db   *sql.DB
	name string
}

func (c *sqliteCollection) InsertOne(ctx context.Context, doc interface{}) (objectid.ID, error) {
	body, err := toFields(doc)
	if err != nil {
		return objectid.Nil, fmt.Errorf("encoding %s document: %w", c.name, err)
	}
	if _, ok := body["id"]; ok {
		return objectid.Nil, fmt.Errorf("encoding %s document: id is assigned by the store", c.name)
	}

	id := objectid.New()
	body["id"] = json.RawMessage(`"` + id.Hex() + `"`)

	data, err := json.Marshal(body)
	if err != nil {
		return objectid.Nil, fmt.Errorf("encoding %s document: %w", c.name, err)
	}

	_, err = c.db.ExecContext(ctx,
		"INSERT INTO documents (collection, id, body) VALUES (?, ?, ?)",
		c.name, id.Hex(), string(data),
	)
	if err != nil {
		return objectid.Nil, fmt.Errorf("insert into %s: %w", c.name, err)
	}

	return id, nil
}

func (c *sqliteCollection) FindByID(ctx context.Context, id objectid.ID, out interface{}) error {
	var body string
	err := c.db.QueryRowContext(ctx,
		"SELECT body FROM documents WHERE collection = ? AND id = ?",
		c.name, id.Hex(),
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoDocument
	}
	if err != nil {
		return fmt.Errorf("find in %s: %w", c.name, err)
	}

	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("decoding %s document: %w", c.name, err)
	}
	return nil
}

func (c *sqliteCollection) FindByIDAndSet(ctx context.Context, id objectid.ID, fields map[string]interface{}, out interface{}) (err error) {
	if _, ok := fields["id"]; ok {
		return fmt.Errorf("update in %s: id is immutable", c.name)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update in %s: %w", c.name, err)
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
				err = fmt.Errorf("%w (also failed to roll back: %v)", err, rerr)
			}
		}
	}()

	var current string
	err = tx.QueryRowContext(ctx,
		"SELECT body FROM documents WHERE collection = ? AND id = ?",
		c.name, id.Hex(),
	).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoDocument
	}
	if err != nil {
		return fmt.Errorf("find in %s: %w", c.name, err)
	}

	body := make(map[string]json.RawMessage)
	if err = json.Unmarshal([]byte(current), &body); err != nil {
		return fmt.Errorf("decoding %s document: %w", c.name, err)
	}
	for k, v := range fields {
		raw, merr := json.Marshal(v)
		if merr != nil {
			err = fmt.Errorf("encoding field %s: %w", k, merr)
			return err
		}
		body[k] = raw
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding %s document: %w", c.name, err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE documents SET body = ?, updated_at = CURRENT_TIMESTAMP WHERE collection = ? AND id = ?",
		string(data), c.name, id.Hex(),
	)
	if err != nil {
		return fmt.Errorf("update in %s: %w", c.name, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit update in %s: %w", c.name, err)
	}

	if err = json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s document: %w", c.name, err)
	}
	return nil
}

// toFields encodes doc through its json tags into a field map.
func toFields(doc interface{}) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("document must encode as an object: %w", err)
	}
	return fields, nil
}
