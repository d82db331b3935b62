// Package store persists flattened UDTs in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/seitarof/udt-flat/internal/parser"
)

// ErrNotFound is returned by Load for an unknown UDT name.
var ErrNotFound = errors.New("udt not found")

// Store saves and loads parsed documents.
type Store interface {
	Save(ctx context.Context, doc *parser.Document, source string) error
	Load(ctx context.Context, name string) (*parser.Document, error)
	Close() error
}

// SQLiteStore keeps one row per document and one row per element.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL,
	version TEXT NOT NULL,
	info TEXT NOT NULL,
	size INTEGER NOT NULL DEFAULT 0,
	source TEXT NOT NULL,
	parsed_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS elements (
	document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	seq INTEGER NOT NULL,
	name TEXT NOT NULL,
	datatype TEXT NOT NULL,
	comment TEXT NOT NULL,
	visible INTEGER NOT NULL,
	access INTEGER NOT NULL,
	action TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (document_id, seq)
) WITHOUT ROWID;
`

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Save replaces any stored document with the same name.
func (s *SQLiteStore) Save(ctx context.Context, doc *parser.Document, source string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM elements WHERE document_id IN (SELECT id FROM documents WHERE name = ?)`, doc.Name); err != nil {
		return fmt.Errorf("delete elements: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, doc.Name); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO documents (name, description, version, info, size, source, parsed_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		doc.Name, doc.Description, doc.Version, doc.Info, doc.Size, source, s.now().UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO elements (document_id, seq, name, datatype, comment, visible, access, action, value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, e := range doc.Elements {
		if _, err := stmt.ExecContext(ctx, id, i, e.Name, e.Datatype, e.Comment, e.Visible, e.Access, e.Action.String(), e.Value); err != nil {
			return fmt.Errorf("insert element %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Load returns the stored document with its elements in original order.
func (s *SQLiteStore) Load(ctx context.Context, name string) (*parser.Document, error) {
	var (
		id  int64
		doc parser.Document
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, version, info, size FROM documents WHERE name = ?`, name,
	).Scan(&id, &doc.Name, &doc.Description, &doc.Version, &doc.Info, &doc.Size)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("query document: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, datatype, comment, visible, access, action, value FROM elements WHERE document_id = ? ORDER BY seq`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("query elements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	doc.Elements = []parser.Element{}
	for rows.Next() {
		var (
			e      parser.Element
			action string
		)
		if err := rows.Scan(&e.Name, &e.Datatype, &e.Comment, &e.Visible, &e.Access, &action, &e.Value); err != nil {
			return nil, fmt.Errorf("scan element: %w", err)
		}
		if e.Action, err = parser.ParseAction(action); err != nil {
			return nil, err
		}
		doc.Elements = append(doc.Elements, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
