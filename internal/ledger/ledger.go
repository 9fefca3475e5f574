// Package ledger tracks identifiers that have already been uploaded to the
// knowledge base, so repeated uploads of the same library are idempotent.
package ledger

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DB is a SQLite-backed upload ledger.
type DB struct {
	db *sql.DB
}

// Open opens or creates the ledger database at the given path, creating
// the schema if needed.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	schema := `
		CREATE TABLE IF NOT EXISTS uploads (
			id_type     TEXT NOT NULL,
			identifier  TEXT NOT NULL,
			qid         TEXT,
			uploaded_at INTEGER NOT NULL,
			PRIMARY KEY (id_type, identifier)
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Seen reports whether the identifier has been uploaded before.
func (d *DB) Seen(idType, identifier string) (bool, error) {
	var n int
	err := d.db.QueryRow(
		"SELECT COUNT(*) FROM uploads WHERE id_type = ? AND identifier = ?",
		idType, identifier,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying ledger: %w", err)
	}
	return n > 0, nil
}

// Record stores an uploaded identifier. Recording the same identifier
// again updates the stored QID.
func (d *DB) Record(idType, identifier, qid string) error {
	_, err := d.db.Exec(`
		INSERT INTO uploads (id_type, identifier, qid, uploaded_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id_type, identifier) DO UPDATE SET qid = excluded.qid
	`, idType, identifier, qid, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("recording upload: %w", err)
	}
	return nil
}

// Entry is one ledger row.
type Entry struct {
	IDType     string `json:"id_type"`
	Identifier string `json:"identifier"`
	QID        string `json:"qid,omitempty"`
	UploadedAt int64  `json:"uploaded_at"`
}

// List returns ledger entries ordered by type and identifier, optionally
// filtered to one identifier type.
func (d *DB) List(idType string) ([]Entry, error) {
	query := "SELECT id_type, identifier, qid, uploaded_at FROM uploads"
	var args []any
	if idType != "" {
		query += " WHERE id_type = ?"
		args = append(args, idType)
	}
	query += " ORDER BY id_type, identifier"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var qid sql.NullString
		if err := rows.Scan(&e.IDType, &e.Identifier, &qid, &e.UploadedAt); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		e.QID = qid.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
