// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger persists the upload history in a local SQLite database,
// so repeat runs skip documents already synced and link CSVs can be
// regenerated without touching the Document Center.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/linksync/pkg/types"
)

// builder produces SQLite-flavored statements with ? placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Store manages the sync ledger database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS links (
			name TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			folder TEXT NOT NULL,
			filename TEXT NOT NULL,
			remote_id TEXT NOT NULL,
			remote_url TEXT NOT NULL,
			uploaded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_links_category ON links(category)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			folder TEXT NOT NULL,
			uploaded INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record upserts one successful upload. The document name (file stem) is
// the natural key; re-uploading a document refreshes its link.
func (s *Store) Record(ctx context.Context, folder string, rec types.LinkRecord) error {
	name := rec.Filename
	if ext := filepath.Ext(name); ext != "" {
		name = name[:len(name)-len(ext)]
	}
	uploadedAt := rec.UploadedAt
	if uploadedAt.IsZero() {
		uploadedAt = time.Now().UTC()
	}

	query, args, err := builder.
		Insert("links").
		Columns("name", "category", "folder", "filename", "remote_id", "remote_url", "uploaded_at").
		Values(name, rec.Category, folder, rec.Filename, rec.RemoteID, rec.RemoteURL, uploadedAt.Format(time.RFC3339)).
		Suffix(`ON CONFLICT(name) DO UPDATE SET
			category=excluded.category, folder=excluded.folder,
			filename=excluded.filename, remote_id=excluded.remote_id,
			remote_url=excluded.remote_url, uploaded_at=excluded.uploaded_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("recording %s: %w", name, err)
	}
	return nil
}

// Has reports whether a document name already appears in the ledger.
func (s *Store) Has(ctx context.Context, name string) (bool, error) {
	query, args, err := builder.
		Select("1").
		From("links").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("building query: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", name, err)
	}
	return true, nil
}

// Links returns recorded link rows, optionally restricted to one
// category, ordered by filename for stable CSV output.
func (s *Store) Links(ctx context.Context, category string) ([]types.LinkRecord, error) {
	q := builder.
		Select("category", "filename", "remote_id", "remote_url", "uploaded_at").
		From("links").
		OrderBy("filename")
	if category != "" {
		q = q.Where(sq.Eq{"category": category})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying links: %w", err)
	}
	defer rows.Close()

	var records []types.LinkRecord
	for rows.Next() {
		var rec types.LinkRecord
		var uploadedAt string
		if err := rows.Scan(&rec.Category, &rec.Filename, &rec.RemoteID, &rec.RemoteURL, &uploadedAt); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, uploadedAt); parseErr == nil {
			rec.UploadedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RecordRun appends one run summary line to the runs table.
func (s *Store) RecordRun(ctx context.Context, folder string, uploaded, skipped, failed int) error {
	query, args, err := builder.
		Insert("runs").
		Columns("started_at", "folder", "uploaded", "skipped", "failed").
		Values(time.Now().UTC().Format(time.RFC3339), folder, uploaded, skipped, failed).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}
