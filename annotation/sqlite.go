package annotation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS utterances (
	id       INTEGER PRIMARY KEY,
	document TEXT NOT NULL
)`

// SQLiteCorpus stores one YAML document per utterance in a single database file.
type SQLiteCorpus struct {
	db *sql.DB
}

// OpenSQLite opens an existing corpus database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteCorpus, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	return openSQLite(ctx, path)
}

// CreateSQLite opens the database at path, creating it if missing.
func CreateSQLite(ctx context.Context, path string) (*SQLiteCorpus, error) {
	return openSQLite(ctx, path)
}

func openSQLite(ctx context.Context, path string) (*SQLiteCorpus, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	return &SQLiteCorpus{db: db}, nil
}

func (c *SQLiteCorpus) IDs(ctx context.Context) ([]int, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id FROM utterances ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (c *SQLiteCorpus) Utterance(ctx context.Context, id int) (Utterance, error) {
	var doc string
	err := c.db.QueryRowContext(ctx, `SELECT document FROM utterances WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrUtteranceMissing, id)
	}
	if err != nil {
		return nil, err
	}
	d, err := Decode(strings.NewReader(doc), FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("utterance %d: %w", id, err)
	}
	d.UttID = id
	return d, nil
}

// Put inserts or replaces the utterance d.UttID.
func (c *SQLiteCorpus) Put(ctx context.Context, d *Document) error {
	doc, err := marshalYAML(d)
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO utterances (id, document) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET document = excluded.document`, d.UttID, doc)
	return err
}

func (c *SQLiteCorpus) Close() error { return c.db.Close() }
