// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index keeps a SQLite index of the kanji datasets so records can be
// looked up across grades and cross-grade duplicates found.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/kanjiprep/internal/dataset"
	"github.com/pdiddy/kanjiprep/pkg/types"
)

// Store manages the dataset index database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the index database at cfg.DBPath and creates
// the schema if it does not exist.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	if err := types.Validate(&cfg); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sources (
			path TEXT PRIMARY KEY,
			file_mod_time TEXT NOT NULL,
			records INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			source TEXT NOT NULL REFERENCES sources(path) ON DELETE CASCADE,
			id TEXT NOT NULL,
			position INTEGER NOT NULL,
			grade INTEGER NOT NULL,
			stage_id TEXT,
			kanji TEXT NOT NULL,
			onyomi TEXT,
			kunyomi TEXT,
			meaning TEXT,
			example_word TEXT,
			example_reading TEXT,
			example_sentence TEXT,
			PRIMARY KEY (source, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_kanji ON records(kanji)`,
		`CREATE INDEX IF NOT EXISTS idx_records_grade ON records(grade)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from an index build.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
	Records int
}

// Total returns the number of files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest loads each dataset file and replaces the rows previously indexed
// from it. Files whose modification time is unchanged since the last build
// are skipped. A file that cannot be read or parsed is counted as failed and
// the remaining files are still processed.
func (s *Store) Ingest(ctx context.Context, paths []string, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", path, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM sources WHERE path = ?`, path,
		).Scan(&storedModTime)
		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped  %s\n", path)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		records, err := dataset.LoadRecords(path)
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", path, err)
			summary.Failed++
			continue
		}

		if err := s.ingestFile(ctx, path, modTime, records); err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", path, err)
			summary.Failed++
			continue
		}
		summary.Records += len(records)

		if isUpdate {
			fmt.Fprintf(w, "updated  %s (%d records)\n", path, len(records))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed  %s (%d records)\n", path, len(records))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

func (s *Store) ingestFile(ctx context.Context, path, modTime string, records []types.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE source = ?`, path); err != nil {
		return fmt.Errorf("deleting old records: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO sources (path, file_mod_time, records) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET file_mod_time=excluded.file_mod_time, records=excluded.records`,
		path, modTime, len(records),
	)
	if err != nil {
		return fmt.Errorf("updating source: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO records (source, id, position, grade, stage_id, kanji, onyomi, kunyomi,
			meaning, example_word, example_reading, example_sentence)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		onyomiJSON, _ := json.Marshal([]string(r.Onyomi))
		kunyomiJSON, _ := json.Marshal([]string(r.Kunyomi))
		ex, _ := r.FirstExample()
		_, err := stmt.ExecContext(ctx,
			path, r.ID, i, r.Grade, r.StageID, r.Kanji,
			string(onyomiJSON), string(kunyomiJSON), r.MeaningText(),
			ex.Word, ex.Reading, ex.Sentence,
		)
		if err != nil {
			return fmt.Errorf("inserting record %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}
