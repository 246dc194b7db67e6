// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/kanjiprep/pkg/types"
)

// Entry is one indexed record with the file it came from.
type Entry struct {
	Source  string         `json:"source" yaml:"source"`
	ID      string         `json:"id" yaml:"id"`
	Grade   int            `json:"grade" yaml:"grade"`
	StageID string         `json:"stageId" yaml:"stage_id"`
	Kanji   string         `json:"kanji" yaml:"kanji"`
	Onyomi  []string       `json:"onyomi" yaml:"onyomi"`
	Kunyomi []string       `json:"kunyomi" yaml:"kunyomi"`
	Meaning string         `json:"meaning,omitempty" yaml:"meaning,omitempty"`
	Example *types.Example `json:"example,omitempty" yaml:"example,omitempty"`
}

const entryColumns = `source, id, grade, stage_id, kanji, onyomi, kunyomi,
	meaning, example_word, example_reading, example_sentence`

// Lookup returns every indexed record for kanji, ordered by grade then source.
func (s *Store) Lookup(ctx context.Context, kanji string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM records WHERE kanji = ? ORDER BY grade, source, position`, kanji)
	if err != nil {
		return nil, fmt.Errorf("querying kanji: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Search returns records whose meaning or example sentence contains text.
func (s *Store) Search(ctx context.Context, text string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + escapeLike(text) + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM records
		 WHERE meaning LIKE ? ESCAPE '\' OR example_sentence LIKE ? ESCAPE '\'
		 ORDER BY grade, source, position LIMIT ?`,
		pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching records: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Duplicate is a kanji indexed under more than one grade.
type Duplicate struct {
	Kanji  string `json:"kanji" yaml:"kanji"`
	Grades []int  `json:"grades" yaml:"grades"`
}

// Duplicates returns the kanji that appear in more than one grade.
func (s *Store) Duplicates(ctx context.Context) ([]Duplicate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kanji, GROUP_CONCAT(DISTINCT grade) FROM records
		 GROUP BY kanji HAVING COUNT(DISTINCT grade) > 1
		 ORDER BY MIN(grade), kanji`)
	if err != nil {
		return nil, fmt.Errorf("querying duplicates: %w", err)
	}
	defer rows.Close()

	var dups []Duplicate
	for rows.Next() {
		var (
			d      Duplicate
			grades string
		)
		if err := rows.Scan(&d.Kanji, &grades); err != nil {
			return nil, fmt.Errorf("scanning duplicate: %w", err)
		}
		for _, g := range strings.Split(grades, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(g))
			if err != nil {
				return nil, fmt.Errorf("parsing grade %q: %w", g, err)
			}
			d.Grades = append(d.Grades, n)
		}
		sort.Ints(d.Grades)
		dups = append(dups, d)
	}
	return dups, rows.Err()
}

// GradeCount is the number of distinct kanji indexed for a grade.
type GradeCount struct {
	Grade int `json:"grade" yaml:"grade"`
	Kanji int `json:"kanji" yaml:"kanji"`
}

// GradeCounts returns the distinct kanji count per grade.
func (s *Store) GradeCounts(ctx context.Context) ([]GradeCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT grade, COUNT(DISTINCT kanji) FROM records GROUP BY grade ORDER BY grade`)
	if err != nil {
		return nil, fmt.Errorf("querying grade counts: %w", err)
	}
	defer rows.Close()

	var counts []GradeCount
	for rows.Next() {
		var c GradeCount
		if err := rows.Scan(&c.Grade, &c.Kanji); err != nil {
			return nil, fmt.Errorf("scanning grade count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var (
			e                       Entry
			stageID, meaning        sql.NullString
			onyomiJSON, kunyomiJSON sql.NullString
			word, reading, sentence sql.NullString
		)
		if err := rows.Scan(&e.Source, &e.ID, &e.Grade, &stageID, &e.Kanji,
			&onyomiJSON, &kunyomiJSON, &meaning, &word, &reading, &sentence); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		e.StageID = stageID.String
		e.Meaning = meaning.String
		if onyomiJSON.Valid {
			if err := json.Unmarshal([]byte(onyomiJSON.String), &e.Onyomi); err != nil {
				return nil, fmt.Errorf("decoding onyomi of %s: %w", e.ID, err)
			}
		}
		if kunyomiJSON.Valid {
			if err := json.Unmarshal([]byte(kunyomiJSON.String), &e.Kunyomi); err != nil {
				return nil, fmt.Errorf("decoding kunyomi of %s: %w", e.ID, err)
			}
		}
		if word.String != "" || sentence.String != "" {
			e.Example = &types.Example{Word: word.String, Reading: reading.String, Sentence: sentence.String}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
