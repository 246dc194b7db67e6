// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures of the kanjiprep pipeline:
// the kanji flashcard Record, example-table rows, stage definitions, stage
// configuration and sentinel errors.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// JSON keys of the fields Record interprets. Any other key is kept in Extra.
const (
	KeyID              = "id"
	KeyStageID         = "stageId"
	KeyGrade           = "grade"
	KeyKanji           = "kanji"
	KeyOnyomi          = "onyomi"
	KeyKunyomi         = "kunyomi"
	KeyMeaning         = "meaning"
	KeyExamples        = "examples"
	KeyExampleSentence = "exampleSentence"
	KeyCorrectCount    = "correctCount"
	KeyIncorrectCount  = "incorrectCount"
	KeyAccuracy        = "accuracy"
)

var knownKeys = []string{
	KeyID, KeyStageID, KeyGrade, KeyKanji, KeyOnyomi, KeyKunyomi,
	KeyMeaning, KeyExamples, KeyExampleSentence,
	KeyCorrectCount, KeyIncorrectCount, KeyAccuracy,
}

// Example is one usage example attached to a kanji by the merge stage.
type Example struct {
	// Word is the headword the example illustrates (the kanji itself after merge).
	Word string `json:"word" yaml:"word"`

	// Reading is the kana reading of Word.
	Reading string `json:"reading" yaml:"reading"`

	// Sentence is the example sentence text.
	Sentence string `json:"sentence" yaml:"sentence"`
}

// Record is one kanji flashcard entry as stored in kanji_g{N}_*.json files.
//
// A record remembers the raw JSON of every key it was decoded from. On
// encode, a key whose typed value is unchanged is written back as it was read
// (explicit nulls and number formatting included), a changed key is written
// from its typed value, and a key that was never present is written only when
// a transform gave it a non-zero value. Keys Record does not interpret are
// carried through Extra unchanged.
type Record struct {
	// ID has the form <prefix>-<NNN>, e.g. "g2-001".
	ID string `validate:"required"`

	// StageID is the opaque batch/region label (e.g. "tohoku_area1").
	StageID string

	// Grade is the school year (1-6) the kanji is taught in.
	Grade int `validate:"min=1,max=6"`

	// Kanji is the single character this record describes; the join key.
	Kanji string `validate:"required"`

	Onyomi  Readings
	Kunyomi Readings

	Meaning         *string
	Examples        []Example
	ExampleSentence *string

	// Practice statistics, stamped at generation time. Accuracy is nil until
	// the learner has answered at least once.
	CorrectCount   *int
	IncorrectCount *int
	Accuracy       *float64

	// Extra holds every key not listed above, verbatim.
	Extra map[string]json.RawMessage

	// raw holds the decoded bytes of each known key that was present.
	raw map[string]json.RawMessage
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	c := r
	if r.Onyomi != nil {
		c.Onyomi = append(Readings{}, r.Onyomi...)
	}
	if r.Kunyomi != nil {
		c.Kunyomi = append(Readings{}, r.Kunyomi...)
	}
	c.Meaning = clonePtr(r.Meaning)
	if r.Examples != nil {
		c.Examples = append([]Example{}, r.Examples...)
	}
	c.ExampleSentence = clonePtr(r.ExampleSentence)
	c.CorrectCount = clonePtr(r.CorrectCount)
	c.IncorrectCount = clonePtr(r.IncorrectCount)
	c.Accuracy = clonePtr(r.Accuracy)
	c.Extra = cloneRawMap(r.Extra)
	c.raw = cloneRawMap(r.raw)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneRawMap(m map[string]json.RawMessage) map[string]json.RawMessage {
	if m == nil {
		return nil
	}
	c := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		c[k] = append(json.RawMessage(nil), v...)
	}
	return c
}

// Has reports whether key is present: decoded from the file or given a
// non-zero value since.
func (r Record) Has(key string) bool {
	if _, ok := r.raw[key]; ok {
		return true
	}
	if _, ok := r.Extra[key]; ok {
		return true
	}
	for _, f := range r.fields() {
		if f.key == key {
			return f.set
		}
	}
	return false
}

// MeaningText returns the meaning or "" when absent.
func (r Record) MeaningText() string {
	if r.Meaning == nil {
		return ""
	}
	return *r.Meaning
}

// ExampleSentenceText returns the legacy example sentence or "" when absent.
func (r Record) ExampleSentenceText() string {
	if r.ExampleSentence == nil {
		return ""
	}
	return *r.ExampleSentence
}

// FirstExample returns the first attached example, if any.
func (r Record) FirstExample() (Example, bool) {
	if len(r.Examples) == 0 {
		return Example{}, false
	}
	return r.Examples[0], true
}

// ResetStats sets both counters to zero and accuracy to an explicit null.
func (r *Record) ResetStats() {
	r.CorrectCount = new(int)
	r.IncorrectCount = new(int)
	r.Accuracy = nil
	if r.raw == nil {
		r.raw = make(map[string]json.RawMessage)
	}
	r.raw[KeyAccuracy] = json.RawMessage("null")
}

// NormalizeReadings marks readings decoded from a legacy space-separated
// string so they are written back as arrays. It reports whether any were.
func (r *Record) NormalizeReadings() bool {
	changed := false
	for _, k := range []string{KeyOnyomi, KeyKunyomi} {
		if t := bytes.TrimSpace(r.raw[k]); len(t) > 0 && t[0] == '"' {
			delete(r.raw, k)
			changed = true
		}
	}
	return changed
}

// DeleteKey removes a top-level key, known or extra. It reports whether the
// key was present. Required keys (id, stageId, grade, kanji, readings)
// cannot be deleted.
func (r *Record) DeleteKey(key string) (bool, error) {
	switch key {
	case KeyID, KeyStageID, KeyGrade, KeyKanji, KeyOnyomi, KeyKunyomi:
		return false, fmt.Errorf("key %q is required and cannot be removed", key)
	case KeyMeaning, KeyExamples, KeyExampleSentence, KeyCorrectCount, KeyIncorrectCount, KeyAccuracy:
		had := r.Has(key)
		switch key {
		case KeyMeaning:
			r.Meaning = nil
		case KeyExamples:
			r.Examples = nil
		case KeyExampleSentence:
			r.ExampleSentence = nil
		case KeyCorrectCount:
			r.CorrectCount = nil
		case KeyIncorrectCount:
			r.IncorrectCount = nil
		case KeyAccuracy:
			r.Accuracy = nil
		}
		delete(r.raw, key)
		return had, nil
	}
	if _, ok := r.Extra[key]; !ok {
		return false, nil
	}
	delete(r.Extra, key)
	if len(r.Extra) == 0 {
		r.Extra = nil
	}
	return true, nil
}

type jsonField struct {
	key string
	val any
	// set reports a non-zero value, written even when the key was absent.
	set bool
}

func (r Record) fields() []jsonField {
	return []jsonField{
		{KeyID, r.ID, r.ID != ""},
		{KeyStageID, r.StageID, r.StageID != ""},
		{KeyGrade, r.Grade, r.Grade != 0},
		{KeyKanji, r.Kanji, r.Kanji != ""},
		{KeyOnyomi, r.Onyomi, r.Onyomi != nil},
		{KeyKunyomi, r.Kunyomi, r.Kunyomi != nil},
		{KeyMeaning, r.Meaning, r.Meaning != nil},
		{KeyExamples, r.Examples, r.Examples != nil},
		{KeyExampleSentence, r.ExampleSentence, r.ExampleSentence != nil},
		{KeyCorrectCount, r.CorrectCount, r.CorrectCount != nil},
		{KeyIncorrectCount, r.IncorrectCount, r.IncorrectCount != nil},
		{KeyAccuracy, r.Accuracy, r.Accuracy != nil},
	}
}

// recordWire mirrors the on-disk layout for decoding.
type recordWire struct {
	ID              string    `json:"id"`
	StageID         string    `json:"stageId"`
	Grade           int       `json:"grade"`
	Kanji           string    `json:"kanji"`
	Onyomi          Readings  `json:"onyomi"`
	Kunyomi         Readings  `json:"kunyomi"`
	Meaning         *string   `json:"meaning"`
	Examples        []Example `json:"examples"`
	ExampleSentence *string   `json:"exampleSentence"`
	CorrectCount    *int      `json:"correctCount"`
	IncorrectCount  *int      `json:"incorrectCount"`
	Accuracy        *float64  `json:"accuracy"`
}

// UnmarshalJSON decodes a record, keeping unknown keys in Extra and the raw
// bytes of known keys for a faithful re-encode.
func (r *Record) UnmarshalJSON(data []byte) error {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	var w recordWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*r = Record{
		ID:              w.ID,
		StageID:         w.StageID,
		Grade:           w.Grade,
		Kanji:           w.Kanji,
		Onyomi:          w.Onyomi,
		Kunyomi:         w.Kunyomi,
		Meaning:         w.Meaning,
		Examples:        w.Examples,
		ExampleSentence: w.ExampleSentence,
		CorrectCount:    w.CorrectCount,
		IncorrectCount:  w.IncorrectCount,
		Accuracy:        w.Accuracy,
	}
	for _, k := range knownKeys {
		v, ok := all[k]
		if !ok {
			continue
		}
		if r.raw == nil {
			r.raw = make(map[string]json.RawMessage)
		}
		r.raw[k] = v
		delete(all, k)
	}
	if len(all) > 0 {
		r.Extra = all
	}
	return nil
}

// MarshalJSON encodes the known keys in a fixed order followed by the extra
// keys sorted by name. Non-ASCII text and <, >, & are written literally.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	n := 0
	put := func(key string, val []byte) error {
		if n > 0 {
			buf.WriteByte(',')
		}
		n++
		kb, err := marshalLiteral(key)
		if err != nil {
			return err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	}

	for _, f := range r.fields() {
		orig, had := r.raw[f.key]
		if !had && !f.set {
			continue
		}
		vb, err := marshalLiteral(f.val)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f.key, err)
		}
		if had && reusable(orig, f.val, vb) {
			vb = orig
		}
		if err := put(f.key, vb); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := put(k, r.Extra[k]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// reusable reports whether orig still encodes the current value of a key,
// i.e. decoding orig into the field's type and re-encoding it gives cur.
func reusable(orig json.RawMessage, val any, cur []byte) bool {
	decoded := reflect.New(reflect.TypeOf(val))
	if err := json.Unmarshal(orig, decoded.Interface()); err != nil {
		return false
	}
	again, err := marshalLiteral(decoded.Elem().Interface())
	if err != nil {
		return false
	}
	return bytes.Equal(again, cur)
}

// Readings is an ordered list of onyomi or kunyomi readings.
//
// Older dataset files store readings as one space-separated string; those
// decode into the same list. A Readings value always encodes as a JSON array.
type Readings []string

// UnmarshalJSON accepts either a JSON array of strings or a single
// whitespace-separated string.
func (r *Readings) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if isNull(trimmed) {
		*r = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*r = Readings(strings.Fields(s))
		return nil
	}
	var list []string
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return err
	}
	*r = list
	return nil
}

// MarshalJSON encodes nil as an empty array.
func (r Readings) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return marshalLiteral([]string(r))
}

// Join concatenates the readings with sep; an empty list yields "".
func (r Readings) Join(sep string) string {
	return strings.Join(r, sep)
}

func isNull(b []byte) bool {
	return bytes.Equal(bytes.TrimSpace(b), []byte("null"))
}

// marshalLiteral is json.Marshal without HTML escaping.
func marshalLiteral(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
