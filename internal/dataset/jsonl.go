// Package dataset loads and writes JSONL problem corpora. Rows keep every
// source column as raw JSON so fields the curator does not know about
// round-trip untouched.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/mathforge/curator/internal/config"
	"github.com/mathforge/curator/internal/core/model"
)

type Row map[string]json.RawMessage

// String decodes a field as a JSON string. Missing or non-string fields
// report false.
func (r Row) String(field string) (string, bool) {
	raw, ok := r[field]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Set encodes v into the row under field.
func (r Row) Set(field string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode field %q: %w", field, err)
	}
	r[field] = raw
	return nil
}

func LoadJSONL(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset '%s': %w", path, err)
	}
	defer f.Close()

	var rows []Row
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var row Row
		if err := json.Unmarshal([]byte(text), &row); err != nil {
			return nil, fmt.Errorf("bad JSON on line %d of %s: %w", line, path, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset '%s': %w", path, err)
	}
	return rows, nil
}

func WriteJSONL(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output '%s': %w", path, err)
	}
	defer f.Close()
	return writeRows(f, rows)
}

// AppendJSONL appends rows to an existing output file, the shape batch
// checkpointing relies on.
func AppendJSONL(path string, rows []Row) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output '%s': %w", path, err)
	}
	defer f.Close()
	return writeRows(f, rows)
}

func writeRows(f *os.File, rows []Row) error {
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to encode row: %w", err)
		}
	}
	return w.Flush()
}

// BuildText concatenates the configured fields in order, space-joined, into
// the text a record is embedded on. Every field must exist and be a string.
func BuildText(row Row, fields []string) (string, error) {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		raw, ok := row[field]
		if !ok {
			return "", fmt.Errorf("row is missing field %q", field)
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("field %q is not a string", field)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " "), nil
}

// RecordID returns the row's stable identifier, minting one when the source
// has none so downstream bookkeeping always has a key.
func RecordID(row Row, idField string) string {
	if id, ok := row.String(idField); ok && id != "" {
		return id
	}
	id := uuid.New().String()
	_ = row.Set(idField, id)
	return id
}

// ToRecords derives the dedup core's input from raw rows.
func ToRecords(rows []Row, cfg config.DatasetConfig) ([]model.Record, error) {
	records := make([]model.Record, len(rows))
	for i, row := range rows {
		text, err := BuildText(row, cfg.TextFields)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		records[i] = model.Record{ID: RecordID(row, cfg.IDField), Text: text}
	}
	return records, nil
}

// ToProblemRow pulls the fields the signal detectors look at.
func ToProblemRow(row Row) model.ProblemRow {
	p := model.ProblemRow{}
	p.Problem, _ = row.String("problem")
	p.Solution, _ = row.String("solution")
	p.FinalAnswer, _ = row.String("final_answer")
	p.Source, _ = row.String("source")
	return p
}
