/*
PURPOSE:
  Writes measured samples to a JSON Lines file (NDJSON).

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder.
  - One record per line, append-friendly.

USAGE:
  w, err := output.NewJSONWriter("samples.jsonl")
  w.Write(record)
  w.Close()
*/

package output

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/daryltucker/complexity-runner/internal/model"
)

// JSONWriter handles writing records to a JSON Lines file.
type JSONWriter struct {
	file    *os.File
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONWriter creates a new JSONWriter.
func NewJSONWriter(path string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &JSONWriter{
		file:    f,
		encoder: json.NewEncoder(f),
	}, nil
}

// Write writes a single record as a JSON line.
func (jw *JSONWriter) Write(r model.Record) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.encoder.Encode(r)
}

// WriteResult appends the run summary as one JSON line.
func (jw *JSONWriter) WriteResult(r *model.RunResult) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.encoder.Encode(struct {
		Kind string `json:"kind"`
		*model.RunResult
	}{Kind: "run", RunResult: r})
}

// Close closes the underlying file.
func (jw *JSONWriter) Close() error {
	return jw.file.Close()
}
