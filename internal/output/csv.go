/*
PURPOSE:
  Writes measured samples to a CSV file.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Output to CSV.

  Implementation-discovered:
  - A halted run must still leave every completed size on disk, so each row
    is flushed as soon as it is written.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (through SinkObserver)
  - Consumes: internal/model.Record

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write.

USAGE:
  w, err := output.NewCSVWriter("samples.csv")
  w.Write(record)
  w.Close()

MAINTENANCE:
  - Update Write() mapping when Record changes.
*/

package output

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/daryltucker/complexity-runner/internal/model"
)

var csvHeader = []string{"run_id", "algorithm", "order", "size", "duration_ns", "timestamp"}

// CSVWriter handles writing records to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
	}, nil
}

// Write writes a single record to the CSV file.
func (cw *CSVWriter) Write(r model.Record) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{
		r.RunID.String(),
		r.Algorithm,
		r.Order,
		strconv.Itoa(r.Size),
		strconv.FormatInt(r.DurationNanos, 10),
		r.Timestamp.Format(time.RFC3339Nano),
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}
