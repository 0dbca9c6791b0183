package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Writer streams output rows to a CSV file. Every row is flushed as soon as
// it is written, so rows already emitted remain durable if the process is
// killed mid-run.
type Writer struct {
	header []string
	csv    *csv.Writer
	closer io.Closer
}

// NewWriter creates the output file, writes the header row, and flushes it.
func NewWriter(path string, header []string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output table: %w", err)
	}

	w := &Writer{
		header: header,
		csv:    csv.NewWriter(f),
		closer: f,
	}
	if err := w.writeRow(header); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// Write emits one row, taking values from fields in header order. Missing
// columns become empty cells.
func (w *Writer) Write(fields map[string]string) error {
	row := make([]string, len(w.header))
	for i, name := range w.header {
		row[i] = fields[name]
	}
	return w.writeRow(row)
}

func (w *Writer) writeRow(row []string) error {
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("write output row: %w", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("flush output row: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.closer.Close()
		return fmt.Errorf("flush output table: %w", err)
	}
	return w.closer.Close()
}
