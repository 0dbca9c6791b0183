// Package table reads and writes the tabular input and output of a batch
// run. Input is loaded fully into memory; output streams one row at a time
// so partial progress survives an interruption.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoRecords is returned when the input table holds no data rows.
var ErrNoRecords = errors.New("no records found in input table")

// Record is one input row keyed by column name. Values are read once and
// never mutated.
type Record struct {
	fields map[string]string
}

// Get returns the trimmed value of the named column, or an empty string.
func (r Record) Get(column string) string {
	return strings.TrimSpace(r.fields[column])
}

// Table is a fully loaded input file.
type Table struct {
	// Header lists column names in file order.
	Header []string
	// Records holds the data rows in file order.
	Records []Record
}

// Read loads a CSV file. The first row is the header; a data row that
// duplicates the header (as exported by some spreadsheet tools) is dropped.
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input table: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read input table: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoRecords
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	table := &Table{Header: header}
	for _, row := range rows[1:] {
		if len(row) > 0 && strings.TrimSpace(row[0]) == header[0] {
			continue
		}
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				fields[name] = row[i]
			}
		}
		table.Records = append(table.Records, Record{fields: fields})
	}

	if len(table.Records) == 0 {
		return nil, ErrNoRecords
	}
	return table, nil
}

// NewRecord builds a record from explicit fields. Used by tests and by the
// pipeline when composing output rows.
func NewRecord(fields map[string]string) Record {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return Record{fields: copied}
}
