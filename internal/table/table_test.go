package table_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonesrussell/archivecheck/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestReadParsesHeaderAndRecords(t *testing.T) {
	path := writeTempCSV(t, "Name,URL\nAcme,http://acme.example\nBeta,www.beta.example\n")

	tbl, err := table.Read(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "URL"}, tbl.Header)
	require.Len(t, tbl.Records, 2)
	assert.Equal(t, "Acme", tbl.Records[0].Get("Name"))
	assert.Equal(t, "www.beta.example", tbl.Records[1].Get("URL"))
}

func TestReadDropsDuplicatedHeaderRow(t *testing.T) {
	path := writeTempCSV(t, "Name,URL\nName,URL\nAcme,http://acme.example\n")

	tbl, err := table.Read(path)

	require.NoError(t, err)
	require.Len(t, tbl.Records, 1)
	assert.Equal(t, "Acme", tbl.Records[0].Get("Name"))
}

func TestReadTrimsValuesOnGet(t *testing.T) {
	path := writeTempCSV(t, "URL\n  http://example.com  \n")

	tbl, err := table.Read(path)

	require.NoError(t, err)
	assert.Equal(t, "http://example.com", tbl.Records[0].Get("URL"))
}

func TestReadMissingColumnIsEmpty(t *testing.T) {
	path := writeTempCSV(t, "A,B\nonly-a\n")

	tbl, err := table.Read(path)

	require.NoError(t, err)
	assert.Equal(t, "only-a", tbl.Records[0].Get("A"))
	assert.Empty(t, tbl.Records[0].Get("B"))
}

func TestReadEmptyTable(t *testing.T) {
	path := writeTempCSV(t, "Name,URL\n")

	_, err := table.Read(path)

	assert.ErrorIs(t, err, table.ErrNoRecords)
}

func TestReadMissingFile(t *testing.T) {
	_, err := table.Read(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestWriterStreamsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	w, err := table.NewWriter(path, []string{"URL", "Status_Code"})
	require.NoError(t, err)

	require.NoError(t, w.Write(map[string]string{"URL": "http://example.com", "Status_Code": "200"}))

	// The row must already be on disk before Close: rows are flushed per
	// write so an interrupted run keeps its output.
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "URL,Status_Code\nhttp://example.com,200\n", string(onDisk))

	require.NoError(t, w.Write(map[string]string{"URL": "www.beta.example"}))
	require.NoError(t, w.Close())

	onDisk, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "URL,Status_Code\nhttp://example.com,200\nwww.beta.example,\n", string(onDisk))
}
