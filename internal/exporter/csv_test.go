package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVWriter_WriteReport(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	report := Report{
		Name:    "gender_summer",
		Headers: []string{"Year", "Men", "Women", "RatioMale"},
		Records: [][]string{
			{"2012", "1", "1", "0.50"},
			{"2016", "10", "0", "1.00"},
		},
	}
	require.NoError(t, w.WriteReport(report))

	data, err := os.ReadFile(filepath.Join(dir, "gender_summer.csv"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"), "BOM prefix present")

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\xEF\xBB\xBF")))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, report.Headers, rows[0])
	assert.Equal(t, report.Records[0], rows[1])
}

func TestCSVWriter_Append(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	require.NoError(t, w.WriteCSV("log.csv", WriteOptions{
		Headers: []string{"Key", "Value"},
		Records: [][]string{{"a", "1"}},
	}))
	require.NoError(t, w.WriteCSV("log.csv", WriteOptions{
		Records: [][]string{{"b", "2"}},
		Append:  true,
	}))

	data, err := os.ReadFile(filepath.Join(dir, "log.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3, "append keeps the existing header and rows")
}

func TestCSVWriter_CreatesNestedDirectories(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	require.NoError(t, w.WriteCSV(filepath.Join("nested", "deep", "out.csv"), WriteOptions{
		Headers: []string{"A"},
		Records: [][]string{{"1"}},
	}))

	_, err := os.Stat(filepath.Join(dir, "nested", "deep", "out.csv"))
	assert.NoError(t, err)
}

func TestStreamWriter(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	sw, err := w.CreateStreamWriter("stream.csv", []string{"Region", "Gold"})
	require.NoError(t, err)
	require.NoError(t, sw.WriteRecord([]string{"Alpha", "3"}))
	require.NoError(t, sw.WriteRecord([]string{"Beta", "1"}))
	require.NoError(t, sw.Close())

	data, err := os.ReadFile(filepath.Join(dir, "stream.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Region,Gold")
	assert.Contains(t, string(data), "Alpha,3")
}
