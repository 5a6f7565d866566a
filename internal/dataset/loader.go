package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ogacli/internal/errors"
	"ogacli/pkg/contracts/domain"
)

// athleteColumns are the required columns of the athlete-events source.
var athleteColumns = []string{
	"id", "name", "sex", "age", "height", "weight", "team",
	"noc", "games", "year", "season", "city", "sport", "event", "medal",
}

// regionColumns are the required columns of the NOC region source.
// The notes column is optional free text.
var regionColumns = []string{"noc", "region"}

// Loader reads the raw tabular sources.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadAthletes reads athlete-event records from a CSV or XLSX file.
func (l *Loader) LoadAthletes(ctx context.Context, path string) ([]domain.AthleteRecord, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	columns, err := mapColumns(path, rows[0], athleteColumns)
	if err != nil {
		return nil, err
	}

	records := make([]domain.AthleteRecord, 0, len(rows)-1)
	skipped := 0

	for i, row := range rows[1:] {
		line := i + 2 // 1-based, after header

		id, err := strconv.Atoi(strings.TrimSpace(cell(row, columns["id"])))
		if err != nil {
			l.logger.WarnContext(ctx, "skipping athlete row with malformed id",
				slog.String("file", filepath.Base(path)),
				slog.Int("line", line),
				slog.String("value", cell(row, columns["id"])))
			skipped++
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(cell(row, columns["year"])))
		if err != nil {
			l.logger.WarnContext(ctx, "skipping athlete row with malformed year",
				slog.String("file", filepath.Base(path)),
				slog.Int("line", line),
				slog.String("value", cell(row, columns["year"])))
			skipped++
			continue
		}

		records = append(records, domain.AthleteRecord{
			ID:     id,
			Name:   cell(row, columns["name"]),
			Sex:    cell(row, columns["sex"]),
			Age:    optFloat(cell(row, columns["age"])),
			Height: optFloat(cell(row, columns["height"])),
			Weight: optFloat(cell(row, columns["weight"])),
			Team:   cell(row, columns["team"]),
			NOC:    cell(row, columns["noc"]),
			Games:  cell(row, columns["games"]),
			Year:   year,
			Season: cell(row, columns["season"]),
			City:   cell(row, columns["city"]),
			Sport:  cell(row, columns["sport"]),
			Event:  cell(row, columns["event"]),
			Medal:  missingToEmpty(cell(row, columns["medal"])),
		})
	}

	l.logger.InfoContext(ctx, "loaded athlete records",
		slog.String("file", filepath.Base(path)),
		slog.Int("records", len(records)),
		slog.Int("skipped", skipped))

	return records, nil
}

// LoadRegions reads NOC region mappings from a CSV or XLSX file.
func (l *Loader) LoadRegions(ctx context.Context, path string) ([]domain.RegionMapping, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	columns, err := mapColumns(path, rows[0], regionColumns)
	if err != nil {
		return nil, err
	}

	// Notes is optional; bind it when present.
	notesIdx := -1
	for j, header := range rows[0] {
		if strings.ToLower(strings.TrimSpace(header)) == "notes" {
			notesIdx = j
			break
		}
	}

	mappings := make([]domain.RegionMapping, 0, len(rows)-1)
	for _, row := range rows[1:] {
		noc := cell(row, columns["noc"])
		if noc == "" {
			continue
		}

		mapping := domain.RegionMapping{
			NOC:    noc,
			Region: missingToEmpty(cell(row, columns["region"])),
		}
		if notesIdx >= 0 {
			mapping.Notes = cell(row, notesIdx)
		}
		mappings = append(mappings, mapping)
	}

	l.logger.InfoContext(ctx, "loaded region mappings",
		slog.String("file", filepath.Base(path)),
		slog.Int("mappings", len(mappings)))

	return mappings, nil
}

// readRows reads all rows of a tabular file, dispatching on extension.
func readRows(path string) ([][]string, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, errors.NewLoadError(fmt.Sprintf("%s contains no data rows", path), nil)
	}

	return rows, nil
}

// readCSV reads a CSV file into rows of cells.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewLoadError(fmt.Sprintf("open %s", path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged rows handled per cell

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewLoadError(fmt.Sprintf("read %s", path), err)
		}
		rows = append(rows, record)
	}

	return rows, nil
}

// readXLSX reads the first sheet of an XLSX workbook into rows of cells.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewLoadError(fmt.Sprintf("open %s", path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewLoadError(fmt.Sprintf("%s contains no sheets", path), nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewLoadError(fmt.Sprintf("read sheet %s of %s", sheets[0], path), err)
	}

	return rows, nil
}

// mapColumns maps required column names to their positions in the header
// row. Column matching is case-insensitive.
func mapColumns(path string, header []string, required []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for j, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = j
	}

	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, errors.NewLoadError(
				fmt.Sprintf("%s is missing required column %q", path, name), nil)
		}
	}

	return columns, nil
}

// cell returns the trimmed cell at idx, or empty when the row is ragged.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// optFloat parses an optionally-absent numeric cell. Blank and "NA" cells
// return nil; missingness is preserved, never imputed.
func optFloat(s string) *float64 {
	if s == "" || strings.EqualFold(s, "na") {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// missingToEmpty normalizes the source's "NA" marker to an empty string.
func missingToEmpty(s string) string {
	if strings.EqualFold(s, "na") {
		return ""
	}
	return s
}
