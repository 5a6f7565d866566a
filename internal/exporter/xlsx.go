package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// XLSXWriter writes a set of reports into one workbook, a sheet per
// report.
type XLSXWriter struct {
	outDir string
	logger *slog.Logger
}

// NewXLSXWriter creates an XLSX writer rooted at outDir.
func NewXLSXWriter(outDir string, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{outDir: outDir, logger: logger}
}

// WriteWorkbook writes reports into <name>.xlsx. Sheet names follow
// report names, truncated to the 31-character sheet name limit.
func (w *XLSXWriter) WriteWorkbook(name string, reports []Report) error {
	fullPath := filepath.Join(w.outDir, name+".xlsx")

	w.logger.Info("writing XLSX workbook",
		slog.String("path", fullPath),
		slog.Int("sheets", len(reports)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, report := range reports {
		sheet := sheetName(report.Name)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("rename sheet %s: %w", sheet, err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("create sheet %s: %w", sheet, err)
			}
		}

		header := make([]interface{}, len(report.Headers))
		for c, h := range report.Headers {
			header[c] = h
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("write headers on %s: %w", sheet, err)
		}
		for r, record := range report.Records {
			row := make([]interface{}, len(record))
			for c, v := range record {
				row[c] = v
			}
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return fmt.Errorf("address row %d on %s: %w", r+2, sheet, err)
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("write row %d on %s: %w", r+2, sheet, err)
			}
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
