// Package exporter writes analysis reports to disk.
//
// A Report is a named header-and-records table built from analytics
// results by report.go. Three writers consume reports:
//
//   - CSVWriter: one CSV file per report, optional UTF-8 BOM for Excel,
//     plus a streaming variant for row-at-a-time output
//   - JSONWriter: one JSON document per report with a metadata envelope
//     (generation time, row count, format tag)
//   - XLSXWriter: one workbook with a sheet per report
//
// All writers create the output directory on demand and overwrite
// existing files.
package exporter
