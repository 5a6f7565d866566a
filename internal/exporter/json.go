package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// JSONWriter writes reports as JSON documents with a metadata envelope.
type JSONWriter struct {
	outDir string
	logger *slog.Logger
	now    func() time.Time
}

// NewJSONWriter creates a JSON writer rooted at outDir.
func NewJSONWriter(outDir string, logger *slog.Logger) *JSONWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONWriter{outDir: outDir, logger: logger, now: time.Now}
}

type jsonEnvelope struct {
	Report      string     `json:"report"`
	Format      string     `json:"format"`
	GeneratedAt time.Time  `json:"generated_at"`
	Count       int        `json:"count"`
	Headers     []string   `json:"headers"`
	Records     [][]string `json:"records"`
}

// WriteReport writes one report as <name>.json.
func (w *JSONWriter) WriteReport(report Report) error {
	fullPath := filepath.Join(w.outDir, report.Name+".json")

	w.logger.Info("writing JSON report",
		slog.String("path", fullPath),
		slog.Int("records", len(report.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	envelope := jsonEnvelope{
		Report:      report.Name,
		Format:      "json",
		GeneratedAt: w.now().UTC(),
		Count:       len(report.Records),
		Headers:     report.Headers,
		Records:     report.Records,
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report %s: %w", report.Name, err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}
	return nil
}

// WriteValue writes an arbitrary analytics result as <name>.json with
// the same metadata envelope, preserving its native JSON shape.
func (w *JSONWriter) WriteValue(name string, count int, value any) error {
	fullPath := filepath.Join(w.outDir, name+".json")

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	envelope := struct {
		Report      string    `json:"report"`
		Format      string    `json:"format"`
		GeneratedAt time.Time `json:"generated_at"`
		Count       int       `json:"count"`
		Data        any       `json:"data"`
	}{
		Report:      name,
		Format:      "json",
		GeneratedAt: w.now().UTC(),
		Count:       count,
		Data:        value,
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report %s: %w", name, err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}
	return nil
}
