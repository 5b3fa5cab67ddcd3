// Package export serializes extraction results to CSV, JSON and XLSX files.
// The JSON layout is the interchange format: it carries snippets alongside
// metrics and can be read back (schema-validated) for merging.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tomless5599/TP2/internal/extract"
)

// NoDataMessage is the user-facing note attached when a document yields no
// metric at all. Reports are French, so the message is too.
const NoDataMessage = "Aucune donnée pertinente n'a été détectée"

const emptyTableInfo = "Aucune donnée trouvée"

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// rows flattens results for tabular output. Column set is the sorted union
// of all row keys so files from different documents stay comparable.
func rows(results []*extract.Result) (fieldnames []string, out []map[string]string) {
	for _, r := range results {
		out = append(out, r.ToRow())
	}
	if len(out) == 0 {
		out = append(out, map[string]string{"method": "", "info": emptyTableInfo})
	}
	seen := map[string]struct{}{}
	for _, row := range out {
		for key := range row {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				fieldnames = append(fieldnames, key)
			}
		}
	}
	sort.Strings(fieldnames)
	return fieldnames, out
}

func (s *Service) WriteCSV(path string, results []*extract.Result) error {
	fieldnames, tableRows := rows(results)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(fieldnames); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range tableRows {
		record := make([]string, len(fieldnames))
		for i, name := range fieldnames {
			record[i] = row[name]
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	s.logger.Info("export.csv.ok", "path", path, "rows", len(tableRows))
	return nil
}

type resultPayload struct {
	Method   *string           `json:"method"`
	Metrics  map[string]string `json:"metrics"`
	Snippets map[string]string `json:"snippets"`
	Message  string            `json:"message,omitempty"`
}

func payload(results []*extract.Result) []resultPayload {
	out := make([]resultPayload, 0, len(results))
	for _, r := range results {
		method := r.Method
		out = append(out, resultPayload{
			Method:   &method,
			Metrics:  r.Metrics,
			Snippets: r.Snippets,
		})
	}
	if len(out) == 0 {
		out = append(out, resultPayload{
			Metrics:  map[string]string{},
			Snippets: map[string]string{},
			Message:  NoDataMessage,
		})
	}
	return out
}

func (s *Service) WriteJSON(path string, results []*extract.Result) error {
	data, err := json.MarshalIndent(payload(results), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	s.logger.Info("export.json.ok", "path", path, "results", len(results))
	return nil
}

// ReadJSON loads a previously exported JSON file, validates it against the
// payload schema and rebuilds results. Placeholder entries are skipped.
// Metric insertion order is not stored in the payload, so names come back
// sorted.
func ReadJSON(path string) ([]*extract.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := ValidateResultsJSON(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var entries []resultPayload
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	var results []*extract.Result
	for _, entry := range entries {
		if entry.Method == nil || *entry.Method == "" || len(entry.Metrics) == 0 {
			continue
		}
		r := extract.NewResult(*entry.Method)
		names := make([]string, 0, len(entry.Metrics))
		for name := range entry.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			r.Add(name, entry.Metrics[name], entry.Snippets[name])
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *Service) WriteXLSX(path string, results []*extract.Result) error {
	start := time.Now()
	fieldnames, tableRows := rows(results)

	f := excelize.NewFile()
	const sheet = "Metrics"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for i, name := range fieldnames {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, name)
	}
	for rowIdx, row := range tableRows {
		for colIdx, name := range fieldnames {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, row[name])
		}
	}

	// widen the method column, metric columns stay compact
	for i, name := range fieldnames {
		if name == "method" {
			if col, err := excelize.ColumnNumberToName(i + 1); err == nil {
				_ = f.SetColWidth(sheet, col, col, 24)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	s.logger.Info("export.xlsx.ok",
		"path", path,
		"rows", len(tableRows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
