package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/tomless5599/TP2/constants"
	"github.com/tomless5599/TP2/internal/extract"
)

func sampleResults() []*extract.Result {
	garg := extract.NewResult(constants.MethodGarg)
	garg.Add("body_weight_kg", "70.2", "Poids : 70,2 kg")
	garg.Add("sitting_time_percent", "40", "Assis: 40 %")
	rsst := extract.NewResult(constants.MethodRSST)
	rsst.Add("task_duration_min", "45", "Durée totale : 45 min")
	return []*extract.Result{garg, rsst}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := NewService(nil).WriteCSV(path, sampleResults()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d csv rows, want header + 2", len(records))
	}
	wantHeader := []string{"body_weight_kg", "method", "sitting_time_percent", "task_duration_min"}
	if !reflect.DeepEqual(records[0], wantHeader) {
		t.Errorf("header = %v, want sorted union %v", records[0], wantHeader)
	}
	// garg row: weight filled, duration empty
	if records[1][0] != "70.2" || records[1][1] != constants.MethodGarg || records[1][3] != "" {
		t.Errorf("garg row = %v", records[1])
	}
}

func TestWriteCSVEmptyResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := NewService(nil).WriteCSV(path, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d rows, want header + placeholder", len(records))
	}
	if records[0][0] != "info" || records[1][0] != emptyTableInfo {
		t.Errorf("placeholder row = %v", records[1])
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := NewService(nil).WriteJSON(path, sampleResults()); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := ValidateResultsJSON(data); err != nil {
		t.Fatalf("exported payload fails its own schema: %v", err)
	}

	results, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Method != constants.MethodGarg {
		t.Errorf("method = %q", results[0].Method)
	}
	if results[0].Metrics["body_weight_kg"] != "70.2" {
		t.Errorf("metrics = %v", results[0].Metrics)
	}
	if results[0].Snippets["sitting_time_percent"] != "Assis: 40 %" {
		t.Errorf("snippets = %v", results[0].Snippets)
	}
}

func TestWriteJSONEmptyResultsValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := NewService(nil).WriteJSON(path, nil); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := ValidateResultsJSON(data); err != nil {
		t.Fatalf("placeholder payload fails schema: %v", err)
	}
	results, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("placeholder entry should be skipped, got %d results", len(results))
	}
}

func TestValidateResultsJSONRejectsBadPayload(t *testing.T) {
	bad := []byte(`[{"method": 12, "metrics": {}, "snippets": {}}]`)
	if err := ValidateResultsJSON(bad); err == nil {
		t.Fatal("numeric method should fail validation")
	}
	notArray := []byte(`{"method": "garg"}`)
	if err := ValidateResultsJSON(notArray); err == nil {
		t.Fatal("non-array payload should fail validation")
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := NewService(nil).WriteXLSX(path, sampleResults()); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	xrows, err := f.GetRows("Metrics")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(xrows) != 3 {
		t.Fatalf("got %d sheet rows, want 3", len(xrows))
	}
	if xrows[0][1] != "method" {
		t.Errorf("header row = %v", xrows[0])
	}
}
