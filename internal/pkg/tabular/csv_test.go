package tabular

import (
	"encoding/csv"
	"strings"
	"testing"
)

var csvColumns = []Column{
	{Key: "nis", Header: "NIS"},
	{Key: "name", Header: "Full Name"},
	{Key: "address", Header: "Address"},
}

func TestExportCSVRoundTrip(t *testing.T) {
	rows := []map[string]interface{}{
		{"nis": "20260001", "name": "Budi Santoso", "address": "Jl. Merdeka No. 1"},
		{"nis": "20260002", "name": `Siti "Ana" Rahma`, "address": "Blok B, RT 03, RW 05"},
		{"nis": "20260003", "name": "Dewi Lestari", "address": "Line one\nLine two"},
	}

	out := ExportCSV(rows, csvColumns)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("standard CSV parser rejected output: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d records", len(records))
	}

	wantHeader := []string{"NIS", "Full Name", "Address"}
	for i, h := range wantHeader {
		if records[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	for i, row := range rows {
		for j, col := range csvColumns {
			want := row[col.Key].(string)
			if got := records[i+1][j]; got != want {
				t.Errorf("row %d col %s = %q, want %q", i, col.Key, got, want)
			}
		}
	}
}

func TestExportCSVNilAndMissingValues(t *testing.T) {
	rows := []map[string]interface{}{
		{"nis": "20260001", "address": nil},
	}
	out := ExportCSV(rows, csvColumns)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[1] != "20260001,," {
		t.Errorf("row = %q, want %q", lines[1], "20260001,,")
	}
}

func TestExportCSVEmptyRows(t *testing.T) {
	out := ExportCSV(nil, csvColumns)
	if out != "NIS,Full Name,Address" {
		t.Errorf("empty export = %q", out)
	}
}
