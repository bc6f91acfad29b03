package tabular

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestExportExcelParseRoundTrip(t *testing.T) {
	cols := []Column{
		{Key: "registrationNo", Header: "Registration No"},
		{Key: "name", Header: "Full Name"},
		{Key: "score", Header: "Test Score"},
	}
	rows := []map[string]interface{}{
		{"registrationNo": "SPMB-2026-001", "name": "Budi Santoso", "score": 88.5},
		{"registrationNo": "SPMB-2026-002", "name": "Siti Rahma"}, // missing score -> blank cell
	}

	data, err := ExportExcel(rows, cols)
	if err != nil {
		t.Fatalf("ExportExcel: %v", err)
	}

	records, err := ParseExcel(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseExcel: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["Registration No"] != "SPMB-2026-001" {
		t.Errorf("first record registration = %q", records[0]["Registration No"])
	}
	if records[0]["Test Score"] != "88.5" {
		t.Errorf("first record score = %q", records[0]["Test Score"])
	}
	if records[1]["Full Name"] != "Siti Rahma" {
		t.Errorf("second record name = %q", records[1]["Full Name"])
	}
	if records[1]["Test Score"] != "" {
		t.Errorf("missing value should parse as empty, got %q", records[1]["Test Score"])
	}
}

func TestExportExcelColumnOrder(t *testing.T) {
	cols := []Column{
		{Key: "b", Header: "Second"},
		{Key: "a", Header: "First"},
	}
	data, err := ExportExcel(nil, cols)
	if err != nil {
		t.Fatalf("ExportExcel: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	if name := f.GetSheetName(0); name != "Data" {
		t.Errorf("sheet name = %q, want Data", name)
	}
	a1, _ := f.GetCellValue("Data", "A1")
	b1, _ := f.GetCellValue("Data", "B1")
	if a1 != "Second" || b1 != "First" {
		t.Errorf("header order = [%q %q], want caller order preserved", a1, b1)
	}
}

func TestParseExcelReadFailure(t *testing.T) {
	_, err := ParseExcel(failingReader{})
	if !errors.Is(err, ErrFileRead) {
		t.Fatalf("expected ErrFileRead, got %v", err)
	}
}

func TestParseExcelMalformedWorkbook(t *testing.T) {
	_, err := ParseExcel(strings.NewReader("this is not a workbook"))
	if !errors.Is(err, ErrWorkbookParse) {
		t.Fatalf("expected ErrWorkbookParse, got %v", err)
	}
}

func TestParseExcelHeaderOnly(t *testing.T) {
	cols := []Column{{Key: "x", Header: "X"}}
	data, err := ExportExcel(nil, cols)
	if err != nil {
		t.Fatalf("ExportExcel: %v", err)
	}
	records, err := ParseExcel(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseExcel: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
