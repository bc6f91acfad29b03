package tabular

import (
	"bytes"
	"testing"
)

func TestExportPDF(t *testing.T) {
	cols := []Column{
		{Key: "registrationNo", Header: "Registration No"},
		{Key: "name", Header: "Full Name"},
		{Key: "school", Header: "Previous School"},
	}
	rows := []map[string]interface{}{
		{"registrationNo": "SPMB-2026-001", "name": "Budi Santoso", "school": "SDN 4 Bandung"},
		{"registrationNo": "SPMB-2026-002", "name": "Siti Rahma", "school": nil},
	}

	data, err := ExportPDF(rows, cols, "Applicant List")
	if err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with %%PDF header")
	}
}

func TestExportPDFWithoutTitle(t *testing.T) {
	cols := []Column{{Key: "a", Header: "A"}}
	data, err := ExportPDF(nil, cols, "")
	if err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty PDF output")
	}
}
