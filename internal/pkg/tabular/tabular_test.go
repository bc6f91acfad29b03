package tabular

import (
	"errors"
	"testing"
	"time"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  error
	}{
		{name: "xlsx", filename: "students.xlsx", size: 1024},
		{name: "xls", filename: "students.xls", size: 1024},
		{name: "uppercase extension", filename: "STUDENTS.XLSX", size: 1024},
		{name: "mixed case extension", filename: "data.Xls", size: 1024},
		{name: "csv rejected", filename: "students.csv", size: 1024, wantErr: ErrInvalidFileFormat},
		{name: "no extension", filename: "students", size: 1024, wantErr: ErrInvalidFileFormat},
		{name: "pdf rejected", filename: "scan.pdf", size: 1024, wantErr: ErrInvalidFileFormat},
		{name: "exactly 10MiB passes", filename: "big.xlsx", size: MaxUploadSize},
		{name: "over 10MiB fails", filename: "big.xlsx", size: MaxUploadSize + 1, wantErr: ErrFileTooLarge},
		{name: "extension checked before size", filename: "big.csv", size: MaxUploadSize + 1, wantErr: ErrInvalidFileFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateUpload(tt.filename, tt.size); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateUpload(%q, %d) = %v, want %v", tt.filename, tt.size, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUploadIdempotent(t *testing.T) {
	first := ValidateUpload("report.xlsx", 500)
	second := ValidateUpload("report.xlsx", 500)
	if !errors.Is(first, second) && first != second {
		t.Errorf("repeated validation differed: %v then %v", first, second)
	}
	firstBad := ValidateUpload("report.txt", 500)
	secondBad := ValidateUpload("report.txt", 500)
	if !errors.Is(firstBad, ErrInvalidFileFormat) || !errors.Is(secondBad, ErrInvalidFileFormat) {
		t.Errorf("repeated failing validation differed: %v then %v", firstBad, secondBad)
	}
}

func TestExportFilename(t *testing.T) {
	got := ExportFilename("applicants", "csv")
	want := "applicants_" + time.Now().Format("2006-01-02") + ".csv"
	if got != want {
		t.Errorf("ExportFilename = %q, want %q", got, want)
	}
}

func TestCellString(t *testing.T) {
	if got := cellString(nil, "-"); got != "-" {
		t.Errorf("nil = %q, want -", got)
	}
	if got := cellString(nil, ""); got != "" {
		t.Errorf("nil with empty placeholder = %q, want empty", got)
	}
	if got := cellString("abc", "-"); got != "abc" {
		t.Errorf("string = %q", got)
	}
	if got := cellString(42, "-"); got != "42" {
		t.Errorf("int = %q", got)
	}
	if got := cellString(87.5, "-"); got != "87.5" {
		t.Errorf("float = %q", got)
	}
	birthday := time.Date(2012, 5, 17, 0, 0, 0, 0, time.UTC)
	if got := cellString(birthday, "-"); got != "2012-05-17" {
		t.Errorf("time = %q", got)
	}
}
