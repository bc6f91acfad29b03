// Package tabular converts in-memory record sets to downloadable
// Excel/PDF/CSV payloads and parses uploaded spreadsheets back into
// records. Callers describe the projection with an ordered Column list;
// output column order always follows it.
package tabular

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Column maps a record key to the header shown in exported files
type Column struct {
	Key    string
	Header string
}

// MaxUploadSize is the inclusive upper bound for imported spreadsheets.
const MaxUploadSize = 10 * 1024 * 1024

// Upload validation errors. Extension is checked before size so a file
// failing both reports a single deterministic reason.
var (
	ErrInvalidFileFormat = errors.New("invalid file format, only .xlsx and .xls files are accepted")
	ErrFileTooLarge      = errors.New("file size exceeds 10MB limit")
)

// Parse failure kinds, distinguished so callers can pick user-facing copy.
var (
	ErrFileRead      = errors.New("failed to read uploaded file")
	ErrWorkbookParse = errors.New("failed to parse workbook")
)

// ValidateUpload checks an uploaded spreadsheet before parsing.
// It is pure: same inputs always yield the same result.
func ValidateUpload(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".xlsx" && ext != ".xls" {
		return ErrInvalidFileFormat
	}
	if size > MaxUploadSize {
		return ErrFileTooLarge
	}
	return nil
}

// ExportFilename builds the conventional download name {base}_{YYYY-MM-DD}.{ext}
func ExportFilename(base, ext string) string {
	return fmt.Sprintf("%s_%s.%s", base, time.Now().Format("2006-01-02"), ext)
}

// cellString renders an exported value as text. nullPlaceholder stands in
// for nil values; everything else goes through fmt.
func cellString(v interface{}, nullPlaceholder string) string {
	if v == nil {
		return nullPlaceholder
	}
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.Format("2006-01-02")
	case float64:
		// Trim the ".000000" noise %v would avoid but %f would add
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
