package tabular

import "strings"

// ExportCSV produces CSV text: a header row from cols, one row per record.
// Values containing a comma, double quote or newline are wrapped in double
// quotes with inner quotes doubled; nil values become empty fields.
func ExportCSV(rows []map[string]interface{}, cols []Column) string {
	var b strings.Builder

	for i, col := range cols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeCSV(col.Header))
	}

	for _, row := range rows {
		b.WriteByte('\n')
		for i, col := range cols {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeCSV(cellString(row[col.Key], "")))
		}
	}

	return b.String()
}

func escapeCSV(v string) string {
	if !strings.ContainsAny(v, ",\"\n") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
