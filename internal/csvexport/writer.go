package csvexport

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"pactly/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Type",
	"Key",
	"Value",
	"Status",
}

const (
	rowTypeField  = "Field"
	rowTypeClause = "Clause"
)

// Writer wraps csv.Writer for exporting contract key terms as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteFields writes one row per extracted field, sorted by key.
func (w *Writer) WriteFields(fields map[string]any) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		row := []string{rowTypeField, escapeCell(k), escapeCell(FormatValue(fields[k])), ""}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteClauses writes one row per clause tag, in contract order.
func (w *Writer) WriteClauses(tags []domain.ClauseTag) error {
	for i := range tags {
		row := []string{rowTypeClause, escapeCell(tags[i].Key), escapeCell(tags[i].Text), escapeCell(tags[i].Status)}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteContract writes the header, fields and clauses of a contract.
func (w *Writer) WriteContract(c *domain.Contract) error {
	fields, err := c.Fields()
	if err != nil {
		return err
	}
	tags, err := c.Clauses()
	if err != nil {
		return err
	}
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteFields(fields); err != nil {
		return err
	}
	return w.WriteClauses(tags)
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// FormatValue renders an extracted field value as a single cell.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// escapeCell neutralizes values a spreadsheet would evaluate as a formula.
func escapeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a deal title for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "contract"
	}
	return s
}

// BuildFilename returns a sanitized filename for the key terms export.
// Format: {sanitized_deal_title}_v{version}_key_terms_{YYYY-MM-DD}.{ext}
func BuildFilename(dealTitle string, version int, ext string, now time.Time) string {
	return fmt.Sprintf("%s_v%d_key_terms_%s.%s", SanitizeFilename(dealTitle), version, now.Format("2006-01-02"), ext)
}
