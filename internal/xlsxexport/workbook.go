// Package xlsxexport writes a contract's extracted fields and clause tags
// as an Excel workbook.
package xlsxexport

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"pactly/internal/domain"
)

const (
	SheetFields  = "Fields"
	SheetClauses = "Clauses"
)

// Build returns the workbook bytes for c.
func Build(c *domain.Contract, dealTitle string) ([]byte, error) {
	fields, err := c.Fields()
	if err != nil {
		return nil, err
	}
	tags, err := c.Clauses()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetFields); err != nil {
		return nil, fmt.Errorf("xlsxexport: %w", err)
	}
	if _, err := f.NewSheet(SheetClauses); err != nil {
		return nil, fmt.Errorf("xlsxexport: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsxexport: %w", err)
	}

	if err := writeFields(f, fields, bold); err != nil {
		return nil, err
	}
	if err := writeClauses(f, tags, bold); err != nil {
		return nil, err
	}

	_ = f.SetDocProps(&excelize.DocProperties{
		Title:   fmt.Sprintf("%s v%d key terms", dealTitle, c.VersionNumber),
		Creator: "Pactly",
	})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsxexport: writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFields(f *excelize.File, fields map[string]any, headerStyle int) error {
	if err := f.SetSheetRow(SheetFields, "A1", &[]interface{}{"Field", "Value"}); err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}
	_ = f.SetRowStyle(SheetFields, 1, 1, headerStyle)
	_ = f.SetColWidth(SheetFields, "A", "A", 28)
	_ = f.SetColWidth(SheetFields, "B", "B", 60)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetFields, cell, &[]interface{}{k, cellValue(fields[k])}); err != nil {
			return fmt.Errorf("xlsxexport: field %q: %w", k, err)
		}
	}
	return nil
}

func writeClauses(f *excelize.File, tags []domain.ClauseTag, headerStyle int) error {
	if err := f.SetSheetRow(SheetClauses, "A1", &[]interface{}{"Clause", "Status", "Text"}); err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}
	_ = f.SetRowStyle(SheetClauses, 1, 1, headerStyle)
	_ = f.SetColWidth(SheetClauses, "A", "B", 20)
	_ = f.SetColWidth(SheetClauses, "C", "C", 80)

	for i := range tags {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{tags[i].Key, tags[i].Status, tags[i].Text}
		if err := f.SetSheetRow(SheetClauses, cell, &row); err != nil {
			return fmt.Errorf("xlsxexport: clause %q: %w", tags[i].Key, err)
		}
	}
	return nil
}

// cellValue keeps numbers numeric so they sum in a spreadsheet.
func cellValue(v any) interface{} {
	switch t := v.(type) {
	case nil:
		return ""
	case string, float64:
		return t
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
