package xlsxexport_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pactly/internal/domain"
	"pactly/internal/xlsxexport"
)

func TestBuild(t *testing.T) {
	c := &domain.Contract{
		VersionNumber:   4,
		ExtractedFields: json.RawMessage(`{"purchase_price": 350000, "buyer": "Jane Buyer", "as_is": false}`),
		ClauseTags:      json.RawMessage(`[{"key":"closing","status":"agreed","text":"Closing on 2025-01-01"}]`),
	}

	data, err := xlsxexport.Build(c, "12 Elm Street")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{xlsxexport.SheetFields, xlsxexport.SheetClauses}, f.GetSheetList())

	fields, err := f.GetRows(xlsxexport.SheetFields)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Field", "Value"},
		{"as_is", "No"},
		{"buyer", "Jane Buyer"},
		{"purchase_price", "350000"},
	}, fields)

	clauses, err := f.GetRows(xlsxexport.SheetClauses)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Clause", "Status", "Text"},
		{"closing", "agreed", "Closing on 2025-01-01"},
	}, clauses)
}

func TestBuild_MalformedClauseTags(t *testing.T) {
	_, err := xlsxexport.Build(&domain.Contract{ClauseTags: json.RawMessage(`{"not":"a list"}`)}, "Deal")
	assert.Error(t, err)
}
