package pdfexport_test

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pactly/internal/pdfexport"
)

func TestFlow_PageCountTracksTotalHeight(t *testing.T) {
	m := pdfexport.ContractMetrics()
	usable := m.PageHeight - m.ContinuationTop - m.BottomMargin

	for _, n := range []int{1, 10, 51, 52, 200, 777} {
		t.Run(fmt.Sprintf("%d lines", n), func(t *testing.T) {
			lines := make([]string, n)
			for i := range lines {
				lines[i] = fmt.Sprintf("Line %d of the agreement.", i+1)
			}
			flow := pdfexport.NewFlow(m, monoMeasurer{em: 5}, m.ContinuationTop)
			flow.Text(strings.Join(lines, "\n"))

			want := math.Ceil(float64(n) * m.LineHeight / usable)
			assert.InDelta(t, want, float64(len(flow.Pages())), 1)
		})
	}
}

func TestFlow_BreaksBelowBottomMarginAndResetsCursor(t *testing.T) {
	m := pdfexport.ContractMetrics()
	flow := pdfexport.NewFlow(m, monoMeasurer{em: 5}, m.ContinuationTop)
	flow.Text(strings.Repeat("clause text\n", 120))

	pages := flow.Pages()
	require.Greater(t, len(pages), 1)
	for i, p := range pages {
		assert.Equal(t, i+1, p.Number)
		ops := textOps(p.Body)
		require.NotEmpty(t, ops)
		assert.Equal(t, m.ContinuationTop, ops[0].Y)
		for _, op := range ops {
			assert.LessOrEqual(t, op.Y, m.BreakAt())
		}
	}
}

func TestFlow_FontSurvivesPageBreak(t *testing.T) {
	m := pdfexport.ContractMetrics()
	// The heading wraps to two lines; only the first fits on page 1.
	flow := pdfexport.NewFlow(m, monoMeasurer{em: 8}, m.BreakAt()-8)
	flow.Text(strings.Repeat("INDEMNIFICATION ", 6))

	pages := flow.Pages()
	require.Len(t, pages, 2)
	for _, p := range pages {
		ops := textOps(p.Body)
		require.Len(t, ops, 1)
		assert.Equal(t, pdfexport.StyleBold, ops[0].Font.Style)
		assert.Equal(t, m.HeaderSize, ops[0].Font.Size)
	}
	assert.Equal(t, m.ContinuationTop, textOps(pages[1].Body)[0].Y)
}

func TestFlow_SubItemIndentAndWidth(t *testing.T) {
	m := pdfexport.ContractMetrics()
	mm := monoMeasurer{em: 5}
	flow := pdfexport.NewFlow(m, mm, m.ContinuationTop)
	flow.Text("(a) " + strings.Repeat("deposit ", 40))

	limit := m.ContentWidth() - m.SubItemIndent - m.WrapSafetyBuffer
	lines := map[float64][]pdfexport.TextOp{}
	for _, op := range textOps(flow.Pages()[0].Body) {
		lines[op.Y] = append(lines[op.Y], op)
	}
	require.Greater(t, len(lines), 1)
	for _, ops := range lines {
		assert.Equal(t, m.Margin+m.SubItemIndent, ops[0].X)
		var w float64
		for _, op := range ops {
			w += mm.StringWidth(op.Font, op.Text)
		}
		assert.LessOrEqual(t, w, limit)
	}
}

func TestFlow_BlankLinesAdvanceParagraphGap(t *testing.T) {
	m := pdfexport.ContractMetrics()
	flow := pdfexport.NewFlow(m, monoMeasurer{em: 5}, 100)
	flow.Text("first\n\n\nsecond")

	ops := textOps(flow.Pages()[0].Body)
	require.Len(t, ops, 2)
	assert.Equal(t, 100+m.LineHeight+2*m.ParagraphGap, ops[1].Y)
}

func TestFlow_PlainModeSkipsClassification(t *testing.T) {
	m := pdfexport.OfferLetterMetrics()
	flow := pdfexport.NewFlow(m, monoMeasurer{em: 5}, 100)
	flow.Text("DEAR SELLER\n    indented line")

	ops := textOps(flow.Pages()[0].Body)
	require.Len(t, ops, 2)
	for _, op := range ops {
		assert.Equal(t, pdfexport.StyleRegular, op.Font.Style)
		assert.Equal(t, 10.0, op.Font.Size)
		assert.Equal(t, m.Margin, op.X)
	}
	assert.Equal(t, 114.0, ops[1].Y)
}

func TestFlow_HeadingsEmitBoldWithoutMarkers(t *testing.T) {
	m := pdfexport.ContractMetrics()
	flow := pdfexport.NewFlow(m, monoMeasurer{em: 5}, 100)
	flow.Text("1. **PURCHASE** PRICE")

	ops := textOps(flow.Pages()[0].Body)
	require.Len(t, ops, 1)
	assert.Equal(t, "1. PURCHASE PRICE", ops[0].Text)
	assert.Equal(t, pdfexport.StyleBold, ops[0].Font.Style)
}
