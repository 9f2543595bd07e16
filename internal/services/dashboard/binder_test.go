package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/common"
)

func dashboardView() *View {
	return NewView(SurfaceTotalValue, SurfaceTotalCost, SurfaceProfitLoss, SurfaceProfitLossPct, SurfaceHoldingsTable)
}

func TestBinder_DashboardTableCappedInOrder(t *testing.T) {
	m := Calculate(manyHoldings(15), FormatOptions{})
	v := dashboardView()

	NewBinder(10).BindDashboardTable(v, m)

	s, ok := v.Surface(SurfaceHoldingsTable)
	require.True(t, ok)
	require.Len(t, s.Rows, 10)
	for i, row := range s.Rows {
		assert.Equal(t, int64(i+1), row.Key)
		assert.Equal(t, m.Holdings[i].Holding.Symbol, row.Cells[0].Text)
	}
}

func TestBinder_HoldingsTableUncapped(t *testing.T) {
	m := Calculate(manyHoldings(15), FormatOptions{})
	v := NewView(SurfaceAllHoldingsTable)

	NewBinder(10).BindHoldingsTable(v, m)

	s, _ := v.Surface(SurfaceAllHoldingsTable)
	require.Len(t, s.Rows, 15)
	last := s.Rows[14]
	assert.Equal(t, "15", last.Meta[MetaInvestmentID])
	assert.Equal(t, "1", last.Meta[MetaMaxQuantity])
	assert.Len(t, last.Cells, len(HoldingsTableHeaders))
}

func TestBinder_TableShowsFullCompanyName(t *testing.T) {
	name := "Abcdefghijklmnopqrst"
	s := scenarioSnapshot()
	s.Holdings[0].CompanyName = name
	m := Calculate(s, FormatOptions{LabelLength: 12})
	v := dashboardView()

	NewBinder(10).BindDashboardTable(v, m)

	surface, _ := v.Surface(SurfaceHoldingsTable)
	assert.Equal(t, name, surface.Rows[0].Cells[1].Text)
	assert.Equal(t, "AAA - Abcdefghijkl...", m.Holdings[0].ChartLabel)
}

func TestBinder_RowStyles(t *testing.T) {
	m := Calculate(scenarioSnapshot(), FormatOptions{})
	v := dashboardView()
	b := NewBinder(0)

	b.BindSummary(v, m)
	b.BindDashboardTable(v, m)

	table, _ := v.Surface(SurfaceHoldingsTable)
	aaa, bbb := table.Rows[0], table.Rows[1]
	assert.Equal(t, common.StylePositive, aaa.Cells[6].Style)
	assert.Equal(t, common.StylePositive, aaa.Cells[7].Style)
	assert.Equal(t, common.StyleNegative, bbb.Cells[6].Style)
	assert.Equal(t, common.StyleNegative, bbb.Cells[7].Style)
	assert.Equal(t, "-11.10%", bbb.Cells[7].Text)

	total, _ := v.Surface(SurfaceTotalValue)
	assert.Equal(t, "$1,000.00", total.Text)
	pl, _ := v.Surface(SurfaceProfitLoss)
	assert.Equal(t, common.StylePositive, pl.Style)
}

func TestView_WritesToMissingSurfaceAreIgnored(t *testing.T) {
	m := Calculate(scenarioSnapshot(), FormatOptions{})
	v := NewView(SurfaceTotalValue)
	b := NewBinder(10)

	assert.NotPanics(t, func() {
		b.BindSummary(v, m)
		b.BindDashboardTable(v, m)
		b.BindHoldingsTable(v, m)
	})

	snap := v.Snapshot()
	assert.Len(t, snap, 1)
	assert.Equal(t, "$1,000.00", snap[SurfaceTotalValue].Text)

	v.Unmount(SurfaceTotalValue)
	assert.False(t, v.SetText(SurfaceTotalValue, "x", ""))
	assert.False(t, v.SetRows(SurfaceHoldingsTable, nil))

	v.Mount(SurfaceTotalValue)
	s, ok := v.Surface(SurfaceTotalValue)
	require.True(t, ok)
	assert.Empty(t, s.Text)
}
