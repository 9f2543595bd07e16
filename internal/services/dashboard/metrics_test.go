package dashboard

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

func TestCalculate_Scenario(t *testing.T) {
	m := Calculate(scenarioSnapshot(), FormatOptions{Currency: "USD", LabelLength: 12})
	require.Len(t, m.Holdings, 2)

	aaa, bbb := m.Holdings[0], m.Holdings[1]
	assert.True(t, aaa.Share.Equal(d("0.6")), "AAA share = %s", aaa.Share)
	assert.True(t, bbb.Share.Equal(d("0.4")), "BBB share = %s", bbb.Share)
	assert.Equal(t, "60.00%", aaa.SharePctText)
	assert.Equal(t, "40.00%", bbb.SharePctText)

	assert.Equal(t, common.StylePositive, aaa.ProfitLossStyle)
	assert.Equal(t, common.StylePositive, aaa.ProfitLossPctStyle)
	assert.Equal(t, common.StyleNegative, bbb.ProfitLossStyle)
	assert.Equal(t, common.StyleNegative, bbb.ProfitLossPctStyle)
	assert.Equal(t, "-11.10%", bbb.ProfitLossPctText)
	assert.Equal(t, "-$50.00", bbb.ProfitLossText)

	assert.Equal(t, "$1,000.00", m.Summary.TotalValueText)
	assert.Equal(t, "5.26%", m.Summary.ProfitLossPctText)
}

func TestCalculate_ZeroTotalValueUsesUnitDenominator(t *testing.T) {
	s := &models.PortfolioSnapshot{
		Holdings: []models.Holding{
			{InvestmentID: 1, Symbol: "ZZZ", CurrentValue: d("25.5")},
			{InvestmentID: 2, Symbol: "YYY", CurrentValue: decimal.Zero},
		},
	}

	m := Calculate(s, FormatOptions{})

	assert.True(t, m.Holdings[0].Share.Equal(d("25.5")))
	assert.True(t, m.Holdings[1].Share.IsZero())
	assert.Equal(t, "2550.00%", m.Holdings[0].SharePctText)
	assert.Equal(t, "USD", m.Currency)
}

func TestCalculate_CostBasisIsExact(t *testing.T) {
	tests := []struct {
		qty   int64
		price string
		want  string
	}{
		{3, "0.1", "0.3"},
		{7, "33.333", "233.331"},
		{1000000, "0.000001", "1"},
		{0, "99.99", "0"},
	}
	for _, tt := range tests {
		h := models.Holding{Quantity: tt.qty, BuyPrice: d(tt.price)}
		got := CostBasis(h)
		assert.True(t, got.Equal(d(tt.want)), "CostBasis(%d x %s) = %s, want %s", tt.qty, tt.price, got, tt.want)
	}

	m := Calculate(&models.PortfolioSnapshot{
		TotalValue: d("1"),
		Holdings:   []models.Holding{{Quantity: 7, BuyPrice: d("33.333")}},
	}, FormatOptions{})
	assert.True(t, m.Holdings[0].CostBasis.Equal(d("233.331")))
	assert.Equal(t, "$233.33", m.Holdings[0].CostBasisText)
}

func TestCalculate_TruncatesChartLabelOnly(t *testing.T) {
	name := "Abcdefghijklmnopqrst"
	s := &models.PortfolioSnapshot{
		TotalValue: d("10"),
		Holdings:   []models.Holding{{InvestmentID: 1, Symbol: "LONG", CompanyName: name, CurrentValue: d("10")}},
	}

	m := Calculate(s, FormatOptions{LabelLength: 12})

	assert.Equal(t, "LONG - Abcdefghijkl...", m.Holdings[0].ChartLabel)
	assert.Equal(t, name, m.Holdings[0].Holding.CompanyName)
	assert.Equal(t, name, s.Holdings[0].CompanyName, "snapshot must not be modified")
}

func TestChartLabel_NoCompanyName(t *testing.T) {
	assert.Equal(t, "XYZ", ChartLabel(models.Holding{Symbol: "XYZ"}, 12))
	assert.Equal(t, "XYZ - Short", ChartLabel(models.Holding{Symbol: "XYZ", CompanyName: "Short"}, 12))
}

func TestCalculate_ZeroProfitIsPositive(t *testing.T) {
	m := Calculate(&models.PortfolioSnapshot{}, FormatOptions{})
	assert.Equal(t, common.StylePositive, m.Summary.ProfitLossStyle)
	assert.Equal(t, "0.00%", m.Summary.ProfitLossPctText)
	assert.Equal(t, "$0.00", m.Summary.TotalValueText)
	assert.Empty(t, m.Holdings)
}
