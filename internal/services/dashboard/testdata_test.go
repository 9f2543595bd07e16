package dashboard

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/folio/internal/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// scenarioSnapshot is the two-holding portfolio used across the pipeline tests.
func scenarioSnapshot() *models.PortfolioSnapshot {
	return &models.PortfolioSnapshot{
		TotalValue:                d("1000"),
		TotalCost:                 d("950"),
		TotalProfitLoss:           d("50"),
		TotalProfitLossPercentage: d("5.26"),
		Holdings: []models.Holding{
			{
				InvestmentID: 1, Symbol: "AAA", CompanyName: "Alpha Industries International",
				Quantity: 10, BuyPrice: d("50"), CurrentPrice: d("60"), CurrentValue: d("600"),
				ProfitLoss: d("100"), ProfitLossPercentage: d("20"), BuyDate: "2024-01-15",
			},
			{
				InvestmentID: 2, Symbol: "BBB", CompanyName: "Beta",
				Quantity: 4, BuyPrice: d("112.5"), CurrentPrice: d("100"), CurrentValue: d("400"),
				ProfitLoss: d("-50"), ProfitLossPercentage: d("-11.1"), BuyDate: "2024-02-01",
			},
		},
	}
}

func manyHoldings(n int) *models.PortfolioSnapshot {
	s := &models.PortfolioSnapshot{TotalValue: decimal.NewFromInt(int64(n * 100))}
	for i := 0; i < n; i++ {
		s.Holdings = append(s.Holdings, models.Holding{
			InvestmentID: int64(i + 1),
			Symbol:       fmt.Sprintf("S%02d", i),
			CompanyName:  fmt.Sprintf("Company %02d", i),
			Quantity:     1,
			BuyPrice:     decimal.NewFromInt(90),
			CurrentPrice: decimal.NewFromInt(100),
			CurrentValue: decimal.NewFromInt(100),
			ProfitLoss:   decimal.NewFromInt(10),
		})
	}
	return s
}
