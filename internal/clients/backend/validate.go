package backend

import (
	"fmt"

	"github.com/bobmcallan/folio/internal/models"
)

// validateSnapshot checks the invariants the dashboard relies on.
func validateSnapshot(s *models.PortfolioSnapshot) error {
	seen := make(map[int64]struct{}, len(s.Holdings))
	for i, h := range s.Holdings {
		if h.Quantity < 0 {
			return fmt.Errorf("holding %d (%s): negative quantity %d", i, h.Symbol, h.Quantity)
		}
		if h.BuyPrice.IsNegative() || h.CurrentPrice.IsNegative() {
			return fmt.Errorf("holding %d (%s): negative unit price", i, h.Symbol)
		}
		if h.CurrentValue.IsNegative() {
			return fmt.Errorf("holding %d (%s): negative current value", i, h.Symbol)
		}
		if _, dup := seen[h.InvestmentID]; dup {
			return fmt.Errorf("holding %d (%s): duplicate investmentId %d", i, h.Symbol, h.InvestmentID)
		}
		seen[h.InvestmentID] = struct{}{}
	}
	return nil
}
